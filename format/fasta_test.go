package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadFastaBasic(t *testing.T) {
	input := ">seq1 description\n" +
		"ACGT--ACGT\n" +
		"acgtACGT\n" +
		">seq2\n" +
		"TTTT----\n"

	names, seqs, err := ReadFasta(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 records, got %d", len(names))
	}
	if names[0] != ">seq1 description" || names[1] != ">seq2" {
		t.Fatalf("unexpected names: %v", names)
	}
	if seqs[0] != "ACGT--ACGTacgtACGT" {
		t.Fatalf("seq1 = %q", seqs[0])
	}
	if seqs[1] != "TTTT----" {
		t.Fatalf("seq2 = %q", seqs[1])
	}
}

func TestReadFastaRejectsNonFasta(t *testing.T) {
	if _, _, err := ReadFasta(strings.NewReader("not fasta\n")); err == nil {
		t.Fatal("expected error for input not starting with '>'")
	}
}

func TestReadFastaRejectsEmpty(t *testing.T) {
	if _, _, err := ReadFasta(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWriteFastaRoundTrip(t *testing.T) {
	names := []string{">a", ">b"}
	seqs := []string{"ACGTACGTACGT", "TT--TT--TT--"}

	var buf bytes.Buffer
	if err := WriteFasta(&buf, names, seqs, WriteFastaOptions{}); err != nil {
		t.Fatal(err)
	}

	gotNames, gotSeqs, err := ReadFasta(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range names {
		if gotNames[i] != names[i] || gotSeqs[i] != seqs[i] {
			t.Fatalf("record %d: got (%q,%q), want (%q,%q)", i, gotNames[i], gotSeqs[i], names[i], seqs[i])
		}
	}
}

func TestWriteFastaWrapWidth(t *testing.T) {
	names := []string{">a"}
	seqs := []string{"ACGTACGTACGTACGT"}

	var buf bytes.Buffer
	if err := WriteFasta(&buf, names, seqs, WriteFastaOptions{WrapWidth: 5}); err != nil {
		t.Fatal(err)
	}

	want := ">a\nACGTA\nCGTAC\nGTACG\nT\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteFastaSequencesOnly(t *testing.T) {
	names := []string{">a"}
	seqs := []string{"AC-G.Tac*gt"}

	var buf bytes.Buffer
	if err := WriteFasta(&buf, names, seqs, WriteFastaOptions{SequencesOnly: true}); err != nil {
		t.Fatal(err)
	}

	_, gotSeqs, err := ReadFasta(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if gotSeqs[0] != "ACGTacgt" {
		t.Fatalf("got %q, want ACGTacgt", gotSeqs[0])
	}
}
