package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadStockholmSingleBlock(t *testing.T) {
	input := "#=GF ID fam1\n" +
		"#=GF AC AC001\n" +
		"seq1 ACGT--ACGT\n" +
		"seq2 ACGTACACGT\n" +
		"//\n"

	families, err := ReadStockholm(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 family, got %d", len(families))
	}
	fam := families[0]

	if len(fam.Meta) != 2 {
		t.Fatalf("expected 2 meta lines, got %d", len(fam.Meta))
	}
	if len(fam.Offsets) != 0 {
		t.Fatalf("leading metadata must not be offset-tracked, got %v", fam.Offsets)
	}
	if len(fam.Names) != 2 || fam.Names[0] != "seq1" || fam.Names[1] != "seq2" {
		t.Fatalf("unexpected names: %v", fam.Names)
	}
	if fam.Sequences[0] != "ACGT--ACGT" || fam.Sequences[1] != "ACGTACACGT" {
		t.Fatalf("unexpected sequences: %v", fam.Sequences)
	}

	id, ac := ExtractIDAC(fam.Meta)
	if id != "fam1" || ac != "AC001" {
		t.Fatalf("ExtractIDAC = (%q,%q), want (fam1,AC001)", id, ac)
	}
}

func TestReadStockholmMultiBlockKeepsOneEntryPerLine(t *testing.T) {
	input := "#=GF ID fam2\n" +
		"seq1 ACGT\n" +
		"seq2 TTTT\n" +
		"seq1 GGGG\n" +
		"seq2 CCCC\n" +
		"//\n"

	families, err := ReadStockholm(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 family, got %d", len(families))
	}
	fam := families[0]

	wantNames := []string{"seq1", "seq2", "seq1", "seq2"}
	wantSeqs := []string{"ACGT", "TTTT", "GGGG", "CCCC"}
	if len(fam.Names) != len(wantNames) {
		t.Fatalf("expected %d physical-line entries, got %d: %v", len(wantNames), len(fam.Names), fam.Names)
	}
	for i := range wantNames {
		if fam.Names[i] != wantNames[i] || fam.Sequences[i] != wantSeqs[i] {
			t.Fatalf("entry %d = (%q,%q), want (%q,%q)", i, fam.Names[i], fam.Sequences[i], wantNames[i], wantSeqs[i])
		}
	}
}

func TestReadStockholmMultipleFamilies(t *testing.T) {
	input := "#=GF ID fam1\n" +
		"a ACGT\n" +
		"//\n" +
		"#=GF ID fam2\n" +
		"b TTTT\n" +
		"//\n"

	families, err := ReadStockholm(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 2 {
		t.Fatalf("expected 2 families, got %d", len(families))
	}
	id0, _ := ExtractIDAC(families[0].Meta)
	id1, _ := ExtractIDAC(families[1].Meta)
	if id0 != "fam1" || id1 != "fam2" {
		t.Fatalf("unexpected ids: %q %q", id0, id1)
	}
}

func TestStockholmWriteReadRoundTripSingleBlock(t *testing.T) {
	fam := Family{
		Meta:      []string{"#=GF ID fam1", "#=GF AC AC001"},
		Offsets:   nil,
		Names:     []string{"seq1", "seq2"},
		Sequences: []string{"ACGT--ACGT", "ACGTACACGT"},
	}

	var buf bytes.Buffer
	if err := WriteStockholm(&buf, []Family{fam}, WriteStockholmOptions{}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadStockholm(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 family, got %d", len(got))
	}
	if got[0].Names[0] != "seq1" || got[0].Sequences[1] != "ACGTACACGT" {
		t.Fatalf("round trip mismatch: %+v", got[0])
	}
}

func TestStockholmWriteInterleavesMidBlockMetadata(t *testing.T) {
	// One leading meta line (untracked), then a mid-block meta line
	// recorded after 2 sequence lines were written.
	fam := Family{
		Meta:      []string{"#=GF ID fam3", "#=GC RF some-annotation"},
		Offsets:   []int{2},
		Names:     []string{"a", "b", "c"},
		Sequences: []string{"ACGT", "TTTT", "GGGG"},
	}

	var buf bytes.Buffer
	if err := WriteStockholm(&buf, []Family{fam}, WriteStockholmOptions{}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	// Expect: leading meta, a-line, b-line, mid meta, c-line, //
	if lines[0] != "#=GF ID fam3" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "a ACGT" || lines[2] != "b TTTT" {
		t.Fatalf("unexpected sequence lines: %q %q", lines[1], lines[2])
	}
	if lines[3] != "#=GC RF some-annotation" {
		t.Fatalf("mid-block meta not repositioned after 2 sequence lines, got %q", lines[3])
	}
	if lines[4] != "c GGGG" {
		t.Fatalf("line 4 = %q", lines[4])
	}
	if lines[5] != "//" {
		t.Fatalf("missing terminator, got %q", lines[5])
	}
}

func TestStockholmRoundTripPreservesMidBlockMetadataPosition(t *testing.T) {
	input := "#=GF ID fam4\n" +
		"#=GF AC AC004\n" +
		"seq1 AACC\n" +
		"seq2 GGTT\n" +
		"#=GC SS_cons xxxxx\n" +
		"seq1 TTAA\n" +
		"seq2 CCGG\n" +
		"//\n"

	families, err := ReadStockholm(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 family, got %d", len(families))
	}

	var buf bytes.Buffer
	if err := WriteStockholm(&buf, families, WriteStockholmOptions{}); err != nil {
		t.Fatal(err)
	}

	wantLines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")
	gotLines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(gotLines) != len(wantLines) {
		t.Fatalf("line count mismatch: got %d want %d\ngot: %v\nwant: %v", len(gotLines), len(wantLines), gotLines, wantLines)
	}
	for i := range wantLines {
		if gotLines[i] != wantLines[i] {
			t.Fatalf("line %d = %q, want %q (full got: %v)", i, gotLines[i], wantLines[i], gotLines)
		}
	}
}

func TestWriteStockholmSequencesOnlyStripsGaps(t *testing.T) {
	fam := Family{
		Meta:      []string{"#=GF ID fam5"},
		Names:     []string{"seq1"},
		Sequences: []string{"AC--GT.."},
	}

	var buf bytes.Buffer
	if err := WriteStockholm(&buf, []Family{fam}, WriteStockholmOptions{SequencesOnly: true}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[1] != "seq1 ACGT" {
		t.Fatalf("expected gap-stripped sequence line, got %q", lines[1])
	}
}

func TestExtractIDACMissing(t *testing.T) {
	id, ac := ExtractIDAC([]string{"#=GF DE some description"})
	if id != "" || ac != "" {
		t.Fatalf("expected empty id/ac, got (%q,%q)", id, ac)
	}
}
