package lzmawrap

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	text := []byte("#=GF ID FOO\n#=GF AC BAR.1\nseqA\nseqB\n")

	for _, p := range []Preset{PresetStockholm, PresetFASTAExtreme} {
		c, err := Compress(text, p)
		if err != nil {
			t.Fatal(err)
		}

		got, err := Decompress(c)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, text) {
			t.Fatalf("preset %v: round-trip mismatch: got %q, want %q", p, got, text)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	c, err := Compress(nil, PresetStockholm)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 0 {
		t.Fatalf("expected empty compressed output for empty input")
	}

	got, err := Decompress(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty decompressed output for empty input")
	}
}
