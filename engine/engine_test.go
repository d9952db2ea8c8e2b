package engine

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/refresh-bio/CoMSA/lzmawrap"
)

func randomAlignment(r *rand.Rand, n, l int) [][]byte {
	alphabet := []byte("-.ACGTacgt*")
	rows := make([][]byte, n)
	for i := range rows {
		row := make([]byte, l)
		for j := range row {
			row[j] = alphabet[r.Intn(len(alphabet))]
		}
		rows[i] = row
	}
	return rows
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		n, l int
		fast bool
	}{
		{"small-wfc", 12, 20, false},
		{"small-mtf", 12, 20, true},
		{"single-row", 1, 30, false},
		{"single-column", 9, 1, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := rand.New(rand.NewSource(int64(tc.n*31 + tc.l)))
			rows := randomAlignment(r, tc.n, tc.l)
			metadata := []byte("family METADATA\nwith a few lines\n")

			var buf bytes.Buffer
			opts := Options{Fast: tc.fast, MetadataPreset: lzmawrap.PresetStockholm}
			if err := CompressAlignment(&buf, rows, metadata, opts); err != nil {
				t.Fatalf("compress: %v", err)
			}

			outRows, outMeta, err := DecompressAlignment(&buf)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}

			if !bytes.Equal(outMeta, metadata) {
				t.Fatalf("metadata mismatch: got %q, want %q", outMeta, metadata)
			}
			if len(outRows) != len(rows) {
				t.Fatalf("row count mismatch: got %d, want %d", len(outRows), len(rows))
			}
			for i := range rows {
				if !bytes.Equal(outRows[i], rows[i]) {
					t.Fatalf("row %d mismatch: got %q, want %q", i, outRows[i], rows[i])
				}
			}
		})
	}
}

func TestEmptyAlignment(t *testing.T) {
	var buf bytes.Buffer
	metadata := []byte("no sequences here")

	opts := Options{MetadataPreset: lzmawrap.PresetFASTAExtreme}
	if err := CompressAlignment(&buf, nil, metadata, opts); err != nil {
		t.Fatalf("compress: %v", err)
	}

	rows, outMeta, err := DecompressAlignment(&buf)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if !bytes.Equal(outMeta, metadata) {
		t.Fatalf("metadata mismatch: got %q, want %q", outMeta, metadata)
	}
}
