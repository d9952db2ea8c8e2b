package transform

import (
	"bytes"
	"math/rand"
	"testing"
)

func randomLegalColumn(r *rand.Rand, n int) []byte {
	alpha := legalAlphabet()
	col := make([]byte, n)
	for i := range col {
		col[i] = alpha[r.Intn(AlphabetSize)]
	}
	return col
}

func TestMTFRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(4))

	for trial := 0; trial < 50; trial++ {
		col := randomLegalColumn(r, 30)

		enc := NewMTF()
		ranks, err := enc.Forward(col)
		if err != nil {
			t.Fatal(err)
		}

		dec := NewMTF()
		out, err := dec.Inverse(ranks)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(out, col) {
			t.Fatalf("trial %d: got %v, want %v", trial, out, col)
		}
	}
}

func TestMTFResetsPerColumn(t *testing.T) {
	m := NewMTF()
	alpha := legalAlphabet()

	first, _ := m.Forward([]byte{alpha[5]})
	m.ResetColumn()
	second, _ := m.Forward([]byte{alpha[5]})

	if first[0] != second[0] {
		t.Fatalf("expected identical rank after reset: %d vs %d", first[0], second[0])
	}
}

func TestMTFOneVariant(t *testing.T) {
	alpha := legalAlphabet()
	m := NewMTF()

	// First occurrence of a symbol not at front: emits its rank, symbol
	// moves to position 1 (not 0).
	r1, _ := m.Forward([]byte{alpha[3]})
	if r1[0] != 3 {
		t.Fatalf("expected rank 3, got %d", r1[0])
	}
	if m.list[1] != alpha[3] {
		t.Fatalf("expected symbol promoted to position 1, list=%v", m.list[:4])
	}

	// Second occurrence (now at position 1) swaps to position 0.
	r2, _ := m.Forward([]byte{alpha[3]})
	if r2[0] != 1 {
		t.Fatalf("expected rank 1 on second occurrence, got %d", r2[0])
	}
	if m.list[0] != alpha[3] {
		t.Fatalf("expected symbol promoted to position 0, list=%v", m.list[:4])
	}
}
