package transform

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestWFCRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))

	for trial := 0; trial < 20; trial++ {
		col := randomLegalColumn(r, 25)

		enc := NewWFC()
		ranks, err := enc.Forward(col)
		if err != nil {
			t.Fatal(err)
		}

		dec := NewWFC()
		out, err := dec.Inverse(ranks)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(out, col) {
			t.Fatalf("trial %d: got %v, want %v", trial, out, col)
		}
	}
}

func TestWFCRanksFavourRecentSymbols(t *testing.T) {
	alpha := legalAlphabet()
	w := NewWFC()

	// Prime the ranker with repeated occurrences of one symbol so its
	// weight dominates, then confirm it ranks at position 0.
	for i := 0; i < 50; i++ {
		if _, err := w.Forward([]byte{alpha[10]}); err != nil {
			t.Fatal(err)
		}
	}

	if w.pos[alpha[10]] != 0 {
		t.Fatalf("expected frequently-seen symbol at rank 0, got rank %d", w.pos[alpha[10]])
	}
}

func TestDiscretizeProducesDescendingNonNegativeThenTerminator(t *testing.T) {
	if len(wfcUpdates) < 2 {
		t.Fatalf("expected a non-trivial sparse update table, got %d entries", len(wfcUpdates))
	}

	last := wfcUpdates[len(wfcUpdates)-1]
	if last.ageBoundary != wfcMaxTime {
		t.Fatalf("expected terminator at ageBoundary=%d, got %d", wfcMaxTime, last.ageBoundary)
	}

	// The running sum of the deltas before the terminator is the snapped
	// weight at each age boundary: it must descend and stay non-negative.
	var running int64
	for i, u := range wfcUpdates[:len(wfcUpdates)-1] {
		prev := running
		running += u.delta
		if running < 0 || (i > 0 && running >= prev) {
			t.Fatalf("entry %d: snapped weight %d after %d is not descending and non-negative", i, running, prev)
		}
	}

	var sum int64
	for _, u := range wfcUpdates {
		sum += u.delta
	}
	if sum != 0 {
		t.Fatalf("expected sparse update deltas to sum to 0 (full retraction at window edge), got %d", sum)
	}
}
