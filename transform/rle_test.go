package transform

import (
	"bytes"
	"math/bits"
	"math/rand"
	"testing"
)

func legalRLEByte(r *rand.Rand) byte {
	for {
		b := byte(r.Intn(256))
		if b != rleBit0 && b != rleBit1 {
			return b
		}
	}
}

func TestRLEBijection(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for trial := 0; trial < 200; trial++ {
		n := r.Intn(200)
		s := make([]byte, n)
		for i := range s {
			s[i] = legalRLEByte(r)
		}

		enc := RLEForward(s)
		dec, err := RLEInverse(enc)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		if !bytes.Equal(dec, s) {
			t.Fatalf("trial %d: round-trip mismatch: got %v, want %v", trial, dec, s)
		}
	}
}

func TestRLERunLengthEncodesToExpectedSentinelCount(t *testing.T) {
	for n := 1; n <= 20000; n *= 3 {
		run := make([]byte, n)
		enc := RLEForward(run)

		// the last byte of the encoding is the trailing sentinel 127; strip
		// it before measuring the run's own code length, which must be
		// floor(log2(n+1)) code bytes.
		if enc[len(enc)-1] != rleSentinel {
			t.Fatalf("n=%d: encoding does not end with the sentinel", n)
		}
		if want := bits.Len(uint(n+1)) - 1; len(enc)-1 != want {
			t.Fatalf("n=%d: run encoded to %d code bytes, want %d", n, len(enc)-1, want)
		}
		for _, b := range enc[:len(enc)-1] {
			if b != rleBit0 && b != rleBit1 {
				t.Fatalf("n=%d: unexpected byte %d in run code", n, b)
			}
		}

		full, err := RLEInverse(enc)
		if err != nil {
			t.Fatal(err)
		}
		if len(full) != n {
			t.Fatalf("n=%d: decoded length %d", n, len(full))
		}
		for _, b := range full {
			if b != 0 {
				t.Fatalf("n=%d: expected all zeros, got %d", n, b)
			}
		}
	}
}

func TestRLEPassesThroughNonZero(t *testing.T) {
	s := []byte{1, 2, 3, 124, 255}
	enc := RLEForward(s)
	dec, err := RLEInverse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec, s) {
		t.Fatalf("got %v, want %v", dec, s)
	}
}
