package entropy

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/refresh-bio/CoMSA/ioutil"
)

func randomRLEByte(r *rand.Rand) byte {
	// Uniform over the legal post-RLE-0 alphabet: the two code bits, the
	// literal value 1, and the "other" range 2..127 (127 being the stream
	// sentinel, still valid as ordinary data mid-stream).
	switch r.Intn(4) {
	case 0:
		return 125
	case 1:
		return 126
	case 2:
		return 1
	default:
		return byte(2 + r.Intn(126))
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, class := range []Class{Tiny, Small, Medium, Large, Huge} {
		class := class
		t.Run(class.String(), func(t *testing.T) {
			r := rand.New(rand.NewSource(int64(class) + 1))

			data := make([]byte, 2000)
			for i := range data {
				data[i] = randomRLEByte(r)
			}

			stream := ioutil.NewByteStream(nil)

			enc, err := NewEncoder(stream, class)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.Encode(data); err != nil {
				t.Fatal(err)
			}
			if err := enc.Dispose(); err != nil {
				t.Fatal(err)
			}

			stream.RestartRead()
			dec, err := NewDecoder(stream, class)
			if err != nil {
				t.Fatal(err)
			}
			out, err := dec.Decode(len(data))
			if err != nil {
				t.Fatal(err)
			}
			if err := dec.Dispose(); err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(out, data) {
				t.Fatalf("round trip mismatch for class %v", class)
			}
		})
	}
}

func TestClassifyUnclassifyInvolution(t *testing.T) {
	for x := 2; x <= 255; x++ {
		if x == 125 || x == 126 {
			continue
		}
		prefix, ts, suffix := classify(byte(x))
		if prefix != prefixOther {
			if x == 1 {
				continue
			}
			t.Fatalf("value %d unexpectedly classified as prefix %d", x, prefix)
		}
		if got := unclassify(ts, suffix); got != byte(x) {
			t.Fatalf("unclassify(%d, %d) = %d, want %d", ts, suffix, got, x)
		}
	}
}
