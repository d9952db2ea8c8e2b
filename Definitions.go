/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package comsa defines the top level interfaces shared by the MSA
// compression pipeline stages.
//
// Implementations live in sub-packages: queue, rangecoder, ioutil, lzmawrap,
// transform, entropy, engine, archive and format.
package comsa

const (
	ErrMissingParam    = 1
	ErrInvalidParam    = 2
	ErrRowLengthMismatch = 3
	ErrOpenFile        = 4
	ErrReadFile        = 5
	ErrWriteFile       = 6
	ErrCreateFile      = 7
	ErrOutputIsDir     = 8
	ErrOverwriteFile   = 9
	ErrInvalidFile     = 10
	ErrProcessAlignment = 11
	ErrLZMA            = 12
	ErrArchiveFooter   = 13
	ErrDecodedOverflow = 14
	ErrUnknown         = 127
)

// ByteTransform converts one byte slice into another, in-place semantics not
// guaranteed. Implementations must be safe to reuse across alignments only
// through a fresh instance per alignment; no state survives construction.
type ByteTransform interface {
	// Forward applies the function to src and writes the result to dst.
	// Returns number of bytes read, number of bytes written and an error.
	Forward(src, dst []byte) (uint, uint, error)

	// Inverse applies the reverse function to src and writes the result to
	// dst. Returns number of bytes read, number of bytes written and an
	// error.
	Inverse(src, dst []byte) (uint, uint, error)
}

// ColumnTransform operates on one column (one byte per row) at a time,
// possibly carrying state across successive columns of the same alignment.
// PBWT and the second-stage rankers (MTF-1, WFC) implement this; Transpose
// and RLE-0 are plain functions over a whole alignment.
type ColumnTransform interface {
	// Forward transforms one input column into zero or more output bytes.
	Forward(col []byte) ([]byte, error)

	// Inverse is the mirror of Forward.
	Inverse(col []byte) ([]byte, error)
}

// EntropyEncoder entropy encodes a byte stream.
type EntropyEncoder interface {
	// Write encodes the bytes provided. Returns the number of bytes consumed.
	Write(block []byte) (int, error)

	// Dispose must be called before discarding the encoder; it flushes any
	// pending state. Encoding after Dispose is undefined.
	Dispose() error
}

// EntropyDecoder entropy decodes a byte stream.
type EntropyDecoder interface {
	// Read decodes into the provided buffer. Returns the number of bytes
	// produced.
	Read(block []byte) (int, error)

	// Dispose must be called before discarding the decoder.
	Dispose() error
}
