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

package ioutil

import "io"

// ByteStream is an in-memory, growable byte sink/source used to feed the
// range coder, grounded on CVectorIOStream: PutByte appends, GetByte
// consumes from the front in read order, and RestartRead rewinds the
// cursor so the same buffer can be written once and read many times (the
// entropy decoder reads it exactly once, but tests replay it).
type ByteStream struct {
	buf     []byte
	readPos int
}

// NewByteStream creates an empty stream, or wraps an existing buffer for
// reading if data is non-nil.
func NewByteStream(data []byte) *ByteStream {
	return &ByteStream{buf: data}
}

// WriteByte implements io.ByteWriter.
func (this *ByteStream) WriteByte(b byte) error {
	this.buf = append(this.buf, b)
	return nil
}

// ReadByte implements io.ByteReader.
func (this *ByteStream) ReadByte() (byte, error) {
	if this.readPos >= len(this.buf) {
		return 0, io.EOF
	}
	b := this.buf[this.readPos]
	this.readPos++
	return b, nil
}

// RestartRead rewinds the read cursor to the start of the buffer.
func (this *ByteStream) RestartRead() {
	this.readPos = 0
}

// Eof reports whether every byte has been consumed.
func (this *ByteStream) Eof() bool {
	return this.readPos >= len(this.buf)
}

// Bytes returns the underlying buffer.
func (this *ByteStream) Bytes() []byte {
	return this.buf
}

// Len returns the number of bytes written so far.
func (this *ByteStream) Len() int {
	return len(this.buf)
}
