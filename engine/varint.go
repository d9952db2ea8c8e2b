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

package engine

import (
	"fmt"
	"io"
)

// WriteVarint writes v as a 1-byte length prefix (0-8) followed by that
// many little-endian value bytes; 0 is encoded as a bare zero-length
// prefix, grounded on store_uint in the original archive format.
func WriteVarint(w io.Writer, v uint64) error {
	if v == 0 {
		_, err := w.Write([]byte{0})
		return err
	}

	var buf [8]byte
	n := 0
	for t := v; t != 0; t >>= 8 {
		buf[n] = byte(t)
		n++
	}

	if _, err := w.Write([]byte{byte(n)}); err != nil {
		return err
	}
	_, err := w.Write(buf[:n])
	return err
}

// ReadVarint is the mirror of WriteVarint.
func ReadVarint(r io.Reader) (uint64, error) {
	var lenBuf [1]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, fmt.Errorf("engine: reading varint length prefix: %w", err)
	}

	n := int(lenBuf[0])
	if n == 0 {
		return 0, nil
	}
	if n > 8 {
		return 0, fmt.Errorf("engine: invalid varint length prefix %d", n)
	}

	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return 0, fmt.Errorf("engine: reading %d varint value bytes: %w", n, err)
	}

	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = (v << 8) | uint64(buf[i])
	}
	return v, nil
}
