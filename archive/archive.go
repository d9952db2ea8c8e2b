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

// Package archive implements the random-access, multi-family container
// used for Stockholm archives: a sequence of length-prefixed compressed
// blobs followed by a footer index, grounded on
// original_source/src/stockholm.cpp's CCompressedStockholmFile with the
// footer/index layout designed directly from the specification (the
// retrieved original predates that feature).
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	comsa "github.com/refresh-bio/CoMSA"
	"github.com/refresh-bio/CoMSA/engine"
)

// Descriptor is one family's footer entry.
type Descriptor struct {
	NSequences        int
	NColumns          int
	RawSize           uint64
	CompressedSize    uint64
	CompressedDataPtr int64
	ID                string
	AC                string
}

// Writer appends compressed family records to an underlying io.Writer and
// produces the trailing footer index on Close.
type Writer struct {
	w           io.Writer
	offset      int64
	descriptors []Descriptor
}

// NewWriter wraps w, whose current position must be the start of the
// container (offset 0).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFamily compresses one family's alignment and metadata, appends
// its [size:8][blob] record, and records its footer descriptor.
func (this *Writer) WriteFamily(rows [][]byte, metadata []byte, opts engine.Options, id, ac string) error {
	opts.ID = len(this.descriptors)

	var blob bytes.Buffer
	if err := engine.CompressAlignment(&blob, rows, metadata, opts); err != nil {
		return fmt.Errorf("archive: compressing family %q: %w", id, err)
	}

	if opts.Listener != nil {
		opts.Listener.ProcessEvent(comsa.NewEvent(comsa.EvtFamilyDone, opts.ID, int64(blob.Len()), time.Time{}))
	}

	rawSize := uint64(0)
	if len(rows) > 0 {
		rawSize = uint64(len(rows)) * uint64(len(rows[0]))
	}

	ptr := this.offset

	var sizeField [8]byte
	binary.LittleEndian.PutUint64(sizeField[:], uint64(blob.Len()))
	if _, err := this.w.Write(sizeField[:]); err != nil {
		return fmt.Errorf("archive: writing family %q size: %w", id, err)
	}
	if _, err := this.w.Write(blob.Bytes()); err != nil {
		return fmt.Errorf("archive: writing family %q blob: %w", id, err)
	}
	this.offset += int64(len(sizeField)) + int64(blob.Len())

	this.descriptors = append(this.descriptors, Descriptor{
		NSequences:        len(rows),
		NColumns:          columnCount(rows),
		RawSize:           rawSize,
		CompressedSize:    uint64(blob.Len()),
		CompressedDataPtr: ptr,
		ID:                id,
		AC:                ac,
	})

	return nil
}

// Descriptors returns the footer descriptors accumulated so far, in
// compression order (used for CLI progress reporting before Close).
func (this *Writer) Descriptors() []Descriptor {
	return this.descriptors
}

func columnCount(rows [][]byte) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// Close writes the footer index (one record per family, in compression
// order) followed by its 8-byte trailing length.
func (this *Writer) Close() error {
	var footer bytes.Buffer

	for _, d := range this.descriptors {
		if err := engine.WriteVarint(&footer, uint64(d.NSequences)); err != nil {
			return err
		}
		if err := engine.WriteVarint(&footer, uint64(d.NColumns)); err != nil {
			return err
		}
		if err := engine.WriteVarint(&footer, d.RawSize); err != nil {
			return err
		}
		if err := engine.WriteVarint(&footer, d.CompressedSize); err != nil {
			return err
		}
		if err := engine.WriteVarint(&footer, uint64(d.CompressedDataPtr)); err != nil {
			return err
		}
		footer.WriteString(d.ID)
		footer.WriteByte(0)
		footer.WriteString(d.AC)
		footer.WriteByte(0)
	}

	if _, err := this.w.Write(footer.Bytes()); err != nil {
		return fmt.Errorf("archive: writing footer: %w", err)
	}

	var footerSize [8]byte
	binary.LittleEndian.PutUint64(footerSize[:], uint64(footer.Len()))
	if _, err := this.w.Write(footerSize[:]); err != nil {
		return fmt.Errorf("archive: writing footer size: %w", err)
	}

	return nil
}
