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

package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/refresh-bio/CoMSA/engine"
)

// Reader provides random-access and sequential reads over a compressed
// family container, grounded on the stockholm footer layout in
// SPEC_FULL.md §4.9.
type Reader struct {
	ra              io.ReaderAt
	logicalFileSize int64
	descriptors     []Descriptor
}

// Open parses the footer of a container occupying exactly [0, totalSize)
// of ra. A file shorter than the 8-byte footer size field, or whose footer
// size does not fit inside the file, is treated as zero families rather
// than a fatal error, per SPEC_FULL.md §7 (matching `Sl` on a truncated or
// non-archive file). A footer that is present but fails to parse, or a
// descriptor pointer outside the logical file, is an error.
func Open(ra io.ReaderAt, totalSize int64) (*Reader, error) {
	if totalSize < 8 {
		return &Reader{ra: ra, logicalFileSize: totalSize}, nil
	}

	var footerSizeField [8]byte
	if _, err := ra.ReadAt(footerSizeField[:], totalSize-8); err != nil {
		return &Reader{ra: ra, logicalFileSize: totalSize}, nil
	}
	footerSize := int64(binary.LittleEndian.Uint64(footerSizeField[:]))

	logicalFileSize := totalSize - footerSize - 8
	if footerSize < 0 || logicalFileSize < 0 {
		return &Reader{ra: ra, logicalFileSize: totalSize}, nil
	}

	footerBytes := make([]byte, footerSize)
	if footerSize > 0 {
		if _, err := ra.ReadAt(footerBytes, logicalFileSize); err != nil {
			return nil, fmt.Errorf("archive: reading footer (%d bytes at %d): %w", footerSize, logicalFileSize, err)
		}
	}

	descriptors, err := parseFooter(footerBytes)
	if err != nil {
		return nil, err
	}

	for _, d := range descriptors {
		if d.CompressedDataPtr < 0 || d.CompressedDataPtr >= logicalFileSize {
			return nil, fmt.Errorf("archive: family %q: compressed_data_ptr %d out of range [0,%d)", d.ID, d.CompressedDataPtr, logicalFileSize)
		}
	}

	return &Reader{ra: ra, logicalFileSize: logicalFileSize, descriptors: descriptors}, nil
}

func parseFooter(data []byte) ([]Descriptor, error) {
	r := bytes.NewReader(data)
	var out []Descriptor

	for r.Len() > 0 {
		nSeq, err := engine.ReadVarint(r)
		if err != nil {
			return nil, fmt.Errorf("archive: parsing footer record %d: %w", len(out), err)
		}
		nCols, err := engine.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		rawSize, err := engine.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		compSize, err := engine.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		ptr, err := engine.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		id, err := readCString(r)
		if err != nil {
			return nil, err
		}
		ac, err := readCString(r)
		if err != nil {
			return nil, err
		}

		out = append(out, Descriptor{
			NSequences:        int(nSeq),
			NColumns:          int(nCols),
			RawSize:           rawSize,
			CompressedSize:    compSize,
			CompressedDataPtr: int64(ptr),
			ID:                id,
			AC:                ac,
		})
	}

	return out, nil
}

func readCString(r *bytes.Reader) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("archive: unterminated string in footer: %w", err)
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

// List returns every family descriptor, in compression (and on-disk) order.
func (this *Reader) List() []Descriptor {
	return this.descriptors
}

// ReadFamilyAt decompresses the family record at the given
// compressed_data_ptr (as recorded in a Descriptor). opts, if provided,
// forwards a Listener/ID for progress notifications.
func (this *Reader) ReadFamilyAt(ptr int64, opts ...engine.Options) (rows [][]byte, metadata []byte, err error) {
	var sizeField [8]byte
	if _, err := this.ra.ReadAt(sizeField[:], ptr); err != nil {
		return nil, nil, fmt.Errorf("archive: reading record size at %d: %w", ptr, err)
	}
	size := int64(binary.LittleEndian.Uint64(sizeField[:]))

	if ptr+8+size > this.logicalFileSize {
		return nil, nil, fmt.Errorf("archive: record at %d (size %d) overruns logical file size %d", ptr, size, this.logicalFileSize)
	}

	blob := make([]byte, size)
	if _, err := this.ra.ReadAt(blob, ptr+8); err != nil {
		return nil, nil, fmt.Errorf("archive: reading record blob at %d: %w", ptr+8, err)
	}

	return engine.DecompressAlignment(bytes.NewReader(blob), opts...)
}

// FamilyRecord is one family fully decompressed alongside its descriptor.
type FamilyRecord struct {
	Descriptor Descriptor
	Rows       [][]byte
	Metadata   []byte
}

// ReadAll decompresses every family in on-disk order. opts, if provided,
// forwards a Listener for progress notifications (ID is overridden per
// family with its index).
func (this *Reader) ReadAll(opts ...engine.Options) ([]FamilyRecord, error) {
	var o engine.Options
	if len(opts) > 0 {
		o = opts[0]
	}

	out := make([]FamilyRecord, 0, len(this.descriptors))

	for i, d := range this.descriptors {
		o.ID = i
		rows, metadata, err := this.ReadFamilyAt(d.CompressedDataPtr, o)
		if err != nil {
			return nil, err
		}
		out = append(out, FamilyRecord{Descriptor: d, Rows: rows, Metadata: metadata})
	}

	return out, nil
}
