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

// Package engine orchestrates one alignment's full compression pipeline:
// classification, the concurrent metadata/sequence split, T -> P -> S -> R
// -> E over the sequence matrix, and the length-prefixed blob layout that
// ties the two halves back together. Grounded on msa.cpp's per-alignment
// driver (CMSACompress) and, for the concurrency shape, the teacher's
// encodingTask/wg join pattern in io/CompressedStream.go.
package engine

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	comsa "github.com/refresh-bio/CoMSA"
	"github.com/refresh-bio/CoMSA/entropy"
	"github.com/refresh-bio/CoMSA/lzmawrap"
)

// fastFlagBit marks bit 6 of the class byte: set when the second stage used
// MTF-1 instead of WFC.
const fastFlagBit = 1 << 6

// Options configures one alignment's compression.
type Options struct {
	// Fast selects MTF-1 over WFC for the second stage.
	Fast bool
	// MetadataPreset selects the LZMA/XZ preset used for the metadata
	// side channel (FASTA vs Stockholm use different presets).
	MetadataPreset lzmawrap.Preset
	// ID identifies the alignment/family for progress events; 0 if unused.
	ID int
	// Listener, when non-nil, receives pipeline progress notifications
	// (comsa.Evt*), mirroring the teacher's Listener/Event mechanism.
	Listener comsa.Listener
}

func notify(l comsa.Listener, evtType, id int, size int64) {
	if l == nil {
		return
	}
	l.ProcessEvent(comsa.NewEvent(evtType, id, size, time.Time{}))
}

// CompressAlignment writes one alignment's compressed blob to w: class byte,
// varint-framed dimensions and lengths, LZMA-compressed metadata, then the
// entropy-coded sequence pipeline output.
func CompressAlignment(w io.Writer, rows [][]byte, metadata []byte, opts Options) error {
	n := len(rows)
	l := 0
	if n > 0 {
		l = len(rows[0])
	}

	notify(opts.Listener, comsa.EvtCompressionStart, opts.ID, int64(n)*int64(l))

	class := entropy.ClassifyInputSize(n, l)

	var textBytes, rleBytes []byte

	var g errgroup.Group

	g.Go(func() error {
		out, err := lzmawrap.Compress(metadata, opts.MetadataPreset)
		if err != nil {
			return fmt.Errorf("engine: compressing metadata: %w", err)
		}
		textBytes = out
		return nil
	})

	g.Go(func() error {
		if n == 0 || l == 0 {
			return nil
		}
		notify(opts.Listener, comsa.EvtBeforeTransform, opts.ID, int64(n)*int64(l))
		out, err := encodeSequence(rows, opts.Fast)
		if err != nil {
			return err
		}
		rleBytes = out
		notify(opts.Listener, comsa.EvtAfterTransform, opts.ID, int64(len(out)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	var seqBytes bytes.Buffer
	p := 0
	if n > 0 && l > 0 {
		notify(opts.Listener, comsa.EvtBeforeEntropy, opts.ID, int64(len(rleBytes)))
		enc, err := entropy.NewEncoder(&seqBytes, class)
		if err != nil {
			return err
		}
		if err := enc.Encode(rleBytes); err != nil {
			return err
		}
		if err := enc.Dispose(); err != nil {
			return err
		}
		p = len(rleBytes)
		notify(opts.Listener, comsa.EvtAfterEntropy, opts.ID, int64(seqBytes.Len()))
	}

	classByte := byte(class) & 0x07
	if opts.Fast {
		classByte |= fastFlagBit
	}

	if _, err := w.Write([]byte{classByte}); err != nil {
		return err
	}
	for _, v := range []uint64{uint64(n), uint64(l), uint64(len(textBytes)), uint64(seqBytes.Len()), uint64(p)} {
		if err := WriteVarint(w, v); err != nil {
			return err
		}
	}
	if _, err := w.Write(textBytes); err != nil {
		return err
	}
	if _, err := w.Write(seqBytes.Bytes()); err != nil {
		return err
	}

	notify(opts.Listener, comsa.EvtCompressionEnd, opts.ID, int64(len(textBytes)+seqBytes.Len()))

	return nil
}

// DecompressAlignment is the mirror of CompressAlignment. opts.Listener, if
// set, receives EvtDecompressionStart and EvtDecompressionEnd notifications
// tagged with opts.ID.
func DecompressAlignment(r io.Reader, opts ...Options) (rows [][]byte, metadata []byte, err error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	notify(o.Listener, comsa.EvtDecompressionStart, o.ID, 0)

	var classByte [1]byte
	if _, err := io.ReadFull(r, classByte[:]); err != nil {
		return nil, nil, fmt.Errorf("engine: reading class byte: %w", err)
	}

	class := entropy.Class(classByte[0] & 0x07)
	fast := classByte[0]&fastFlagBit != 0

	n64, err := ReadVarint(r)
	if err != nil {
		return nil, nil, err
	}
	l64, err := ReadVarint(r)
	if err != nil {
		return nil, nil, err
	}
	textLen, err := ReadVarint(r)
	if err != nil {
		return nil, nil, err
	}
	seqLen, err := ReadVarint(r)
	if err != nil {
		return nil, nil, err
	}
	p64, err := ReadVarint(r)
	if err != nil {
		return nil, nil, err
	}

	n, l, p := int(n64), int(l64), int(p64)

	textBytes := make([]byte, textLen)
	if _, err := io.ReadFull(r, textBytes); err != nil {
		return nil, nil, fmt.Errorf("engine: reading metadata bytes: %w", err)
	}
	seqBytes := make([]byte, seqLen)
	if _, err := io.ReadFull(r, seqBytes); err != nil {
		return nil, nil, fmt.Errorf("engine: reading sequence bytes: %w", err)
	}

	metadata, err = lzmawrap.Decompress(textBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: decompressing metadata: %w", err)
	}

	if n == 0 || l == 0 {
		notify(o.Listener, comsa.EvtDecompressionEnd, o.ID, 0)
		return make([][]byte, n), metadata, nil
	}

	dec, err := entropy.NewDecoder(bytes.NewReader(seqBytes), class)
	if err != nil {
		return nil, nil, err
	}
	rleBytes, err := dec.Decode(p)
	if err != nil {
		return nil, nil, err
	}
	if err := dec.Dispose(); err != nil {
		return nil, nil, err
	}

	rows, err = decodeSequence(rleBytes, n, l, fast)
	if err != nil {
		return nil, nil, err
	}

	notify(o.Listener, comsa.EvtDecompressionEnd, o.ID, int64(n)*int64(l))

	return rows, metadata, nil
}
