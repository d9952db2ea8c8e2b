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

// Package rangecoder implements a carry-less, byte-output range coder with
// an adaptive cumulative-frequency symbol model, in the style of the
// teacher's entropy.RangeEncoder/RangeDecoder but driving a plain byte sink
// instead of a bitstream, and exposing the model as a reusable type since
// the entropy package instantiates many of them (one per context).
package rangecoder

import (
	"errors"
	"fmt"
	"io"
)

const (
	topRange    = uint64(0x0FFFFFFFFFFFFFFF)
	bottomRange = uint64(0x000000000000FFFF)
	topMask     = uint64(0xFF00000000000000)
	carryLimit  = uint64(0x0001000000000000)
)

// Encoder is a carry-less range encoder writing to an io.ByteWriter.
type Encoder struct {
	low      uint64
	rng      uint64
	dst      io.ByteWriter
	disposed bool
}

// NewEncoder creates a range encoder writing to dst.
func NewEncoder(dst io.ByteWriter) (*Encoder, error) {
	if dst == nil {
		return nil, errors.New("rangecoder: nil destination")
	}

	return &Encoder{low: 0, rng: topRange, dst: dst}, nil
}

// EncodeFreq encodes a symbol given its cumulative frequency range
// [cumFreq, cumFreq+freq) out of total.
func (this *Encoder) EncodeFreq(cumFreq, freq, total uint32) error {
	if this.disposed {
		return errors.New("rangecoder: encoder disposed")
	}

	if freq == 0 || total == 0 {
		return fmt.Errorf("rangecoder: invalid frequency (freq=%d, total=%d)", freq, total)
	}

	r := this.rng / uint64(total)
	this.low += r * uint64(cumFreq)
	this.rng = r * uint64(freq)

	for this.rng < bottomRange {
		if err := this.shiftOut(); err != nil {
			return err
		}
	}

	return nil
}

func (this *Encoder) shiftOut() error {
	if (this.low^(this.low+this.rng))&topMask != 0 && this.rng < carryLimit {
		this.rng = (-this.low) & (carryLimit - 1)
	}

	if err := this.dst.WriteByte(byte(this.low >> 56)); err != nil {
		return err
	}

	this.low <<= 8
	this.rng <<= 8
	return nil
}

// Dispose flushes the remaining state bytes. Must be called exactly once,
// after the last EncodeFreq call.
func (this *Encoder) Dispose() error {
	if this.disposed {
		return nil
	}
	this.disposed = true

	for i := 0; i < 8; i++ {
		if err := this.dst.WriteByte(byte(this.low >> 56)); err != nil {
			return err
		}
		this.low <<= 8
	}

	return nil
}

// Decoder is the mirror of Encoder, reading from an io.ByteReader.
type Decoder struct {
	low  uint64
	rng  uint64
	code uint64
	step uint64
	src  io.ByteReader
}

// NewDecoder creates a range decoder reading from src.
func NewDecoder(src io.ByteReader) (*Decoder, error) {
	if src == nil {
		return nil, errors.New("rangecoder: nil source")
	}

	d := &Decoder{rng: topRange, src: src}

	for i := 0; i < 8; i++ {
		b, err := src.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("rangecoder: short header: %w", err)
		}
		d.code = (d.code << 8) | uint64(b)
	}

	return d, nil
}

// GetFreq returns the scaled cumulative-frequency query for the current
// symbol. Callers resolve it against a model's cumulative table to find the
// symbol, then call DecodeFreq with that symbol's range.
func (this *Decoder) GetFreq(total uint32) uint32 {
	this.step = this.rng / uint64(total)
	v := (this.code - this.low) / this.step

	if uint64(v) >= uint64(total) {
		v = uint64(total) - 1
	}

	return uint32(v)
}

// DecodeFreq consumes the symbol once its cumulative range [cumFreq,
// cumFreq+freq) has been looked up by the caller via GetFreq.
func (this *Decoder) DecodeFreq(cumFreq, freq uint32) error {
	this.low += this.step * uint64(cumFreq)
	this.rng = this.step * uint64(freq)

	for this.rng < bottomRange {
		if err := this.shiftIn(); err != nil {
			return err
		}
	}

	return nil
}

func (this *Decoder) shiftIn() error {
	if (this.low^(this.low+this.rng))&topMask != 0 && this.rng < carryLimit {
		this.rng = (-this.low) & (carryLimit - 1)
	}

	b, err := this.src.ReadByte()
	if err != nil {
		b = 0
	}

	this.code = (this.code << 8) | uint64(b)
	this.low <<= 8
	this.rng <<= 8
	return nil
}

// Dispose is a no-op retained for symmetry with Encoder.
func (this *Decoder) Dispose() error {
	return nil
}
