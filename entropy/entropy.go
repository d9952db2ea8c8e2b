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

package entropy

import (
	"fmt"
	"math/bits"

	"github.com/refresh-bio/CoMSA/rangecoder"
)

// Every RLE-0 output byte falls into one of four prefix classes: the two
// zero-run code bits, the literal value 1 and "everything else" (2..127,
// coded as a power-of-two selector plus a suffix of the remaining bits).
const (
	prefixBit0 = 0
	prefixBit1 = 1
	prefixOne  = 2
	prefixOther = 3
)

const (
	prefixSymbols   = 4
	selectorSymbols = 6
	// Largest suffix alphabet (trueSelector 6, 1<<6 = 64); each suffix
	// model is sized 1<<trueSelector for the one selector it serves.
	maxSuffixSymbols = 64
)

// classify maps a post-RLE byte to (prefix, trueSelector, suffix).
// trueSelector and suffix are only meaningful when prefix == prefixOther.
func classify(x byte) (prefix int, trueSelector int, suffix int) {
	switch x {
	case 125:
		return prefixBit0, 0, 0
	case 126:
		return prefixBit1, 0, 0
	case 1:
		return prefixOne, 0, 0
	default:
		ts := bits.Len8(x) - 1
		return prefixOther, ts, int(x) - (1 << uint(ts))
	}
}

// unclassify is the inverse of classify for the prefixOther case.
func unclassify(trueSelector, suffix int) byte {
	return byte((1 << uint(trueSelector)) + suffix)
}

// Coder holds the rolling contexts and model banks shared by Encoder and
// Decoder, grounded on CEntropy's prefix/selector/suffix model bank layout.
type coder struct {
	noPrefixCtx   int
	noSelectorCtx int
	noSuffixCtx   int

	prefixCtx   int
	selectorCtx int

	prefixModels   []*rangecoder.Model
	selectorModels []*rangecoder.Model
	// suffixModels[ctx][trueSelector-1] is sized 1<<trueSelector, for
	// trueSelector 1..6; value 1 (trueSelector 0) never reaches a suffix
	// model since prefixOne short-circuits it.
	suffixModels [][6]*rangecoder.Model
}

func newCoder(class Class) (*coder, error) {
	noPrefixCtx, noSelectorCtx, noSuffixCtx := class.Params()

	c := &coder{
		noPrefixCtx:   noPrefixCtx,
		noSelectorCtx: noSelectorCtx,
		noSuffixCtx:   noSuffixCtx,
	}

	// Prefix and selector models: lgTotal=8, rescale=1<<8. Suffix models:
	// lgTotal=10, rescale=1<<10.
	c.prefixModels = make([]*rangecoder.Model, noPrefixCtx)
	for i := range c.prefixModels {
		m, err := rangecoder.NewModel(prefixSymbols, 8, 1<<8)
		if err != nil {
			return nil, err
		}
		c.prefixModels[i] = m
	}

	c.selectorModels = make([]*rangecoder.Model, noSelectorCtx)
	for i := range c.selectorModels {
		m, err := rangecoder.NewModel(selectorSymbols, 8, 1<<8)
		if err != nil {
			return nil, err
		}
		c.selectorModels[i] = m
	}

	c.suffixModels = make([][6]*rangecoder.Model, noSuffixCtx)
	for i := range c.suffixModels {
		for ts := 1; ts <= 6; ts++ {
			m, err := rangecoder.NewModel(1<<uint(ts), 10, 1<<10)
			if err != nil {
				return nil, err
			}
			c.suffixModels[i][ts-1] = m
		}
	}

	return c, nil
}

func (c *coder) updatePrefixCtx(prefix int) {
	c.prefixCtx = (c.prefixCtx*5 + prefix) % c.noPrefixCtx
}

func (c *coder) updateSelectorCtx(emittedSelector int) {
	c.selectorCtx = ((c.selectorCtx << 3) + emittedSelector) % c.noSelectorCtx
}

func (c *coder) suffixCtxIndex() int {
	return c.selectorCtx % c.noSuffixCtx
}

// Encoder range-encodes a post-RLE-0 byte stream using the context-mixing
// prefix/selector/suffix model bank, grounded on CEntropy::code_byte.
type Encoder struct {
	*coder
	rc *rangecoder.Encoder
}

// NewEncoder wraps dst with a range coder sized for class.
func NewEncoder(dst interface {
	WriteByte(byte) error
}, class Class) (*Encoder, error) {
	c, err := newCoder(class)
	if err != nil {
		return nil, err
	}
	rc, err := rangecoder.NewEncoder(dst)
	if err != nil {
		return nil, err
	}
	return &Encoder{coder: c, rc: rc}, nil
}

// EncodeByte encodes a single post-RLE-0 byte and advances the contexts.
func (e *Encoder) EncodeByte(x byte) error {
	prefix, trueSelector, suffix := classify(x)

	pm := e.prefixModels[e.prefixCtx]
	cumFreq, freq := pm.CumFreq(prefix)
	if err := e.rc.EncodeFreq(cumFreq, freq, pm.Total()); err != nil {
		return err
	}
	pm.Update(prefix)
	e.updatePrefixCtx(prefix)

	if prefix != prefixOther {
		return nil
	}

	emittedSelector := trueSelector - 1
	sm := e.selectorModels[e.selectorCtx]
	cumFreq, freq = sm.CumFreq(emittedSelector)
	if err := e.rc.EncodeFreq(cumFreq, freq, sm.Total()); err != nil {
		return err
	}
	sm.Update(emittedSelector)

	fm := e.suffixModels[e.suffixCtxIndex()][trueSelector-1]
	cumFreq, freq = fm.CumFreq(suffix)
	if err := e.rc.EncodeFreq(cumFreq, freq, fm.Total()); err != nil {
		return err
	}
	fm.Update(suffix)

	e.updateSelectorCtx(emittedSelector)

	return nil
}

// Encode encodes every byte of data in order.
func (e *Encoder) Encode(data []byte) error {
	for _, b := range data {
		if err := e.EncodeByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Dispose flushes the underlying range coder. Callers must call Dispose
// exactly once after the last EncodeByte/Encode call.
func (e *Encoder) Dispose() error {
	return e.rc.Dispose()
}

// Decoder is the mirror of Encoder.
type Decoder struct {
	*coder
	rc *rangecoder.Decoder
}

// NewDecoder wraps src with a range decoder sized for class.
func NewDecoder(src interface {
	ReadByte() (byte, error)
}, class Class) (*Decoder, error) {
	c, err := newCoder(class)
	if err != nil {
		return nil, err
	}
	rc, err := rangecoder.NewDecoder(src)
	if err != nil {
		return nil, err
	}
	return &Decoder{coder: c, rc: rc}, nil
}

// DecodeByte decodes a single post-RLE-0 byte and advances the contexts.
func (d *Decoder) DecodeByte() (byte, error) {
	pm := d.prefixModels[d.prefixCtx]
	f := d.rc.GetFreq(pm.Total())
	prefix, cumFreq, freq := pm.SymbolAt(f)
	if err := d.rc.DecodeFreq(cumFreq, freq); err != nil {
		return 0, err
	}
	pm.Update(prefix)
	d.updatePrefixCtx(prefix)

	switch prefix {
	case prefixBit0:
		return 125, nil
	case prefixBit1:
		return 126, nil
	case prefixOne:
		return 1, nil
	}

	sm := d.selectorModels[d.selectorCtx]
	f = d.rc.GetFreq(sm.Total())
	emittedSelector, cumFreq, freq := sm.SymbolAt(f)
	if err := d.rc.DecodeFreq(cumFreq, freq); err != nil {
		return 0, err
	}
	sm.Update(emittedSelector)
	trueSelector := emittedSelector + 1

	fm := d.suffixModels[d.suffixCtxIndex()][trueSelector-1]
	f = d.rc.GetFreq(fm.Total())
	suffix, cumFreq, freq := fm.SymbolAt(f)
	if err := d.rc.DecodeFreq(cumFreq, freq); err != nil {
		return 0, err
	}
	fm.Update(suffix)

	d.updateSelectorCtx(emittedSelector)

	return unclassify(trueSelector, suffix), nil
}

// Decode decodes exactly n bytes.
func (d *Decoder) Decode(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		b, err := d.DecodeByte()
		if err != nil {
			return nil, fmt.Errorf("entropy: decoding byte %d of %d: %w", i, n, err)
		}
		out[i] = b
	}
	return out, nil
}

// Dispose releases the underlying range decoder.
func (d *Decoder) Dispose() error {
	return d.rc.Dispose()
}
