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

package rangecoder

import "fmt"

// Model is an adaptive cumulative-frequency symbol model, grounded on
// CSimpleModel: every symbol starts at weight 1, Update increments the
// observed symbol's count, and counts are halved (rounded up, floor 1) once
// the running total reaches rescale.
type Model struct {
	freq    []uint32
	total   uint32
	rescale uint32
}

// NewModel creates a model over n symbols with cumulative totals capped at
// 2^lgTotal and rescaled once the running total reaches rescale.
func NewModel(n int, lgTotal uint, rescale uint32) (*Model, error) {
	if n <= 0 {
		return nil, fmt.Errorf("rangecoder: invalid symbol count %d", n)
	}

	if rescale == 0 || uint64(rescale) > uint64(1)<<lgTotal {
		return nil, fmt.Errorf("rangecoder: invalid rescale %d for lgTotal %d", rescale, lgTotal)
	}

	m := &Model{freq: make([]uint32, n), rescale: rescale}

	for i := range m.freq {
		m.freq[i] = 1
	}
	m.total = uint32(n)

	return m, nil
}

// Total returns the current cumulative total across all symbols.
func (this *Model) Total() uint32 {
	return this.total
}

// CumFreq returns the cumulative frequency of all symbols below sym, plus
// sym's own frequency, via the out parameters (cumFreq, freq).
func (this *Model) CumFreq(sym int) (cumFreq, freq uint32) {
	var c uint32

	for i := 0; i < sym; i++ {
		c += this.freq[i]
	}

	return c, this.freq[sym]
}

// SymbolAt resolves a decoder's frequency query f (0 <= f < Total()) to a
// symbol index and its (cumFreq, freq) pair.
func (this *Model) SymbolAt(f uint32) (sym int, cumFreq, freq uint32) {
	var c uint32

	for i, fr := range this.freq {
		if f < c+fr {
			return i, c, fr
		}
		c += fr
	}

	last := len(this.freq) - 1
	return last, c - this.freq[last], this.freq[last]
}

// Update increments the observed symbol's count and rescales if the running
// total has reached the configured threshold.
func (this *Model) Update(sym int) {
	this.freq[sym]++
	this.total++

	if this.total >= this.rescale {
		this.total = 0
		for i, f := range this.freq {
			nf := (f + 1) / 2
			if nf == 0 {
				nf = 1
			}
			this.freq[i] = nf
			this.total += nf
		}
	}
}
