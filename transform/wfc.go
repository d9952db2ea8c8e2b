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

package transform

import "math"

// WFC parameters, resolved from CWFCCore's func_id=9 constructor
// instantiation: max_time=16384 (4096*4), p=4.0. The func_id=5 "Deo w5"
// variant (p=0.5, q=-1.25) exists in the original source but is never
// instantiated and is not carried forward.
const (
	wfcMaxTime = 16384
	wfcP       = 4.0
	// wfcScale lifts decay(k) (at most 0.25) into integer range before
	// power-of-two snapping, so every age in the window keeps a non-zero
	// weight.
	wfcScale = 1 << 24
)

// decay approximates 1/(p*k*ramp(k)), ramp stepping at the age boundaries
// CWFCCore::init_deo uses.
func decay(k int) float64 {
	x := float64(k)
	div := wfcP * x

	mul := func(threshold int, factor float64) {
		if k >= threshold {
			div *= factor
		}
	}

	mul(4, 1.4)
	mul(8, 1.1)
	mul(16, 1.1)
	mul(32, 1.1)
	mul(64, 1.1)
	mul(1024, 1.1)
	mul(2048, 1.1)
	mul(4096, 4.0)
	mul(16384, 4.0)

	return 1.0 / div
}

func roundPow2(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	lg := math.Log2(v)
	return uint32(math.Round(math.Exp2(math.Round(lg))))
}

// wfcUpdate is one entry of the sparse discretized decay table: when a
// symbol reaches age ageBoundary in the history window, its weight changes
// by delta (signed, since entries leaving the window must also retract
// their earlier contribution).
type wfcUpdate struct {
	ageBoundary int
	delta       int64
}

// discretize snaps the continuous decay(k) curve, scaled by wfcScale, to
// power-of-two steps and collapses runs of equal snapped value into a single
// (ageBoundary, delta) entry, grounded on CWFCCore::disretize. A final terminator entry whose
// delta is the negative sum of all previous deltas retracts a symbol's full
// contribution once it exits the max_time window.
func discretize() []wfcUpdate {
	var updates []wfcUpdate
	var prevSnapped uint32
	var sumDelta int64

	for k := 1; k <= wfcMaxTime; k++ {
		snapped := roundPow2(wfcScale * decay(k))
		if snapped != prevSnapped {
			d := int64(snapped) - int64(prevSnapped)
			updates = append(updates, wfcUpdate{ageBoundary: k, delta: d})
			sumDelta += d
			prevSnapped = snapped
		}
	}

	updates = append(updates, wfcUpdate{ageBoundary: wfcMaxTime, delta: -sumDelta})
	return updates
}

var wfcUpdates = discretize()

// WFC is the weighted-frequency-count second-stage ranker, grounded on
// CWFCCore::Insert/move_up/move_down. Each list entry tracks a weight;
// inserting a symbol applies the sparse decay update table against a
// circular history of the last wfcMaxTime symbols, then bubbles the symbol
// to its sorted position by adjacent swaps.
type WFC struct {
	list    [AlphabetSize]byte
	pos     [AlphabetSize]int
	weight  [AlphabetSize]int64
	history [wfcMaxTime]byte
	histLen int
	histPos int
	age     int
}

// NewWFC creates a WFC ranker.
func NewWFC() *WFC {
	w := &WFC{}
	w.ResetColumn()
	return w
}

// ResetColumn restores the initial legal-symbol ordering and clears all
// weights and history, as required before each column.
func (this *WFC) ResetColumn() {
	this.list = legalAlphabet()
	for i, b := range this.list {
		this.pos[b] = i
		this.weight[b] = 0
	}
	this.histLen = 0
	this.histPos = 0
	this.age = 0
}

func (this *WFC) pushHistory(x byte) {
	if this.histLen < wfcMaxTime {
		this.history[this.histPos] = x
		this.histLen++
	} else {
		this.history[this.histPos] = x
	}
	this.histPos = (this.histPos + 1) % wfcMaxTime
	this.age++
}

func (this *WFC) historyAt(stepsAgo int) (byte, bool) {
	if stepsAgo >= this.histLen {
		return 0, false
	}
	idx := (this.histPos - 1 - stepsAgo + wfcMaxTime) % wfcMaxTime
	return this.history[idx], true
}

// insert applies the decay update table against the history window for the
// newly observed symbol x, then records x in the history.
func (this *WFC) insert(x byte) {
	for _, u := range wfcUpdates {
		sym, ok := this.historyAt(u.ageBoundary - 1)
		if !ok {
			break
		}
		this.weight[sym] += u.delta
	}

	this.weight[x] += int64(roundPow2(wfcScale * decay(1)))
	this.pushHistory(x)
	this.bubble(x)
}

// bubble restores descending-weight order around x's current position via
// adjacent swaps, mirroring move_up/move_down.
func (this *WFC) bubble(x byte) {
	i := this.pos[x]

	for i > 0 && this.weight[this.list[i-1]] < this.weight[this.list[i]] {
		this.list[i-1], this.list[i] = this.list[i], this.list[i-1]
		this.pos[this.list[i]] = i
		this.pos[this.list[i-1]] = i - 1
		i--
	}

	for i < AlphabetSize-1 && this.weight[this.list[i+1]] > this.weight[this.list[i]] {
		this.list[i+1], this.list[i] = this.list[i], this.list[i+1]
		this.pos[this.list[i]] = i
		this.pos[this.list[i+1]] = i + 1
		i++
	}
}

// Forward ranks one column of symbols by their current descending-weight
// position, updating weights as it goes.
func (this *WFC) Forward(col []byte) ([]byte, error) {
	out := make([]byte, len(col))

	for i, x := range col {
		out[i] = byte(this.pos[x])
		this.insert(x)
	}

	return out, nil
}

// Inverse resolves one column of ranks back to symbols.
func (this *WFC) Inverse(col []byte) ([]byte, error) {
	out := make([]byte, len(col))

	for i, r := range col {
		sym := this.list[r]
		out[i] = sym
		this.insert(sym)
	}

	return out, nil
}
