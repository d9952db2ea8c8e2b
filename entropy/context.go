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

// Package entropy implements the context-modelled range coding of RLE-0
// output: a prefix model, a selector model and a bank of suffix models,
// grounded on CEntropy.
package entropy

// Class is the context-length class chosen from raw input size, exactly
// the CONTEXTS[5][3] table in the original entropy component.
type Class int

const (
	Tiny Class = iota
	Small
	Medium
	Large
	Huge
	numClasses
)

// classTable holds, per class, (noPrefixCtx, noSelectorCtx, noSuffixCtx) =
// (5^kp, 8^ks, 8^kf) with kp in {2,3,4,5,5}, ks in {1,2,2,2,3},
// kf in {1,1,2,2,2}.
var classTable = [numClasses][3]int{
	Tiny:   {25, 8, 8},
	Small:  {125, 64, 8},
	Medium: {625, 64, 64},
	Large:  {3125, 64, 64},
	Huge:   {3125, 512, 64},
}

// ClassifyInputSize chooses the context class from the raw byte count
// (rows * columns), per the distilled thresholds: tiny < 1e4,
// small < 2e5, medium < 5e6, large < 2e7, else huge.
func ClassifyInputSize(rows, columns int) Class {
	size := int64(rows) * int64(columns)

	switch {
	case size < 10000:
		return Tiny
	case size < 200000:
		return Small
	case size < 5000000:
		return Medium
	case size < 20000000:
		return Large
	default:
		return Huge
	}
}

// Params returns (noPrefixCtx, noSelectorCtx, noSuffixCtx) for this class.
func (this Class) Params() (noPrefixCtx, noSelectorCtx, noSuffixCtx int) {
	t := classTable[this]
	return t[0], t[1], t[2]
}

// String names the class, used in the CLI's human-readable diagnostics.
func (this Class) String() string {
	switch this {
	case Tiny:
		return "tiny"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	case Huge:
		return "huge"
	default:
		return "unknown"
	}
}
