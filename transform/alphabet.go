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

// Package transform implements the column-wise transforms of the sequence
// pipeline: Transpose, PBWT, the second-stage rankers (MTF-1, WFC) and
// RLE-0.
package transform

// AlphabetSize is the number of legal 7-bit symbols ranked by the
// second-stage transforms.
const AlphabetSize = 128

// legalAlphabet builds the initial symbol ordering used by both MTF and
// WFC, exactly as CMTFCore::operator() constructs v_legal_symbols: gap
// symbols first, then upper-case letters, then lower-case letters, then
// '*', then any remaining byte in [0,128) not already present.
func legalAlphabet() [AlphabetSize]byte {
	var a [AlphabetSize]byte
	var used [AlphabetSize]bool
	n := 0

	add := func(b byte) {
		if !used[b] {
			a[n] = b
			used[b] = true
			n++
		}
	}

	add('-')
	add('.')
	for c := byte('A'); c <= 'Z'; c++ {
		add(c)
	}
	for c := byte('a'); c <= 'z'; c++ {
		add(c)
	}
	add('*')

	for b := 0; b < AlphabetSize; b++ {
		add(byte(b))
	}

	return a
}
