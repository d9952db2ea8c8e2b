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

// Package lzmawrap compresses and decompresses the metadata side-channel,
// grounded on CLZMAWrapper::forward/reverse, which drive liblzma's
// easy_encoder/stream_decoder over BUFSIZ-sized chunks with a CRC64
// integrity check. This wrapper uses github.com/ulikunitz/xz, the
// idiomatic pure-Go equivalent of the .xz container format liblzma
// produces under LZMA_CHECK_CRC64, instead of cgo-binding liblzma itself.
package lzmawrap

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz"
)

// Preset selects the two dictionary sizes CMSACompress actually uses:
// FASTA metadata compresses under preset 9|EXTREME (the larger, slower
// dictionary), Stockholm metadata under plain preset 9.
type Preset int

const (
	// PresetStockholm matches CMSACompress::LZMA_mode_Stockholm (preset 9).
	PresetStockholm Preset = iota
	// PresetFASTAExtreme matches CMSACompress::LZMA_mode_FASTA
	// (preset 9 | LZMA_PRESET_EXTREME).
	PresetFASTAExtreme
)

func (this Preset) dictCap() int {
	if this == PresetFASTAExtreme {
		return 1 << 26
	}
	return 1 << 24
}

// Compress runs LZMA/xz compression over text, matching
// CLZMAWrapper::forward: an empty input produces an empty output without
// invoking the encoder.
func Compress(text []byte, preset Preset) ([]byte, error) {
	if len(text) == 0 {
		return nil, nil
	}

	var out bytes.Buffer

	cfg := xz.WriterConfig{DictCap: preset.dictCap(), CheckSum: xz.CRC64}
	w, err := cfg.NewWriter(&out)
	if err != nil {
		return nil, fmt.Errorf("lzmawrap: init encoder: %w", err)
	}

	if _, err := w.Write(text); err != nil {
		w.Close()
		return nil, fmt.Errorf("lzmawrap: compress: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzmawrap: finish compress: %w", err)
	}

	return out.Bytes(), nil
}

// Decompress is the mirror of Compress, matching CLZMAWrapper::reverse. An
// empty input decompresses to an empty output.
func Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, nil
	}

	r, err := xz.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("lzmawrap: init decoder: %w", err)
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("lzmawrap: decompress: %w", err)
	}

	return out.Bytes(), nil
}
