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

package format

import (
	"bufio"
	"io"
)

// Family holds one Stockholm record: its metadata lines in original order,
// the sequence-line gap counts needed to reinterleave them, and the body's
// name/residue pairs, one entry per *physical* sequence line — a name that
// reappears across a wrapped alignment's blocks gets one Names/Sequences
// entry per block, not one merged entry, grounded on
// CStockholmFile::GetSequences/PutSequences treating v_names/v_sequences as
// parallel per-line arrays throughout (no cross-block merge). Offsets are
// counted in the same per-line unit, so a write replays the exact original
// block/metadata interleaving.
type Family struct {
	Meta      []string
	Offsets   []int
	Names     []string
	Sequences []string
}

// ReadStockholm parses every family record out of r, grounded on
// original_source/src/stockholm.cpp's CStockholmFile::GetSequences.
func ReadStockholm(r io.Reader) ([]Family, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	var families []Family

	for {
		fam, err := readStockholmFamily(br)
		if err == io.EOF && fam == nil {
			break
		}
		if err != nil {
			return nil, err
		}
		families = append(families, *fam)
	}

	return families, nil
}

// readStockholmFamily reads one family, stopping at a "//" or blank line
// terminator or EOF. Terminator lines seen before any metadata or sequence
// line are skipped. It returns (nil, io.EOF) only when input ends before any
// metadata or sequence line (clean end of input between records).
func readStockholmFamily(br *bufio.Reader) (*Family, error) {
	var meta []string
	var offsets []int
	var names []string
	var sequences []string

	lineNo := 0
	lastMetaLineNo := 0
	sawAnyLine := false

	for {
		raw, readErr := br.ReadString('\n')
		if len(raw) == 0 && readErr == io.EOF {
			break
		}
		line := trimNewline(raw)
		sawAnyLine = true
		lineNo++

		if line == "" || line == "//" {
			if len(names) == 0 && len(meta) == 0 && readErr == nil {
				// empty record (e.g. a blank line right before "//"):
				// skip it and start the family at the next line
				lineNo = 0
				continue
			}
			break
		}

		if len(line) > 0 && line[0] == '#' {
			if lineNo-lastMetaLineNo > 1 || len(sequences) > 0 {
				offsets = append(offsets, lineNo-lastMetaLineNo-1)
			}
			meta = append(meta, line)
			lastMetaLineNo = lineNo
		} else {
			name, seq := parseNameSequence(line)
			names = append(names, name)
			sequences = append(sequences, seq)
		}

		if readErr == io.EOF {
			break
		}
	}

	if !sawAnyLine {
		return nil, io.EOF
	}
	if len(names) == 0 && len(meta) == 0 {
		return nil, io.EOF
	}

	return &Family{Meta: meta, Offsets: offsets, Names: names, Sequences: sequences}, nil
}

// parseNameSequence splits a Stockholm body line into its name and residue
// columns via a 3-state scan: name characters, a whitespace run, then
// sequence characters to end of line.
func parseNameSequence(line string) (name, seq string) {
	const (
		modeName = 0
		modeGap  = 1
		modeSeq  = 2
	)

	mode := modeName
	nameEnd := 0
	seqStart := 0

	for i := 0; i < len(line); i++ {
		c := line[i]
		isSpace := c == ' ' || c == '\t'

		switch mode {
		case modeName:
			if isSpace {
				nameEnd = i
				mode = modeGap
			}
		case modeGap:
			if !isSpace {
				seqStart = i
				mode = modeSeq
			}
		case modeSeq:
			// consume to end of line
		}
	}

	if mode == modeName {
		// no whitespace found: the whole line is the name, empty sequence
		return line, ""
	}
	if mode == modeGap {
		// trailing whitespace only, no sequence content
		return line[:nameEnd], ""
	}
	return line[:nameEnd], line[seqStart:]
}

// WriteStockholmOptions controls WriteStockholm's output, mirroring
// WriteFastaOptions.
type WriteStockholmOptions struct {
	// SequencesOnly strips every byte outside ['A'-'z'] (gaps and other
	// punctuation) from each sequence line, matching the -es CLI flag.
	SequencesOnly bool
}

// WriteStockholm writes every family back out, replaying each Name/Sequence
// pair in its original physical-line order and reinterleaving metadata lines
// according to each Family's Offsets, grounded on
// CStockholmFile::PutSequences.
func WriteStockholm(w io.Writer, families []Family, opts WriteStockholmOptions) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	for _, fam := range families {
		if err := writeStockholmFamily(bw, fam, opts); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeStockholmFamily(bw *bufio.Writer, fam Family, opts WriteStockholmOptions) error {
	noLeadingMeta := len(fam.Meta) - len(fam.Offsets)
	if noLeadingMeta < 0 {
		noLeadingMeta = 0
	}

	for i := 0; i < noLeadingMeta; i++ {
		if _, err := bw.WriteString(fam.Meta[i]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	metaIdx := noLeadingMeta
	offsetIdx := 0
	curOffset := -1
	if offsetIdx < len(fam.Offsets) {
		curOffset = fam.Offsets[offsetIdx]
	}

	flushDueMeta := func() error {
		for curOffset == 0 && metaIdx < len(fam.Meta) {
			if _, err := bw.WriteString(fam.Meta[metaIdx]); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			metaIdx++
			offsetIdx++
			if offsetIdx < len(fam.Offsets) {
				curOffset = fam.Offsets[offsetIdx]
			} else {
				curOffset = -1
			}
		}
		return nil
	}

	for i, name := range fam.Names {
		if err := flushDueMeta(); err != nil {
			return err
		}

		if _, err := bw.WriteString(name); err != nil {
			return err
		}
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
		seq := fam.Sequences[i]
		if opts.SequencesOnly {
			seq = stripGaps(seq)
		}
		if _, err := bw.WriteString(seq); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}

		if curOffset > 0 {
			curOffset--
		}
	}

	for metaIdx < len(fam.Meta) {
		if _, err := bw.WriteString(fam.Meta[metaIdx]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		metaIdx++
	}

	_, err := bw.WriteString("//\n")
	return err
}

// ExtractIDAC scans a family's metadata lines for "#=GF ID" and "#=GF AC"
// tags, per SPEC_FULL.md §4.10 (the archive container's id/ac fields are
// populated by the CLI layer from these, not by the Stockholm reader).
func ExtractIDAC(meta []string) (id, ac string) {
	for _, line := range meta {
		switch {
		case hasFieldPrefix(line, "#=GF ID"):
			id = trimField(line, "#=GF ID")
		case hasFieldPrefix(line, "#=GF AC"):
			ac = trimField(line, "#=GF AC")
		}
	}
	return id, ac
}

func hasFieldPrefix(line, prefix string) bool {
	return len(line) >= len(prefix) && line[:len(prefix)] == prefix
}

func trimField(line, prefix string) string {
	rest := line[len(prefix):]
	start := 0
	for start < len(rest) && (rest[start] == ' ' || rest[start] == '\t') {
		start++
	}
	return rest[start:]
}
