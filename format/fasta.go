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

// Package format implements the FASTA and Stockholm readers/writers,
// grounded on original_source/src/fasta_file.cpp and
// original_source/src/stockholm.cpp.
package format

import (
	"bufio"
	"fmt"
	"io"
)

// ReadFasta parses a FASTA file: name lines (kept with their leading '>')
// alternating with sequence lines concatenated until the next '>' or EOF.
// A file not starting with '>' is rejected, grounded on
// CFastaFile::ReadFile/read_name/read_sequence.
func ReadFasta(r io.Reader) (names, sequences []string, err error) {
	br := bufio.NewReaderSize(r, 1<<20)

	first, err := br.ReadByte()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("format: empty FASTA input")
	}
	if err != nil {
		return nil, nil, err
	}
	if first != '>' {
		return nil, nil, fmt.Errorf("format: FASTA input does not start with '>'")
	}
	if err := br.UnreadByte(); err != nil {
		return nil, nil, err
	}

	var curName string
	var curSeq []byte
	haveRecord := false

	flush := func() {
		if haveRecord {
			names = append(names, curName)
			sequences = append(sequences, string(curSeq))
		}
	}

	for {
		line, readErr := br.ReadString('\n')
		line = trimNewline(line)

		if len(line) > 0 && line[0] == '>' {
			flush()
			curName = line
			curSeq = curSeq[:0]
			haveRecord = true
		} else if line != "" {
			curSeq = append(curSeq, line...)
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, nil, readErr
		}
	}
	flush()

	return names, sequences, nil
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
	}
	if n > 0 && s[n-1] == '\r' {
		n--
	}
	return s[:n]
}

// WriteFastaOptions controls FastaWriter output.
type WriteFastaOptions struct {
	// WrapWidth wraps each sequence at this many columns; 0 means no wrap.
	WrapWidth int
	// SequencesOnly strips any byte outside ['A'-'z'] (gap/punctuation)
	// from each sequence before writing, grounded on the -es CLI flag.
	SequencesOnly bool
}

// WriteFasta writes names/sequences back out, grounded on
// CFastaFile::SaveFile.
func WriteFasta(w io.Writer, names, sequences []string, opts WriteFastaOptions) error {
	bw := bufio.NewWriterSize(w, 1<<20)

	for i := range sequences {
		if _, err := bw.WriteString(names[i]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}

		seq := sequences[i]
		if opts.SequencesOnly {
			seq = stripGaps(seq)
		}

		if opts.WrapWidth == 0 {
			if _, err := bw.WriteString(seq); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}

		for pos := 0; pos < len(seq); pos += opts.WrapWidth {
			end := pos + opts.WrapWidth
			if end > len(seq) {
				end = len(seq)
			}
			if _, err := bw.WriteString(seq[pos:end]); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func stripGaps(seq string) string {
	out := make([]byte, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c >= 'A' && c <= 'z' {
			out = append(out, c)
		}
	}
	return string(out)
}
