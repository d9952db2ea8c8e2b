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

// Command comsa is the Fc/Fd/Sc/Sd/Se/Sl front end, grounded on
// original_source/src/CoMSA.cpp for the mode/option surface and on
// Kanzi.go's argument-dispatch style for the parsing loop shape.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	comsa "github.com/refresh-bio/CoMSA"
	"github.com/refresh-bio/CoMSA/archive"
	"github.com/refresh-bio/CoMSA/engine"
	"github.com/refresh-bio/CoMSA/format"
	"github.com/refresh-bio/CoMSA/ioutil"
	"github.com/refresh-bio/CoMSA/lzmawrap"
)

// Options is the CLI's immutable per-run configuration, assembled once by
// parseParams and threaded explicitly into every mode handler.
type Options struct {
	Mode          string
	InNames       []string
	OutName       string
	WrapWidth     int
	Fast          bool
	ExtractID     string
	ExtractAC     string
	SequencesOnly bool
}

var (
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()

	mutex      sync.Mutex
	stderrBuf  = bufio.NewWriter(os.Stderr)
)

// progressLine mirrors CoMSA.cpp's periodic '\r'-overwritten status line.
func progressLine(msg string) {
	mutex.Lock()
	defer mutex.Unlock()
	stderrBuf.WriteString("\r" + msg)
	stderrBuf.Flush()
}

func usage() {
	fmt.Println("Usage: comsa <mode> [options] <in_file> <out_file>")
	fmt.Println("       comsa <mode> [options] @<in_file_list> <out_file>")
	fmt.Println("Parameters:")
	fmt.Println("   mode         - working mode, possible values:")
	fmt.Println("      Fc - compress FASTA file")
	fmt.Println("      Fd - decompress FASTA file")
	fmt.Println("      Sc - compress Stockholm file(s) into an archive")
	fmt.Println("      Sd - decompress an archive into one Stockholm file")
	fmt.Println("      Se - extract a single family from a compressed archive")
	fmt.Println("      Sl - list families in a compressed archive")
	fmt.Println("   in_file      - name of input file (.gz decompressed transparently)")
	fmt.Println("   in_file_list - name of file listing Stockholm paths to compress (Sc only)")
	fmt.Println("   out_file     - name of output file (omitted for Sl)")
	fmt.Println("Options:")
	fmt.Println("   -w <width>   - wrap FASTA sequences to given length (Fd only); default: 0 (no wrap)")
	fmt.Println("   -f           - fast variant (MTF instead of WFC)")
	fmt.Println("   -eID <id>    - extract family of given ID (Se only)")
	fmt.Println("   -eAC <ac>    - extract family of given accession number (Se only)")
	fmt.Println("   -es          - extract sequences only (strip gaps)")
	fmt.Println("Sample executions:")
	fmt.Println("   comsa Fc PF00005.fasta PF00005.cmsa")
	fmt.Println("   comsa Fd PF00005.cmsa PF00005.fasta")
	fmt.Println("   comsa Sc pfam.stockholm pfam.cmsa")
	fmt.Println("   comsa Sc @files.txt pfam.cmsa")
	fmt.Println("   comsa Sl pfam.cmsa")
	fmt.Println("   comsa Se -eAC PF00005.26 pfam.cmsa pfam_family.stockholm")
}

func parseParams(args []string) (*Options, int) {
	if len(args) < 3 {
		usage()
		return nil, comsa.ErrMissingParam
	}

	opts := &Options{Mode: args[1]}

	switch opts.Mode {
	case "Fc", "Fd", "Sc", "Sd", "Se", "Sl":
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", opts.Mode)
		return nil, comsa.ErrInvalidParam
	}

	argNo := 2
	minTrailing := 2
	if opts.Mode == "Sl" {
		minTrailing = 1
	}

	for argNo+minTrailing < len(args) {
		arg := args[argNo]
		switch {
		case arg == "-w" && argNo+1 < len(args):
			w, err := strconv.Atoi(args[argNo+1])
			if err != nil || w < 0 {
				fmt.Fprintf(os.Stderr, "Invalid wrap width: %s\n", args[argNo+1])
				return nil, comsa.ErrInvalidParam
			}
			opts.WrapWidth = w
			argNo += 2
		case arg == "-f":
			opts.Fast = true
			argNo++
		case arg == "-es":
			opts.SequencesOnly = true
			argNo++
		case arg == "-eID" && opts.Mode == "Se" && argNo+1 < len(args):
			opts.ExtractID = args[argNo+1]
			argNo += 2
		case arg == "-eAC" && opts.Mode == "Se" && argNo+1 < len(args):
			opts.ExtractAC = args[argNo+1]
			argNo += 2
		default:
			fmt.Fprintf(os.Stderr, "Invalid option: %s\n", arg)
			return nil, comsa.ErrInvalidParam
		}
	}

	if argNo >= len(args) {
		usage()
		return nil, comsa.ErrMissingParam
	}

	if strings.HasPrefix(args[argNo], "@") && opts.Mode == "Sc" {
		names, err := readListFile(args[argNo][1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot read list file: %v\n", err)
			return nil, comsa.ErrOpenFile
		}
		opts.InNames = names
		argNo++
	} else {
		opts.InNames = []string{args[argNo]}
		argNo++
	}

	if opts.Mode != "Sl" {
		if argNo >= len(args) {
			usage()
			return nil, comsa.ErrMissingParam
		}
		opts.OutName = args[argNo]
	}

	return opts, 0
}

func readListFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}

func main() {
	opts, code := parseParams(os.Args)
	if opts == nil {
		_ = code // internal comsa.Err* detail; the process boundary only distinguishes usage vs. processing failure
		os.Exit(1)
	}

	var err error
	switch opts.Mode {
	case "Fc":
		err = fastaCompress(opts)
	case "Fd":
		err = fastaDecompress(opts)
	case "Sc":
		err = stockholmCompress(opts)
	case "Sd":
		err = stockholmDecompress(opts)
	case "Se":
		err = stockholmExtract(opts)
	case "Sl":
		err = stockholmList(opts)
	}

	if err != nil {
		logger.Error().Err(err).Msg("comsa: processing failed")
		os.Exit(2)
	}

	os.Exit(0)
}

func alignmentFromNames(names, sequences []string) [][]byte {
	rows := make([][]byte, len(sequences))
	for i, s := range sequences {
		rows[i] = []byte(s)
	}
	return rows
}

func rowsToStrings(rows [][]byte) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

func fastaCompress(opts *Options) error {
	in, err := ioutil.OpenInFile(opts.InNames[0])
	if err != nil {
		return err
	}
	defer in.Close()

	names, sequences, err := format.ReadFasta(in.Reader())
	if err != nil {
		return fmt.Errorf("comsa: reading %s: %w", opts.InNames[0], err)
	}

	metadata := []byte(strings.Join(names, "\n"))
	rows := alignmentFromNames(names, sequences)

	out, err := ioutil.CreateOutFile(opts.OutName)
	if err != nil {
		return err
	}
	defer out.Close()

	eopts := engine.Options{Fast: opts.Fast, MetadataPreset: lzmawrap.PresetFASTAExtreme}
	var blob bytes.Buffer
	if err := engine.CompressAlignment(&blob, rows, metadata, eopts); err != nil {
		return err
	}
	if _, err := out.Writer().Write(blob.Bytes()); err != nil {
		return err
	}

	progressLine(fmt.Sprintf("compressed %d sequences to %d bytes\n", len(rows), blob.Len()))
	return nil
}

func fastaDecompress(opts *Options) error {
	in, err := ioutil.OpenInFile(opts.InNames[0])
	if err != nil {
		return err
	}
	defer in.Close()

	rows, metadata, err := engine.DecompressAlignment(in.Reader())
	if err != nil {
		return err
	}

	names := strings.Split(string(metadata), "\n")
	sequences := rowsToStrings(rows)

	out, err := ioutil.CreateOutFile(opts.OutName)
	if err != nil {
		return err
	}
	defer out.Close()

	werr := format.WriteFasta(out.Writer(), names, sequences, format.WriteFastaOptions{
		WrapWidth:     opts.WrapWidth,
		SequencesOnly: opts.SequencesOnly,
	})
	if werr != nil {
		return werr
	}

	progressLine(fmt.Sprintf("decompressed %d sequences\n", len(rows)))
	return nil
}

func stockholmCompress(opts *Options) error {
	out, err := os.Create(opts.OutName)
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot create %s: %v", opts.OutName, err), comsa.ErrCreateFile)
	}
	defer out.Close()

	w := archive.NewWriter(out)
	eopts := engine.Options{Fast: opts.Fast, MetadataPreset: lzmawrap.PresetStockholm}

	totalRaw := int64(0)
	famNo := 0

	for _, stoName := range opts.InNames {
		in, err := ioutil.OpenInFile(stoName)
		if err != nil {
			return err
		}

		families, err := format.ReadStockholm(in.Reader())
		in.Close()
		if err != nil {
			return fmt.Errorf("comsa: reading %s: %w", stoName, err)
		}

		for _, fam := range families {
			id, ac := format.ExtractIDAC(fam.Meta)
			rows := alignmentFromNames(fam.Names, fam.Sequences)
			metadata := encodeStockholmMeta(fam)

			if err := w.WriteFamily(rows, metadata, eopts, id, ac); err != nil {
				return err
			}

			rawSize := int64(len(fam.Names)) * int64(columnWidth(fam.Sequences))
			totalRaw += rawSize
			famNo++
			progressLine(fmt.Sprintf("family %d (%s/%s): %d rows x %d cols    ", famNo, id, ac, len(fam.Names), columnWidth(fam.Sequences)))
		}
	}

	totalCompressed := int64(0)
	for _, d := range w.Descriptors() {
		totalCompressed += int64(d.CompressedSize)
	}

	if err := w.Close(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr)
	logger.Info().Int("families", famNo).Int64("raw_bytes", totalRaw).Int64("compressed_bytes", totalCompressed).Msg("compression complete")
	return nil
}

func columnWidth(sequences []string) int {
	if len(sequences) == 0 {
		return 0
	}
	return len(sequences[0])
}

// encodeStockholmMeta serializes a Family's metadata lines, gap offsets and
// per-row names into the blob's metadata side channel (three sections
// separated by "--"/"++" sentinels), so a decompress round trip can rebuild
// both the original metadata interleaving and the real sequence names — ENG
// treats this payload as opaque bytes (SPEC_FULL.md §4.8), only the CLI
// layer gives it structure.
func encodeStockholmMeta(fam format.Family) []byte {
	var buf bytes.Buffer
	for _, o := range fam.Offsets {
		fmt.Fprintf(&buf, "%d\n", o)
	}
	buf.WriteString("--\n")
	for _, m := range fam.Meta {
		buf.WriteString(m)
		buf.WriteByte('\n')
	}
	buf.WriteString("++\n")
	for _, name := range fam.Names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func decodeStockholmMeta(metadata []byte) (offsets []int, meta, names []string) {
	lines := strings.Split(string(metadata), "\n")
	i := 0
	for ; i < len(lines) && lines[i] != "--"; i++ {
		if lines[i] == "" {
			continue
		}
		if n, err := strconv.Atoi(lines[i]); err == nil {
			offsets = append(offsets, n)
		}
	}
	i++
	for ; i < len(lines) && lines[i] != "++"; i++ {
		if lines[i] != "" {
			meta = append(meta, lines[i])
		}
	}
	i++
	for ; i < len(lines); i++ {
		if lines[i] != "" {
			names = append(names, lines[i])
		}
	}
	return offsets, meta, names
}

func stockholmDecompress(opts *Options) error {
	f, err := os.Open(opts.InNames[0])
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot open %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot stat %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}

	reader, err := archive.Open(f, info.Size())
	if err != nil {
		return err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	out, err := os.Create(opts.OutName)
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot create %s: %v", opts.OutName, err), comsa.ErrCreateFile)
	}
	defer out.Close()

	var families []format.Family
	for i, rec := range records {
		offsets, meta, names := decodeStockholmMeta(rec.Metadata)
		families = append(families, format.Family{
			Meta:      meta,
			Offsets:   offsets,
			Names:     names,
			Sequences: rowsToStrings(rec.Rows),
		})
		progressLine(fmt.Sprintf("dataset no. %d\n", i))
	}

	stOpts := format.WriteStockholmOptions{SequencesOnly: opts.SequencesOnly}
	if err := format.WriteStockholm(out, families, stOpts); err != nil {
		return err
	}

	return nil
}

func stockholmExtract(opts *Options) error {
	f, err := os.Open(opts.InNames[0])
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot open %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot stat %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}

	reader, err := archive.Open(f, info.Size())
	if err != nil {
		return err
	}

	out, err := os.Create(opts.OutName)
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot create %s: %v", opts.OutName, err), comsa.ErrCreateFile)
	}
	defer out.Close()

	var families []format.Family
	famNo := 0
	for _, d := range reader.List() {
		if opts.ExtractID != "" && d.ID != opts.ExtractID {
			continue
		}
		if opts.ExtractAC != "" && d.AC != opts.ExtractAC {
			continue
		}

		rows, metadata, err := reader.ReadFamilyAt(d.CompressedDataPtr)
		if err != nil {
			return err
		}

		offsets, meta, names := decodeStockholmMeta(metadata)

		families = append(families, format.Family{
			Meta:      meta,
			Offsets:   offsets,
			Names:     names,
			Sequences: rowsToStrings(rows),
		})
		famNo++
		progressLine(fmt.Sprintf("dataset no. %d\n", famNo))
	}

	stOpts := format.WriteStockholmOptions{SequencesOnly: opts.SequencesOnly}
	return format.WriteStockholm(out, families, stOpts)
}

func stockholmList(opts *Options) error {
	f, err := os.Open(opts.InNames[0])
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot open %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ioutil.NewIOError(fmt.Sprintf("cannot stat %s: %v", opts.InNames[0], err), comsa.ErrOpenFile)
	}

	reader, err := archive.Open(f, info.Size())
	if err != nil {
		return err
	}

	fmt.Println("ID\tAC\tno. sequences\tno. columns\tuncompressed size\tcompressed size")
	for _, d := range reader.List() {
		fmt.Printf("%s\t%s\t%d\t%d\t%d\t%d\n", d.ID, d.AC, d.NSequences, d.NColumns, d.RawSize, d.CompressedSize)
	}

	return nil
}
