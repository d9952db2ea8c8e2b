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

package ioutil

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	comsa "github.com/refresh-bio/CoMSA"
)

const bufferSize = 1 << 20

// InFile is a buffered file reader that transparently decompresses .gz
// inputs, grounded on CInFile's large-buffer byte-at-a-time reader but
// exposing an io.Reader so callers can use bufio.Scanner for line reading.
type InFile struct {
	f     *os.File
	gz    *gzip.Reader
	r     *bufio.Reader
	size  int64
}

// OpenInFile opens name for reading. If name ends in ".gz" the stream is
// wrapped in a gzip.Reader transparently.
func OpenInFile(name string) (*InFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewIOError(fmt.Sprintf("cannot open %s: %v", name, err), comsa.ErrOpenFile)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewIOError(fmt.Sprintf("cannot stat %s: %v", name, err), comsa.ErrOpenFile)
	}

	in := &InFile{f: f, size: info.Size()}

	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, NewIOError(fmt.Sprintf("cannot open gzip stream in %s: %v", name, err), comsa.ErrOpenFile)
		}
		in.gz = gz
		in.r = bufio.NewReaderSize(gz, bufferSize)
	} else {
		in.r = bufio.NewReaderSize(f, bufferSize)
	}

	return in, nil
}

// Reader exposes the underlying buffered reader.
func (this *InFile) Reader() *bufio.Reader {
	return this.r
}

// FileSize returns the on-disk size of the file (compressed size if .gz).
func (this *InFile) FileSize() int64 {
	return this.size
}

// Close releases the file (and gzip stream, if any).
func (this *InFile) Close() error {
	if this.gz != nil {
		this.gz.Close()
	}
	return this.f.Close()
}

// OutFile is a buffered file writer.
type OutFile struct {
	f *os.File
	w *bufio.Writer
}

// CreateOutFile creates (truncating) name for writing.
func CreateOutFile(name string) (*OutFile, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, NewIOError(fmt.Sprintf("cannot create %s: %v", name, err), comsa.ErrCreateFile)
	}

	return &OutFile{f: f, w: bufio.NewWriterSize(f, bufferSize)}, nil
}

// Writer exposes the underlying buffered writer.
func (this *OutFile) Writer() *bufio.Writer {
	return this.w
}

// Close flushes and closes the file.
func (this *OutFile) Close() error {
	if err := this.w.Flush(); err != nil {
		this.f.Close()
		return NewIOError(fmt.Sprintf("flush failed: %v", err), comsa.ErrWriteFile)
	}

	return this.f.Close()
}

// Seeker exposes random access to the underlying file descriptor for the
// archive reader/writer, which needs to seek past the buffered writer's
// in-flight data (callers must Flush first).
func (this *OutFile) Seeker() io.Seeker {
	return this.f
}
