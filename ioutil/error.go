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

// Package ioutil provides the buffered file I/O, gzip-transparent input
// reading, and in-memory byte stream used by the range coder and the
// archive writer.
package ioutil

// IOError is an extended error carrying a message and a comsa.Err* code,
// mirroring the teacher's io.IOError.
type IOError struct {
	msg  string
	code int
}

// NewIOError wraps a message and error code.
func NewIOError(msg string, code int) *IOError {
	return &IOError{msg: msg, code: code}
}

func (this *IOError) Error() string {
	return this.msg
}

// Message returns the wrapped message.
func (this *IOError) Message() string {
	return this.msg
}

// ErrorCode returns the comsa.Err* code.
func (this *IOError) ErrorCode() int {
	return this.code
}
