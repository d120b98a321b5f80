// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
	"os"
	"slices"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	var files = make([]File, 0, len(filenames))
	//
	for _, n := range filenames {
		bytes, err := os.ReadFile(n)
		//
		if err != nil {
			return nil, err
		}
		//
		files = append(files, *NewSourceFile(n, bytes))
	}
	//
	return files, nil
}

// File is a named piece of source text, typically read from disk.  The text is
// held as runes, such that spans index characters rather than bytes.
type File struct {
	filename string
	contents []rune
	// Index of the first character of each line, in ascending order.  The
	// first line always starts at index 0.
	lineStarts []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	var (
		contents   = []rune(string(bytes))
		lineStarts = []int{0}
	)
	//
	for i, c := range contents {
		if c == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	//
	return &File{filename, contents, lineStarts}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// EnclosingLine determines the line on which a given span starts.  Spans
// starting beyond the end of the file are placed on the last line.
func (s *File) EnclosingLine(span Span) Line {
	var (
		n      = len(s.lineStarts)
		i, hit = slices.BinarySearch(s.lineStarts, span.start)
	)
	// Without an exact hit, the span starts within the preceding line.
	if !hit {
		i--
	}
	//
	i = min(i, n-1)
	//
	end := len(s.contents)
	// Lines other than the last stop before their newline
	if i+1 < n {
		end = s.lineStarts[i+1] - 1
	}
	//
	return Line{s.contents, Span{s.lineStarts[i], end}, i + 1}
}

// Line identifies a single line of a source file, excluding its terminating
// newline.
type Line struct {
	text []rune
	span Span
	// Counting from 1.
	number int
}

// String returns the text of this line.
func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a file has
// line number 1.
func (p Line) Number() int {
	return p.number
}

// Start returns the index of the first character of this line in the file.
func (p Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p Line) Length() int {
	return p.span.Length()
}

// SyntaxError is an error associated with a span of a source file, such that
// the offending text can be highlighted when the error is reported.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Line returns the line on which this error starts.
func (p *SyntaxError) Line() Line {
	return p.srcfile.EnclosingLine(p.span)
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", p.srcfile.Filename(), p.Line().Number(), p.msg)
}
