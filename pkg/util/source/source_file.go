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
func ReadFiles(filenames ...string) ([]*File, error) {
	files := make([]*File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line provides information about a given line of a source file, namely its
// number (counting from 1) and its span within the file.
type Line struct {
	// Original text
	text []rune
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// Get the string representing this line.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a file
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the file.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File represents a given source file (typically stored on disk).  Positions
// are reported by decoders as (line, column) pairs, whilst spans are offsets
// into the contents.  Hence, the start of each line is recorded upfront.
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
	// Offset of the first character of each line.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	var (
		contents = []rune(string(bytes))
		lines    = []int{0}
	)
	//
	for i, c := range contents {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	//
	return &File{filename, contents, lines}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Offset converts a (line, column) position into an index into the contents
// of this file.  Both line and column count from 1.  Positions beyond the end
// of the file are clamped.
func (s *File) Offset(line int, column int) int {
	if line < 1 || line > len(s.lines) {
		return len(s.contents)
	}
	//
	return min(s.lines[line-1]+max(column, 1)-1, len(s.contents))
}

// SpanAt constructs a span starting at a given (line, column) position and
// covering a given number of characters, clamped to the end of its line.
func (s *File) SpanAt(line int, column int, length int) Span {
	start := s.Offset(line, column)
	end := min(start+length, s.endOfLine(start))
	//
	return Span{start, max(start, end)}
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the line of this file which encloses the
// start of a span.  Positions beyond the end of the file belong to the last
// line.  The returned line need not enclose the entire span, as spans can
// cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	// Index of the last line starting at or before the span.
	i, found := slices.BinarySearch(s.lines, span.start)
	if !found {
		i--
	}
	//
	start := s.lines[i]
	//
	return Line{s.contents, Span{start, s.endOfLine(start)}, i + 1}
}

// Determine the end of the line enclosing a given offset.
func (s *File) endOfLine(offset int) int {
	i, _ := slices.BinarySearch(s.lines, offset+1)
	if i < len(s.lines) {
		// Exclude the newline
		return s.lines[i] - 1
	}
	//
	return len(s.contents)
}

// SyntaxError is a structured error which retains the span of the file on
// which it is reported, along with an error message.
type SyntaxError struct {
	srcfile *File
	// Span of the file on which the error is reported.
	span Span
	// Error message being reported
	msg string
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

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d:%s", p.span.Start(), p.span.End(), p.Message())
}

// FirstEnclosingLine determines the line of the source file enclosing the
// start of this error.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}
