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
)

// Span identifies a contiguous range of characters in a source file, from the
// start index up to (but not including) the end index.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span, which must not end before it starts.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the index of the first character covered by this span.
func (p Span) Start() int {
	return p.start
}

// End returns the index one past the last character covered by this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Map records the span of text from which each node of a tree was read, such
// that errors discovered later can be reported against the original file.
type Map[T comparable] struct {
	srcfile File
	spans   map[T]Span
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{srcfile, make(map[T]Span)}
}

// Put records the span of a given node, which must not already be recorded.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.spans[item]; ok {
		panic(fmt.Sprintf("duplicate source map entry %v", any(item)))
	}
	//
	p.spans[item] = span
}

// Get returns the span of a given node, which must have been recorded.
func (p *Map[T]) Get(item T) Span {
	span, ok := p.spans[item]
	//
	if !ok {
		panic(fmt.Sprintf("missing source map entry %v", any(item)))
	}
	//
	return span
}

// SyntaxError constructs a syntax error for a given node recorded in this
// map.
func (p *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(item), msg)
}
