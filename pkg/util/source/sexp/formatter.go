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
package sexp

import (
	"strings"
)

// Layout determines how lists with a given head are split over multiple lines
// when formatted.  When a list is split, every element after those kept inline
// starts on its own line, indented one level further than the list itself.
type Layout struct {
	// Number of elements after the head which stay on the opening line.
	Inline int
	// Always split, even when the list would fit on the current line.
	Always bool
}

// Formatter lays out S-Expressions over multiple lines, such that they remain
// readable.  Lists without a layout are never split.
type Formatter struct {
	// Maximum desired width
	width uint
	// Indentation used for each level
	indent string
	// Layouts for each head symbol
	layouts map[string]Layout
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.  This is not always possible, for example when a list without a
// layout is too long.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, "  ", make(map[string]Layout)}
}

// Add a layout for lists starting with a given head symbol.
func (p *Formatter) Add(head string, layout Layout) {
	p.layouts[head] = layout
}

// Format a given S-Expression, producing one or more lines of text each
// terminated by a newline.
func (p *Formatter) Format(sexp SExp) string {
	var text formattedText
	//
	p.format(&text, sexp, 0)
	//
	return text.String()
}

func (p *Formatter) format(text *formattedText, sexp SExp, depth int) {
	var list = sexp.AsList()
	//
	if list == nil {
		text.write(sexp.String(true))
		return
	}
	//
	layout, split := p.layouts[list.Head()]
	// Split only when necessary (unless required by the layout)
	split = split && (layout.Always || !p.fits(list, text.lineWidth()))
	//
	text.write("(")
	//
	for i, e := range list.Elements {
		if split && i > layout.Inline {
			text.newLine(strings.Repeat(p.indent, depth+1))
		} else if i > 0 {
			text.write(" ")
		}
		//
		p.format(text, e, depth+1)
	}
	//
	text.write(")")
}

// Check whether a given list can be written on the current line.  This is not
// possible if it contains a list which is always split.
func (p *Formatter) fits(list *List, column uint) bool {
	return !p.alwaysSplits(list) && column+uint(len(list.String(true))) <= p.width
}

func (p *Formatter) alwaysSplits(list *List) bool {
	if layout, ok := p.layouts[list.Head()]; ok && layout.Always {
		return true
	}
	//
	for _, e := range list.Elements {
		if l := e.AsList(); l != nil && p.alwaysSplits(l) {
			return true
		}
	}
	//
	return false
}

// formattedText is a block of text being built up line by line.
type formattedText struct {
	lines []string
}

func (p *formattedText) String() string {
	var builder strings.Builder
	//
	for _, l := range p.lines {
		builder.WriteString(l)
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func (p *formattedText) newLine(indent string) {
	p.lines = append(p.lines, indent)
}

func (p *formattedText) lineWidth() uint {
	if n := len(p.lines); n > 0 {
		return uint(len(p.lines[n-1]))
	}
	//
	return 0
}

func (p *formattedText) write(str string) {
	if n := len(p.lines); n == 0 {
		p.lines = append(p.lines, str)
	} else {
		p.lines[n-1] += str
	}
}
