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
	"github.com/consensys/go-circuit/pkg/util/source"
)

// ParseAll converts a given source file into zero or more S-Expressions, or
// returns an error if the file is malformed.  A source map is also returned,
// which maps every S-Expression to its span within the file.  Comments start
// with ';' and extend to the end of the line.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p = parser{
			srcfile: srcfile,
			text:    srcfile.Contents(),
			srcmap:  source.NewSourceMap[SExp](*srcfile),
		}
		// Top-level terms
		terms []SExp
		// Lists which are currently open, innermost last.
		stack []openList
	)
	//
	for tok := p.next(); tok.kind != tokEOF; tok = p.next() {
		var term SExp
		//
		switch tok.kind {
		case tokOpen:
			stack = append(stack, openList{tok.start, &List{}})
			continue
		case tokClose:
			n := len(stack) - 1
			//
			if n < 0 {
				return terms, p.srcmap, p.error(tok.start, tok.end, "unexpected end-of-list")
			}
			//
			term = stack[n].list
			p.srcmap.Put(term, source.NewSpan(stack[n].start, tok.end))
			stack = stack[:n]
		case tokSymbol:
			term = &Symbol{string(p.text[tok.start:tok.end])}
			p.srcmap.Put(term, source.NewSpan(tok.start, tok.end))
		}
		// Attach term to enclosing list (if any)
		if n := len(stack); n > 0 {
			stack[n-1].list.Append(term)
		} else {
			terms = append(terms, term)
		}
	}
	//
	if n := len(stack); n > 0 {
		return terms, p.srcmap, p.error(stack[n-1].start, len(p.text), "unexpected end-of-file")
	}
	//
	return terms, p.srcmap, nil
}

// A list whose closing parenthesis has not yet been reached.
type openList struct {
	start int
	list  *List
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokSymbol
)

type token struct {
	kind  tokenKind
	start int
	end   int
}

// parser splits the contents of a source file into tokens.
type parser struct {
	srcfile *source.File
	text    []rune
	// Position of the next unread character
	index  int
	srcmap *source.Map[SExp]
}

// Read the next token, skipping any whitespace and comments beforehand.
func (p *parser) next() token {
	p.skipWhiteSpace()
	//
	var start = p.index
	//
	if start == len(p.text) {
		return token{tokEOF, start, start}
	}
	//
	switch p.text[start] {
	case '(':
		p.index++
		return token{tokOpen, start, p.index}
	case ')':
		p.index++
		return token{tokClose, start, p.index}
	}
	//
	for p.index < len(p.text) && !isDelimiter(p.text[p.index]) {
		p.index++
	}
	//
	return token{tokSymbol, start, p.index}
}

func (p *parser) skipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case isDelimiter(c) && c != '(' && c != ')':
			p.index++
		default:
			return
		}
	}
}

func (p *parser) error(start int, end int, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(source.NewSpan(start, end), msg)
}
