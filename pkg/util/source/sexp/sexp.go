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
	"fmt"
	"strings"
	"unicode"
)

// SExp is an S-Expression, which is either a List of zero or more
// S-Expressions or a Symbol.
type SExp interface {
	// AsList returns this S-Expression if it is a list, or nil otherwise.
	AsList() *List
	// AsSymbol returns this S-Expression if it is a symbol, or nil otherwise.
	AsSymbol() *Symbol
	// String generates the textual form of this S-Expression.  When quoting is
	// enabled, symbols which could not be read back in as a single symbol are
	// enclosed in quotes.
	String(quote bool) string
}

// ===================================================================
// List
// ===================================================================

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements ...SExp) *List {
	return &List{elements}
}

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Append a new element onto this list.
func (l *List) Append(element SExp) {
	l.Elements = append(l.Elements, element)
}

// Head returns the first element of this list when it is a symbol, or the
// empty string otherwise.
func (l *List) Head() string {
	if len(l.Elements) == 0 {
		return ""
	} else if sym := l.Elements[0].AsSymbol(); sym != nil {
		return sym.Value
	}
	//
	return ""
}

// HeadIs checks whether this list starts with a given symbol, as in "(index
// 0)".  This is safe to call on a nil list.
func (l *List) HeadIs(head string) bool {
	return l != nil && len(l.Elements) > 0 && l.Head() == head
}

func (l *List) String(quote bool) string {
	var builder strings.Builder
	//
	l.write(&builder, quote)
	//
	return builder.String()
}

func (l *List) write(builder *strings.Builder, quote bool) {
	builder.WriteByte('(')
	//
	for i, e := range l.Elements {
		if i > 0 {
			builder.WriteByte(' ')
		}
		//
		switch e := e.(type) {
		case *List:
			e.write(builder, quote)
		default:
			builder.WriteString(e.String(quote))
		}
	}
	//
	builder.WriteByte(')')
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol, such as a name, a number or an
// operator.
type Symbol struct {
	Value string
}

var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String(quote bool) string {
	if quote && (s.Value == "" || strings.ContainsFunc(s.Value, isDelimiter)) {
		return fmt.Sprintf("%q", s.Value)
	}
	//
	return s.Value
}

// Determine whether a given character terminates a symbol.
func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == ';' || unicode.IsSpace(r)
}
