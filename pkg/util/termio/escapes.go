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
package termio

import (
	"fmt"
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// AnsiEscape represents an ANSI "select graphic rendition" sequence used for
// styling text printed to a terminal, such as the highlighted parts of a
// diagnostic.  An escape without any parameters has no effect.
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape construct an empty escape
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// Bold returns this escape with bold text enabled.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with(1)
}

// Underline returns this escape with underlined text enabled.
func (p AnsiEscape) Underline() AnsiEscape {
	return p.with(4)
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return p.with(30 + col)
}

// Build constructs the final escape, or the empty string if this escape has no
// parameters.
func (p AnsiEscape) Build() string {
	if len(p.params) == 0 {
		return ""
	}
	//
	var params = make([]string, len(p.params))
	//
	for i, ith := range p.params {
		params[i] = fmt.Sprintf("%d", ith)
	}
	//
	return fmt.Sprintf("\033[%sm", strings.Join(params, ";"))
}

// Apply styles a given piece of text, resetting the style afterwards.
func (p AnsiEscape) Apply(text string) string {
	if len(p.params) == 0 {
		return text
	}
	//
	return fmt.Sprintf("%s%s\033[0m", p.Build(), text)
}

func (p AnsiEscape) with(param uint) AnsiEscape {
	// Avoid sharing the underlying array between escapes
	params := make([]uint, len(p.params), len(p.params)+1)
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
