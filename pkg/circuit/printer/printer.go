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
package printer

import (
	"strings"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// NewFormatter constructs a formatter for the textual form of a program, which
// aims to fit its output within a given width.  Scopes, blocks and
// initialisations are always split over multiple lines, whilst conditionals
// and loops are split only when necessary.
func NewFormatter(width uint) *sexp.Formatter {
	formatter := sexp.NewFormatter(width)
	formatter.Add("function", sexp.Layout{Inline: 2, Always: true})
	formatter.Add("template", sexp.Layout{Inline: 2, Always: true})
	formatter.Add("block", sexp.Layout{Always: true})
	formatter.Add("init", sexp.Layout{Inline: 1, Always: true})
	formatter.Add("if", sexp.Layout{Inline: 1})
	formatter.Add("while", sexp.Layout{Inline: 1})
	formatter.Add("constants", sexp.Layout{})
	//
	return formatter
}

// Program returns the textual form of a given program, such that it can be
// read back in.  Functions are given first, followed by template instances.
func Program(program *ast.Program, width uint) string {
	var (
		builder   strings.Builder
		formatter = NewFormatter(width)
	)
	//
	for _, item := range program.Lisp() {
		builder.WriteString(formatter.Format(item))
	}
	//
	return builder.String()
}

// Constants returns the textual form of the constants tables attached to each
// function and template instance of a given program.  Scopes whose constants
// have not been computed are skipped.
func Constants(program *ast.Program, width uint) string {
	var (
		builder   strings.Builder
		formatter = NewFormatter(width)
	)
	//
	for _, fn := range program.Functions {
		if fn.Constants != nil {
			builder.WriteString(formatter.Format(lispOfConstants("function", fn.Name, fn.Constants)))
		}
	}
	//
	for _, t := range program.Templates {
		if t.Constants != nil {
			builder.WriteString(formatter.Format(lispOfConstants("template", t.Name, t.Constants)))
		}
	}
	//
	return builder.String()
}

func lispOfConstants(kind string, name string, constants ast.Constants) sexp.SExp {
	return sexp.NewList(sexp.NewSymbol(kind), sexp.NewSymbol(name), constants.Lisp())
}
