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
package ast

import (
	"math/big"

	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// Argument represents a concrete argument bound to a parameter of a template
// instance (or function).  Its value is given as a flattened sequence, along
// with the lengths of each dimension.
type Argument struct {
	Name    string
	Values  []big.Int
	Lengths []uint
}

// Lisp converts this argument into an S-Expression.
func (p Argument) Lisp() sexp.SExp {
	return lispOfValues(p.Name, p.Lengths, p.Values)
}

// TemplateInstance is one concrete instantiation of a template, with a
// resolved argument header and its own body.
type TemplateInstance struct {
	Name   string
	Header []Argument
	Code   Statement
	// Constant variables determined for this instance.  This is nil until
	// constants have been computed.
	Constants Constants
}

// SetConstantVariables attaches the finalised constants table to this
// instance.
func (p *TemplateInstance) SetConstantVariables(constants Constants) {
	p.Constants = constants
}

// Lisp converts this instance into an S-Expression.
func (p *TemplateInstance) Lisp() sexp.SExp {
	return lispOfScope("template", p.Name, p.Header, p.Code)
}

// Function is a function of the program.  Its arguments may be bound to
// concrete values, in which case they are available when resolving array
// dimensions in its body.
type Function struct {
	Name      string
	Arguments []Argument
	Body      Statement
	// Constant variables determined for this function.  This is nil until
	// constants have been computed.
	Constants Constants
}

// ReplaceBody replaces the body of this function.
func (p *Function) ReplaceBody(body Statement) {
	p.Body = body
}

// SetConstantVariables attaches the finalised constants table to this
// function.
func (p *Function) SetConstantVariables(constants Constants) {
	p.Constants = constants
}

// Lisp converts this function into an S-Expression.
func (p *Function) Lisp() sexp.SExp {
	return lispOfScope("function", p.Name, p.Arguments, p.Body)
}

// Program is the set of all functions and template instances being compiled.
type Program struct {
	Functions []*Function
	Templates []*TemplateInstance
}

// Function looks up a function by name, returning nil if no such function
// exists.
func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	//
	return nil
}

// Lisp converts this program into a sequence of S-Expressions, one for each
// function followed by one for each template instance.
func (p *Program) Lisp() []sexp.SExp {
	var items []sexp.SExp
	//
	for _, f := range p.Functions {
		items = append(items, f.Lisp())
	}
	//
	for _, t := range p.Templates {
		items = append(items, t.Lisp())
	}
	//
	return items
}

func lispOfScope(kind string, name string, args []Argument, body Statement) sexp.SExp {
	header := sexp.NewList(sexp.NewSymbol("args"))
	//
	for _, arg := range args {
		header.Append(arg.Lisp())
	}
	//
	return sexp.NewList(sexp.NewSymbol(kind), sexp.NewSymbol(name), header, body.Lisp())
}
