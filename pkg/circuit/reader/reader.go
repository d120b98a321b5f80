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
package reader

import (
	"fmt"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/util/source"
	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// ===================================================================
// Public
// ===================================================================

// ReadSourceFiles reads zero or more source files into a single program.
// Functions and template instances are retained in the order they are
// declared, with those of earlier files coming first.  Every node read is
// given a unique element identifier.
func ReadSourceFiles(files []source.File) (*ast.Program, []source.SyntaxError) {
	var (
		program ast.Program
		errors  []source.SyntaxError
		// Next available element identifier
		elemID uint
	)
	//
	for i := range files {
		p, errs := readSourceFile(&files[i], &elemID)
		// Handle errors
		errors = append(errors, errs...)
		//
		program.Functions = append(program.Functions, p.Functions...)
		program.Templates = append(program.Templates, p.Templates...)
	}
	//
	return &program, errors
}

// ReadSourceFile reads the contents of a single source file into a program.
func ReadSourceFile(srcfile *source.File) (*ast.Program, []source.SyntaxError) {
	var elemID uint
	//
	return readSourceFile(srcfile, &elemID)
}

func readSourceFile(srcfile *source.File, elemID *uint) (*ast.Program, []source.SyntaxError) {
	var (
		program ast.Program
		errors  []source.SyntaxError
	)
	// Parse bytes into S-Expressions
	terms, srcmap, err := sexp.ParseAll(srcfile)
	// Check file parsed ok
	if err != nil {
		return &program, []source.SyntaxError{*err}
	}
	//
	r := &Reader{srcfile, srcmap, elemID}
	//
	for _, term := range terms {
		errors = append(errors, r.readScope(&program, term)...)
	}
	//
	return &program, errors
}

// Reader converts S-Expressions into the nodes of an annotated syntax tree.
type Reader struct {
	srcfile *source.File
	// Mapping from S-Expressions to their spans in the original text.
	srcmap *source.Map[sexp.SExp]
	// Next available element identifier, which is shared between readers of
	// the same program.
	elemID *uint
}

// Construct the metadata for a node read from a given S-Expression.
func (r *Reader) meta(s sexp.SExp) ast.Meta {
	var meta = ast.Meta{ElemID: *r.elemID, File: r.srcfile, Span: r.srcmap.Get(s)}
	//
	*r.elemID = *r.elemID + 1
	//
	return meta
}

func (r *Reader) syntaxError(s sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*r.srcmap.SyntaxError(s, msg)}
}

// ===================================================================
// Scopes
// ===================================================================

func (r *Reader) readScope(program *ast.Program, term sexp.SExp) []source.SyntaxError {
	var list = term.AsList()
	//
	if list == nil || list.Len() < 2 || !isSymbol(list.Get(0)) || !isSymbol(list.Get(1)) {
		return r.syntaxError(term, "expected function or template")
	} else if list.Len() != 4 {
		return r.syntaxError(term, fmt.Sprintf("expected 4 elements, found %d", list.Len()))
	}
	//
	var (
		kind = list.Head()
		name = list.Get(1).AsSymbol().Value
	)
	//
	args, errors := r.readArguments(list.Get(2))
	body, errs := r.readStatement(list.Get(3))
	//
	if errors = append(errors, errs...); len(errors) > 0 {
		return errors
	}
	//
	switch kind {
	case "function":
		program.Functions = append(program.Functions, &ast.Function{Name: name, Arguments: args, Body: body})
	case "template":
		program.Templates = append(program.Templates, &ast.TemplateInstance{Name: name, Header: args, Code: body})
	default:
		return r.syntaxError(list.Get(0), fmt.Sprintf("unknown declaration %s", kind))
	}
	//
	return nil
}

func (r *Reader) readArguments(term sexp.SExp) ([]ast.Argument, []source.SyntaxError) {
	var (
		list   = term.AsList()
		args   []ast.Argument
		errors []source.SyntaxError
	)
	//
	if list == nil || list.Head() != "args" {
		return nil, r.syntaxError(term, "expected argument list")
	}
	//
	for _, ith := range list.Elements[1:] {
		arg, errs := r.readArgument(ith)
		errors = append(errors, errs...)
		args = append(args, arg)
	}
	//
	return args, errors
}

// Read an argument of the form "(n 1)" or "(n (dims 2 2) 1 2 3 4)".
func (r *Reader) readArgument(term sexp.SExp) (ast.Argument, []source.SyntaxError) {
	var (
		arg    ast.Argument
		list   = term.AsList()
		values []sexp.SExp
	)
	//
	if list == nil || list.Len() == 0 || !isSymbol(list.Get(0)) {
		return arg, r.syntaxError(term, "expected argument")
	}
	//
	arg.Name, values = list.Head(), list.Elements[1:]
	//
	if len(values) > 0 && values[0].AsList() != nil {
		var errors []source.SyntaxError
		//
		if arg.Lengths, errors = r.readDims(values[0]); len(errors) > 0 {
			return arg, errors
		}
		//
		values = values[1:]
	}
	//
	for _, v := range values {
		val, ok := readNumber(v)
		//
		if !ok {
			return arg, r.syntaxError(v, "expected number")
		}
		//
		arg.Values = append(arg.Values, *val)
	}
	//
	if size, ok := ast.CheckedSize(arg.Lengths); !ok {
		return arg, r.syntaxError(term, "array size overflows")
	} else if size != uint(len(arg.Values)) {
		msg := fmt.Sprintf("expected %d values, found %d", size, len(arg.Values))
		return arg, r.syntaxError(term, msg)
	}
	//
	return arg, nil
}

func (r *Reader) readDims(term sexp.SExp) ([]uint, []source.SyntaxError) {
	var (
		list = term.AsList()
		dims []uint
	)
	//
	if list.Head() != "dims" {
		return nil, r.syntaxError(term, "expected dimensions")
	}
	//
	for _, ith := range list.Elements[1:] {
		val, ok := readNumber(ith)
		//
		if !ok || !val.IsUint64() {
			return nil, r.syntaxError(ith, "invalid dimension")
		}
		//
		dims = append(dims, uint(val.Uint64()))
	}
	//
	return dims, nil
}

// ===================================================================
// Variable Types
// ===================================================================

func (r *Reader) readVariableType(term sexp.SExp) (ast.VariableType, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		switch sym.Value {
		case "var":
			return ast.NewVar(), nil
		case "component":
			return ast.NewComponent(), nil
		case "anonymous":
			return ast.NewAnonymousComponent(), nil
		case "signal":
			return ast.NewSignal(ast.INTERMEDIATE), nil
		}
		//
		return ast.VariableType{}, r.syntaxError(term, "unknown variable type")
	}
	//
	var (
		list  = term.AsList()
		rest  []sexp.SExp
		xtype ast.VariableType
	)
	//
	switch {
	case list.HeadIs("signal"):
		xtype, rest = ast.NewSignal(ast.INTERMEDIATE), list.Elements[1:]
	case list.HeadIs("bus") && list.Len() > 1 && isSymbol(list.Get(1)):
		xtype, rest = ast.NewBus(list.Get(1).AsSymbol().Value, ast.INTERMEDIATE), list.Elements[2:]
	default:
		return xtype, r.syntaxError(term, "unknown variable type")
	}
	// Direction (if given) followed by tags
	for i, ith := range rest {
		sym := ith.AsSymbol()
		//
		if sym == nil {
			return xtype, r.syntaxError(ith, "expected symbol")
		} else if i > 0 {
			xtype.Tags = append(xtype.Tags, sym.Value)
		} else if direction, ok := signalTypes[sym.Value]; ok {
			xtype.Signal = direction
		} else {
			return xtype, r.syntaxError(ith, "unknown signal direction")
		}
	}
	//
	return xtype, nil
}

var signalTypes = map[string]ast.SignalType{
	"intermediate": ast.INTERMEDIATE,
	"input":        ast.INPUT,
	"output":       ast.OUTPUT,
}
