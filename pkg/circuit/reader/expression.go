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
	"math/big"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/util/source"
	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// Read an expression.  Symbols are either numbers or variable names, whilst
// lists are identified by their head.
func (r *Reader) readExpression(term sexp.SExp) (ast.Expression, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		if val, ok := readNumber(sym); ok {
			return ast.NewNumber(r.meta(term), val), nil
		}
		//
		return &ast.Variable{Meta: r.meta(term), Name: sym.Value}, nil
	}
	//
	var list = term.AsList()
	//
	if list.Len() == 0 || !isSymbol(list.Get(0)) {
		return nil, r.syntaxError(term, "expected expression")
	}
	//
	switch head := list.Head(); head {
	case "array":
		values, errors := r.readExpressions(list.Elements[1:])
		return &ast.ArrayInLine{Meta: r.meta(list), Values: values}, errors
	case "uniform":
		return r.readUniformArray(list)
	case "access":
		return r.readVariableAccess(list)
	case "?":
		return r.readInlineSwitch(list)
	case "call", "buscall":
		return r.readCall(head == "buscall", list)
	default:
		if op, ok := ast.ParsePrefixOpcode(head); ok && list.Len() == 2 {
			meta := r.meta(list)
			rhe, errors := r.readExpression(list.Get(1))
			//
			return &ast.PrefixOp{Meta: meta, Op: op, Rhe: rhe}, errors
		} else if op, ok := ast.ParseInfixOpcode(head); ok && list.Len() == 3 {
			var (
				expr         = &ast.InfixOp{Meta: r.meta(list), Op: op}
				errors, errs []source.SyntaxError
			)
			//
			expr.Lhe, errors = r.readExpression(list.Get(1))
			expr.Rhe, errs = r.readExpression(list.Get(2))
			//
			return expr, append(errors, errs...)
		}
		//
		return nil, r.syntaxError(list.Get(0), fmt.Sprintf("unknown expression %s", head))
	}
}

func (r *Reader) readExpressions(terms []sexp.SExp) ([]ast.Expression, []source.SyntaxError) {
	var (
		exprs  = make([]ast.Expression, 0, len(terms))
		errors []source.SyntaxError
	)
	//
	for _, ith := range terms {
		expr, errs := r.readExpression(ith)
		errors = append(errors, errs...)
		exprs = append(exprs, expr)
	}
	//
	return exprs, errors
}

func (r *Reader) readUniformArray(list *sexp.List) (ast.Expression, []source.SyntaxError) {
	if list.Len() != 3 {
		return nil, r.syntaxError(list, "expected value and dimension")
	}
	//
	var (
		expr         = &ast.UniformArray{Meta: r.meta(list)}
		errors, errs []source.SyntaxError
	)
	//
	expr.Value, errors = r.readExpression(list.Get(1))
	expr.Dimension, errs = r.readExpression(list.Get(2))
	//
	switch expr.Dimension.(type) {
	case *ast.ArrayInLine, *ast.UniformArray:
		errs = append(errs, r.syntaxError(list.Get(2), "array dimension must be a scalar")...)
	}
	//
	return expr, append(errors, errs...)
}

func (r *Reader) readVariableAccess(list *sexp.List) (ast.Expression, []source.SyntaxError) {
	if list.Len() < 2 || !isSymbol(list.Get(1)) {
		return nil, r.syntaxError(list, "expected variable name")
	}
	//
	meta := r.meta(list)
	access, errors := r.readAccessPath(list.Elements[2:])
	//
	return &ast.Variable{Meta: meta, Name: list.Get(1).AsSymbol().Value, Access: access}, errors
}

func (r *Reader) readInlineSwitch(list *sexp.List) (ast.Expression, []source.SyntaxError) {
	if list.Len() != 4 {
		return nil, r.syntaxError(list, "expected condition and two branches")
	}
	//
	var (
		expr   = &ast.InlineSwitch{Meta: r.meta(list)}
		errors []source.SyntaxError
		errs   [3][]source.SyntaxError
	)
	//
	expr.Cond, errs[0] = r.readExpression(list.Get(1))
	expr.IfTrue, errs[1] = r.readExpression(list.Get(2))
	expr.IfFalse, errs[2] = r.readExpression(list.Get(3))
	//
	for _, e := range errs {
		errors = append(errors, e...)
	}
	//
	return expr, errors
}

func (r *Reader) readCall(bus bool, list *sexp.List) (ast.Expression, []source.SyntaxError) {
	if list.Len() < 2 || !isSymbol(list.Get(1)) {
		return nil, r.syntaxError(list, "expected function name")
	}
	//
	var (
		meta         = r.meta(list)
		name         = list.Get(1).AsSymbol().Value
		args, errors = r.readExpressions(list.Elements[2:])
	)
	//
	if bus {
		return &ast.BusCall{Meta: meta, ID: name, Args: args}, errors
	}
	//
	return &ast.Call{Meta: meta, ID: name, Args: args}, errors
}

// Read a sequence of accesses, each of the form "(index e)" or "(field f)".
func (r *Reader) readAccessPath(terms []sexp.SExp) ([]ast.Access, []source.SyntaxError) {
	var (
		access []ast.Access
		errors []source.SyntaxError
	)
	//
	for _, ith := range terms {
		var list = ith.AsList()
		//
		switch {
		case list.HeadIs("index") && list.Len() == 2:
			index, errs := r.readExpression(list.Get(1))
			errors = append(errors, errs...)
			access = append(access, ast.NewArrayAccess(index))
		case list.HeadIs("field") && list.Len() == 2:
			if !isSymbol(list.Get(1)) {
				errors = append(errors, r.syntaxError(list.Get(1), "expected field name")...)
			} else {
				access = append(access, ast.NewFieldAccess(list.Get(1).AsSymbol().Value))
			}
		default:
			errors = append(errors, r.syntaxError(ith, "expected index or field access")...)
		}
	}
	//
	return access, errors
}

// ===================================================================
// Helpers
// ===================================================================

func isSymbol(term sexp.SExp) bool {
	return term.AsSymbol() != nil
}

// Read a (possibly negative) decimal number.
func readNumber(term sexp.SExp) (*big.Int, bool) {
	var (
		sym = term.AsSymbol()
		val big.Int
	)
	//
	if sym == nil {
		return nil, false
	} else if _, ok := val.SetString(sym.Value, 10); !ok {
		return nil, false
	}
	//
	return &val, true
}
