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

// Read a statement, such as "(block ...)" or "(= x 1 :init)".
func (r *Reader) readStatement(term sexp.SExp) (ast.Statement, []source.SyntaxError) {
	var list = term.AsList()
	//
	if list == nil || list.Len() == 0 || !isSymbol(list.Get(0)) {
		return nil, r.syntaxError(term, "expected statement")
	}
	//
	switch head := list.Head(); head {
	case "block":
		return r.readBlock(list)
	case "if":
		return r.readIfThenElse(list)
	case "while":
		return r.readWhile(list)
	case "init":
		return r.readInitializationBlock(list)
	case "declare":
		return r.readDeclaration(list)
	case "_":
		return r.readUnderscoreSubstitution(list)
	case "return":
		return r.readUnary(list, func(meta ast.Meta, e ast.Expression) ast.Statement {
			return &ast.Return{Meta: meta, Value: e}
		})
	case "assert":
		return r.readUnary(list, func(meta ast.Meta, e ast.Expression) ast.Statement {
			return &ast.Assert{Meta: meta, Arg: e}
		})
	case "log":
		args, errors := r.readExpressions(list.Elements[1:])
		return &ast.LogCall{Meta: r.meta(list), Args: args}, errors
	case "===":
		return r.readConstraintEquality(list)
	default:
		if op, ok := ast.ParseAssignOp(head); ok {
			return r.readSubstitution(op, list)
		}
		//
		return nil, r.syntaxError(list.Get(0), fmt.Sprintf("unknown statement %s", head))
	}
}

func (r *Reader) readStatements(terms []sexp.SExp) ([]ast.Statement, []source.SyntaxError) {
	var (
		stmts  = make([]ast.Statement, 0, len(terms))
		errors []source.SyntaxError
	)
	//
	for _, ith := range terms {
		stmt, errs := r.readStatement(ith)
		errors = append(errors, errs...)
		stmts = append(stmts, stmt)
	}
	//
	return stmts, errors
}

func (r *Reader) readBlock(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	stmts, errors := r.readStatements(list.Elements[1:])
	//
	return &ast.Block{Meta: r.meta(list), Stmts: stmts}, errors
}

func (r *Reader) readIfThenElse(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() != 3 && list.Len() != 4 {
		return nil, r.syntaxError(list, "expected condition and one or two branches")
	}
	//
	var (
		stmt         = &ast.IfThenElse{Meta: r.meta(list)}
		errors, errs []source.SyntaxError
	)
	//
	stmt.Cond, errors = r.readExpression(list.Get(1))
	stmt.IfCase, errs = r.readStatement(list.Get(2))
	errors = append(errors, errs...)
	//
	if list.Len() == 4 {
		stmt.ElseCase, errs = r.readStatement(list.Get(3))
		errors = append(errors, errs...)
	}
	//
	return stmt, errors
}

func (r *Reader) readWhile(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() != 3 {
		return nil, r.syntaxError(list, "expected condition and body")
	}
	//
	var (
		stmt         = &ast.While{Meta: r.meta(list)}
		errors, errs []source.SyntaxError
	)
	//
	stmt.Cond, errors = r.readExpression(list.Get(1))
	stmt.Stmt, errs = r.readStatement(list.Get(2))
	//
	return stmt, append(errors, errs...)
}

func (r *Reader) readInitializationBlock(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() < 2 {
		return nil, r.syntaxError(list, "expected variable type")
	}
	//
	xtype, errors := r.readVariableType(list.Get(1))
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	inits, errors := r.readStatements(list.Elements[2:])
	//
	return &ast.InitializationBlock{Meta: r.meta(list), XType: xtype, Initializations: inits}, errors
}

// Read a declaration of the form "(declare var x 2 3)".
func (r *Reader) readDeclaration(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() < 3 || !isSymbol(list.Get(2)) {
		return nil, r.syntaxError(list, "expected variable type and name")
	}
	//
	xtype, errors := r.readVariableType(list.Get(1))
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	var (
		meta      = r.meta(list)
		name      = list.Get(2).AsSymbol().Value
		dims, err = r.readExpressions(list.Elements[3:])
	)
	//
	return &ast.Declaration{Meta: meta, XType: xtype, Name: name, Dimensions: dims}, err
}

// Read a substitution of the form "(= x e)" or "(<== (access c (field in)) e
// :component)".
func (r *Reader) readSubstitution(op ast.AssignOp, list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() < 3 {
		return nil, r.syntaxError(list, "expected target and value")
	}
	//
	var (
		stmt                 = &ast.Substitution{Meta: r.meta(list), Op: op}
		errors, errs, optErr []source.SyntaxError
	)
	//
	stmt.Var, stmt.Access, errors = r.readTarget(list.Get(1))
	stmt.Rhe, errs = r.readExpression(list.Get(2))
	//
	for _, ith := range list.Elements[3:] {
		var sym = ith.AsSymbol()
		//
		if sym == nil {
			optErr = append(optErr, r.syntaxError(ith, "expected option")...)
		} else if sym.Value == ":init" {
			stmt.IsInitialization = true
		} else if reduction, ok := ast.ParseReductionOption(sym.Value); ok {
			stmt.Meta.TypeKnowledge.ReducesTo = reduction
		} else {
			optErr = append(optErr, r.syntaxError(ith, "unknown option")...)
		}
	}
	//
	return stmt, append(append(errors, errs...), optErr...)
}

func (r *Reader) readUnderscoreSubstitution(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() != 3 || !isSymbol(list.Get(1)) {
		return nil, r.syntaxError(list, "expected operator and value")
	}
	//
	op, ok := ast.ParseAssignOp(list.Get(1).AsSymbol().Value)
	//
	if !ok {
		return nil, r.syntaxError(list.Get(1), "unknown assignment operator")
	}
	//
	meta := r.meta(list)
	rhe, errors := r.readExpression(list.Get(2))
	//
	return &ast.UnderscoreSubstitution{Meta: meta, Op: op, Rhe: rhe}, errors
}

func (r *Reader) readConstraintEquality(list *sexp.List) (ast.Statement, []source.SyntaxError) {
	if list.Len() != 3 {
		return nil, r.syntaxError(list, "expected two expressions")
	}
	//
	var (
		stmt         = &ast.ConstraintEquality{Meta: r.meta(list)}
		errors, errs []source.SyntaxError
	)
	//
	stmt.Lhe, errors = r.readExpression(list.Get(1))
	stmt.Rhe, errs = r.readExpression(list.Get(2))
	//
	return stmt, append(errors, errs...)
}

func (r *Reader) readUnary(list *sexp.List,
	constructor func(ast.Meta, ast.Expression) ast.Statement) (ast.Statement, []source.SyntaxError) {
	//
	if list.Len() != 2 {
		return nil, r.syntaxError(list, "expected exactly one expression")
	}
	//
	meta := r.meta(list)
	arg, errors := r.readExpression(list.Get(1))
	//
	return constructor(meta, arg), errors
}

// Read the target of a substitution, which is either a name or an access path
// of the form "(access x (index 0) (field f))".
func (r *Reader) readTarget(term sexp.SExp) (string, []ast.Access, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		return sym.Value, nil, nil
	}
	//
	var list = term.AsList()
	//
	if !list.HeadIs("access") || list.Len() < 2 || !isSymbol(list.Get(1)) {
		return "", nil, r.syntaxError(term, "expected substitution target")
	}
	//
	access, errors := r.readAccessPath(list.Elements[2:])
	//
	return list.Get(1).AsSymbol().Value, access, errors
}
