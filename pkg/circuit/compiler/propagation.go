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
package compiler

import (
	"math/big"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
)

// Propagate constants through a given statement, updating the constants table
// of this scope as it goes.  Statements are visited depth first, and left to
// right.  The tree is modified in place only to record resolved dimensions.
//
// Observe that both branches of a conditional are visited one after the other
// against the same table, and that loop bodies are visited exactly once.  This
// is a deliberately conservative approximation: initialisations in both
// branches of a conditional leave the last one visited in the table.
func (p *scope) treatStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, ith := range s.Stmts {
			p.treatStatement(ith)
		}
	case *ast.IfThenElse:
		p.treatStatement(s.IfCase)
		//
		if s.ElseCase != nil {
			p.treatStatement(s.ElseCase)
		}
	case *ast.While:
		p.treatStatement(s.Stmt)
	case *ast.InitializationBlock:
		// Only the declarations and substitutions of a block are considered.
		for _, ith := range s.Initializations {
			switch ith := ith.(type) {
			case *ast.Declaration:
				p.treatDeclaration(ith)
			case *ast.Substitution:
				p.treatSubstitution(ith)
			}
		}
	case *ast.Declaration:
		p.treatDeclaration(s)
	case *ast.Substitution:
		p.treatSubstitution(s)
	case *ast.UnderscoreSubstitution, *ast.Return, *ast.Assert, *ast.LogCall, *ast.ConstraintEquality:
		return
	default:
		panic("unknown statement encountered")
	}
}

func (p *scope) treatDeclaration(s *ast.Declaration) {
	var dimensions = p.concreteDimensions(s)
	//
	s.Meta.MemoryKnowledge.ConcreteDimensions = dimensions
	//
	if s.XType.Kind != ast.VAR {
		return
	} else if !p.usedNames.Insert(s.Name) {
		// Redeclared, hence this variable can no longer be considered constant.
		delete(p.constants, s.Name)
		return
	}
	//
	p.constants[s.Name] = ast.Constant{
		Dimensions: dimensions,
		Values:     make([]big.Int, ast.Size(dimensions)),
	}
}

// Determine the concrete dimensions of a declaration.  If any dimension cannot
// be resolved, then the declaration is given an empty shape.  Nonetheless, all
// dimensions are resolved so that every failure is reported.
func (p *scope) concreteDimensions(s *ast.Declaration) []uint {
	var (
		dimensions = make([]uint, 0, len(s.Dimensions))
		failed     = false
	)
	// Anonymous components are sized elsewhere.
	if s.XType.Kind == ast.ANONYMOUS_COMPONENT_KIND {
		return dimensions
	}
	//
	for _, dim := range s.Dimensions {
		if size, ok := p.resolveDimension(dim); ok {
			dimensions = append(dimensions, size)
		} else {
			failed = true
		}
	}
	//
	if failed {
		return make([]uint, 0)
	} else if _, ok := ast.CheckedSize(dimensions); !ok {
		p.reportInvalidDimension(s.Metadata())
		return make([]uint, 0)
	}
	//
	return dimensions
}

func (p *scope) treatSubstitution(s *ast.Substitution) {
	p.treatExpression(s.Rhe)
	//
	constant, ok := p.constants[s.Var]
	//
	if !ok {
		return
	} else if !s.IsInitialization || len(s.Access) != 0 {
		// Only complete initialisations are tracked.
		delete(p.constants, s.Var)
		return
	}
	//
	values, ok := IsConstantExpression(s.Rhe)
	//
	if !ok {
		delete(p.constants, s.Var)
		return
	}
	// Partial initialisations are padded with zeros.
	for len(values) < len(constant.Values) {
		values = append(values, big.Int{})
	}
	//
	p.constants[s.Var] = ast.Constant{Dimensions: constant.Dimensions, Values: values}
}

// Resolve the dimension of every uniform array within a given expression,
// rewriting it in place to a literal number.  A dimension which fails to
// resolve is reported and left untouched.
func (p *scope) treatExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Number:
		return
	case *ast.Variable:
		p.treatAccess(e.Access)
	case *ast.ArrayInLine:
		p.treatExpressions(e.Values...)
	case *ast.UniformArray:
		p.treatExpression(e.Value)
		//
		if size, ok := p.resolveDimension(e.Dimension); ok {
			var value big.Int
			//
			e.Dimension = ast.NewNumber(*e.Dimension.Metadata(), value.SetUint64(uint64(size)))
		}
	case *ast.InfixOp:
		p.treatExpressions(e.Lhe, e.Rhe)
	case *ast.PrefixOp:
		p.treatExpression(e.Rhe)
	case *ast.InlineSwitch:
		p.treatExpressions(e.Cond, e.IfTrue, e.IfFalse)
	case *ast.Call:
		p.treatExpressions(e.Args...)
	case *ast.BusCall:
		p.treatExpressions(e.Args...)
	default:
		panic("unknown expression encountered")
	}
}

func (p *scope) treatExpressions(exprs ...ast.Expression) {
	for _, e := range exprs {
		p.treatExpression(e)
	}
}

func (p *scope) treatAccess(access []ast.Access) {
	for _, a := range access {
		if a.IsArrayAccess() {
			p.treatExpression(a.Index)
		}
	}
}
