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
	"github.com/consensys/go-circuit/pkg/circuit/ast"
)

// EliminateStatement removes structural statements from a given statement,
// returning its replacement.  Structural statements are those which only wire
// components, buses or tags together, along with initialisations of variables
// whose values are already recorded in the given constants table.  Such
// statements are either replaced by an empty block carrying the same metadata,
// or dropped from their enclosing block altogether.  Applying this to its own
// output has no further effect.
func EliminateStatement(stmt ast.Statement, constants ast.Constants) ast.Statement {
	return eliminator{constants}.statementOrEmpty(stmt)
}

// eliminator provides read-only access to the constants table of the scope
// being rewritten.
type eliminator struct {
	constants ast.Constants
}

// Rewrite a statement occupying a position from which it cannot simply be
// dropped, such as the branch of a conditional.
func (p eliminator) statementOrEmpty(stmt ast.Statement) ast.Statement {
	stmt, _ = p.statement(stmt)
	//
	if p.removable(stmt) {
		return ast.NewEmptyBlock(*stmt.Metadata())
	}
	//
	return stmt
}

// Rewrite a given statement, returning its replacement.  The flag indicates
// whether the statement collapsed into an empty block, in which case it can be
// dropped by the enclosing block.
func (p eliminator) statement(stmt ast.Statement) (ast.Statement, bool) {
	switch s := stmt.(type) {
	case *ast.Block:
		s.Stmts = p.filter(s.Stmts)
	case *ast.IfThenElse:
		s.IfCase = p.statementOrEmpty(s.IfCase)
		//
		if s.ElseCase != nil {
			s.ElseCase = p.statementOrEmpty(s.ElseCase)
		}
	case *ast.While:
		s.Stmt = p.statementOrEmpty(s.Stmt)
	case *ast.InitializationBlock:
		s.Initializations = p.initializations(s)
	case *ast.Substitution:
		if p.removable(s) {
			return ast.NewEmptyBlock(s.Meta), true
		}
	case *ast.UnderscoreSubstitution:
		return ast.NewEmptyBlock(s.Meta), true
	case *ast.Declaration, *ast.Return, *ast.Assert, *ast.LogCall, *ast.ConstraintEquality:
		// nothing to do
	default:
		panic("unknown statement encountered")
	}
	//
	return stmt, false
}

// Rewrite a sequence of statements, dropping any which collapse or are
// removable.
func (p eliminator) filter(stmts []ast.Statement) []ast.Statement {
	var nstmts = make([]ast.Statement, 0, len(stmts))
	//
	for _, ith := range stmts {
		if ith, collapsed := p.statement(ith); !collapsed && !p.removable(ith) {
			nstmts = append(nstmts, ith)
		}
	}
	//
	return nstmts
}

func (p eliminator) initializations(s *ast.InitializationBlock) []ast.Statement {
	var inits = make([]ast.Statement, 0, len(s.Initializations))
	//
	switch s.XType.Kind {
	case ast.SIGNAL_KIND, ast.BUS_KIND:
		for _, ith := range s.Initializations {
			switch i := ith.(type) {
			case *ast.Substitution:
				// Substitutions initialising signals are retained unconditionally.
				if s.XType.Kind == ast.SIGNAL_KIND || !p.removable(i) {
					inits = append(inits, i)
				}
			case *ast.Block:
				i.Stmts = p.filter(i.Stmts)
				inits = append(inits, i)
			}
		}
		//
		return inits
	default:
		return p.filter(s.Initializations)
	}
}

// Determine whether a given statement is purely structural and, hence, can be
// removed.
func (p eliminator) removable(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.InitializationBlock:
		return s.XType.IsComponent()
	case *ast.Substitution:
		var knowledge = s.Meta.TypeKnowledge
		//
		return knowledge.IsComponent() || knowledge.IsTag() || ast.IsBusCall(s.Rhe) || ast.IsBusCallArray(s.Rhe) ||
			(s.IsInitialization && p.constants.Has(s.Var))
	default:
		return false
	}
}
