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
	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// Statement represents an arbitrary statement appearing in a template or
// function body.  Each statement exclusively owns its children, and passes
// which rewrite the tree return the replacement for the statement they were
// given.
type Statement interface {
	// Metadata returns the metadata associated with this statement.
	Metadata() *Meta
	// Lisp converts this statement into an S-Expression, for example so it can
	// be printed.
	Lisp() sexp.SExp
	// Marker method which closes this sum type.
	isStatement()
}

// ============================================================================
// Block
// ============================================================================

// Block represents a sequence of zero or more statements.
type Block struct {
	Meta  Meta
	Stmts []Statement
}

// NewEmptyBlock constructs an empty block carrying the given metadata.  This is
// used as the replacement for statements which are eliminated, such that their
// position in the original source is retained.
func NewEmptyBlock(meta Meta) *Block {
	return &Block{Meta: meta}
}

// Metadata implementation for Statement interface.
func (s *Block) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *Block) Lisp() sexp.SExp {
	return listOfStatements(sexp.NewList(sexp.NewSymbol("block")), s.Stmts)
}

func (s *Block) isStatement() {}

// ============================================================================
// IfThenElse
// ============================================================================

// IfThenElse represents a conditional statement with an optional false branch.
type IfThenElse struct {
	Meta     Meta
	Cond     Expression
	IfCase   Statement
	ElseCase Statement
}

// Metadata implementation for Statement interface.
func (s *IfThenElse) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *IfThenElse) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol("if"), s.Cond.Lisp(), s.IfCase.Lisp())
	//
	if s.ElseCase != nil {
		list.Append(s.ElseCase.Lisp())
	}
	//
	return list
}

func (s *IfThenElse) isStatement() {}

// ============================================================================
// While
// ============================================================================

// While represents a loop which executes its body until its condition fails.
type While struct {
	Meta Meta
	Cond Expression
	Stmt Statement
}

// Metadata implementation for Statement interface.
func (s *While) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *While) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("while"), s.Cond.Lisp(), s.Stmt.Lisp())
}

func (s *While) isStatement() {}

// ============================================================================
// InitializationBlock
// ============================================================================

// InitializationBlock groups the declarations and initialising substitutions
// arising from a single source level declaration, such as "var x[2] = [1,2]".
type InitializationBlock struct {
	Meta            Meta
	XType           VariableType
	Initializations []Statement
}

// Metadata implementation for Statement interface.
func (s *InitializationBlock) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *InitializationBlock) Lisp() sexp.SExp {
	return listOfStatements(sexp.NewList(sexp.NewSymbol("init"), s.XType.Lisp()), s.Initializations)
}

func (s *InitializationBlock) isStatement() {}

// ============================================================================
// Declaration
// ============================================================================

// Declaration represents the declaration of a (possibly multi-dimensional)
// variable, signal, bus or component.
type Declaration struct {
	Meta       Meta
	XType      VariableType
	Name       string
	Dimensions []Expression
}

// Metadata implementation for Statement interface.
func (s *Declaration) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *Declaration) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol("declare"), s.XType.Lisp(), sexp.NewSymbol(s.Name))
	//
	for _, d := range s.Dimensions {
		list.Append(d.Lisp())
	}
	//
	return list
}

func (s *Declaration) isStatement() {}

// ============================================================================
// Substitution
// ============================================================================

// Substitution represents an assignment to a (possibly indexed) variable,
// signal, bus or component.
type Substitution struct {
	Meta   Meta
	Var    string
	Access []Access
	Op     AssignOp
	Rhe    Expression
	// Indicates this substitution initialises the variable as part of its
	// declaration.
	IsInitialization bool
}

// Metadata implementation for Statement interface.
func (s *Substitution) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *Substitution) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(s.Op.String()), lispOfAccess(s.Var, s.Access), s.Rhe.Lisp())
	//
	if s.IsInitialization {
		list.Append(sexp.NewSymbol(":init"))
	}
	//
	if option := reductionOption(s.Meta.TypeKnowledge.ReducesTo); option != "" {
		list.Append(sexp.NewSymbol(option))
	}
	//
	return list
}

func (s *Substitution) isStatement() {}

// ============================================================================
// UnderscoreSubstitution
// ============================================================================

// UnderscoreSubstitution represents an assignment whose result is discarded,
// such as "_ <== e".
type UnderscoreSubstitution struct {
	Meta Meta
	Op   AssignOp
	Rhe  Expression
}

// Metadata implementation for Statement interface.
func (s *UnderscoreSubstitution) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *UnderscoreSubstitution) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("_"), sexp.NewSymbol(s.Op.String()), s.Rhe.Lisp())
}

func (s *UnderscoreSubstitution) isStatement() {}

// ============================================================================
// Return
// ============================================================================

// Return represents a return from a function body.
type Return struct {
	Meta  Meta
	Value Expression
}

// Metadata implementation for Statement interface.
func (s *Return) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *Return) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("return"), s.Value.Lisp())
}

func (s *Return) isStatement() {}

// ============================================================================
// Assert
// ============================================================================

// Assert represents a runtime assertion.
type Assert struct {
	Meta Meta
	Arg  Expression
}

// Metadata implementation for Statement interface.
func (s *Assert) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *Assert) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("assert"), s.Arg.Lisp())
}

func (s *Assert) isStatement() {}

// ============================================================================
// LogCall
// ============================================================================

// LogCall represents a debug print of zero or more expressions.
type LogCall struct {
	Meta Meta
	Args []Expression
}

// Metadata implementation for Statement interface.
func (s *LogCall) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *LogCall) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol("log"), s.Args...)
}

func (s *LogCall) isStatement() {}

// ============================================================================
// ConstraintEquality
// ============================================================================

// ConstraintEquality represents an explicit constraint "a === b".
type ConstraintEquality struct {
	Meta Meta
	Lhe  Expression
	Rhe  Expression
}

// Metadata implementation for Statement interface.
func (s *ConstraintEquality) Metadata() *Meta { return &s.Meta }

// Lisp implementation for Statement interface.
func (s *ConstraintEquality) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol("==="), s.Lhe, s.Rhe)
}

func (s *ConstraintEquality) isStatement() {}

// ============================================================================
// Helpers
// ============================================================================

// IsEmptyBlock checks whether a given statement is a block with no statements.
func IsEmptyBlock(s Statement) bool {
	b, ok := s.(*Block)
	return ok && len(b.Stmts) == 0
}

// Reduction options, as written after a substitution.
var reductionOptions = map[Reduction]string{
	VARIABLE:  ":var",
	SIGNAL:    ":signal",
	COMPONENT: ":component",
	TAG:       ":tag",
	BUS:       ":bus",
}

func reductionOption(r Reduction) string {
	return reductionOptions[r]
}

// ParseReductionOption converts a substitution option (e.g. ":component") into
// the reduction it denotes.  The boolean result indicates whether the string was
// a valid option.
func ParseReductionOption(option string) (Reduction, bool) {
	for r, s := range reductionOptions {
		if s == option {
			return r, true
		}
	}
	//
	return UNKNOWN, false
}

func listOfStatements(list *sexp.List, stmts []Statement) *sexp.List {
	for _, s := range stmts {
		list.Append(s.Lisp())
	}
	//
	return list
}
