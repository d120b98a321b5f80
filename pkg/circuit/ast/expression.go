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

// Expression represents an arbitrary expression appearing in a template or
// function body.  Only numbers, inline arrays and uniform arrays are literal;
// every other form is opaque with respect to constant tracking.
type Expression interface {
	// Metadata returns the metadata associated with this expression.
	Metadata() *Meta
	// Lisp converts this expression into an S-Expression, for example so it can
	// be printed.
	Lisp() sexp.SExp
	// Marker method which closes this sum type.
	isExpression()
}

// ============================================================================
// Number
// ============================================================================

// Number represents a literal integer constant.
type Number struct {
	Meta  Meta
	Value big.Int
}

// NewNumber constructs a literal number with the given metadata.
func NewNumber(meta Meta, value *big.Int) *Number {
	var n = &Number{Meta: meta}
	//
	n.Value.Set(value)
	//
	return n
}

// Metadata implementation for Expression interface.
func (e *Number) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *Number) Lisp() sexp.SExp {
	return sexp.NewSymbol(e.Value.String())
}

func (e *Number) isExpression() {}

// ============================================================================
// ArrayInLine
// ============================================================================

// ArrayInLine represents an array given explicitly by its elements, such as
// "[1,2,3]".
type ArrayInLine struct {
	Meta   Meta
	Values []Expression
}

// Metadata implementation for Expression interface.
func (e *ArrayInLine) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *ArrayInLine) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol("array"), e.Values...)
}

func (e *ArrayInLine) isExpression() {}

// ============================================================================
// UniformArray
// ============================================================================

// UniformArray represents an array whose elements all share the same value,
// such as "[0; n]".
type UniformArray struct {
	Meta      Meta
	Value     Expression
	Dimension Expression
}

// Metadata implementation for Expression interface.
func (e *UniformArray) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *UniformArray) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol("uniform"), e.Value, e.Dimension)
}

func (e *UniformArray) isExpression() {}

// ============================================================================
// Variable
// ============================================================================

// Access represents one step in an access path.  This is either an index into
// an array, or the selection of a named field (e.g. of a component or bus).
type Access struct {
	// Index expression, or nil for a field access.
	Index Expression
	// Field name, only meaningful when Index is nil.
	Field string
}

// NewArrayAccess constructs an access step indexing an array.
func NewArrayAccess(index Expression) Access {
	return Access{Index: index}
}

// NewFieldAccess constructs an access step selecting a named field.
func NewFieldAccess(field string) Access {
	return Access{Field: field}
}

// IsArrayAccess checks whether this is an index into an array.
func (p Access) IsArrayAccess() bool {
	return p.Index != nil
}

// Lisp converts this access into an S-Expression.
func (p Access) Lisp() sexp.SExp {
	if p.Index != nil {
		return sexp.NewList(sexp.NewSymbol("index"), p.Index.Lisp())
	}
	//
	return sexp.NewList(sexp.NewSymbol("field"), sexp.NewSymbol(p.Field))
}

// Variable represents a (possibly indexed) read of a named variable.
type Variable struct {
	Meta   Meta
	Name   string
	Access []Access
}

// Metadata implementation for Expression interface.
func (e *Variable) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *Variable) Lisp() sexp.SExp {
	return lispOfAccess(e.Name, e.Access)
}

func (e *Variable) isExpression() {}

// ============================================================================
// InfixOp
// ============================================================================

// InfixOpcode identifies a binary operator.
type InfixOpcode uint8

// Binary operators.
const (
	MUL InfixOpcode = iota
	DIV
	ADD
	SUB
	POW
	INT_DIV
	MOD
	SHIFT_L
	SHIFT_R
	LESSER_EQ
	GREATER_EQ
	LESSER
	GREATER
	EQ
	NOT_EQ
	BOOL_OR
	BOOL_AND
	BIT_OR
	BIT_AND
	BIT_XOR
)

var infixSymbols = []string{"*", "/", "+", "-", "**", "\\", "%", "<<", ">>", "<=", ">=", "<", ">", "==", "!=",
	"||", "&&", "|", "&", "^"}

func (p InfixOpcode) String() string {
	return infixSymbols[p]
}

// ParseInfixOpcode converts the concrete syntax of a binary operator into an
// opcode.  The boolean result indicates whether the string was a valid
// operator.
func ParseInfixOpcode(op string) (InfixOpcode, bool) {
	for i, s := range infixSymbols {
		if s == op {
			return InfixOpcode(i), true
		}
	}
	//
	return 0, false
}

// InfixOp represents the application of a binary operator.
type InfixOp struct {
	Meta Meta
	Op   InfixOpcode
	Lhe  Expression
	Rhe  Expression
}

// Metadata implementation for Expression interface.
func (e *InfixOp) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *InfixOp) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol(e.Op.String()), e.Lhe, e.Rhe)
}

func (e *InfixOp) isExpression() {}

// ============================================================================
// PrefixOp
// ============================================================================

// PrefixOpcode identifies a unary operator.
type PrefixOpcode uint8

// Unary operators.
const (
	NEG PrefixOpcode = iota
	BOOL_NOT
	COMPLEMENT
)

var prefixSymbols = []string{"-", "!", "~"}

func (p PrefixOpcode) String() string {
	return prefixSymbols[p]
}

// ParsePrefixOpcode converts the concrete syntax of a unary operator into an
// opcode.  The boolean result indicates whether the string was a valid
// operator.
func ParsePrefixOpcode(op string) (PrefixOpcode, bool) {
	for i, s := range prefixSymbols {
		if s == op {
			return PrefixOpcode(i), true
		}
	}
	//
	return 0, false
}

// PrefixOp represents the application of a unary operator.
type PrefixOp struct {
	Meta Meta
	Op   PrefixOpcode
	Rhe  Expression
}

// Metadata implementation for Expression interface.
func (e *PrefixOp) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *PrefixOp) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol(e.Op.String()), e.Rhe)
}

func (e *PrefixOp) isExpression() {}

// ============================================================================
// InlineSwitch
// ============================================================================

// InlineSwitch represents a conditional expression "c ? t : f".
type InlineSwitch struct {
	Meta    Meta
	Cond    Expression
	IfTrue  Expression
	IfFalse Expression
}

// Metadata implementation for Expression interface.
func (e *InlineSwitch) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *InlineSwitch) Lisp() sexp.SExp {
	return listOfExpressions(sexp.NewSymbol("?"), e.Cond, e.IfTrue, e.IfFalse)
}

func (e *InlineSwitch) isExpression() {}

// ============================================================================
// Call
// ============================================================================

// Call represents an invocation of a function or a template.
type Call struct {
	Meta Meta
	ID   string
	Args []Expression
}

// Metadata implementation for Expression interface.
func (e *Call) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *Call) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol("call"), sexp.NewSymbol(e.ID))
	//
	for _, arg := range e.Args {
		list.Append(arg.Lisp())
	}
	//
	return list
}

func (e *Call) isExpression() {}

// ============================================================================
// BusCall
// ============================================================================

// BusCall represents the construction of a bus.  This is purely structural,
// rather than a data computation.
type BusCall struct {
	Meta Meta
	ID   string
	Args []Expression
}

// Metadata implementation for Expression interface.
func (e *BusCall) Metadata() *Meta { return &e.Meta }

// Lisp implementation for Expression interface.
func (e *BusCall) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol("buscall"), sexp.NewSymbol(e.ID))
	//
	for _, arg := range e.Args {
		list.Append(arg.Lisp())
	}
	//
	return list
}

func (e *BusCall) isExpression() {}

// ============================================================================
// Helpers
// ============================================================================

// IsNumber checks whether a given expression is a literal number.
func IsNumber(e Expression) bool {
	_, ok := e.(*Number)
	return ok
}

// IsBusCall checks whether a given expression constructs a bus.
func IsBusCall(e Expression) bool {
	_, ok := e.(*BusCall)
	return ok
}

// IsBusCallArray checks whether a given expression constructs an array of
// buses, such as "[B(); n]".
func IsBusCallArray(e Expression) bool {
	if e, ok := e.(*UniformArray); ok {
		return IsBusCall(e.Value) || IsBusCallArray(e.Value)
	}
	//
	return false
}

func listOfExpressions(head sexp.SExp, exprs ...Expression) *sexp.List {
	list := sexp.NewList(head)
	//
	for _, e := range exprs {
		list.Append(e.Lisp())
	}
	//
	return list
}

func lispOfAccess(name string, access []Access) sexp.SExp {
	if len(access) == 0 {
		return sexp.NewSymbol(name)
	}
	//
	list := sexp.NewList(sexp.NewSymbol("access"), sexp.NewSymbol(name))
	//
	for _, a := range access {
		list.Append(a.Lisp())
	}
	//
	return list
}
