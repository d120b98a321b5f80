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
	"fmt"

	"github.com/consensys/go-circuit/pkg/util/source/sexp"
)

// VariableKind determines the broad category of a declared variable.
type VariableKind uint8

const (
	// VAR is an ordinary (witness independent) variable.  Only variables of
	// this kind participate in constant tracking.
	VAR VariableKind = iota
	// SIGNAL_KIND is a signal of a template.
	SIGNAL_KIND
	// BUS_KIND is a bus (i.e. a structured collection of signals).
	BUS_KIND
	// COMPONENT_KIND is a named instance of a template.
	COMPONENT_KIND
	// ANONYMOUS_COMPONENT_KIND is a template instance created inline.
	ANONYMOUS_COMPONENT_KIND
)

// SignalType determines the direction of a signal (or bus).
type SignalType uint8

const (
	// INTERMEDIATE signals are neither inputs nor outputs.
	INTERMEDIATE SignalType = iota
	// INPUT signals are provided by the enclosing component.
	INPUT
	// OUTPUT signals are exposed to the enclosing component.
	OUTPUT
)

func (p SignalType) String() string {
	switch p {
	case INPUT:
		return "input"
	case OUTPUT:
		return "output"
	default:
		return "intermediate"
	}
}

// VariableType describes the declared type of a variable, or of an
// initialisation block.
type VariableType struct {
	Kind VariableKind
	// Direction of the signal (or bus).  Only meaningful for signals and buses.
	Signal SignalType
	// Name of the bus.  Only meaningful for buses.
	Bus string
	// Tags attached to the signal (or bus).
	Tags []string
}

// NewVar constructs the type of an ordinary variable.
func NewVar() VariableType {
	return VariableType{Kind: VAR}
}

// NewSignal constructs the type of a signal with a given direction and tags.
func NewSignal(direction SignalType, tags ...string) VariableType {
	return VariableType{Kind: SIGNAL_KIND, Signal: direction, Tags: tags}
}

// NewBus constructs the type of a bus with a given name, direction and tags.
func NewBus(name string, direction SignalType, tags ...string) VariableType {
	return VariableType{Kind: BUS_KIND, Signal: direction, Bus: name, Tags: tags}
}

// NewComponent constructs the type of a named component.
func NewComponent() VariableType {
	return VariableType{Kind: COMPONENT_KIND}
}

// NewAnonymousComponent constructs the type of an anonymous component.
func NewAnonymousComponent() VariableType {
	return VariableType{Kind: ANONYMOUS_COMPONENT_KIND}
}

// IsComponent checks whether this type is either a named or an anonymous
// component.
func (p VariableType) IsComponent() bool {
	return p.Kind == COMPONENT_KIND || p.Kind == ANONYMOUS_COMPONENT_KIND
}

// Lisp converts this type into an S-Expression.
func (p VariableType) Lisp() sexp.SExp {
	switch p.Kind {
	case VAR:
		return sexp.NewSymbol("var")
	case COMPONENT_KIND:
		return sexp.NewSymbol("component")
	case ANONYMOUS_COMPONENT_KIND:
		return sexp.NewSymbol("anonymous")
	case SIGNAL_KIND:
		if p.Signal == INTERMEDIATE && len(p.Tags) == 0 {
			return sexp.NewSymbol("signal")
		}
		//
		return lispOfSignal(sexp.NewList(sexp.NewSymbol("signal")), p.Signal, p.Tags)
	case BUS_KIND:
		list := sexp.NewList(sexp.NewSymbol("bus"), sexp.NewSymbol(p.Bus))
		//
		if p.Signal == INTERMEDIATE && len(p.Tags) == 0 {
			return list
		}
		//
		return lispOfSignal(list, p.Signal, p.Tags)
	default:
		panic(fmt.Sprintf("unknown variable kind %d", p.Kind))
	}
}

func lispOfSignal(list *sexp.List, direction SignalType, tags []string) *sexp.List {
	list.Append(sexp.NewSymbol(direction.String()))
	//
	for _, tag := range tags {
		list.Append(sexp.NewSymbol(tag))
	}
	//
	return list
}

// AssignOp identifies the kind of assignment performed by a substitution.
type AssignOp uint8

const (
	// ASSIGN_VAR is an ordinary assignment to a variable "x = e".
	ASSIGN_VAR AssignOp = iota
	// ASSIGN_SIGNAL assigns a signal without generating a constraint "x <-- e".
	ASSIGN_SIGNAL
	// ASSIGN_CONSTRAINT_SIGNAL assigns a signal and generates a constraint "x
	// <== e".
	ASSIGN_CONSTRAINT_SIGNAL
)

// String returns the concrete syntax for this operator.
func (p AssignOp) String() string {
	switch p {
	case ASSIGN_VAR:
		return "="
	case ASSIGN_SIGNAL:
		return "<--"
	case ASSIGN_CONSTRAINT_SIGNAL:
		return "<=="
	default:
		panic("unreachable")
	}
}

// ParseAssignOp converts the concrete syntax of an assignment operator into an
// AssignOp.  The boolean result indicates whether the string was a valid
// operator.
func ParseAssignOp(op string) (AssignOp, bool) {
	switch op {
	case "=":
		return ASSIGN_VAR, true
	case "<--":
		return ASSIGN_SIGNAL, true
	case "<==":
		return ASSIGN_CONSTRAINT_SIGNAL, true
	default:
		return ASSIGN_VAR, false
	}
}
