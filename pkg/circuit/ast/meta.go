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
	"github.com/consensys/go-circuit/pkg/util/source"
)

// Reduction identifies what a given (annotated) node was determined to reduce to
// by the type checker.  For example, the target of a substitution may reduce to
// a component, a tag, a signal, etc.
type Reduction uint8

const (
	// UNKNOWN indicates no type information was attached to the node.
	UNKNOWN Reduction = iota
	// VARIABLE indicates the node reduces to an ordinary variable.
	VARIABLE
	// SIGNAL indicates the node reduces to a signal.
	SIGNAL
	// COMPONENT indicates the node reduces to a component.
	COMPONENT
	// TAG indicates the node reduces to a tag of a signal or bus.
	TAG
	// BUS indicates the node reduces to a bus.
	BUS
)

// TypeKnowledge records the type information attached to a node by an earlier
// type checking stage.
type TypeKnowledge struct {
	ReducesTo Reduction
}

// IsComponent determines whether the node was resolved to a component.
func (p TypeKnowledge) IsComponent() bool {
	return p.ReducesTo == COMPONENT
}

// IsTag determines whether the node was resolved to a tag.
func (p TypeKnowledge) IsTag() bool {
	return p.ReducesTo == TAG
}

// IsSignal determines whether the node was resolved to a signal.
func (p TypeKnowledge) IsSignal() bool {
	return p.ReducesTo == SIGNAL
}

// IsBus determines whether the node was resolved to a bus.
func (p TypeKnowledge) IsBus() bool {
	return p.ReducesTo == BUS
}

// MemoryKnowledge records the concrete shape of a declared variable, once its
// dimensions have been resolved.
type MemoryKnowledge struct {
	// Concrete dimensions of the declared variable.  This is nil until the
	// dimensions have been resolved.
	ConcreteDimensions []uint
}

// Meta captures the information common to every node in the tree.  This
// includes its position in the original source file, along with any knowledge
// attached by earlier (or the current) stages.
type Meta struct {
	// Unique identifier for this node within its enclosing program.
	ElemID uint
	// Source file from which this node originated.  This can be nil for nodes
	// which were constructed programmatically.
	File *source.File
	// Span of this node within the source file.
	Span source.Span
	// Type information attached by the type checker.
	TypeKnowledge TypeKnowledge
	// Shape information attached when dimensions are resolved.
	MemoryKnowledge MemoryKnowledge
}

// Line returns the line number (counting from 1) on which this node starts, or
// 0 if this node has no associated file.
func (p *Meta) Line() int {
	if p.File == nil {
		return 0
	}
	//
	line := p.File.EnclosingLine(p.Span)
	//
	return line.Number()
}

// SyntaxError constructs a syntax error highlighting this node in its
// originating source file.  If there is no such file, then nil is returned.
func (p *Meta) SyntaxError(msg string) *source.SyntaxError {
	if p.File == nil {
		return nil
	}
	//
	return p.File.SyntaxError(p.Span, msg)
}
