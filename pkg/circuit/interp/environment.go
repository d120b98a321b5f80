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
package interp

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
)

// Slice is a (possibly multi-dimensional) value bound in an environment.  Its
// contents are stored flattened in row-major order.
type Slice struct {
	Dimensions []uint
	Values     []big.Int
}

// NewScalar constructs a slice holding a single value.
func NewScalar(value *big.Int) Slice {
	var values = make([]big.Int, 1)
	//
	values[0].Set(value)
	//
	return Slice{nil, values}
}

// NewArray constructs a slice with the given dimensions and flattened values.
// The number of values must match the dimensions.
func NewArray(dimensions []uint, values []big.Int) Slice {
	if ast.Size(dimensions) != uint(len(values)) {
		panic(fmt.Sprintf("slice has %d values, but dimensions require %d", len(values), ast.Size(dimensions)))
	}
	//
	return Slice{dimensions, values}
}

// IsScalar checks whether this slice holds exactly one value.
func (p Slice) IsScalar() bool {
	return len(p.Dimensions) == 0
}

// Scalar returns the value of this slice, assuming it is a scalar.
func (p Slice) Scalar() *big.Int {
	if !p.IsScalar() {
		panic("slice is not a scalar")
	}
	//
	return &p.Values[0]
}

// Index selects a sub-slice by indexing into the leading dimension of this
// slice.  An error is returned if the slice is a scalar, or if the index is out
// of bounds.
func (p Slice) Index(index uint) (Slice, error) {
	if p.IsScalar() {
		return Slice{}, fmt.Errorf("cannot index scalar value")
	} else if index >= p.Dimensions[0] {
		return Slice{}, fmt.Errorf("index %d out of bounds (size %d)", index, p.Dimensions[0])
	}
	//
	var (
		inner = p.Dimensions[1:]
		size  = ast.Size(inner)
		start = index * size
	)
	//
	return Slice{inner, p.Values[start : start+size]}, nil
}

// Environment binds names to slices.  Once constructed, an environment is only
// ever read.
type Environment struct {
	variables map[string]Slice
}

// NewEnvironment constructs an empty environment.
func NewEnvironment() *Environment {
	return &Environment{make(map[string]Slice)}
}

// FromArguments constructs an environment where each argument is bound to its
// value and shape.
func FromArguments(arguments []ast.Argument) *Environment {
	var env = NewEnvironment()
	//
	for _, arg := range arguments {
		env.AddVariable(arg.Name, NewArray(arg.Lengths, arg.Values))
	}
	//
	return env
}

// AddVariable binds a given name to a given slice, replacing any existing
// binding.  This should only be used whilst constructing an environment.
func (p *Environment) AddVariable(name string, slice Slice) {
	p.variables[name] = slice
}

// Lookup returns the slice bound to a given name, if any.
func (p *Environment) Lookup(name string) (Slice, bool) {
	slice, ok := p.variables[name]
	return slice, ok
}

// Size returns the number of names bound in this environment.
func (p *Environment) Size() int {
	return len(p.variables)
}
