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
	"math/bits"
	"slices"
	"strconv"

	"github.com/consensys/go-circuit/pkg/util/source/sexp"
	"golang.org/x/exp/maps"
)

// Constant records what is statically known about a variable: its declared
// dimensions, along with its contents flattened in row-major order.
type Constant struct {
	Dimensions []uint
	Values     []big.Int
}

// Size returns the number of scalar elements determined by the dimensions of
// this constant.
func (p Constant) Size() uint {
	return Size(p.Dimensions)
}

// Lisp converts this constant into an S-Expression, for example so it can be
// printed.
func (p Constant) Lisp(name string) sexp.SExp {
	return lispOfValues(name, p.Dimensions, p.Values)
}

// Constants maps the name of each variable in a given scope which holds a
// statically known value to that value.  Variable names are unique within a
// scope.
type Constants map[string]Constant

// Has checks whether a given variable is currently recorded as constant.
func (p Constants) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Names returns the names of all constant variables in sorted order.
func (p Constants) Names() []string {
	names := maps.Keys(p)
	slices.Sort(names)
	//
	return names
}

// Lisp converts this table into an S-Expression listing each constant in
// order of name.
func (p Constants) Lisp() sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol("constants"))
	//
	for _, name := range p.Names() {
		list.Append(p[name].Lisp(name))
	}
	//
	return list
}

// Size computes the number of scalar elements in an array with the given
// dimensions.  Observe that a scalar has no dimensions, and hence size 1.  This
// panics if the size is not representable, see CheckedSize.
func Size(dimensions []uint) uint {
	size, ok := CheckedSize(dimensions)
	//
	if !ok {
		panic("array size overflows")
	}
	//
	return size
}

// CheckedSize computes the number of scalar elements in an array with the given
// dimensions, failing if that number cannot be represented as a uint.
func CheckedSize(dimensions []uint) (uint, bool) {
	var size uint = 1
	//
	for _, d := range dimensions {
		hi, lo := bits.Mul(size, d)
		//
		if hi != 0 {
			return 0, false
		}
		//
		size = lo
	}
	//
	return size, true
}

func lispOfValues(name string, dimensions []uint, values []big.Int) *sexp.List {
	list := sexp.NewList(sexp.NewSymbol(name))
	//
	if len(dimensions) > 0 {
		dims := sexp.NewList(sexp.NewSymbol("dims"))
		//
		for _, d := range dimensions {
			dims.Append(sexp.NewSymbol(strconv.FormatUint(uint64(d), 10)))
		}
		//
		list.Append(dims)
	}
	//
	for i := range values {
		list.Append(sexp.NewSymbol(values[i].String()))
	}
	//
	return list
}
