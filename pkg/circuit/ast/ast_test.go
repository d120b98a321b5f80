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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Constants_01(t *testing.T) {
	assert.Equal(t, uint(1), Size(nil))
	assert.Equal(t, uint(6), Size([]uint{2, 3}))
	assert.Equal(t, uint(0), Size([]uint{2, 0}))
}

// Sizes which overflow are detected.
func Test_Constants_03(t *testing.T) {
	_, ok := CheckedSize([]uint{1 << 32, 1 << 32})
	assert.False(t, ok)
	//
	size, ok := CheckedSize([]uint{1 << 32, 0, 1 << 32})
	assert.True(t, ok)
	assert.Equal(t, uint(0), size)
	//
	assert.Panics(t, func() { Size([]uint{1 << 32, 1 << 32}) })
}

func Test_Constants_02(t *testing.T) {
	constants := Constants{
		"y": {Dimensions: nil, Values: []big.Int{*big.NewInt(1)}},
		"x": {Dimensions: []uint{2}, Values: []big.Int{*big.NewInt(3), *big.NewInt(4)}},
	}
	//
	assert.True(t, constants.Has("x"))
	assert.False(t, constants.Has("z"))
	assert.Equal(t, []string{"x", "y"}, constants.Names())
	assert.Equal(t, "(constants (x (dims 2) 3 4) (y 1))", constants.Lisp().String(false))
}

func Test_VariableType_01(t *testing.T) {
	assert.Equal(t, "var", NewVar().Lisp().String(false))
	assert.Equal(t, "signal", NewSignal(INTERMEDIATE).Lisp().String(false))
	assert.Equal(t, "(signal input maxbits)", NewSignal(INPUT, "maxbits").Lisp().String(false))
	assert.Equal(t, "(bus B)", NewBus("B", INTERMEDIATE).Lisp().String(false))
	assert.Equal(t, "(bus B output)", NewBus("B", OUTPUT).Lisp().String(false))
	assert.True(t, NewAnonymousComponent().IsComponent())
	assert.False(t, NewBus("B", INPUT).IsComponent())
}

func Test_Expression_01(t *testing.T) {
	var (
		bus     = &BusCall{ID: "B"}
		inner   = &UniformArray{Value: bus, Dimension: NewNumber(Meta{}, big.NewInt(2))}
		nested  = &UniformArray{Value: inner, Dimension: NewNumber(Meta{}, big.NewInt(3))}
		numbers = &UniformArray{Value: NewNumber(Meta{}, big.NewInt(0)), Dimension: &Variable{Name: "n"}}
	)
	//
	assert.True(t, IsBusCall(bus))
	assert.False(t, IsBusCallArray(bus))
	assert.True(t, IsBusCallArray(inner))
	assert.True(t, IsBusCallArray(nested))
	assert.False(t, IsBusCallArray(numbers))
	assert.Equal(t, "(uniform (uniform (buscall B) 2) 3)", nested.Lisp().String(false))
	assert.Equal(t, "(uniform 0 n)", numbers.Lisp().String(false))
}

func Test_Statement_01(t *testing.T) {
	stmt := &Substitution{
		Var:              "c",
		Access:           []Access{NewArrayAccess(NewNumber(Meta{}, big.NewInt(0))), NewFieldAccess("in")},
		Op:               ASSIGN_CONSTRAINT_SIGNAL,
		Rhe:              &Variable{Name: "x"},
		IsInitialization: true,
	}
	stmt.Meta.TypeKnowledge.ReducesTo = COMPONENT
	//
	assert.Equal(t, "(<== (access c (index 0) (field in)) x :init :component)", stmt.Lisp().String(false))
	assert.True(t, IsEmptyBlock(NewEmptyBlock(Meta{})))
	assert.False(t, IsEmptyBlock(stmt))
}
