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

// IsConstantExpression determines whether a given expression is a closed
// literal (i.e. a number, or an array built entirely from numbers) and, if so,
// returns its contents flattened in row-major order.  This is purely
// structural: no variables are resolved, and no arithmetic is folded.
func IsConstantExpression(expr ast.Expression) ([]big.Int, bool) {
	switch e := expr.(type) {
	case *ast.Number:
		var values = make([]big.Int, 1)
		//
		values[0].Set(&e.Value)
		//
		return values, true
	case *ast.ArrayInLine:
		var values []big.Int
		//
		for _, ith := range e.Values {
			vals, ok := IsConstantExpression(ith)
			//
			if !ok {
				return nil, false
			}
			//
			values = append(values, vals...)
		}
		//
		return values, true
	case *ast.UniformArray:
		return isConstantUniformArray(e)
	default:
		return nil, false
	}
}

func isConstantUniformArray(e *ast.UniformArray) ([]big.Int, bool) {
	value, ok := IsConstantExpression(e.Value)
	//
	if !ok {
		return nil, false
	}
	//
	dim, ok := IsConstantExpression(e.Dimension)
	//
	if !ok {
		return nil, false
	} else if len(dim) != 1 {
		panic("array dimension must be a scalar")
	}
	//
	n, ok := toUint(&dim[0])
	// An unrepresentable dimension has already been reported when resolving it.
	if !ok {
		return nil, false
	}
	//
	values := make([]big.Int, 0, n*uint(len(value)))
	//
	for i := uint(0); i < n; i++ {
		for j := range value {
			var v big.Int
			values = append(values, *v.Set(&value[j]))
		}
	}
	//
	return values, true
}
