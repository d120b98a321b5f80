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
	"math/big"
	"testing"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/circuit/reader"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util/field"
	"github.com/consensys/go-circuit/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Arguments available to every expression under test.
const header = "(args (n 4) (a (dims 2) 5 6) (m (dims 2 2) 1 2 3 4))"

func Test_Interpreter_01(t *testing.T) {
	checkValue(t, "(+ 1 2)", 3)
}

func Test_Interpreter_02(t *testing.T) {
	checkValue(t, "(* n 2)", 8)
}

func Test_Interpreter_03(t *testing.T) {
	checkValue(t, "(* (/ 1 2) 2)", 1)
}

func Test_Interpreter_04(t *testing.T) {
	checkValue(t, `(\ 7 2)`, 3)
	checkValue(t, "(% 7 2)", 1)
}

func Test_Interpreter_05(t *testing.T) {
	checkValue(t, "(** 2 10)", 1024)
}

func Test_Interpreter_06(t *testing.T) {
	checkValue(t, "(<< 1 4)", 16)
	checkValue(t, "(>> 16 2)", 4)
	checkValue(t, "(>> 1 300)", 0)
	// Negative shift amounts shift in the opposite direction
	checkValue(t, "(<< 16 -2)", 4)
}

// Comparisons treat the upper half of the field as negative.
func Test_Interpreter_07(t *testing.T) {
	checkValue(t, "(< -1 0)", 1)
	checkValue(t, "(>= 3 3)", 1)
	checkValue(t, "(!= n 4)", 0)
}

func Test_Interpreter_08(t *testing.T) {
	checkValue(t, "(? (== n 4) 10 20)", 10)
	checkValue(t, "(? (&& n 0) 10 20)", 20)
}

func Test_Interpreter_09(t *testing.T) {
	checkValue(t, "(access a (index 1))", 6)
	checkValue(t, "(access m (index 1) (index 0))", 3)
}

func Test_Interpreter_10(t *testing.T) {
	checkValue(t, "(! 0)", 1)
	checkValue(t, "(| 4 1)", 5)
	checkValue(t, "(& 6 3)", 2)
	checkValue(t, "(^ 6 3)", 5)
}

func Test_Interpreter_11(t *testing.T) {
	var expected big.Int
	//
	expected.Sub(field.BN254.Modulus, big.NewInt(1))
	//
	val, reports := execute(t, "(- 0 1)")
	require.Empty(t, reports)
	assert.Equal(t, 0, expected.Cmp(val))
	//
	val, reports = execute(t, "(- 1)")
	require.Empty(t, reports)
	assert.Equal(t, 0, expected.Cmp(val))
}

func Test_Interpreter_12(t *testing.T) {
	checkReport(t, "(+ x 1)", report.UNKNOWN_VARIABLE)
}

func Test_Interpreter_13(t *testing.T) {
	checkReport(t, `(\ 1 0)`, report.DIVISION_BY_ZERO)
	checkReport(t, "(/ n 0)", report.DIVISION_BY_ZERO)
}

func Test_Interpreter_14(t *testing.T) {
	checkReport(t, "(call g)", report.UNKNOWN_VARIABLE)
	checkReport(t, "(call f n)", report.NON_CONSTANT_EXPRESSION)
	checkReport(t, "(buscall B)", report.NON_CONSTANT_EXPRESSION)
}

func Test_Interpreter_15(t *testing.T) {
	checkReport(t, "(access a (index 2))", report.INVALID_ACCESS)
	checkReport(t, "a", report.INVALID_ACCESS)
	checkReport(t, "(access n (index 0))", report.INVALID_ACCESS)
	checkReport(t, "(access a (field x))", report.NON_CONSTANT_EXPRESSION)
}

func Test_Interpreter_16(t *testing.T) {
	checkReport(t, "(array 1 2)", report.NON_CONSTANT_EXPRESSION)
	checkReport(t, "(uniform 0 n)", report.NON_CONSTANT_EXPRESSION)
}

// Reports are located at the offending sub-expression.
func Test_Interpreter_17(t *testing.T) {
	_, reports := execute(t, "(+ 1\n   (* y 2))")
	//
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Primary, 1)
	//
	label := reports[0].Primary[0]
	line := label.File.EnclosingLine(label.Span)
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, 1, label.Span.Length())
}

func Test_Environment_01(t *testing.T) {
	var (
		values = []big.Int{*big.NewInt(1), *big.NewInt(2), *big.NewInt(3), *big.NewInt(4), *big.NewInt(5),
			*big.NewInt(6)}
		env = FromArguments([]ast.Argument{
			{Name: "x", Values: values, Lengths: []uint{2, 3}},
			{Name: "y", Values: values[:1]},
		})
	)
	//
	assert.Equal(t, 2, env.Size())
	//
	y, ok := env.Lookup("y")
	require.True(t, ok)
	assert.True(t, y.IsScalar())
	assert.Equal(t, int64(1), y.Scalar().Int64())
	//
	x, ok := env.Lookup("x")
	require.True(t, ok)
	row, err := x.Index(1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, row.Dimensions)
	assert.Equal(t, int64(4), row.Values[0].Int64())
	//
	_, err = x.Index(2)
	assert.Error(t, err)
	_, err = y.Index(0)
	assert.Error(t, err)
	//
	_, ok = env.Lookup("z")
	assert.False(t, ok)
}

func Test_Environment_02(t *testing.T) {
	assert.Panics(t, func() {
		NewArray([]uint{3}, make([]big.Int, 2))
	})
}

// ============================================================================
// Helpers
// ============================================================================

func checkValue(t *testing.T, expr string, expected int64) {
	val, reports := execute(t, expr)
	//
	require.Empty(t, reports, "evaluating %s", expr)
	assert.Equal(t, big.NewInt(expected).String(), val.String(), "evaluating %s", expr)
}

func checkReport(t *testing.T, expr string, code report.Code) {
	val, reports := execute(t, expr)
	//
	assert.Nil(t, val, "evaluating %s", expr)
	require.NotEmpty(t, reports, "evaluating %s", expr)
	assert.Equal(t, code, reports[0].Code, "evaluating %s", expr)
}

// Evaluate an expression within the body of a function "f" whose arguments are
// given by the header.
func execute(t *testing.T, expr string) (*big.Int, report.Collection) {
	text := "(function f " + header + " (return " + expr + "))"
	program, errs := reader.ReadSourceFile(source.NewSourceFile("test.lisp", []byte(text)))
	//
	require.Empty(t, errs)
	//
	var (
		fn  = program.Functions[0]
		ret = fn.Body.(*ast.Return)
		env = FromArguments(fn.Arguments)
	)
	//
	return Interpreter{}.Execute(ret.Value, program, env, Flags{Inspect: true}, field.BN254)
}
