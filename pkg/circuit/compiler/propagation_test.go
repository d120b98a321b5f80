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
	"testing"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/circuit/interp"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util/field"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A literal initialisation is recorded in full.
func Test_Propagation_01(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var
	    (declare var x 2)
	    (= x (array 3 4) :init)))`, "(constants (x (dims 2) 3 4))")
}

// Partial initialisations are padded with zeros.
func Test_Propagation_02(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var
	    (declare var x 2 2)
	    (= x (array 1 2) :init)))`, "(constants (x (dims 2 2) 1 2 0 0))")
}

// Declared but uninitialised variables hold zeros.
func Test_Propagation_03(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (declare var x)
	  (declare var y 3))`, "(constants (x 0) (y (dims 3) 0 0 0))")
}

// Redeclaration evicts permanently.
func Test_Propagation_04(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var y) (= y 1 :init))
	  (init var (declare var y) (= y 1 :init))
	  (init var (declare var y) (= y 1 :init))
	  (init var (declare var z) (= z 2 :init)))`, "(constants (z 2))")
}

// Indexed writes evict.
func Test_Propagation_05(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var x 2) (= x (array 1 2) :init))
	  (= (access x (index 0)) 5 :init))`, "(constants)")
}

// Non-literal initialisations evict.
func Test_Propagation_06(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var a) (= a 1 :init))
	  (init var (declare var b) (= b a :init))
	  (init var (declare var c) (= c (+ 1 2) :init)))`, "(constants (a 1))")
}

// Any assignment other than an initialisation evicts, even when literal.
func Test_Propagation_07(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var y) (= y 1 :init))
	  (= y 1))`, "(constants)")
}

// Later literal initialisations replace earlier ones.
func Test_Propagation_08(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var x 3) (= x (array 1 2 3) :init))
	  (= x (array 7) :init))`, "(constants (x (dims 3) 7 0 0))")
}

// Both branches of a conditional update the same table, one after the other.
func Test_Propagation_09(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (if c
	    (block
	      (init var (declare var a) (= a 1 :init))
	      (init var (declare var z) (= z 1 :init)))
	    (block
	      (init var (declare var b) (= b 2 :init))
	      (init var (declare var z) (= z 2 :init)))))`, "(constants (a 1) (b 2))")
}

// Loop bodies are visited once.
func Test_Propagation_10(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var i) (= i 0 :init))
	  (init var (declare var k) (= k 7 :init))
	  (while (< i 3)
	    (block
	      (init var (declare var j) (= j 1 :init))
	      (= i (+ i 1)))))`, "(constants (j 1) (k 7))")
}

// Signals, buses and components are never constant.
func Test_Propagation_11(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init (signal input) (declare (signal input) s 2) (<== s (array 1 2) :init))
	  (init (bus B) (declare (bus B) b))
	  (init component (declare component c) (= c (call A) :init :component)))`, "(constants)")
}

// Resolved dimensions are recorded for every kind of declaration.
func Test_Propagation_12(t *testing.T) {
	program, reports := templateConstants(t, `
	(block
	  (declare var x 2 3)
	  (declare (signal input) s 4)
	  (declare (bus B) b 1 2 3)
	  (declare component c 5)
	  (declare anonymous d 6))`)
	//
	require.Empty(t, reports)
	//
	checkDimensions(t, program, 0, 2, 3)
	checkDimensions(t, program, 1, 4)
	checkDimensions(t, program, 2, 1, 2, 3)
	checkDimensions(t, program, 3, 5)
	// Anonymous components are not resolved
	checkDimensions(t, program, 4)
}

// Scenario: declare var x[2] = [3, 4] and never touch it again.
func Test_Propagation_13(t *testing.T) {
	program := readProgram(t, `
	(template T (args)
	  (block
	    (init var
	      (declare var x 2)
	      (= x (array 3 4) :init))))`)
	//
	reports := Simplify(program, DefaultConfig())
	//
	require.Empty(t, reports)
	assert.Equal(t, "(constants (x (dims 2) 3 4))", program.Templates[0].Constants.Lisp().String(false))
	assert.Equal(t, "(block (init var (declare var x 2)))", program.Templates[0].Code.Lisp().String(false))
}

// Scenario: declare var y = 1, then y = f().
func Test_Propagation_14(t *testing.T) {
	program := readProgram(t, `
	(function f (args)
	  (block
	    (init var (declare var y) (= y 1 :init))
	    (= y (call g))))`)
	//
	reports := Simplify(program, DefaultConfig())
	//
	require.Empty(t, reports)
	assert.Equal(t, "(constants)", program.Functions[0].Constants.Lisp().String(false))
	assert.Equal(t, "(block (init var (declare var y) (= y 1 :init)) (= y (call g)))",
		program.Functions[0].Body.Lisp().String(false))
}

// Scenario: a non-literal uniform array dimension within a function resolves
// to a literal.
func Test_Propagation_15(t *testing.T) {
	program := readProgram(t, `
	(function f (args (n 2))
	  (block
	    (init var
	      (declare var a 4)
	      (= a (uniform 0 (* n 2)) :init))))`)
	//
	constants, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	//
	require.Empty(t, reports)
	assert.Equal(t, "(constants (a (dims 4) 0 0 0 0))", constants.Lisp().String(false))
	//
	inits := program.Functions[0].Body.(*ast.Block).Stmts[0].(*ast.InitializationBlock)
	assert.Equal(t, "(= a (uniform 0 4) :init)", inits.Initializations[1].Lisp().String(false))
}

// Scenario: a non-literal uniform array dimension within a template always
// fails, and is located at the dimension.
func Test_Propagation_16(t *testing.T) {
	var (
		executor = &fixedExecutor{value: 4}
		config   = Config{Prime: field.BN254, Executor: executor}
		program  = readProgram(t, `
	(template T (args)
	  (block
	    (init var
	      (declare var a 4)
	      (= a (uniform 0 (* 2 2)) :init))))`)
	)
	//
	constants, reports := TemplateConstants(program.Templates[0], program, config)
	//
	require.Len(t, reports, 1)
	assert.Equal(t, 0, executor.calls)
	checkInvalidArraySize(t, reports[0], "(* 2 2)")
	// Dimension is left alone, and hence the value is unknown.
	assert.Equal(t, "(constants)", constants.Lisp().String(false))
	//
	inits := program.Templates[0].Code.(*ast.Block).Stmts[0].(*ast.InitializationBlock)
	assert.Equal(t, "(= a (uniform 0 (* 2 2)) :init)", inits.Initializations[1].Lisp().String(false))
}

// A failed declaration has an empty shape, but is still tracked.
func Test_Propagation_17(t *testing.T) {
	program, reports := templateConstants(t, `
	(block
	  (declare var x n 2))`)
	//
	require.Len(t, reports, 1)
	checkInvalidArraySize(t, reports[0], "n")
	checkDimensions(t, program, 0)
	assert.Equal(t, "(constants (x 0))", program.Templates[0].Constants.Lisp().String(false))
}

// Every failing dimension is reported.
func Test_Propagation_18(t *testing.T) {
	program, reports := templateConstants(t, `
	(block
	  (declare (signal output) s -1 2 (+ 1 1) 18446744073709551616))`)
	//
	require.Len(t, reports, 3)
	checkInvalidArraySize(t, reports[0], "-1")
	checkInvalidArraySize(t, reports[1], "(+ 1 1)")
	checkInvalidArraySize(t, reports[2], "18446744073709551616")
	checkDimensions(t, program, 0)
}

// Anonymous components never resolve their dimensions.
func Test_Propagation_19(t *testing.T) {
	program, reports := templateConstants(t, `
	(block
	  (declare anonymous c (+ 1 1)))`)
	//
	require.Empty(t, reports)
	checkDimensions(t, program, 0)
}

// Function dimensions are resolved against the bound arguments.
func Test_Propagation_20(t *testing.T) {
	program := readProgram(t, `
	(function f (args (n 3) (a (dims 2) 4 5))
	  (block
	    (declare var x n 2)
	    (declare var y (access a (index 1)))
	    (declare (signal input) s (- n 1))))`)
	//
	constants, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	//
	require.Empty(t, reports)
	assert.Equal(t, "(constants (x (dims 3 2) 0 0 0 0 0 0) (y (dims 5) 0 0 0 0 0))", constants.Lisp().String(false))
	checkBodyDimensions(t, program.Functions[0].Body, 2, 2)
}

// Interpreter reports are retained, followed by the invalid array size.
func Test_Propagation_21(t *testing.T) {
	program := readProgram(t, `
	(function f (args)
	  (block
	    (declare var x (call g))
	    (declare var y (- 0 1))))`)
	//
	constants, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	//
	codes := []report.Code{report.UNKNOWN_VARIABLE, report.INVALID_ARRAY_SIZE, report.INVALID_ARRAY_SIZE}
	//
	if diff := cmp.Diff(codes, reportCodes(reports)); diff != "" {
		t.Errorf("unexpected reports (-want +got):\n%s", diff)
	}
	//
	checkInvalidArraySize(t, reports[1], "(call g)")
	checkInvalidArraySize(t, reports[2], "(- 0 1)")
	assert.Equal(t, "(constants (x 0) (y 0))", constants.Lisp().String(false))
}

// The executor is consulted only for non-literal dimensions within functions.
func Test_Propagation_22(t *testing.T) {
	var (
		executor = &fixedExecutor{value: 5}
		config   = Config{Prime: field.BN254, Executor: executor}
		program  = readProgram(t, `
	(function f (args)
	  (block
	    (declare var x m)
	    (declare var y 2)
	    (init var (declare var z 1) (= z (uniform (call g) (+ 1 1)) :init))))
	(template T (args)
	  (block
	    (declare var x m)))`)
	)
	//
	reports := ComputeFunctionConstants(program, config)
	require.Empty(t, reports)
	assert.Equal(t, 2, executor.calls)
	// The value of z is not a literal
	assert.Equal(t, "(constants (x (dims 5) 0 0 0 0 0) (y (dims 2) 0 0))",
		program.Functions[0].Constants.Lisp().String(false))
	//
	reports = ComputeTemplateConstants(program, config)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, executor.calls)
}

// An executor which fails, or produces no value, yields an invalid array size.
func Test_Propagation_23(t *testing.T) {
	program := readProgram(t, `
	(function f (args)
	  (block
	    (declare var x m)))`)
	//
	config := Config{Prime: field.BN254, Executor: &fixedExecutor{fail: true}}
	_, reports := FunctionConstants(program.Functions[0], program, config)
	//
	if diff := cmp.Diff([]report.Code{report.NON_CONSTANT_EXPRESSION, report.INVALID_ARRAY_SIZE},
		reportCodes(reports)); diff != "" {
		t.Errorf("unexpected reports (-want +got):\n%s", diff)
	}
	//
	config.Executor = nilExecutor{}
	_, reports = FunctionConstants(program.Functions[0], program, config)
	//
	require.Len(t, reports, 1)
	checkInvalidArraySize(t, reports[0], "m")
}

// Uniform arrays are resolved wherever they appear in the right-hand side.
func Test_Propagation_24(t *testing.T) {
	program := readProgram(t, `
	(function f (args (n 2))
	  (block
	    (= x (+ (access a (index (call g (uniform 1 n)))) (? c (array (uniform 0 n)) (- (uniform 2 n)))))
	    (_ <== (uniform 0 n))))`)
	//
	_, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	//
	require.Empty(t, reports)
	//
	stmts := program.Functions[0].Body.(*ast.Block).Stmts
	assert.Equal(t, "(= x (+ (access a (index (call g (uniform 1 2)))) (? c (array (uniform 0 2)) (- (uniform 2 2)))))",
		stmts[0].Lisp().String(false))
	// Underscore substitutions are left alone
	assert.Equal(t, "(_ <== (uniform 0 n))", stmts[1].Lisp().String(false))
}

// Propagation can be applied repeatedly.
func Test_Propagation_25(t *testing.T) {
	program := readProgram(t, `
	(function f (args (n 2))
	  (block
	    (init var (declare var a n) (= a (uniform 3 n) :init))))`)
	//
	first, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	require.Empty(t, reports)
	second, reports := FunctionConstants(program.Functions[0], program, DefaultConfig())
	require.Empty(t, reports)
	//
	assert.Equal(t, first.Lisp().String(false), second.Lisp().String(false))
	assert.Equal(t, "(constants (a (dims 2) 3 3))", second.Lisp().String(false))
}

// Statements nested within an initialisation block are not considered.
func Test_Propagation_26(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var x) (= x 1 :init))
	  (init (signal output) (declare (signal output) s) (block (= x 2)))
	  (init var (block (declare var y 3))))`, "(constants (x 1))")
}

// Initialisations in both branches of a conditional leave the last one.
func Test_Propagation_27(t *testing.T) {
	checkTemplateConstants(t, `
	(block
	  (init var (declare var x))
	  (if c
	    (init var (= x 1 :init))
	    (init var (= x 2 :init))))`, "(constants (x 2))")
}

// Dimensions whose product is not representable are reported.
func Test_Propagation_28(t *testing.T) {
	program, reports := templateConstants(t, `
	(block
	  (declare var x 4294967296 4294967296))`)
	//
	require.Len(t, reports, 1)
	checkInvalidArraySize(t, reports[0], "(declare var x 4294967296 4294967296)")
	checkDimensions(t, program, 0)
	assert.Equal(t, "(constants (x 0))", program.Templates[0].Constants.Lisp().String(false))
}

// ============================================================================
// Helpers
// ============================================================================

// fixedExecutor always evaluates to the same value (or fails), and counts how
// often it is called.
type fixedExecutor struct {
	value int64
	fail  bool
	calls int
}

func (p *fixedExecutor) Execute(expr ast.Expression, _ *ast.Program, _ *interp.Environment, _ interp.Flags,
	_ field.Prime) (*big.Int, report.Collection) {
	//
	p.calls++
	//
	if p.fail {
		meta := expr.Metadata()
		r := report.Error(report.NON_CONSTANT_EXPRESSION, "not constant")
		r.AddPrimary(meta.File, meta.Span, "found here")
		//
		return nil, report.Collection{r}
	}
	//
	return big.NewInt(p.value), nil
}

// nilExecutor produces neither a value nor any reports.
type nilExecutor struct{}

func (p nilExecutor) Execute(ast.Expression, *ast.Program, *interp.Environment, interp.Flags,
	field.Prime) (*big.Int, report.Collection) {
	return nil, nil
}

func checkTemplateConstants(t *testing.T, body string, expected string) {
	program, reports := templateConstants(t, body)
	//
	require.Empty(t, reports)
	assert.Equal(t, expected, program.Templates[0].Constants.Lisp().String(false))
}

// Compute the constants of a template with a given body.
func templateConstants(t *testing.T, body string) (*ast.Program, report.Collection) {
	program := readProgram(t, "(template T (args) "+body+")")
	//
	return program, ComputeTemplateConstants(program, DefaultConfig())
}

// Check the concrete dimensions of the ith declaration in the body of the only
// template.
func checkDimensions(t *testing.T, program *ast.Program, i int, expected ...uint) {
	decl := program.Templates[0].Code.(*ast.Block).Stmts[i].(*ast.Declaration)
	//
	if expected == nil {
		expected = []uint{}
	}
	//
	if diff := cmp.Diff(expected, decl.Meta.MemoryKnowledge.ConcreteDimensions); diff != "" {
		t.Errorf("declaration %s (-want +got):\n%s", decl.Name, diff)
	}
}

func checkBodyDimensions(t *testing.T, body ast.Statement, i int, expected ...uint) {
	decl := body.(*ast.Block).Stmts[i].(*ast.Declaration)
	//
	if diff := cmp.Diff(expected, decl.Meta.MemoryKnowledge.ConcreteDimensions); diff != "" {
		t.Errorf("declaration %s (-want +got):\n%s", decl.Name, diff)
	}
}

// Check a report is an invalid array size located at the given text.
func checkInvalidArraySize(t *testing.T, r report.Report, text string) {
	assert.Equal(t, report.INVALID_ARRAY_SIZE, r.Code)
	assert.Equal(t, "Invalid array size", r.Message)
	require.Len(t, r.Primary, 1)
	//
	label := r.Primary[0]
	contents := label.File.Contents()
	//
	assert.Equal(t, "This expression can not be used as an array size", label.Message)
	assert.Equal(t, text, string(contents[label.Span.Start():label.Span.End()]))
}

func reportCodes(reports report.Collection) []report.Code {
	var codes []report.Code
	//
	for _, r := range reports {
		codes = append(codes, r.Code)
	}
	//
	return codes
}
