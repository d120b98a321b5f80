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
	"github.com/consensys/go-circuit/pkg/circuit/interp"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util/collection/set"
	"github.com/consensys/go-circuit/pkg/util/field"
)

// Executor evaluates an expression which must yield a compile-time integer,
// such as a dimension which is not given as a literal number.  Any reports
// produced are returned rather than thrown.
type Executor interface {
	Execute(expr ast.Expression, program *ast.Program, env *interp.Environment, flags interp.Flags,
		prime field.Prime) (*big.Int, report.Collection)
}

// scope holds the state threaded through the walk of a single template
// instance or function body.  Nothing here is shared between scopes.
type scope struct {
	// Indicates whether this is the body of a template, in which case array
	// sizes must be given as literal numbers.
	insideTemplate bool
	// Environment used when delegating to the executor.
	environment *interp.Environment
	// Enclosing program, made available to the executor.
	program *ast.Program
	// Executor for non-literal dimensions.
	executor Executor
	flags    interp.Flags
	prime    field.Prime
	// Reports accumulated so far.
	reports report.Collection
	// Variables currently known to hold literal values.
	constants ast.Constants
	// Names of all variables declared so far in this scope.
	usedNames *set.SortedSet[string]
}

func newScope(insideTemplate bool, env *interp.Environment, program *ast.Program, config Config) *scope {
	return &scope{
		insideTemplate: insideTemplate,
		environment:    env,
		program:        program,
		executor:       config.Executor,
		flags:          config.Flags,
		prime:          config.Prime,
		constants:      make(ast.Constants),
		usedNames:      set.NewSortedSet[string](),
	}
}

// Resolve a given dimension expression into a concrete size.  Every failure
// produces exactly one "invalid array size" report, located at the offending
// expression, and the caller receives false so it can keep walking.
func (p *scope) resolveDimension(dim ast.Expression) (uint, bool) {
	size, ok := p.treatDimension(dim)
	//
	if !ok {
		p.reportInvalidDimension(dim.Metadata())
	}
	//
	return size, ok
}

func (p *scope) treatDimension(dim ast.Expression) (uint, bool) {
	if n, ok := dim.(*ast.Number); ok {
		return toUint(&n.Value)
	} else if p.insideTemplate {
		// Array sizes within templates must be literal.
		return 0, false
	}
	//
	val, reports := p.executor.Execute(dim, p.program, p.environment, p.flags, p.prime)
	//
	if len(reports) > 0 {
		p.reports.Append(reports...)
		return 0, false
	} else if val == nil {
		return 0, false
	}
	//
	return toUint(val)
}

func (p *scope) reportInvalidDimension(meta *ast.Meta) {
	r := report.Error(report.INVALID_ARRAY_SIZE, "Invalid array size")
	r.AddPrimary(meta.File, meta.Span, "This expression can not be used as an array size")
	//
	p.reports.Append(r)
}

// Convert a value into an unsigned machine integer, failing if it is negative or
// too large.
func toUint(val *big.Int) (uint, bool) {
	if !val.IsUint64() {
		return 0, false
	}
	//
	n := val.Uint64()
	//
	if uint64(uint(n)) != n {
		return 0, false
	}
	//
	return uint(n), true
}
