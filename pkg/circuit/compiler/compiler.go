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
	"fmt"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/circuit/interp"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util"
	"github.com/consensys/go-circuit/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Config determines how constants are computed for a program.
type Config struct {
	// Flags passed to the executor.
	Flags interp.Flags
	// Prime modulus of the underlying field.
	Prime field.Prime
	// Executor used to resolve non-literal array dimensions in functions.
	Executor Executor
	// Parallel enables processing of each function and template instance in
	// its own go-routine.
	Parallel bool
}

// DefaultConfig returns a configuration over the BN254 scalar field which uses
// the default interpreter.
func DefaultConfig() Config {
	return Config{
		Prime:    field.BN254,
		Executor: interp.Interpreter{},
	}
}

// FunctionConstants computes the constants table for a given function.  Array
// dimensions in the body of a function can refer to its arguments, provided
// these are bound.  The body of the function is annotated with the resolved
// dimensions.
func FunctionConstants(fn *ast.Function, program *ast.Program, config Config) (ast.Constants, report.Collection) {
	log.Debugf("propagating constants in function %s", fn.Name)
	//
	var env = interp.FromArguments(fn.Arguments)
	//
	return constants(fn.Body, false, env, program, config)
}

// TemplateConstants computes the constants table for a given template
// instance.  Array dimensions in the body of a template must be literal
// numbers.  The body of the instance is annotated with the resolved
// dimensions.
func TemplateConstants(template *ast.TemplateInstance, program *ast.Program,
	config Config) (ast.Constants, report.Collection) {
	//
	log.Debugf("propagating constants in template %s", template.Name)
	//
	return constants(template.Code, true, interp.NewEnvironment(), program, config)
}

func constants(body ast.Statement, insideTemplate bool, env *interp.Environment, program *ast.Program,
	config Config) (ast.Constants, report.Collection) {
	//
	var scope = newScope(insideTemplate, env, program, config)
	//
	scope.treatStatement(body)
	//
	return scope.constants, scope.reports
}

// ComputeFunctionConstants computes and attaches the constants table of every
// function in a given program.  Reports are returned for all functions, in
// order of declaration.  Hence, this succeeds only when no reports are
// returned.
func ComputeFunctionConstants(program *ast.Program, config Config) report.Collection {
	var jobs = make([]job, len(program.Functions))
	//
	for i, fn := range program.Functions {
		jobs[i] = func() report.Collection {
			constants, reports := FunctionConstants(fn, program, config)
			fn.SetConstantVariables(constants)
			//
			return reports
		}
	}
	//
	return execute("Function constants", jobs, config.Parallel)
}

// ComputeTemplateConstants computes and attaches the constants table of every
// template instance in a given program.  Reports are returned for all
// instances, in order.  Hence, this succeeds only when no reports are returned.
func ComputeTemplateConstants(program *ast.Program, config Config) report.Collection {
	var jobs = make([]job, len(program.Templates))
	//
	for i, template := range program.Templates {
		jobs[i] = func() report.Collection {
			constants, reports := TemplateConstants(template, program, config)
			template.SetConstantVariables(constants)
			//
			return reports
		}
	}
	//
	return execute("Template constants", jobs, config.Parallel)
}

// EliminateStructure removes structural statements from every template instance
// and function in a given program, using their attached constants tables.
// Constants must have already been computed.
func EliminateStructure(program *ast.Program) {
	for _, template := range program.Templates {
		template.Code = EliminateStatement(template.Code, template.Constants)
	}
	//
	for _, fn := range program.Functions {
		fn.ReplaceBody(EliminateStatement(fn.Body, fn.Constants))
	}
}

// Simplify computes the constants tables of every function and template
// instance in a given program, and then removes structural statements.  For
// any given scope, propagation always completes before elimination begins.
// Reports are returned for all functions (in order of declaration) followed by
// all template instances.
func Simplify(program *ast.Program, config Config) report.Collection {
	var jobs []job
	//
	for _, fn := range program.Functions {
		jobs = append(jobs, func() report.Collection {
			constants, reports := FunctionConstants(fn, program, config)
			fn.SetConstantVariables(constants)
			fn.ReplaceBody(EliminateStatement(fn.Body, constants))
			//
			return reports
		})
	}
	//
	for _, template := range program.Templates {
		jobs = append(jobs, func() report.Collection {
			constants, reports := TemplateConstants(template, program, config)
			template.SetConstantVariables(constants)
			template.Code = EliminateStatement(template.Code, constants)
			//
			return reports
		})
	}
	//
	return execute("Simplification", jobs, config.Parallel)
}

// ============================================================================
// Job execution
// ============================================================================

// job processes a single scope, returning any reports arising.
type job func() report.Collection

// Execute a set of jobs, either sequentially or concurrently.  In either case,
// the reports are combined in the order in which jobs are given.
func execute(name string, jobs []job, parallel bool) report.Collection {
	var (
		reports report.Collection
		// Start timer
		stats = util.NewPerfStats()
		// Results of each job
		results = make([]report.Collection, len(jobs))
	)
	//
	if parallel {
		// Construct a communication channel for results.
		ch := make(chan jobResult, len(jobs))
		// Dispatch each job
		for i, ith := range jobs {
			go func() {
				ch <- jobResult{i, ith()}
			}()
		}
		// Collect up all the results
		for range jobs {
			r := <-ch
			results[r.index] = r.reports
		}
	} else {
		for i, ith := range jobs {
			results[i] = ith()
		}
	}
	//
	for _, r := range results {
		reports.Append(r...)
	}
	// Log stats about this pass
	stats.Log(fmt.Sprintf("%s (%d scopes, %d reports)", name, len(jobs), len(reports)))
	//
	return reports
}

// Result from a given job.
type jobResult struct {
	index   int
	reports report.Collection
}
