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
package report

import (
	"fmt"
	"strings"

	"github.com/consensys/go-circuit/pkg/util/source"
	"go.uber.org/multierr"
)

// Code identifies the kind of problem being reported.
type Code uint16

const (
	// INVALID_ARRAY_SIZE is reported when an array dimension cannot be resolved
	// to a non-negative integer.
	INVALID_ARRAY_SIZE Code = iota
	// UNKNOWN_VARIABLE is reported when a constant expression refers to a
	// variable which is not bound in the environment.
	UNKNOWN_VARIABLE
	// NON_CONSTANT_EXPRESSION is reported when a constant expression contains a
	// construct which cannot be evaluated statically (e.g. a call).
	NON_CONSTANT_EXPRESSION
	// INVALID_ACCESS is reported when an access path does not match the shape
	// of the accessed value (e.g. an index out of bounds).
	INVALID_ACCESS
	// DIVISION_BY_ZERO is reported when a constant expression divides by zero.
	DIVISION_BY_ZERO
)

var codeNames = []string{"InvalidArraySize", "UnknownVariable", "NonConstantExpression", "InvalidAccess",
	"DivisionByZero"}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	//
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// Label attaches a message to a given span of a source file.
type Label struct {
	// File being labelled, which may be nil when nodes are constructed
	// programmatically.
	File *source.File
	// Span being labelled
	Span source.Span
	// Message attached to the span
	Message string
}

// Report is a structured diagnostic.  Reports are accumulated into a
// Collection, rather than being thrown.
type Report struct {
	Code    Code
	Message string
	// Primary labels identify where the problem arose.
	Primary []Label
}

// Error constructs a new report with a given code and message, but without any
// labels.
func Error(code Code, msg string) Report {
	return Report{Code: code, Message: msg}
}

// AddPrimary attaches a primary label to this report.
func (p *Report) AddPrimary(file *source.File, span source.Span, msg string) {
	p.Primary = append(p.Primary, Label{file, span, msg})
}

// SyntaxErrors converts the primary labels of this report into syntax errors,
// such that they can be printed with source highlighting.  Labels without an
// associated file are skipped.
func (p *Report) SyntaxErrors() []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, l := range p.Primary {
		if l.File != nil {
			msg := fmt.Sprintf("%s (%s)", p.Message, l.Message)
			errors = append(errors, *l.File.SyntaxError(l.Span, msg))
		}
	}
	//
	return errors
}

// Error implements the error interface.
func (p Report) Error() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("error[%s]: %s", p.Code, p.Message))
	//
	for _, l := range p.Primary {
		if l.File != nil {
			line := l.File.EnclosingLine(l.Span)
			builder.WriteString(fmt.Sprintf(" at %s:%d", l.File.Filename(), line.Number()))
		}
		//
		builder.WriteString(fmt.Sprintf(" (%s)", l.Message))
	}
	//
	return builder.String()
}

// Collection is an ordered collection of reports.  An empty collection means
// success.
type Collection []Report

// Append adds zero or more reports onto the end of this collection.
func (p *Collection) Append(reports ...Report) {
	*p = append(*p, reports...)
}

// Count returns the number of reports with a given code in this collection.
func (p Collection) Count(code Code) int {
	var n = 0
	//
	for _, r := range p {
		if r.Code == code {
			n++
		}
	}
	//
	return n
}

// Err folds this collection into a single error, or returns nil if the
// collection is empty.
func (p Collection) Err() error {
	var err error
	//
	for _, r := range p {
		err = multierr.Append(err, r)
	}
	//
	return err
}
