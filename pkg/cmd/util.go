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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/circuit/reader"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util/field"
	"github.com/consensys/go-circuit/pkg/util/source"
	"github.com/consensys/go-circuit/pkg/util/termio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Width used for printing when the output is not a terminal.
const defaultWidth = 120

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Determine the prime field selected on the command line, or exit if it is
// unknown.
func getPrime(cmd *cobra.Command) field.Prime {
	var (
		name  = GetString(cmd, "field")
		prime = field.GetPrime(name)
	)
	//
	if prime == nil {
		fmt.Printf("unknown field \"%s\"\n", name)
		os.Exit(3)
	}
	//
	log.Debugf("using field %s (%d bits)", prime.Name, prime.BitWidth())
	//
	return *prime
}

// Determine whether diagnostics should be highlighted.  This requires stdout
// to be a terminal.
func useColour(cmd *cobra.Command) bool {
	return GetFlag(cmd, "colour") && term.IsTerminal(int(os.Stdout.Fd()))
}

// Determine the width of the terminal attached to stdout, or fall back to a
// sensible default.
func terminalWidth() uint {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return uint(width)
		}
	}
	//
	return defaultWidth
}

// ReadSourceFiles reads a given set of source files into a program, or exits
// after printing any syntax errors arising.
func ReadSourceFiles(filenames []string, colour bool) *ast.Program {
	for _, n := range filenames {
		log.Debugf("including source file %s", n)
	}
	//
	srcfiles, err := source.ReadFiles(filenames...)
	// Sanity check for errors
	if err != nil {
		fmt.Println(errors.Wrapf(err, "reading source files"))
		os.Exit(3)
	}
	//
	program, errs := reader.ReadSourceFiles(srcfiles)
	// Check for errors
	if len(errs) != 0 {
		// Report errors
		for _, err := range errs {
			printSyntaxError(&err, colour)
		}
		// Fail
		os.Exit(4)
	}
	//
	return program
}

// Print all reports within a given collection.  Where a report has a location,
// this is highlighted.
func printReports(reports report.Collection, colour bool) {
	for _, r := range reports {
		if errs := r.SyntaxErrors(); len(errs) > 0 {
			for _, err := range errs {
				printSyntaxError(&err, colour)
			}
		} else {
			fmt.Println(r.Error())
		}
	}
}

// Print a syntax error, highlighting the offending part of its first line.
func printSyntaxError(err *source.SyntaxError, colour bool) {
	var (
		span   = err.Span()
		line   = err.Line()
		offset = span.Start() - line.Start()
		// Spans covering multiple lines are truncated
		length = max(1, min(line.Length()-offset, span.Length()))
		// Styles for the message and highlighted text
		bold = termio.NewAnsiEscape()
		red  = termio.NewAnsiEscape()
	)
	//
	if colour {
		bold = bold.Bold()
		red = red.Bold().FgColour(termio.TERM_RED)
	}
	//
	location := fmt.Sprintf("%s:%d:%d-%d", err.SourceFile().Filename(), line.Number(), 1+offset, 1+offset+length)
	fmt.Printf("%s %s\n", bold.Apply(location), err.Message())
	fmt.Println()
	// Print line with the offending text highlighted
	var (
		text = []rune(line.String())
		end  = min(offset+length, len(text))
	)
	//
	fmt.Printf("%s%s%s\n", string(text[:offset]), red.Apply(string(text[offset:end])), string(text[end:]))
	fmt.Print(strings.Repeat(" ", offset))
	fmt.Println(red.Apply(strings.Repeat("^", length)))
}
