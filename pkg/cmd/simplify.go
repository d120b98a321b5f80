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

	"github.com/consensys/go-circuit/pkg/circuit/compiler"
	"github.com/consensys/go-circuit/pkg/circuit/interp"
	"github.com/consensys/go-circuit/pkg/circuit/printer"
	"github.com/consensys/go-circuit/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] file1.lisp file2.lisp ...",
	Short: "resolve constants and eliminate structural statements.",
	Long: `Resolve the constant variables and array sizes of every function and template
instance in the given source file(s), and then remove statements which only wire
components, buses or tags together.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			stats  = util.NewPerfStats()
			width  = GetUint(cmd, "width")
			colour = useColour(cmd)
			config = compiler.Config{
				Flags: interp.Flags{
					Verbose: GetFlag(cmd, "verbose"),
					Inspect: GetFlag(cmd, "inspect"),
				},
				Prime:    getPrime(cmd),
				Executor: interp.Interpreter{},
				Parallel: GetFlag(cmd, "parallel"),
			}
		)
		// Read source files, or print errors
		program := ReadSourceFiles(args, colour)
		// Run both passes
		reports := compiler.Simplify(program, config)
		//
		if len(reports) > 0 {
			printReports(reports, colour)
			log.Debug(reports.Err())
			os.Exit(5)
		}
		//
		if GetFlag(cmd, "constants") {
			fmt.Print(printer.Constants(program, width))
		}
		//
		if GetFlag(cmd, "tree") {
			fmt.Print(printer.Program(program, width))
		}
		//
		stats.Log("Simplifying program")
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().Bool("parallel", false, "process functions and templates concurrently")
	simplifyCmd.Flags().Bool("inspect", false, "sanity check values computed by the interpreter")
	simplifyCmd.Flags().Bool("constants", false, "print the constants of each function and template")
	simplifyCmd.Flags().Bool("tree", false, "print the simplified program")
}
