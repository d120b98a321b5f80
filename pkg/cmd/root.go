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
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at link time for release builds.
var Version string

var rootCmd = &cobra.Command{
	Use:   "circuitc",
	Short: "Constant resolution for arithmetic circuits.",
	Long: `Resolves the constant variables and array sizes of annotated circuit
programs, and eliminates statements which only wire components, buses or tags
together.`,
	Version: version(),
}

// Execute runs the command selected on the command line.  This is called by
// main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Determine the version of this executable.  Installed binaries carry their
// module version, whilst those run from source do not.
func version() string {
	if Version != "" {
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	//
	return "(unknown version)"
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("field", "BN254", "prime field to use throughout")
	rootCmd.PersistentFlags().Bool("colour", true, "highlight diagnostics when printing to a terminal")
	rootCmd.PersistentFlags().Uint("width", terminalWidth(), "maximum width of printed output")
}
