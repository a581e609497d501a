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

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/config"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure logging, and determine the resolution configuration from the
// configuration file (if any), the environment and then the command line.
func getConfig(cmd *cobra.Command) config.Config {
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	cfg, err := config.Load(GetString(cmd, "config"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if n := GetUint(cmd, "max-passes"); n != 0 {
		cfg.MaxPasses = n
	}
	//
	if n := GetUint(cmd, "workers"); n != 0 {
		cfg.Workers = n
	}
	//
	return cfg
}

// Read the given fixture files, or exit if any cannot be read.
func readSourceFiles(cmd *cobra.Command, filenames []string) []*source.File {
	if len(filenames) == 0 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return files
}

// Determine whether highlighting should be used, which requires stdout to be
// a terminal.
func useColour(cmd *cobra.Command) bool {
	return !GetFlag(cmd, "no-colour") && term.IsTerminal(int(os.Stdout.Fd()))
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError, colour bool) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	highlight := termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(highlight.Wrap(strings.Repeat("^", length), colour))
}
