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

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/fixture"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] fixture_file(s)",
	Short: "check fixture files are well-formed.",
	Long: `Load a program from one or more fixture files, reporting any syntax
	errors without resolving it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		colour := useColour(cmd)
		program, _, errs := fixture.ParseSourceFiles(readSourceFiles(cmd, args))
		//
		for i := range errs {
			printSyntaxError(&errs[i], colour)
		}
		//
		if len(errs) > 0 {
			os.Exit(1)
		}
		//
		log.Debugf("loaded %d classes", len(program.Classes))
		fmt.Println("ok")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
