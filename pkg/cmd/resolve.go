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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/metrics"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/termio"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] fixture_file(s)",
	Short: "resolve the semantics of a program.",
	Long: `Load a program from one or more fixture files and resolve it,
	reporting any errors found.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg    = getConfig(cmd)
			colour = useColour(cmd)
			files  = readSourceFiles(cmd, args)
			start  = time.Now()
		)
		//
		c, err := easly.ResolveSourceFiles(context.Background(), files, cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		if filename := GetString(cmd, "metrics"); filename != "" && c.Result != nil {
			writeMetrics(filename, c.Result, time.Since(start))
		}
		//
		located, unlocated := c.Errors()
		//
		for i := range located {
			printSyntaxError(&located[i], colour)
		}
		//
		for _, err := range unlocated {
			fmt.Println(err)
		}
		//
		if c.Result != nil {
			if GetFlag(cmd, "stats") {
				printPasses(c.Result, colour)
			}
			//
			fmt.Printf("%s after %d passes with %d error(s)\n", c.Result.Status, c.Result.Passes,
				len(c.Result.Errors))
		}
		//
		if len(located) > 0 || len(unlocated) > 0 {
			os.Exit(1)
		}
	},
}

// Print the number of items pending at the start of each pass.
func printPasses(result *engine.Result, colour bool) {
	tbl := termio.NewTablePrinter(2, uint(len(result.Pending)+1))
	tbl.SetRow(0, "pass", "pending")
	tbl.SetEscape(0, 0, termio.BoldAnsiEscape())
	tbl.SetEscape(1, 0, termio.BoldAnsiEscape())
	tbl.AnsiEscapes(colour)
	//
	for i, n := range result.Pending {
		pass := fmt.Sprintf("%d", i+1)
		// Final row records what remained on termination
		if i == len(result.Pending)-1 {
			pass = "end"
		}
		//
		tbl.SetRow(uint(i+1), pass, fmt.Sprintf("%d", n))
	}
	//
	if err := tbl.Print(os.Stdout); err != nil {
		fmt.Println(err)
	}
}

// Write statistics for a resolution run in the Prometheus text format.
func writeMetrics(filename string, result *engine.Result, elapsed time.Duration) {
	recorder := metrics.NewRecorder()
	recorder.Observe(result, elapsed)
	//
	if err := recorder.WriteTextfile(filename); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Bool("stats", false, "print the number of pending rules at each pass")
	resolveCmd.Flags().String("metrics", "", "write resolution metrics to a file (Prometheus text format)")
}
