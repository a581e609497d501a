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

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rules"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/termio"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags]",
	Short: "print the standard rule catalog.",
	Long: `Print every rule in the standard catalog, along with the node kind it
	is bound to, its tier, the slots it reads and the slots it writes.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			kind     = GetString(cmd, "kind")
			catalog  = rules.Catalog()
			selected []rule.Rule
		)
		//
		for _, r := range catalog.Rules() {
			if kind == "" || r.Kind().String() == kind {
				selected = append(selected, r)
			}
		}
		//
		if len(selected) == 0 {
			fmt.Printf("no rules for kind \"%s\"\n", kind)
			os.Exit(1)
		}
		//
		printRules(selected, GetUint(cmd, "textwidth"), useColour(cmd))
	},
}

func printRules(selected []rule.Rule, width uint, colour bool) {
	tbl := termio.NewTablePrinter(5, uint(len(selected)+1))
	tbl.SetRow(0, "rule", "kind", "tier", "reads", "writes")
	tbl.AnsiEscapes(colour)
	//
	for col := uint(0); col < 5; col++ {
		tbl.SetEscape(col, 0, termio.BoldAnsiEscape())
	}
	//
	for i, r := range selected {
		var (
			sources      = make([]string, len(r.Sources()))
			destinations = make([]string, len(r.Destinations()))
		)
		//
		for j, s := range r.Sources() {
			sources[j] = s.String()
		}
		//
		for j, d := range r.Destinations() {
			destinations[j] = fmt.Sprintf("%s(%s)", d.Slot, d.Discipline)
		}
		//
		tbl.SetRow(uint(i+1), r.Name(), r.Kind().String(), r.Tier().String(), strings.Join(sources, " "),
			strings.Join(destinations, " "))
		tbl.SetEscape(2, uint(i+1), tierColour(r.Tier()))
	}
	//
	tbl.SetMaxWidth(3, width)
	//
	if err := tbl.Print(os.Stdout); err != nil {
		fmt.Println(err)
	}
}

func tierColour(tier rule.Tier) termio.AnsiEscape {
	switch tier {
	case rule.Resolution:
		return termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	case rule.Contract:
		return termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	default:
		return termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().String("kind", "", "only print rules bound to the given node kind")
	rulesCmd.Flags().Uint("textwidth", 60, "set the maximum width of the reads column")
}
