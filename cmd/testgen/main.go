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
package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	util "github.com/dlebansais/Easly-Compiler-sub002/pkg/cmd"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/config"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/fixture"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/metrics"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("min-size", 1, "Minimum size of generated programs")
	rootCmd.Flags().Uint("max-size", 8, "Maximum size of generated programs")
	rootCmd.Flags().String("output", "testdata", "Directory to write generated fixtures to")
	rootCmd.Flags().String("metrics", "", "Write resolution metrics over all generated programs to a file")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen model",
	Short: "Test generation utility for easly.",
	Long: `Generate fixture files of increasing size for a given model, checking
	that each resolves as the model expects.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		var cfg TestGenConfig
		// Lookup model
		cfg.model = findModel(args[0])
		cfg.minSize = util.GetUint(cmd, "min-size")
		cfg.maxSize = util.GetUint(cmd, "max-size")
		cfg.output = util.GetString(cmd, "output")
		recorder := metrics.NewRecorder()
		//
		for n := cfg.minSize; n <= cfg.maxSize; n++ {
			writeTestProgram(cfg, n, recorder)
		}
		//
		if filename := util.GetString(cmd, "metrics"); filename != "" {
			if err := recorder.WriteTextfile(filename); err != nil {
				panic(err)
			}
		}
	},
}

// TestGenConfig encapsulates configuration related to test generation.
type TestGenConfig struct {
	model   Model
	minSize uint
	maxSize uint
	output  string
}

// Model represents a family of programs parameterised by size, along with
// whether they are expected to resolve without errors.
type Model struct {
	// Name of the model in question
	Name string
	// Generator for programs of a given size.
	Generate func(uint) Program
	// Resolves indicates whether generated programs should resolve without
	// errors.
	Resolves bool
}

var models []Model = []Model{
	{"chain", chainModel, true},
	{"ring", ringModel, false},
	{"hierarchy", hierarchyModel, true},
}

func findModel(name string) Model {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	//
	panic(fmt.Sprintf("unknown model \"%s\"", name))
}

// Program is the fixture representation of a generated program.
type Program struct {
	Classes []Class `yaml:"classes"`
}

// Class is the fixture representation of a generated class.
type Class struct {
	Name     string           `yaml:"name"`
	Inherits string           `yaml:"inherits,omitempty"`
	Features []map[string]any `yaml:"features,omitempty"`
}

// A chain of constants, each one more than the previous, declared in reverse
// order.
func chainModel(n uint) Program {
	features := make([]map[string]any, n)
	//
	for i := uint(0); i < n; i++ {
		value := number(1)
		if i > 0 {
			value = binary("+", query(fmt.Sprintf("C%d", i-1)), number(1))
		}
		//
		features[n-i-1] = map[string]any{"constant": fmt.Sprintf("C%d", i), "value": value}
	}
	//
	return Program{[]Class{{Name: "Chain", Features: features}}}
}

// A ring of constants, each depending upon the next.
func ringModel(n uint) Program {
	features := make([]map[string]any, n)
	//
	for i := uint(0); i < n; i++ {
		next := fmt.Sprintf("R%d", (i+1)%n)
		features[i] = map[string]any{"constant": fmt.Sprintf("R%d", i), "value": binary("+", query(next), number(1))}
	}
	//
	return Program{[]Class{{Name: "Ring", Features: features}}}
}

// A hierarchy of classes, each redefining a function of its parent in terms of
// its precursor.
func hierarchyModel(n uint) Program {
	classes := make([]Class, n)
	//
	for i := uint(0); i < n; i++ {
		var (
			value   = number(0)
			feature = map[string]any{"function": "depth", "result": "Number"}
		)
		//
		if i > 0 {
			classes[i].Inherits = classes[i-1].Name
			value = binary("+", map[string]any{"precursor": []any{}}, number(1))
			feature["redefine"] = true
		}
		//
		feature["body"] = map[string]any{"instructions": []any{map[string]any{"assign": "Result", "value": value}}}
		classes[i].Name = fmt.Sprintf("Level%d", i)
		classes[i].Features = []map[string]any{feature}
	}
	//
	return Program{classes}
}

func number(n int) map[string]any {
	return map[string]any{"number": fmt.Sprintf("%d", n)}
}

func query(name string) map[string]any {
	return map[string]any{"query": name}
}

func binary(symbol string, left, right map[string]any) map[string]any {
	return map[string]any{"binary": symbol, "left": left, "right": right}
}

// Write a generated program of a given size, after checking that it resolves
// as expected.
func writeTestProgram(cfg TestGenConfig, n uint, recorder *metrics.Recorder) {
	bytes, err := yaml.Marshal(cfg.model.Generate(n))
	if err != nil {
		panic(err)
	}
	// Construct filename
	filename := path.Join(cfg.output, fmt.Sprintf("%s_%d.auto.yaml", cfg.model.Name, n))
	// Check it resolves as expected
	program, _, errs := fixture.ParseSourceFile(source.NewSourceFile(filename, bytes))
	if len(errs) > 0 {
		panic(errs[0].Message())
	}
	//
	start := time.Now()
	//
	result, err := easly.Resolve(context.Background(), program, config.Default())
	if err != nil {
		panic(err)
	} else if result.Succeeded() != cfg.model.Resolves {
		panic(fmt.Sprintf("%s: unexpected outcome (%s with %d errors)", filename, result.Status, len(result.Errors)))
	}
	//
	recorder.Observe(result, time.Since(start))
	// Write the file
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		panic(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%s after %d passes)\n", filename, result.Status, result.Passes)
}
