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
package easly

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/config"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_Constant(t *testing.T) {
	c := compile(t, 0, "constant.yaml")
	require.NotNil(t, c.Result)
	assert.True(t, c.Result.Succeeded())
	//
	feature := c.Program.Classes[0].Features[0]
	value := feature.Definition().ConstantValue.Value()
	require.True(t, value.HasValue())
	assert.Equal(t, big.NewInt(5), value.Unwrap().Number())
	//
	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, c.ID, compile(t, 0, "constant.yaml").ID)
}

func Test_Resolve_Shapes(t *testing.T) {
	c := compile(t, 0, "shapes.yaml")
	require.True(t, c.Result.Succeeded(), "%v", c.Result.Errors)
	//
	var (
		shape  = c.Program.Classes[1]
		square = c.Program.Classes[2]
		area   = square.Features[1].(*ast.FunctionFeature)
		move   = square.Features[2].(*ast.ProcedureFeature)
	)
	// Inheritance
	assert.Equal(t, shape, square.Super.Value().Unwrap())
	assert.Equal(t, []string{"x", "area", "Side", "move", "reset"}, square.FeatureTable.Keys())
	inherited, _ := square.FeatureTable.Get("x")
	assert.Equal(t, shape.Features[0], inherited)
	// Redefinition
	assert.Equal(t, shape.Features[1], area.Precursor.Value().Unwrap())
	require.Len(t, area.Contract.Items(), 1)
	assert.Equal(t, "positive", area.Contract.Items()[0].Tag)
	// Constants
	side := square.Features[0].Definition().ConstantValue.Value()
	assert.Equal(t, big.NewInt(6), side.Unwrap().Number())
	// Exceptions
	assert.Equal(t, []string{"Failure"}, move.Exceptions.Items())
	assert.Empty(t, area.Exceptions.Items())
	assert.Equal(t, []string{"dx", "step"}, move.LocalTable.Keys())
	require.Len(t, square.Invariant.Items(), 1)
}

func Test_Resolve_Unknown(t *testing.T) {
	c := compile(t, 0, "unknown.yaml")
	assert.Equal(t, engine.Stalled, c.Result.Status)
	//
	located, unlocated := c.Errors()
	assert.Empty(t, unlocated)
	require.Len(t, located, len(c.Result.Errors))
	// The root failure is reported on the query.
	for i, e := range c.Result.Errors {
		line := located[i].FirstEnclosingLine()
		//
		if e.Kind == diag.UnknownIdentifier {
			assert.Equal(t, 5, line.Number())
			assert.Contains(t, located[i].Message(), "unknown identifier")
		}
	}
}

func Test_Resolve_Cycle(t *testing.T) {
	c := compile(t, 0, "cycle.yaml")
	assert.Equal(t, engine.Stalled, c.Result.Status)
	require.NotEmpty(t, c.Result.Errors)
	//
	for _, e := range c.Result.Errors {
		assert.Equal(t, diag.Cycle, e.Cause)
	}
}

func Test_Resolve_Errors(t *testing.T) {
	c := compile(t, 0, "errors.yaml")
	assert.False(t, c.Result.Succeeded())
	//
	assert.Len(t, diag.Filter(c.Result.Errors, diag.TypeMismatch), 3)
	assert.Len(t, diag.Filter(c.Result.Errors, diag.UnknownIdentifier), 1)
	//
	for _, e := range diag.Filter(c.Result.Errors, diag.UnresolvedDependency) {
		assert.Equal(t, diag.Blocked, e.Cause, e.Error())
	}
	// Errors are not duplicated
	seen := make(map[string]bool)
	//
	for _, e := range c.Result.Errors {
		assert.False(t, seen[e.Error()], e.Error())
		seen[e.Error()] = true
	}
}

func Test_Resolve_Determinism(t *testing.T) {
	var expected []diag.Error
	//
	for _, workers := range []uint{1, 4, 16} {
		c := compile(t, workers, "shapes.yaml", "errors.yaml")
		errs := c.Result.Errors
		//
		if expected == nil {
			expected = errs
		} else {
			require.Len(t, errs, len(expected))
			//
			for i := range errs {
				assert.Equal(t, expected[i].Error(), errs[i].Error())
			}
		}
	}
}

func Test_Resolve_SyntaxError(t *testing.T) {
	file := source.NewSourceFile("bad.yaml", []byte("classes:\n  - name: A\n    parent: B\n"))
	//
	c, err := ResolveSourceFiles(context.Background(), []*source.File{file}, config.Default())
	require.NoError(t, err)
	assert.Nil(t, c.Result)
	require.Len(t, c.SyntaxErrors, 1)
	//
	located, unlocated := c.Errors()
	assert.Len(t, located, 1)
	assert.Empty(t, unlocated)
}

func Test_Resolve_InvalidConfig(t *testing.T) {
	_, err := Resolve(context.Background(), ast.NewProgram(), config.Config{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func compile(t *testing.T, workers uint, names ...string) *Compilation {
	var filenames []string
	//
	for _, n := range names {
		filenames = append(filenames, filepath.Join("fixture", "testdata", n))
	}
	//
	files, err := source.ReadFiles(filenames...)
	require.NoError(t, err)
	//
	cfg := config.Default()
	cfg.Workers = workers
	//
	c, err := ResolveSourceFiles(context.Background(), files, cfg)
	require.NoError(t, err)
	require.Empty(t, c.SyntaxErrors)
	//
	return c
}
