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
package rule

import (
	"testing"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Paths
// ============================================================================

func Test_Path_01(t *testing.T) {
	p := Assigned(ast.FeatureSlot, ast.SignatureSlot)
	//
	assert.Equal(t, []string{ast.FeatureSlot}, p.Steps)
	assert.Equal(t, ast.SignatureSlot, p.Slot)
	assert.Equal(t, MustBeAssigned, p.Requirement)
	assert.Equal(t, "feature.signature(assigned)", p.String())
	//
	p = Maybe(ast.DeclaredTypeSlot)
	assert.Empty(t, p.Steps)
	assert.Equal(t, slot.Conditional, p.Requirement.Discipline())
}

// Following a slot-backed relation blocks until it is assigned.
func Test_Path_02(t *testing.T) {
	var (
		entity = ast.NewEntity("x", "Number")
		query  = ast.NewQueryExpression("x")
		path   = Assigned(ast.FeatureSlot, ast.SignatureSlot)
	)
	//
	blockers, err := Ready(query, path)
	require.NoError(t, err)
	assert.Equal(t, []Blocker{{query, ast.FeatureSlot}}, blockers)
	//
	require.NoError(t, query.Feature.Set(entity))
	blockers, err = Ready(query, path)
	require.NoError(t, err)
	assert.Equal(t, []Blocker{{entity, ast.SignatureSlot}}, blockers)
	//
	require.NoError(t, entity.Signature.Set(&ast.Signature{}))
	blockers, err = Ready(query, path)
	require.NoError(t, err)
	assert.Empty(t, blockers)
}

// Relations can lead to any number of nodes, including none.
func Test_Path_03(t *testing.T) {
	var (
		one   = ast.NewNumberExpression("1")
		two   = ast.NewNumberExpression("2")
		call  = ast.NewQueryExpression("f", one, two)
		empty = ast.NewQueryExpression("g")
		path  = Assigned(ast.ArgumentsRelation, ast.ResolvedTypeSlot)
	)
	//
	blockers, err := Ready(call, path)
	require.NoError(t, err)
	assert.Equal(t, []Blocker{{one, ast.ResolvedTypeSlot}, {two, ast.ResolvedTypeSlot}}, blockers)
	//
	require.NoError(t, one.ResolvedType.Set(ast.NewLanguageType("Number")))
	blockers, err = Ready(call, path)
	require.NoError(t, err)
	assert.Equal(t, []Blocker{{two, ast.ResolvedTypeSlot}}, blockers)
	//
	blockers, err = Ready(empty, path)
	require.NoError(t, err)
	assert.Empty(t, blockers)
}

// Absent conditional slots are ready, and lead nowhere.
func Test_Path_04(t *testing.T) {
	var (
		attribute = ast.NewAttributeFeature("a", "")
		typed     = ast.NewAttributeFeature("b", "Number")
	)
	//
	blockers, err := Ready(attribute, Maybe(ast.DeclaredTypeSlot))
	require.NoError(t, err)
	assert.Empty(t, blockers)
	//
	blockers, err = Ready(typed, Maybe(ast.DeclaredTypeSlot))
	require.NoError(t, err)
	assert.Equal(t, []Blocker{{typed, ast.DeclaredTypeSlot}}, blockers)
	//
	blockers, err = Ready(attribute, Sealed(ast.PrecursorSlot, ast.ExceptionsSlot))
	require.NoError(t, err)
	assert.Empty(t, blockers)
}

// Paths naming slots or relations which don't exist are structural errors.
func Test_Path_05(t *testing.T) {
	query := ast.NewQueryExpression("x")
	//
	_, err := Ready(query, Assigned("missing"))
	assert.ErrorIs(t, err, slot.ErrStructural)
	//
	_, err = Ready(query, Assigned("nowhere", ast.ResolvedTypeSlot))
	assert.ErrorIs(t, err, ast.ErrUnknownRelation)
	// Wrong discipline
	_, err = Ready(query, Sealed(ast.ResolvedTypeSlot))
	assert.ErrorIs(t, err, slot.ErrStructural)
}

// ============================================================================
// TryResolve
// ============================================================================

func numberType() *Template[*ast.NumberExpression, *ast.Type] {
	return New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, Resolution).
		Writes(WriteOnce(ast.ResolvedTypeSlot)).
		Checks(func(env *Env, n *ast.NumberExpression) (*ast.Type, []diag.Error) {
			if t, ok := env.Tables.Type(tables.NumberType); ok {
				return t, nil
			}
			//
			return nil, diag.Errors(diag.MissingLanguageType, n, "%s", tables.NumberType)
		}).
		Applies(func(n *ast.NumberExpression, t *ast.Type) error { return n.ResolvedType.Set(t) })
}

func Test_TryResolve_01(t *testing.T) {
	var (
		env  = &Env{Tables: tables.Standard()}
		expr = ast.NewNumberExpression("1")
		r    = numberType()
	)
	//
	outcome, err := TryResolve(env, r, expr)
	require.NoError(t, err)
	assert.Equal(t, Applied, outcome.Status)
	// Nothing is written until applied.
	assert.False(t, expr.ResolvedType.IsReady())
	require.NoError(t, r.Apply(expr, outcome.Data))
	assert.Equal(t, tables.NumberType, expr.ResolvedType.Value().Name)
	// Applying twice violates the write-once discipline.
	assert.ErrorIs(t, r.Apply(expr, outcome.Data), slot.ErrAlreadyAssigned)
}

func Test_TryResolve_02(t *testing.T) {
	var (
		env  = &Env{Tables: tables.New(tables.StringType)}
		expr = ast.NewNumberExpression("1")
	)
	//
	outcome, err := TryResolve(env, numberType(), expr)
	require.NoError(t, err)
	assert.Equal(t, Failed, outcome.Status)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, diag.MissingLanguageType, outcome.Errors[0].Kind)
	assert.Equal(t, "number-type", outcome.Errors[0].Rule)
}

func Test_TryResolve_03(t *testing.T) {
	var (
		env   = &Env{Tables: tables.Standard()}
		query = ast.NewQueryExpression("x")
		r     = New[*ast.QueryExpression, *ast.Type]("query-type", ast.QueryExpressionKind, Resolution).
			Reads(Assigned(ast.FeatureSlot, ast.SignatureSlot)).
			Writes(WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *Env, n *ast.QueryExpression) (*ast.Type, []diag.Error) {
				return n.Feature.Value().Definition().Signature.Value().Result, nil
			}).
			Applies(func(n *ast.QueryExpression, t *ast.Type) error { return n.ResolvedType.Set(t) })
	)
	//
	outcome, err := TryResolve(env, r, query)
	require.NoError(t, err)
	assert.Equal(t, Deferred, outcome.Status)
	assert.Equal(t, []Blocker{{query, ast.FeatureSlot}}, outcome.Blockers)
}

// Reading a slot not declared as a source is a structural violation.
func Test_TryResolve_04(t *testing.T) {
	var (
		env   = &Env{Tables: tables.Standard()}
		query = ast.NewQueryExpression("x")
		r     = New[*ast.QueryExpression, *ast.Type]("query-type", ast.QueryExpressionKind, Resolution).
			Writes(WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *Env, n *ast.QueryExpression) (*ast.Type, []diag.Error) {
				return n.Feature.Value().Definition().Signature.Value().Result, nil
			})
	)
	//
	_, err := TryResolve(env, r, query)
	assert.ErrorIs(t, err, slot.ErrUnassigned)
}

// Trying a rule on a node of another kind is a structural violation, rather
// than a crash.
func Test_TryResolve_05(t *testing.T) {
	var (
		env  = &Env{Tables: tables.Standard()}
		expr = ast.NewStringExpression("a")
		r    = numberType()
	)
	//
	_, err := TryResolve(env, r, expr)
	assert.ErrorIs(t, err, slot.ErrStructural)
	assert.ErrorContains(t, err, "number-type")
	assert.ErrorIs(t, r.Apply(expr, nil), slot.ErrStructural)
	assert.False(t, expr.ResolvedType.IsReady())
}

// ============================================================================
// Catalogs
// ============================================================================

func Test_Catalog_01(t *testing.T) {
	var (
		first  = numberType()
		second = New[*ast.StringExpression, *ast.Type]("string-type", ast.StringExpressionKind, Resolution).
			Writes(WriteOnce(ast.ResolvedTypeSlot))
	)
	//
	catalog, err := NewCatalog(first, second)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, []Rule{first}, catalog.RulesFor(ast.NumberExpressionKind))
	assert.Empty(t, catalog.RulesFor(ast.ClassKind))
	//
	w, ok := catalog.Writer(ast.StringExpressionKind, ast.ResolvedTypeSlot)
	assert.True(t, ok)
	assert.Equal(t, second, w)
	//
	_, ok = catalog.Writer(ast.StringExpressionKind, ast.ConstantValueSlot)
	assert.False(t, ok)
}

// Two rules writing the same slot of the same kind are rejected.
func Test_Catalog_02(t *testing.T) {
	other := New[*ast.NumberExpression, *ast.Type]("number-type-again", ast.NumberExpressionKind, Resolution).
		Writes(WriteOnce(ast.ResolvedTypeSlot))
	//
	_, err := NewCatalog(numberType(), other)
	assert.ErrorIs(t, err, ErrMultipleWriters)
}

func Test_Catalog_03(t *testing.T) {
	// Destination which does not exist
	bad := New[*ast.NumberExpression, *ast.Type]("number-feature", ast.NumberExpressionKind, Resolution).
		Writes(WriteOnce(ast.FeatureSlot))
	_, err := NewCatalog(bad)
	assert.ErrorIs(t, err, ErrInvalidDestination)
	// Destination with the wrong discipline
	bad = New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, Resolution).
		Writes(Seal(ast.ResolvedTypeSlot))
	_, err = NewCatalog(bad)
	assert.ErrorIs(t, err, ErrInvalidDestination)
	// Source which does not exist
	bad = New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, Resolution).
		Reads(Assigned(ast.OperatorSlot))
	_, err = NewCatalog(bad)
	assert.ErrorIs(t, err, ErrInvalidSource)
	// Duplicate names
	_, err = NewCatalog(numberType(), New[*ast.NumberExpression, *ast.Type]("number-type",
		ast.NumberExpressionKind, Resolution))
	assert.ErrorIs(t, err, ErrDuplicateRule)
}
