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
package engine

import (
	"context"
	"math/big"
	"testing"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rules"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Scenarios
// ============================================================================

// A constant is folded within a single run to a fixed point.  That run takes
// several passes, since each pass only reads what earlier passes committed
// (operands, then the sum, then the feature).
func Test_Engine_Constant(t *testing.T) {
	c := ast.NewConstantFeature("C", "", ast.NewBinaryExpression(number("2"), "+", number("3")))
	result := resolve(t, ast.NewProgram(class("A", c)), 4)
	//
	assert.Equal(t, Resolved, result.Status)
	assert.Greater(t, result.Passes, uint(1))
	assert.Empty(t, result.Errors)
	assert.True(t, result.Succeeded())
	//
	value := c.ConstantValue.Value()
	require.True(t, value.HasValue())
	assert.True(t, ast.NumberOf(big.NewInt(5)).Equals(value.Unwrap()))
	assert.Equal(t, tables.NumberType, c.Signature.Value().Result.Name)
	checkMonotonic(t, result)
}

func Test_Engine_UnknownIdentifier(t *testing.T) {
	d := ast.NewQueryExpression("D")
	c := ast.NewConstantFeature("C", "", d)
	result := resolve(t, ast.NewProgram(class("A", c)), 4)
	//
	assert.Equal(t, Stalled, result.Status)
	assert.False(t, result.Succeeded())
	//
	unknown := diag.Filter(result.Errors, diag.UnknownIdentifier)
	require.Len(t, unknown, 1)
	assert.Equal(t, d, unknown[0].Node)
	assert.Equal(t, "query-feature", unknown[0].Rule)
	// Everything else is blocked by that failure.
	unresolved := diag.Filter(result.Errors, diag.UnresolvedDependency)
	require.NotEmpty(t, unresolved)
	//
	for _, e := range unresolved {
		assert.Equal(t, diag.Blocked, e.Cause, e.Error())
		require.True(t, e.Root.HasValue())
		assert.Equal(t, diag.Origin{Node: d, Rule: "query-feature"}, e.Root.Unwrap())
	}
	//
	assert.Len(t, result.Errors, len(unknown)+len(unresolved))
	assert.False(t, c.Signature.IsReady())
	checkMonotonic(t, result)
}

func Test_Engine_Cycle(t *testing.T) {
	a := ast.NewConstantFeature("A", "", ast.NewBinaryExpression(ast.NewQueryExpression("B"), "+", number("1")))
	b := ast.NewConstantFeature("B", "", ast.NewBinaryExpression(ast.NewQueryExpression("A"), "+", number("1")))
	result := resolve(t, ast.NewProgram(class("K", a, b)), 4)
	//
	assert.Equal(t, Stalled, result.Status)
	require.NotEmpty(t, result.Errors)
	//
	var signatures []ast.Node
	//
	for _, e := range result.Errors {
		assert.Equal(t, diag.UnresolvedDependency, e.Kind)
		assert.Equal(t, diag.Cycle, e.Cause, e.Error())
		//
		if e.Rule == "feature-signature" {
			signatures = append(signatures, e.Node)
		}
	}
	//
	assert.Equal(t, []ast.Node{a, b}, signatures)
	checkMonotonic(t, result)
}

func Test_Engine_InheritanceCycle(t *testing.T) {
	a := ast.NewClass("A", ast.NewInheritance("B"), nil, nil)
	b := ast.NewClass("B", ast.NewInheritance("A"), nil, nil)
	result := resolve(t, ast.NewProgram(a, b), 2)
	//
	assert.Equal(t, Stalled, result.Status)
	//
	for _, e := range result.Errors {
		assert.Equal(t, diag.Cycle, e.Cause, e.Error())
	}
	// Parents are known, but types cannot be constructed.
	assert.True(t, a.Super.IsReady())
	assert.False(t, a.ClassType.IsReady())
}

// A conditional without an else clause leaves the else slot absent, which
// does not block anything.
func Test_Engine_ConditionalWithoutElse(t *testing.T) {
	cond := ast.NewConditionalInstruction(ast.NewKeywordExpression(ast.TrueKeyword),
		[]ast.Instruction{ast.NewAssignmentInstruction(ast.ResultName, number("1"))}, nil)
	f := ast.NewFunctionFeature("f", nil, tables.NumberType, nil, nil,
		ast.NewBody(nil, []ast.Instruction{cond}))
	result := resolve(t, ast.NewProgram(class("A", f)), 4)
	//
	assert.True(t, result.Succeeded(), "%v", result.Errors)
	assert.False(t, cond.ElseExceptions.IsPresent())
	assert.True(t, cond.ElseExceptions.IsReady())
	assert.True(t, f.Exceptions.IsReady())
}

func Test_Engine_Redefinition(t *testing.T) {
	base := ast.NewFunctionFeature("f", nil, tables.NumberType, nil, nil,
		ast.NewBody(nil, []ast.Instruction{ast.NewAssignmentInstruction(ast.ResultName, number("1"))}))
	precursor := ast.NewPrecursorExpression()
	derived := ast.NewFunctionFeature("f", nil, tables.NumberType, nil, nil,
		ast.NewBody(nil, []ast.Instruction{
			ast.NewAssignmentInstruction(ast.ResultName, ast.NewBinaryExpression(precursor, "+", number("1"))),
		}))
	derived.MarkRedefinition()
	//
	parent := class("Base", base)
	child := ast.NewClass("Derived", ast.NewInheritance("Base"), []ast.Feature{derived}, nil)
	result := resolve(t, ast.NewProgram(parent, child), 4)
	//
	assert.True(t, result.Succeeded(), "%v", result.Errors)
	//
	f, ok := child.FeatureTable.Get("f")
	require.True(t, ok)
	assert.Equal(t, ast.Feature(derived), f)
	assert.Equal(t, ast.Feature(base), derived.Precursor.Value().Unwrap())
	assert.Equal(t, ast.Definition(base), precursor.Feature.Value())
	assert.True(t, child.ClassType.Value().ConformsTo(parent.ClassType.Value()))
}

func Test_Engine_Errors(t *testing.T) {
	var (
		mismatch = ast.NewBinaryExpression(ast.NewStringExpression("a"), "+", number("1"))
		zero     = ast.NewBinaryExpression(number("1"), "/", number("0"))
		first    = ast.NewAttributeFeature("x", tables.NumberType)
		second   = ast.NewAttributeFeature("x", tables.StringType)
	)
	//
	program := ast.NewProgram(class("A",
		ast.NewConstantFeature("M", "", mismatch),
		ast.NewConstantFeature("Z", "", zero),
		first, second))
	result := resolve(t, program, 4)
	//
	assert.False(t, result.Succeeded())
	//
	mismatches := diag.Filter(result.Errors, diag.TypeMismatch)
	require.Len(t, mismatches, 1)
	assert.Equal(t, ast.Node(mismatch), mismatches[0].Node)
	//
	invalid := diag.Filter(result.Errors, diag.InvalidExpression)
	require.Len(t, invalid, 1)
	assert.Equal(t, ast.Node(zero), invalid[0].Node)
	//
	duplicates := diag.Filter(result.Errors, diag.DuplicateName)
	require.Len(t, duplicates, 1)
	assert.Equal(t, ast.Node(second), duplicates[0].Node)
}

func Test_Engine_MissingLanguageType(t *testing.T) {
	c := ast.NewConstantFeature("C", "", ast.NewEqualityExpression(number("1"), true, number("1")))
	program := ast.NewProgram(class("A", c))
	engine := New(rules.Catalog(), tables.New(tables.NumberType, tables.AnyType), DefaultConfig())
	//
	result, err := engine.Resolve(context.Background(), program)
	require.NoError(t, err)
	//
	missing := diag.Filter(result.Errors, diag.MissingLanguageType)
	require.Len(t, missing, 1)
	assert.Equal(t, "equality-type", missing[0].Rule)
}

// Language-defined type names do not wait on the types of unrelated classes,
// so a failed class leaves other classes unaffected.
func Test_Engine_LanguageTypeName(t *testing.T) {
	var (
		broken = ast.NewClass("A", ast.NewInheritance("Missing"), nil, nil)
		x      = ast.NewAttributeFeature("x", tables.NumberType)
		y      = ast.NewEntity("y", tables.StringType)
		move   = ast.NewProcedureFeature("move", []*ast.Entity{y}, nil, nil, ast.NewBody(nil, nil))
		other  = class("B", x, move)
	)
	//
	result := resolve(t, ast.NewProgram(broken, other), 4)
	assert.Equal(t, Stalled, result.Status)
	//
	unknown := diag.Filter(result.Errors, diag.UnknownIdentifier)
	require.Len(t, unknown, 1)
	assert.Equal(t, "inheritance-parent", unknown[0].Rule)
	//
	require.True(t, x.Signature.IsReady())
	assert.Equal(t, tables.NumberType, x.Signature.Value().Result.Name)
	require.True(t, y.Signature.IsReady())
	assert.Equal(t, tables.StringType, y.Signature.Value().Result.Name)
	assert.True(t, other.ClassType.IsReady())
	assert.False(t, broken.ClassType.IsReady())
	// Only the broken class is left unresolved.
	for _, e := range diag.Filter(result.Errors, diag.UnresolvedDependency) {
		assert.Equal(t, diag.Blocked, e.Cause, e.Error())
		assert.NotSame(t, other, ast.EnclosingClassOf(e.Node), e.Error())
		assert.NotSame(t, other, e.Node, e.Error())
	}
}

// A class name waits only on the class bearing it.
func Test_Engine_ClassTypeName(t *testing.T) {
	var (
		point = class("Point")
		p     = ast.NewAttributeFeature("p", "Point")
		user  = class("User", p)
	)
	//
	result := resolve(t, ast.NewProgram(user, point), 4)
	assert.True(t, result.Succeeded(), "%v", result.Errors)
	assert.Same(t, point.ClassType.Value(), p.Signature.Value().Result)
}

// ============================================================================
// Properties
// ============================================================================

// The outcome of resolution does not depend on the number of workers.
func Test_Engine_Determinism(t *testing.T) {
	var expected []string
	//
	for _, workers := range []uint{1, 2, 3, 8, 32} {
		result := resolve(t, mixedProgram(), workers)
		actual := errorsOf(result)
		//
		if expected == nil {
			expected = actual
			require.NotEmpty(t, expected)
		} else {
			assert.Equal(t, expected, actual, "workers %d", workers)
		}
	}
}

// Resolving the same program twice (on separate trees) gives identical passes.
func Test_Engine_Reproducible(t *testing.T) {
	first := resolve(t, mixedProgram(), 4)
	second := resolve(t, mixedProgram(), 4)
	//
	assert.Equal(t, first.Passes, second.Passes)
	assert.Equal(t, first.Pending, second.Pending)
	assert.Equal(t, errorsOf(first), errorsOf(second))
	checkMonotonic(t, first)
}

func Test_Engine_Ceiling(t *testing.T) {
	c := ast.NewConstantFeature("C", "", ast.NewBinaryExpression(number("2"), "+", number("3")))
	program := ast.NewProgram(class("A", c))
	engine := New(rules.Catalog(), tables.Standard(), Config{MaxPasses: 1, Workers: 1})
	//
	result, err := engine.Resolve(context.Background(), program)
	require.NoError(t, err)
	assert.Equal(t, CeilingReached, result.Status)
	assert.Equal(t, uint(1), result.Passes)
	require.NotEmpty(t, result.Errors)
	//
	for _, e := range result.Errors {
		assert.Equal(t, diag.Exhausted, e.Cause, e.Error())
		assert.True(t, e.Exhausted)
		assert.False(t, e.Root.HasValue())
	}
}

// Items left at the ceiling are still classified, where possible.
func Test_Engine_CeilingBlocked(t *testing.T) {
	one := number("1")
	c := ast.NewConstantFeature("C", "", one)
	failing := rule.New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, rule.Resolution).
		Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
		Checks(func(_ *rule.Env, n *ast.NumberExpression) (*ast.Type, []diag.Error) {
			return nil, diag.Errors(diag.InvalidExpression, n, "unsupported")
		}).
		Applies(func(n *ast.NumberExpression, t *ast.Type) error { return n.ResolvedType.Set(t) })
	//
	catalog, err := rule.NewCatalog(failing, constantSignature())
	require.NoError(t, err)
	//
	result, err := New(catalog, tables.Standard(), Config{MaxPasses: 1, Workers: 1}).
		Resolve(context.Background(), ast.NewProgram(class("A", c)))
	require.NoError(t, err)
	assert.Equal(t, CeilingReached, result.Status)
	//
	unresolved := diag.Filter(result.Errors, diag.UnresolvedDependency)
	require.Len(t, unresolved, 1)
	assert.Equal(t, ast.Node(c), unresolved[0].Node)
	assert.Equal(t, diag.Blocked, unresolved[0].Cause)
	assert.True(t, unresolved[0].Exhausted)
	require.True(t, unresolved[0].Root.HasValue())
	assert.Equal(t, diag.Origin{Node: one, Rule: "number-type"}, unresolved[0].Root.Unwrap())
}

// A rule waiting on a slot which no rule writes can never proceed.
func Test_Engine_NoWriter(t *testing.T) {
	c := ast.NewConstantFeature("C", "", number("1"))
	catalog, err := rule.NewCatalog(constantSignature())
	require.NoError(t, err)
	//
	result, err := New(catalog, tables.Standard(), DefaultConfig()).
		Resolve(context.Background(), ast.NewProgram(class("A", c)))
	require.NoError(t, err)
	assert.Equal(t, Stalled, result.Status)
	assert.Equal(t, uint(1), result.Passes)
	//
	require.Len(t, result.Errors, 1)
	e := result.Errors[0]
	assert.Equal(t, diag.UnresolvedDependency, e.Kind)
	assert.Equal(t, ast.Node(c), e.Node)
	assert.Equal(t, "feature-signature", e.Rule)
	assert.Equal(t, diag.NoWriter, e.Cause)
	assert.False(t, e.Root.HasValue())
	assert.False(t, e.Exhausted)
	assert.False(t, c.Signature.IsReady())
}

// A rule assigning a write-once slot twice aborts resolution.
func Test_Engine_WriteOnce(t *testing.T) {
	bad := rule.New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, rule.Resolution).
		Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
		Checks(func(env *rule.Env, _ *ast.NumberExpression) (*ast.Type, []diag.Error) {
			t, _ := env.Tables.Type(tables.NumberType)
			return t, nil
		}).
		Applies(func(n *ast.NumberExpression, t *ast.Type) error {
			_ = n.ResolvedType.Set(t)
			return n.ResolvedType.Set(t)
		})
	catalog, err := rule.NewCatalog(bad)
	require.NoError(t, err)
	//
	program := ast.NewProgram(class("A", ast.NewConstantFeature("C", "", number("1"))))
	_, err = New(catalog, tables.Standard(), DefaultConfig()).Resolve(context.Background(), program)
	assert.ErrorIs(t, err, slot.ErrAlreadyAssigned)
	assert.ErrorIs(t, err, slot.ErrStructural)
}

// A second writer for any slot of the standard catalog is rejected.
func Test_Engine_SingleWriter(t *testing.T) {
	extra := rule.New[*ast.QueryExpression, *ast.Type]("query-type-again", ast.QueryExpressionKind,
		rule.Resolution).
		Writes(rule.WriteOnce(ast.ResolvedTypeSlot))
	//
	_, err := rule.NewCatalog(append(rules.All(), extra)...)
	assert.ErrorIs(t, err, rule.ErrMultipleWriters)
}

func Test_Engine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	_, err := New(rules.Catalog(), tables.Standard(), DefaultConfig()).Resolve(ctx, mixedProgram())
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================================================
// Helpers
// ============================================================================

func resolve(t *testing.T, program *ast.Program, workers uint) *Result {
	engine := New(rules.Catalog(), tables.Standard(), Config{MaxPasses: DefaultMaxPasses, Workers: workers})
	//
	result, err := engine.Resolve(context.Background(), program)
	require.NoError(t, err)
	//
	return result
}

// The number of pending items never increases, and strictly decreases except
// in a terminal pass which made no progress.
func checkMonotonic(t *testing.T, result *Result) {
	n := len(result.Pending)
	require.Positive(t, n)
	//
	for i := 1; i < n; i++ {
		last := i == n-1 && result.Status != Resolved
		//
		if last {
			assert.LessOrEqual(t, result.Pending[i], result.Pending[i-1])
		} else {
			assert.Less(t, result.Pending[i], result.Pending[i-1])
		}
	}
}

func errorsOf(result *Result) []string {
	var errs []string
	//
	for _, e := range result.Errors {
		errs = append(errs, e.Error())
	}
	//
	return errs
}

// A program with a mix of resolvable definitions and errors.
func mixedProgram() *ast.Program {
	point := ast.NewClass("Point", nil, []ast.Feature{
		ast.NewAttributeFeature("x", tables.NumberType),
		ast.NewAttributeFeature("y", tables.NumberType),
		ast.NewConstantFeature("Origin", tables.NumberType, number("0")),
		ast.NewConstantFeature("Bad", tables.StringType, number("1")),
		ast.NewConstantFeature("C", "", ast.NewQueryExpression("D")),
		ast.NewProcedureFeature("move", []*ast.Entity{ast.NewEntity("dx", tables.NumberType)}, nil, nil,
			ast.NewBody(nil, []ast.Instruction{
				ast.NewAssignmentInstruction("x", ast.NewBinaryExpression(ast.NewQueryExpression("x"), "+",
					ast.NewQueryExpression("dx"))),
				ast.NewAssignmentInstruction("Origin", number("1")),
				ast.NewThrowInstruction("Failure"),
			})),
	}, []*ast.Assertion{ast.NewAssertion("positive", ast.NewBinaryExpression(ast.NewQueryExpression("x"), ">=",
		number("0")))})
	failure := ast.NewClass("Failure", nil, nil, nil)
	//
	return ast.NewProgram(point, failure, class("Cyclic",
		ast.NewConstantFeature("A", "", ast.NewQueryExpression("B")),
		ast.NewConstantFeature("B", "", ast.NewQueryExpression("A"))))
}

func class(name string, features ...ast.Feature) *ast.Class {
	return ast.NewClass(name, nil, features, nil)
}

func number(text string) *ast.NumberExpression {
	return ast.NewNumberExpression(text)
}

// A signature rule for constants which reads only the type of their value.
func constantSignature() rule.Rule {
	return rule.New[*ast.ConstantFeature, *ast.Signature]("feature-signature", ast.ConstantFeatureKind,
		rule.Resolution).
		Reads(rule.Assigned(ast.ValueRelation, ast.ResolvedTypeSlot)).
		Writes(rule.WriteOnce(ast.SignatureSlot)).
		Checks(func(_ *rule.Env, n *ast.ConstantFeature) (*ast.Signature, []diag.Error) {
			return &ast.Signature{Result: n.Value.Expr().ResolvedType.Value()}, nil
		}).
		Applies(func(n *ast.ConstantFeature, s *ast.Signature) error { return n.Signature.Set(s) })
}
