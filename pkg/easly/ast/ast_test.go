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
package ast

import (
	"math/big"
	"testing"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Trees
// ============================================================================

func Test_Index_01(t *testing.T) {
	var (
		one     = NewNumberExpression("1")
		assign  = NewAssignmentInstruction(ResultName, one)
		body    = NewBody(nil, []Instruction{assign})
		f       = NewFunctionFeature("f", nil, "Number", nil, nil, body)
		class   = NewClass("A", nil, []Feature{f}, nil)
		program = NewProgram(class)
	)
	//
	nodes := Index(program)
	assert.Equal(t, []Node{program, class, f, body, assign, one}, nodes)
	//
	for i, n := range nodes {
		assert.Equal(t, uint(i), n.ID())
	}
	//
	assert.Nil(t, program.Parent())
	assert.Equal(t, Node(assign), one.Parent())
	assert.Equal(t, class, EnclosingClassOf(one))
	assert.Equal(t, Feature(f), EnclosingFeatureOf(one))
	assert.Nil(t, EnclosingFeatureOf(class))
	assert.Equal(t, &f.Routine, RoutineOf(f))
	assert.Nil(t, RoutineOf(NewAttributeFeature("a", "")))
}

func Test_Walk_01(t *testing.T) {
	var (
		left    = NewNumberExpression("1")
		right   = NewNumberExpression("2")
		sum     = NewBinaryExpression(left, "+", right)
		program = NewProgram(NewClass("A", nil, []Feature{NewConstantFeature("C", "", sum)}, nil))
		kinds   []Kind
	)
	//
	Walk(program, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != BinaryExpressionKind
	})
	//
	assert.Equal(t, []Kind{ProgramKind, ClassKind, ConstantFeatureKind, BinaryExpressionKind}, kinds)
}

// ============================================================================
// Relations
// ============================================================================

func Test_Follow_01(t *testing.T) {
	var (
		x       = NewQueryExpression("x")
		c       = NewConstantFeature("C", "", x)
		program = NewProgram(NewClass("A", nil, []Feature{c}, nil))
	)
	//
	Index(program)
	// Upwards relations
	nodes, err := Follow(x, EnclosingProgram)
	require.NoError(t, err)
	assert.Equal(t, []Node{program}, nodes)
	//
	nodes, err = Follow(x, EnclosingRoutine)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	// Downwards relations
	nodes, err = Follow(c, ValueRelation)
	require.NoError(t, err)
	assert.Equal(t, []Node{x}, nodes)
	// Slot-backed relations
	_, err = Follow(x, FeatureSlot)
	assert.True(t, IsUnassigned(err))
	require.NoError(t, x.Feature.Set(c))
	nodes, err = Follow(x, FeatureSlot)
	require.NoError(t, err)
	assert.Equal(t, []Node{c}, nodes)
	//
	_, err = Follow(x, "nowhere")
	assert.ErrorIs(t, err, ErrUnknownRelation)
}

// Optional relations lead nowhere when absent.
func Test_Follow_02(t *testing.T) {
	var (
		base    = NewClass("Base", nil, nil, nil)
		derived = NewClass("Derived", NewInheritance("Base"), nil, nil)
	)
	//
	nodes, err := Follow(base, ParentSlot)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	//
	_, err = Follow(derived, ParentSlot)
	assert.True(t, IsUnassigned(err))
	assert.ErrorIs(t, base.Super.Set(base), slot.ErrAbsent)
	//
	require.NoError(t, derived.Super.Set(base))
	nodes, err = Follow(derived, ParentSlot)
	require.NoError(t, err)
	assert.Equal(t, []Node{base}, nodes)
}

// The inherited class of a class is distinct from its enclosing node.
func Test_Follow_03(t *testing.T) {
	var (
		base    = NewClass("Base", nil, nil, nil)
		derived = NewClass("Derived", NewInheritance("Base"), nil, nil)
		program = NewProgram(base, derived)
		node    Node
	)
	//
	Index(program)
	node = derived
	assert.Equal(t, Node(program), node.Parent())
	assert.Equal(t, ClassKind, node.Kind())
	//
	require.NoError(t, derived.Super.Set(base))
	assert.Equal(t, base, derived.Super.Value().Unwrap())
	assert.Equal(t, Node(program), derived.Parent())
	assert.Same(t, &derived.Super, node.Slot(ParentSlot))
}

// The named class is reached only once the class table is sealed.
func Test_Follow_04(t *testing.T) {
	var (
		point   = NewClass("Point", nil, nil, nil)
		p       = NewAttributeFeature("p", "Point")
		n       = NewAttributeFeature("n", "Number")
		e       = NewEntity("e", "Point")
		program = NewProgram(point, NewClass("User", nil, []Feature{p, n}, nil))
	)
	//
	Index(program)
	assert.Equal(t, "Point", TypeNameOf(p))
	assert.Equal(t, "", TypeNameOf(program))
	//
	nodes, err := Follow(p, NamedClass)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	//
	require.NoError(t, program.ClassTable.Put("Point", point))
	require.NoError(t, program.ClassTable.Seal())
	//
	nodes, err = Follow(p, NamedClass)
	require.NoError(t, err)
	assert.Equal(t, []Node{point}, nodes)
	// Names which are not classes, and detached nodes, lead nowhere.
	nodes, err = Follow(n, NamedClass)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	//
	nodes, err = Follow(e, NamedClass)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

// ============================================================================
// Schema
// ============================================================================

func Test_Schema_01(t *testing.T) {
	assert.True(t, HasSlot(QueryExpressionKind, ResolvedTypeSlot, slot.WriteOnce))
	assert.False(t, HasSlot(QueryExpressionKind, ResolvedTypeSlot, slot.Sealed))
	assert.True(t, HasSlot(ClassKind, FeatureTableSlot, slot.Sealed))
	assert.True(t, HasSlot(ClassKind, ParentSlot, slot.Conditional))
	assert.True(t, HasSlot(ConditionalInstructionKind, ElseExceptionsSlot, slot.Conditional))
	assert.False(t, HasSlot(NumberExpressionKind, FeatureSlot, slot.WriteOnce))
	// Every kind has at least one slot
	for k := Kind(0); k < NumberOfKinds; k++ {
		assert.NotEmpty(t, SlotsOf(k), k.String())
	}
}

func Test_Kind_01(t *testing.T) {
	assert.True(t, FunctionFeatureKind.IsFeature())
	assert.True(t, FunctionFeatureKind.IsRoutine())
	assert.False(t, AttributeFeatureKind.IsRoutine())
	assert.True(t, ThrowInstructionKind.IsInstruction())
	assert.True(t, PrecursorExpressionKind.IsExpression())
	assert.False(t, EntityKind.IsExpression())
	assert.Equal(t, "QueryExpression", QueryExpressionKind.String())
	assert.Equal(t, "Unknown", NumberOfKinds.String())
}

// ============================================================================
// Types and values
// ============================================================================

func Test_Type_01(t *testing.T) {
	var (
		number  = NewLanguageType("Number")
		anyType = NewLanguageType(AnyTypeName)
		base    = &Type{Name: "Base", Class: NewClass("Base", nil, nil, nil)}
		derived = &Type{Name: "Derived", Class: NewClass("Derived", nil, nil, nil), Parent: base}
	)
	//
	assert.True(t, number.IsLanguageDefined())
	assert.False(t, base.IsLanguageDefined())
	assert.True(t, derived.ConformsTo(base))
	assert.False(t, base.ConformsTo(derived))
	assert.True(t, number.ConformsTo(anyType))
	assert.True(t, derived.ConformsTo(anyType))
	assert.False(t, number.ConformsTo(base))
}

func Test_Value_01(t *testing.T) {
	n := big.NewInt(5)
	five := NumberOf(n)
	// Values are copied
	n.SetInt64(6)
	assert.Equal(t, "5", five.String())
	//
	assert.True(t, five.Equals(NumberOf(big.NewInt(5))))
	assert.False(t, five.Equals(StringOf("5")))
	assert.True(t, BooleanOf(true).Equals(BooleanOf(true)))
	assert.False(t, Unknown().Equals(Unknown()))
	assert.False(t, Unknown().IsConstant())
	assert.Equal(t, "True", BooleanOf(true).String())
	assert.Equal(t, "abc", StringOf("abc").Text())
	assert.Panics(t, func() { StringOf("abc").Number() })
}
