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
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// SlotSpec describes a slot which every node of a given kind has.
type SlotSpec struct {
	Name       string
	Discipline slot.Discipline
}

var slotNames = []string{
	ClassTableSlot, ParentSlot, FeatureTableSlot, ClassTypeSlot, InvariantSlot, ParentClassSlot,
	DeclaredTypeSlot, SignatureSlot, ConstantValueSlot, ExceptionsSlot, ContractSlot, LocalTableSlot,
	PrecursorSlot, CheckedSlot, DestinationSlot, ElseExceptionsSlot, ExceptionTypeSlot, FeatureSlot,
	ResolvedTypeSlot, OperatorSlot,
}

// SlotsOf returns the slots declared by a given node kind.  This is used to
// validate rule catalogs, before any tree is resolved.
func SlotsOf(kind Kind) []SlotSpec {
	var (
		node  = prototype(kind)
		specs []SlotSpec
	)
	//
	for _, name := range slotNames {
		if s := node.Slot(name); s != nil {
			specs = append(specs, SlotSpec{name, s.Discipline()})
		}
	}
	//
	return specs
}

// HasSlot determines whether a given node kind declares a slot with the given
// name and discipline.
func HasSlot(kind Kind, name string, discipline slot.Discipline) bool {
	for _, s := range SlotsOf(kind) {
		if s.Name == name {
			return s.Discipline == discipline
		}
	}
	//
	return false
}

// Construct an empty node of the given kind.
func prototype(kind Kind) Node {
	switch kind {
	case ProgramKind:
		return NewProgram()
	case ClassKind:
		return NewClass("", nil, nil, nil)
	case InheritanceKind:
		return NewInheritance("")
	case ConstantFeatureKind:
		return NewConstantFeature("", "", nil)
	case AttributeFeatureKind:
		return NewAttributeFeature("", "")
	case FunctionFeatureKind:
		return NewFunctionFeature("", nil, "", nil, nil, nil)
	case ProcedureFeatureKind:
		return NewProcedureFeature("", nil, nil, nil, nil)
	case EntityKind:
		return NewEntity("", "")
	case BodyKind:
		return NewBody(nil, nil)
	case AssertionKind:
		return NewAssertion("", nil)
	case AssignmentInstructionKind:
		return NewAssignmentInstruction("", nil)
	case ConditionalInstructionKind:
		return NewConditionalInstruction(nil, nil, nil)
	case ThrowInstructionKind:
		return NewThrowInstruction("")
	case CommandInstructionKind:
		return NewCommandInstruction("")
	case NumberExpressionKind:
		return NewNumberExpression("")
	case StringExpressionKind:
		return NewStringExpression("")
	case KeywordExpressionKind:
		return NewKeywordExpression(TrueKeyword)
	case QueryExpressionKind:
		return NewQueryExpression("")
	case BinaryExpressionKind:
		return NewBinaryExpression(nil, "", nil)
	case UnaryExpressionKind:
		return NewUnaryExpression("", nil)
	case EqualityExpressionKind:
		return NewEqualityExpression(nil, true, nil)
	case PrecursorExpressionKind:
		return NewPrecursorExpression()
	}
	//
	panic(fmt.Sprintf("unknown node kind (%d)", kind))
}
