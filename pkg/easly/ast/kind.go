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

// Kind is the tag of a node in the (closed) variant of node types.  Rules are
// registered against kinds, rather than against Go types, so that the scheduler
// never needs to inspect node types at runtime.
type Kind uint8

// The complete set of node kinds.
const (
	ProgramKind Kind = iota
	ClassKind
	InheritanceKind
	ConstantFeatureKind
	AttributeFeatureKind
	FunctionFeatureKind
	ProcedureFeatureKind
	EntityKind
	BodyKind
	AssertionKind
	AssignmentInstructionKind
	ConditionalInstructionKind
	ThrowInstructionKind
	CommandInstructionKind
	NumberExpressionKind
	StringExpressionKind
	KeywordExpressionKind
	QueryExpressionKind
	BinaryExpressionKind
	UnaryExpressionKind
	EqualityExpressionKind
	PrecursorExpressionKind
	// NumberOfKinds is one past the last valid kind.
	NumberOfKinds
)

var kindNames = [NumberOfKinds]string{
	"Program",
	"Class",
	"Inheritance",
	"ConstantFeature",
	"AttributeFeature",
	"FunctionFeature",
	"ProcedureFeature",
	"Entity",
	"Body",
	"Assertion",
	"AssignmentInstruction",
	"ConditionalInstruction",
	"ThrowInstruction",
	"CommandInstruction",
	"NumberExpression",
	"StringExpression",
	"KeywordExpression",
	"QueryExpression",
	"BinaryExpression",
	"UnaryExpression",
	"EqualityExpression",
	"PrecursorExpression",
}

func (k Kind) String() string {
	if k < NumberOfKinds {
		return kindNames[k]
	}
	//
	return "Unknown"
}

// IsFeature determines whether this kind is one of the feature kinds.
func (k Kind) IsFeature() bool {
	return k >= ConstantFeatureKind && k <= ProcedureFeatureKind
}

// IsRoutine determines whether this kind is a feature with a body (i.e. a
// function or procedure).
func (k Kind) IsRoutine() bool {
	return k == FunctionFeatureKind || k == ProcedureFeatureKind
}

// IsInstruction determines whether this kind is an instruction.
func (k Kind) IsInstruction() bool {
	return k >= AssignmentInstructionKind && k <= CommandInstructionKind
}

// IsExpression determines whether this kind is an expression.
func (k Kind) IsExpression() bool {
	return k >= NumberExpressionKind && k <= PrecursorExpressionKind
}
