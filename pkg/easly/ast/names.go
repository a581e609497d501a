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

// Slot names.  A relation backed by a slot shares its name.
const (
	ClassTableSlot     = "classTable"
	ParentSlot         = "parent"
	FeatureTableSlot   = "featureTable"
	ClassTypeSlot      = "classType"
	InvariantSlot      = "invariant"
	ParentClassSlot    = "parentClass"
	DeclaredTypeSlot   = "declaredType"
	SignatureSlot      = "signature"
	ConstantValueSlot  = "constantValue"
	ExceptionsSlot     = "exceptions"
	ContractSlot       = "contract"
	LocalTableSlot     = "localTable"
	PrecursorSlot      = "precursor"
	CheckedSlot        = "checked"
	DestinationSlot    = "destination"
	ElseExceptionsSlot = "elseExceptions"
	ExceptionTypeSlot  = "exceptionType"
	FeatureSlot        = "feature"
	ResolvedTypeSlot   = "resolvedType"
	OperatorSlot       = "operator"
)

// Names of structural relations (i.e. those leading to child nodes).
const (
	ClassesRelation      = "classes"
	InheritanceRelation  = "inheritance"
	FeaturesRelation     = "features"
	InvariantsRelation   = "invariants"
	ValueRelation        = "value"
	ParametersRelation   = "parameters"
	LocalsRelation       = "locals"
	RequireRelation      = "require"
	EnsureRelation       = "ensure"
	BodyRelation         = "body"
	InstructionsRelation = "instructions"
	ConditionRelation    = "condition"
	ThenRelation         = "then"
	ElseRelation         = "else"
	ArgumentsRelation    = "arguments"
	LeftRelation         = "left"
	RightRelation        = "right"
	OperandRelation      = "operand"
	SourceRelation       = "source"
	ExpressionRelation   = "expression"
)
