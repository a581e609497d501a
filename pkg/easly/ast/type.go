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
	"strings"
)

// AnyTypeName is the name of the language-defined type to which every other
// type conforms.
const AnyTypeName = "Any"

// Type represents a resolved class type.  Language-defined types have no
// corresponding class node.  Types are only ever constructed by rules, and
// are immutable once committed into a slot.
type Type struct {
	// Name of the class (unique within a program).
	Name string
	// Class declaring this type, or nil for language-defined types.
	Class *Class
	// Parent is the type inherited from (if any).
	Parent *Type
}

// NewLanguageType constructs a language-defined type (i.e. one for which no
// class node exists).
func NewLanguageType(name string) *Type {
	return &Type{Name: name}
}

// IsLanguageDefined determines whether this type is provided by the language,
// rather than by a class of the program.
func (t *Type) IsLanguageDefined() bool {
	return t.Class == nil
}

// ConformsTo determines whether a value of this type can be used where a value
// of the other type is expected.  That holds when the other type is the same
// type, an ancestor of this type, or the universal type.
func (t *Type) ConformsTo(other *Type) bool {
	if other.Name == AnyTypeName {
		return true
	}
	//
	for c := t; c != nil; c = c.Parent {
		if c.Name == other.Name {
			return true
		}
	}
	//
	return false
}

func (t *Type) String() string {
	return t.Name
}

// Signature is the resolved signature of a definition (i.e. a feature or
// entity).  Constants, attributes and entities have no parameters.
type Signature struct {
	// Types of parameters (in order).
	Parameters []*Type
	// Result type, which is nil for procedures.
	Result *Type
}

// IsProcedure determines whether or not this signature returns a value.
func (s *Signature) IsProcedure() bool {
	return s.Result == nil
}

func (s *Signature) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, p := range s.Parameters {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(p.Name)
	}
	//
	builder.WriteString(")")
	//
	if s.Result != nil {
		builder.WriteString(":")
		builder.WriteString(s.Result.Name)
	}
	//
	return builder.String()
}

// Contract is a checked assertion, as found in require, ensure and invariant
// clauses.
type Contract struct {
	// Tag given to the assertion (may be empty).
	Tag string
	// Boolean expression being asserted.
	Expr Expression
}

// Operator is a language-defined operator overload, selected for a binary or
// unary expression based on the types of its operands.
type Operator struct {
	// Symbol of this operator (e.g. "+").
	Symbol string
	// Type of the left (or sole) operand.
	Left *Type
	// Type of the right operand, or nil for unary operators.
	Right *Type
	// Result type.
	Result *Type
	// Eval computes the result of this operator over constant arguments.  An
	// error is returned when the operator is undefined for those arguments
	// (e.g. division by zero).
	Eval func(args ...Value) (Value, error)
}

func (o *Operator) String() string {
	if o.Right == nil {
		return o.Symbol + o.Left.Name
	}
	//
	return o.Left.Name + o.Symbol + o.Right.Name
}
