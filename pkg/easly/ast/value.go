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
	"math/big"
	"strconv"
)

// ValueKind distinguishes the different kinds of constant value.
type ValueKind uint8

const (
	// NotConstant identifies an expression whose value cannot be determined
	// at compile time.
	NotConstant ValueKind = iota
	// NumberValue identifies a numeric constant.
	NumberValue
	// BooleanValue identifies a boolean constant.
	BooleanValue
	// StringValue identifies a string constant.
	StringValue
)

// Value is the constant value of an expression.  Every expression is given a
// value, though for most expressions this is simply NotConstant.
type Value struct {
	kind    ValueKind
	number  *big.Int
	boolean bool
	text    string
}

// Unknown returns the value of an expression which is not constant.
func Unknown() Value {
	return Value{kind: NotConstant}
}

// NumberOf constructs a numeric constant.  The given integer is copied.
func NumberOf(n *big.Int) Value {
	return Value{kind: NumberValue, number: new(big.Int).Set(n)}
}

// BooleanOf constructs a boolean constant.
func BooleanOf(b bool) Value {
	return Value{kind: BooleanValue, boolean: b}
}

// StringOf constructs a string constant.
func StringOf(s string) Value {
	return Value{kind: StringValue, text: s}
}

// Kind returns the kind of this value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsConstant determines whether this value is known at compile time.
func (v Value) IsConstant() bool {
	return v.kind != NotConstant
}

// Number returns the numeric value, or panics if this is not a number.
func (v Value) Number() *big.Int {
	if v.kind != NumberValue {
		panic("value is not a number")
	}
	//
	return v.number
}

// Boolean returns the boolean value, or panics if this is not a boolean.
func (v Value) Boolean() bool {
	if v.kind != BooleanValue {
		panic("value is not a boolean")
	}
	//
	return v.boolean
}

// Text returns the string value, or panics if this is not a string.
func (v Value) Text() string {
	if v.kind != StringValue {
		panic("value is not a string")
	}
	//
	return v.text
}

// Equals determines whether two constant values are identical.  Values which
// are not constant are never equal to anything.
func (v Value) Equals(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	//
	switch v.kind {
	case NumberValue:
		return v.number.Cmp(o.number) == 0
	case BooleanValue:
		return v.boolean == o.boolean
	case StringValue:
		return v.text == o.text
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case NumberValue:
		return v.number.String()
	case BooleanValue:
		if v.boolean {
			return "True"
		}
		//
		return "False"
	case StringValue:
		return strconv.Quote(v.text)
	case NotConstant:
		return "?"
	}
	//
	panic(fmt.Sprintf("unknown value kind (%d)", v.kind))
}
