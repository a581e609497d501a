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
package tables

import (
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
)

// Names of the language-defined types.
const (
	BooleanType = "Boolean"
	NumberType  = "Number"
	StringType  = "String"
	AnyType     = ast.AnyTypeName
)

// Tables holds the language-defined types and operators.  Tables are
// constructed before resolution starts and are never modified afterwards,
// hence they can be read concurrently by any number of rules.
type Tables struct {
	names  []string
	types  map[string]*ast.Type
	binary []*ast.Operator
	unary  []*ast.Operator
}

// Standard returns tables holding every language-defined type, along with all
// of their operators.
func Standard() *Tables {
	return New(BooleanType, NumberType, StringType, AnyType)
}

// New constructs tables holding only the given language-defined types.
// Operators are included only when every type they refer to is included.
// Unknown type names are ignored.
func New(names ...string) *Tables {
	t := &Tables{types: make(map[string]*ast.Type)}
	//
	for _, name := range names {
		if _, ok := t.types[name]; !ok && isLanguageType(name) {
			t.names = append(t.names, name)
			t.types[name] = ast.NewLanguageType(name)
		}
	}
	//
	for _, op := range binaryOperators {
		if left, right, result, ok := t.resolve(op.left, op.right, op.result); ok {
			t.binary = append(t.binary, &ast.Operator{Symbol: op.symbol, Left: left, Right: right, Result: result,
				Eval: op.eval})
		}
	}
	//
	for _, op := range unaryOperators {
		if operand, _, result, ok := t.resolve(op.left, "", op.result); ok {
			t.unary = append(t.unary, &ast.Operator{Symbol: op.symbol, Left: operand, Result: result, Eval: op.eval})
		}
	}
	//
	return t
}

// Names returns the names of all language-defined types held, in declaration
// order.
func (p *Tables) Names() []string {
	return p.names
}

// Type returns the language-defined type with the given name (if it exists).
func (p *Tables) Type(name string) (*ast.Type, bool) {
	t, ok := p.types[name]
	return t, ok
}

// IsReserved determines whether a given name is that of a language-defined
// type, regardless of whether or not it is held in these tables.  User classes
// cannot reuse such names.
func IsReserved(name string) bool {
	return isLanguageType(name)
}

// BinaryOperators returns all overloads of a given binary operator.
func (p *Tables) BinaryOperators(symbol string) []*ast.Operator {
	return filter(p.binary, symbol)
}

// UnaryOperators returns all overloads of a given unary operator.
func (p *Tables) UnaryOperators(symbol string) []*ast.Operator {
	return filter(p.unary, symbol)
}

// SelectBinary chooses the first overload of a binary operator whose operand
// types accept the given types.
func (p *Tables) SelectBinary(symbol string, left *ast.Type, right *ast.Type) (*ast.Operator, bool) {
	for _, op := range p.binary {
		if op.Symbol == symbol && left.ConformsTo(op.Left) && right.ConformsTo(op.Right) {
			return op, true
		}
	}
	//
	return nil, false
}

// SelectUnary chooses the first overload of a unary operator whose operand
// type accepts the given type.
func (p *Tables) SelectUnary(symbol string, operand *ast.Type) (*ast.Operator, bool) {
	for _, op := range p.unary {
		if op.Symbol == symbol && operand.ConformsTo(op.Left) {
			return op, true
		}
	}
	//
	return nil, false
}

func (p *Tables) resolve(left string, right string, result string) (*ast.Type, *ast.Type, *ast.Type, bool) {
	var (
		l, lok = p.types[left]
		r, rok = p.types[right]
		t, tok = p.types[result]
	)
	//
	return l, r, t, lok && tok && (rok || right == "")
}

func filter(operators []*ast.Operator, symbol string) []*ast.Operator {
	var matches []*ast.Operator
	//
	for _, op := range operators {
		if op.Symbol == symbol {
			matches = append(matches, op)
		}
	}
	//
	return matches
}

func isLanguageType(name string) bool {
	switch name {
	case BooleanType, NumberType, StringType, AnyType:
		return true
	}
	//
	return false
}
