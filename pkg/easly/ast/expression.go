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
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// Expression represents an arbitrary expression.  Every expression has a
// type, a (possibly non-constant) value and a set of exceptions which its
// evaluation may raise.
type Expression interface {
	Node
	// Expr returns the state common to all expressions.
	Expr() *ExpressionHeader
}

// ExpressionHeader captures the state common to all expressions.
type ExpressionHeader struct {
	header
	// ResolvedType is the type of this expression.
	ResolvedType slot.Once[*Type]
	// ConstantValue is the value of this expression (which may be
	// NotConstant).
	ConstantValue slot.Once[Value]
	// Exceptions which may be raised when evaluating this expression.
	Exceptions slot.List[string]
}

func newExpressionHeader() ExpressionHeader {
	return ExpressionHeader{
		ResolvedType:  slot.NewOnce[*Type](ResolvedTypeSlot),
		ConstantValue: slot.NewOnce[Value](ConstantValueSlot),
		Exceptions:    slot.NewList[string](ExceptionsSlot),
	}
}

// Expr implementation for the Expression interface.
func (p *ExpressionHeader) Expr() *ExpressionHeader {
	return p
}

func (p *ExpressionHeader) slot(name string) slot.Slot {
	switch name {
	case ResolvedTypeSlot:
		return &p.ResolvedType
	case ConstantValueSlot:
		return &p.ConstantValue
	case ExceptionsSlot:
		return &p.Exceptions
	}
	//
	return nil
}

// NumberExpression is a numeric literal.
type NumberExpression struct {
	ExpressionHeader
	// Text of the literal, as written.
	Text string
}

// NewNumberExpression constructs a new (unresolved) numeric literal.
func NewNumberExpression(text string) *NumberExpression {
	return &NumberExpression{newExpressionHeader(), text}
}

// Kind implementation for Node interface.
func (p *NumberExpression) Kind() Kind {
	return NumberExpressionKind
}

// Children implementation for Node interface.
func (p *NumberExpression) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *NumberExpression) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *NumberExpression) Follow(relation string) ([]Node, error) {
	return nil, unknownRelation(p, relation)
}

// StringExpression is a string literal.
type StringExpression struct {
	ExpressionHeader
	// Text of the literal (without quotes).
	Text string
}

// NewStringExpression constructs a new (unresolved) string literal.
func NewStringExpression(text string) *StringExpression {
	return &StringExpression{newExpressionHeader(), text}
}

// Kind implementation for Node interface.
func (p *StringExpression) Kind() Kind {
	return StringExpressionKind
}

// Children implementation for Node interface.
func (p *StringExpression) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *StringExpression) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *StringExpression) Follow(relation string) ([]Node, error) {
	return nil, unknownRelation(p, relation)
}

// Keyword identifies one of the language keywords usable as an expression.
type Keyword uint8

const (
	// TrueKeyword is the boolean constant True.
	TrueKeyword Keyword = iota
	// FalseKeyword is the boolean constant False.
	FalseKeyword
	// CurrentKeyword denotes the current object.
	CurrentKeyword
	// ResultKeyword denotes the result of the enclosing function.
	ResultKeyword
)

func (k Keyword) String() string {
	switch k {
	case TrueKeyword:
		return "True"
	case FalseKeyword:
		return "False"
	case CurrentKeyword:
		return "Current"
	case ResultKeyword:
		return ResultName
	}
	//
	return "?"
}

// KeywordExpression is a keyword used as an expression.
type KeywordExpression struct {
	ExpressionHeader
	// Keyword used.
	Keyword Keyword
}

// NewKeywordExpression constructs a new (unresolved) keyword expression.
func NewKeywordExpression(keyword Keyword) *KeywordExpression {
	return &KeywordExpression{newExpressionHeader(), keyword}
}

// Kind implementation for Node interface.
func (p *KeywordExpression) Kind() Kind {
	return KeywordExpressionKind
}

// Children implementation for Node interface.
func (p *KeywordExpression) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *KeywordExpression) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *KeywordExpression) Follow(relation string) ([]Node, error) {
	return nil, unknownRelation(p, relation)
}

// QueryExpression reads a constant, attribute or entity, or calls a function.
type QueryExpression struct {
	ExpressionHeader
	// Name being queried.
	Name string
	// Arguments passed (if any).
	Arguments []Expression
	// Feature is the definition queried.
	Feature slot.Once[Definition]
}

// NewQueryExpression constructs a new (unresolved) query.
func NewQueryExpression(name string, arguments ...Expression) *QueryExpression {
	return &QueryExpression{newExpressionHeader(), name, arguments, slot.NewOnce[Definition](FeatureSlot)}
}

// Kind implementation for Node interface.
func (p *QueryExpression) Kind() Kind {
	return QueryExpressionKind
}

// Children implementation for Node interface.
func (p *QueryExpression) Children() []Node {
	return nodesOf(p.Arguments)
}

// Slot implementation for Node interface.
func (p *QueryExpression) Slot(name string) slot.Slot {
	if name == FeatureSlot {
		return &p.Feature
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *QueryExpression) Follow(relation string) ([]Node, error) {
	switch relation {
	case ArgumentsRelation:
		return nodesOf(p.Arguments), nil
	case FeatureSlot:
		return followOnce(&p.Feature)
	}
	//
	return nil, unknownRelation(p, relation)
}

// BinaryExpression applies a binary operator, such as "+" or "and".
type BinaryExpression struct {
	ExpressionHeader
	// Operator symbol.
	Symbol string
	// Left operand.
	Left Expression
	// Right operand.
	Right Expression
	// Operator is the overload selected for the operand types.
	Operator slot.Once[*Operator]
}

// NewBinaryExpression constructs a new (unresolved) binary expression.
func NewBinaryExpression(left Expression, symbol string, right Expression) *BinaryExpression {
	return &BinaryExpression{newExpressionHeader(), symbol, left, right, slot.NewOnce[*Operator](OperatorSlot)}
}

// Kind implementation for Node interface.
func (p *BinaryExpression) Kind() Kind {
	return BinaryExpressionKind
}

// Children implementation for Node interface.
func (p *BinaryExpression) Children() []Node {
	return []Node{p.Left, p.Right}
}

// Slot implementation for Node interface.
func (p *BinaryExpression) Slot(name string) slot.Slot {
	if name == OperatorSlot {
		return &p.Operator
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *BinaryExpression) Follow(relation string) ([]Node, error) {
	switch relation {
	case LeftRelation:
		return []Node{p.Left}, nil
	case RightRelation:
		return []Node{p.Right}, nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// UnaryExpression applies a unary operator, such as "-" or "not".
type UnaryExpression struct {
	ExpressionHeader
	// Operator symbol.
	Symbol string
	// Operand.
	Operand Expression
	// Operator is the overload selected for the operand type.
	Operator slot.Once[*Operator]
}

// NewUnaryExpression constructs a new (unresolved) unary expression.
func NewUnaryExpression(symbol string, operand Expression) *UnaryExpression {
	return &UnaryExpression{newExpressionHeader(), symbol, operand, slot.NewOnce[*Operator](OperatorSlot)}
}

// Kind implementation for Node interface.
func (p *UnaryExpression) Kind() Kind {
	return UnaryExpressionKind
}

// Children implementation for Node interface.
func (p *UnaryExpression) Children() []Node {
	return []Node{p.Operand}
}

// Slot implementation for Node interface.
func (p *UnaryExpression) Slot(name string) slot.Slot {
	if name == OperatorSlot {
		return &p.Operator
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *UnaryExpression) Follow(relation string) ([]Node, error) {
	if relation == OperandRelation {
		return []Node{p.Operand}, nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// EqualityExpression compares two values for equality ("=") or difference
// ("/=").
type EqualityExpression struct {
	ExpressionHeader
	// Equal is true for "=", false for "/=".
	Equal bool
	// Left operand.
	Left Expression
	// Right operand.
	Right Expression
}

// NewEqualityExpression constructs a new (unresolved) equality.
func NewEqualityExpression(left Expression, equal bool, right Expression) *EqualityExpression {
	return &EqualityExpression{newExpressionHeader(), equal, left, right}
}

// Kind implementation for Node interface.
func (p *EqualityExpression) Kind() Kind {
	return EqualityExpressionKind
}

// Children implementation for Node interface.
func (p *EqualityExpression) Children() []Node {
	return []Node{p.Left, p.Right}
}

// Slot implementation for Node interface.
func (p *EqualityExpression) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *EqualityExpression) Follow(relation string) ([]Node, error) {
	switch relation {
	case LeftRelation:
		return []Node{p.Left}, nil
	case RightRelation:
		return []Node{p.Right}, nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// PrecursorExpression calls the version of the enclosing feature which it
// redefines.
type PrecursorExpression struct {
	ExpressionHeader
	// Arguments passed (if any).
	Arguments []Expression
	// Feature is the precursor feature called.
	Feature slot.Once[Definition]
}

// NewPrecursorExpression constructs a new (unresolved) precursor call.
func NewPrecursorExpression(arguments ...Expression) *PrecursorExpression {
	return &PrecursorExpression{newExpressionHeader(), arguments, slot.NewOnce[Definition](FeatureSlot)}
}

// Kind implementation for Node interface.
func (p *PrecursorExpression) Kind() Kind {
	return PrecursorExpressionKind
}

// Children implementation for Node interface.
func (p *PrecursorExpression) Children() []Node {
	return nodesOf(p.Arguments)
}

// Slot implementation for Node interface.
func (p *PrecursorExpression) Slot(name string) slot.Slot {
	if name == FeatureSlot {
		return &p.Feature
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *PrecursorExpression) Follow(relation string) ([]Node, error) {
	switch relation {
	case ArgumentsRelation:
		return nodesOf(p.Arguments), nil
	case FeatureSlot:
		return followOnce(&p.Feature)
	}
	//
	return nil, unknownRelation(p, relation)
}
