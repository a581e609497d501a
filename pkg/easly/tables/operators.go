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
	"errors"
	"math/big"
	"strings"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
)

// ErrDivisionByZero is returned when evaluating a constant division (or
// remainder) whose divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

type evaluator = func(args ...ast.Value) (ast.Value, error)

// operator describes an overload by the names of its types, which are bound
// when tables are constructed.
type operator struct {
	symbol string
	left   string
	right  string
	result string
	eval   evaluator
}

var binaryOperators = []operator{
	// Arithmetic
	{"+", NumberType, NumberType, NumberType, arithmetic((*big.Int).Add)},
	{"-", NumberType, NumberType, NumberType, arithmetic((*big.Int).Sub)},
	{"*", NumberType, NumberType, NumberType, arithmetic((*big.Int).Mul)},
	{"/", NumberType, NumberType, NumberType, division((*big.Int).Quo)},
	{"%", NumberType, NumberType, NumberType, division((*big.Int).Rem)},
	// Comparisons
	{"<", NumberType, NumberType, BooleanType, comparison(func(c int) bool { return c < 0 })},
	{"<=", NumberType, NumberType, BooleanType, comparison(func(c int) bool { return c <= 0 })},
	{">", NumberType, NumberType, BooleanType, comparison(func(c int) bool { return c > 0 })},
	{">=", NumberType, NumberType, BooleanType, comparison(func(c int) bool { return c >= 0 })},
	{"<", StringType, StringType, BooleanType, comparison(func(c int) bool { return c < 0 })},
	{"<=", StringType, StringType, BooleanType, comparison(func(c int) bool { return c <= 0 })},
	{">", StringType, StringType, BooleanType, comparison(func(c int) bool { return c > 0 })},
	{">=", StringType, StringType, BooleanType, comparison(func(c int) bool { return c >= 0 })},
	// Strings
	{"+", StringType, StringType, StringType, concatenation},
	// Logic
	{"and", BooleanType, BooleanType, BooleanType, logical(func(x, y bool) bool { return x && y })},
	{"or", BooleanType, BooleanType, BooleanType, logical(func(x, y bool) bool { return x || y })},
	{"xor", BooleanType, BooleanType, BooleanType, logical(func(x, y bool) bool { return x != y })},
	{"implies", BooleanType, BooleanType, BooleanType, logical(func(x, y bool) bool { return !x || y })},
}

var unaryOperators = []operator{
	{"-", NumberType, "", NumberType, negation},
	{"not", BooleanType, "", BooleanType, inversion},
}

func arithmetic(fn func(z, x, y *big.Int) *big.Int) evaluator {
	return func(args ...ast.Value) (ast.Value, error) {
		return ast.NumberOf(fn(new(big.Int), args[0].Number(), args[1].Number())), nil
	}
}

func division(fn func(z, x, y *big.Int) *big.Int) evaluator {
	return func(args ...ast.Value) (ast.Value, error) {
		if args[1].Number().Sign() == 0 {
			return ast.Unknown(), ErrDivisionByZero
		}
		//
		return ast.NumberOf(fn(new(big.Int), args[0].Number(), args[1].Number())), nil
	}
}

func comparison(holds func(int) bool) evaluator {
	return func(args ...ast.Value) (ast.Value, error) {
		var c int
		//
		if args[0].Kind() == ast.StringValue {
			c = strings.Compare(args[0].Text(), args[1].Text())
		} else {
			c = args[0].Number().Cmp(args[1].Number())
		}
		//
		return ast.BooleanOf(holds(c)), nil
	}
}

func logical(fn func(x, y bool) bool) evaluator {
	return func(args ...ast.Value) (ast.Value, error) {
		return ast.BooleanOf(fn(args[0].Boolean(), args[1].Boolean())), nil
	}
}

func concatenation(args ...ast.Value) (ast.Value, error) {
	return ast.StringOf(args[0].Text() + args[1].Text()), nil
}

func negation(args ...ast.Value) (ast.Value, error) {
	return ast.NumberOf(new(big.Int).Neg(args[0].Number())), nil
}

func inversion(args ...ast.Value) (ast.Value, error) {
	return ast.BooleanOf(!args[0].Boolean()), nil
}
