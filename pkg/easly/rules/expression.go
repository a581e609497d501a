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
package rules

import (
	"math/big"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
)

// Rules for expressions.  Every expression has a type, a constant value
// (possibly unknown) and a set of exceptions.
func expressionRules() []rule.Rule {
	var rules []rule.Rule
	//
	rules = append(rules, literalRules()...)
	rules = append(rules, queryRules()...)
	rules = append(rules, operatorRules()...)
	//
	return append(rules, precursorRules()...)
}

func literalRules() []rule.Rule {
	return []rule.Rule{
		// Numbers
		rule.New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, rule.Resolution).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(env *rule.Env, n *ast.NumberExpression) (*ast.Type, []diag.Error) {
				return languageType(env, n, tables.NumberType)
			}).
			Applies(setType[*ast.NumberExpression]),
		rule.New[*ast.NumberExpression, ast.Value]("number-constant", ast.NumberExpressionKind, rule.Resolution).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(checkNumber).
			Applies(setValue[*ast.NumberExpression]),
		rule.New[*ast.NumberExpression, []string]("number-exceptions", ast.NumberExpressionKind, rule.Body).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(noExceptions[*ast.NumberExpression]).
			Applies(sealExceptions[*ast.NumberExpression]),
		// Strings
		rule.New[*ast.StringExpression, *ast.Type]("string-type", ast.StringExpressionKind, rule.Resolution).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(env *rule.Env, n *ast.StringExpression) (*ast.Type, []diag.Error) {
				return languageType(env, n, tables.StringType)
			}).
			Applies(setType[*ast.StringExpression]),
		rule.New[*ast.StringExpression, ast.Value]("string-constant", ast.StringExpressionKind, rule.Resolution).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.StringExpression) (ast.Value, []diag.Error) {
				return ast.StringOf(n.Text), nil
			}).
			Applies(setValue[*ast.StringExpression]),
		rule.New[*ast.StringExpression, []string]("string-exceptions", ast.StringExpressionKind, rule.Body).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(noExceptions[*ast.StringExpression]).
			Applies(sealExceptions[*ast.StringExpression]),
		// Keywords
		rule.New[*ast.KeywordExpression, *ast.Type]("keyword-type", ast.KeywordExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.EnclosingClass, ast.ClassTypeSlot),
				rule.Assigned(ast.EnclosingRoutine, ast.SignatureSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(checkKeywordType).
			Applies(setType[*ast.KeywordExpression]),
		rule.New[*ast.KeywordExpression, ast.Value]("keyword-constant", ast.KeywordExpressionKind, rule.Resolution).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.KeywordExpression) (ast.Value, []diag.Error) {
				switch n.Keyword {
				case ast.TrueKeyword:
					return ast.BooleanOf(true), nil
				case ast.FalseKeyword:
					return ast.BooleanOf(false), nil
				default:
					return ast.Unknown(), nil
				}
			}).
			Applies(setValue[*ast.KeywordExpression]),
		rule.New[*ast.KeywordExpression, []string]("keyword-exceptions", ast.KeywordExpressionKind, rule.Body).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(noExceptions[*ast.KeywordExpression]).
			Applies(sealExceptions[*ast.KeywordExpression]),
	}
}

func queryRules() []rule.Rule {
	return []rule.Rule{
		rule.New[*ast.QueryExpression, ast.Definition]("query-feature", ast.QueryExpressionKind, rule.Resolution).
			Reads(nameSources...).
			Writes(rule.WriteOnce(ast.FeatureSlot)).
			Checks(func(_ *rule.Env, n *ast.QueryExpression) (ast.Definition, []diag.Error) {
				if d, ok := lookupName(n, n.Name); ok {
					return d, nil
				}
				//
				return nil, diag.Errors(diag.UnknownIdentifier, n, "%s", n.Name)
			}).
			Applies(func(n *ast.QueryExpression, d ast.Definition) error { return n.Feature.Set(d) }),
		rule.New[*ast.QueryExpression, *ast.Type]("query-type", ast.QueryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.FeatureSlot, ast.SignatureSlot),
				rule.Assigned(ast.ArgumentsRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *rule.Env, n *ast.QueryExpression) (*ast.Type, []diag.Error) {
				return callType(n, n.Feature.Value(), n.Arguments)
			}).
			Applies(setType[*ast.QueryExpression]),
		rule.New[*ast.QueryExpression, ast.Value]("query-constant", ast.QueryExpressionKind, rule.Resolution).
			Reads(rule.Maybe(ast.FeatureSlot, ast.ConstantValueSlot)).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.QueryExpression) (ast.Value, []diag.Error) {
				return callValue(n.Feature.Value(), n.Arguments), nil
			}).
			Applies(setValue[*ast.QueryExpression]),
		rule.New[*ast.QueryExpression, []string]("query-exceptions", ast.QueryExpressionKind, rule.Body).
			Reads(rule.Sealed(ast.ArgumentsRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.QueryExpression) ([]string, []diag.Error) {
				return expressionExceptions(n.Arguments...), nil
			}).
			Applies(sealExceptions[*ast.QueryExpression]),
	}
}

func operatorRules() []rule.Rule {
	return []rule.Rule{
		// Binary operators
		rule.New[*ast.BinaryExpression, *ast.Operator]("binary-operator", ast.BinaryExpressionKind,
			rule.Resolution).
			Reads(rule.Assigned(ast.LeftRelation, ast.ResolvedTypeSlot),
				rule.Assigned(ast.RightRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.OperatorSlot)).
			Checks(checkBinaryOperator).
			Applies(func(n *ast.BinaryExpression, op *ast.Operator) error { return n.Operator.Set(op) }),
		rule.New[*ast.BinaryExpression, *ast.Type]("binary-type", ast.BinaryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.OperatorSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *rule.Env, n *ast.BinaryExpression) (*ast.Type, []diag.Error) {
				return n.Operator.Value().Result, nil
			}).
			Applies(setType[*ast.BinaryExpression]),
		rule.New[*ast.BinaryExpression, ast.Value]("binary-constant", ast.BinaryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.OperatorSlot),
				rule.Assigned(ast.LeftRelation, ast.ConstantValueSlot),
				rule.Assigned(ast.RightRelation, ast.ConstantValueSlot)).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.BinaryExpression) (ast.Value, []diag.Error) {
				return evaluate(n, n.Operator.Value(), n.Left, n.Right)
			}).
			Applies(setValue[*ast.BinaryExpression]),
		rule.New[*ast.BinaryExpression, []string]("binary-exceptions", ast.BinaryExpressionKind, rule.Body).
			Reads(rule.Sealed(ast.LeftRelation, ast.ExceptionsSlot), rule.Sealed(ast.RightRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.BinaryExpression) ([]string, []diag.Error) {
				return expressionExceptions(n.Left, n.Right), nil
			}).
			Applies(sealExceptions[*ast.BinaryExpression]),
		// Unary operators
		rule.New[*ast.UnaryExpression, *ast.Operator]("unary-operator", ast.UnaryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.OperandRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.OperatorSlot)).
			Checks(checkUnaryOperator).
			Applies(func(n *ast.UnaryExpression, op *ast.Operator) error { return n.Operator.Set(op) }),
		rule.New[*ast.UnaryExpression, *ast.Type]("unary-type", ast.UnaryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.OperatorSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *rule.Env, n *ast.UnaryExpression) (*ast.Type, []diag.Error) {
				return n.Operator.Value().Result, nil
			}).
			Applies(setType[*ast.UnaryExpression]),
		rule.New[*ast.UnaryExpression, ast.Value]("unary-constant", ast.UnaryExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.OperatorSlot), rule.Assigned(ast.OperandRelation, ast.ConstantValueSlot)).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.UnaryExpression) (ast.Value, []diag.Error) {
				return evaluate(n, n.Operator.Value(), n.Operand)
			}).
			Applies(setValue[*ast.UnaryExpression]),
		rule.New[*ast.UnaryExpression, []string]("unary-exceptions", ast.UnaryExpressionKind, rule.Body).
			Reads(rule.Sealed(ast.OperandRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.UnaryExpression) ([]string, []diag.Error) {
				return expressionExceptions(n.Operand), nil
			}).
			Applies(sealExceptions[*ast.UnaryExpression]),
		// Equalities
		rule.New[*ast.EqualityExpression, *ast.Type]("equality-type", ast.EqualityExpressionKind, rule.Resolution).
			Reads(rule.Assigned(ast.LeftRelation, ast.ResolvedTypeSlot),
				rule.Assigned(ast.RightRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(checkEqualityType).
			Applies(setType[*ast.EqualityExpression]),
		rule.New[*ast.EqualityExpression, ast.Value]("equality-constant", ast.EqualityExpressionKind,
			rule.Resolution).
			Reads(rule.Assigned(ast.LeftRelation, ast.ConstantValueSlot),
				rule.Assigned(ast.RightRelation, ast.ConstantValueSlot)).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.EqualityExpression) (ast.Value, []diag.Error) {
				var (
					left  = n.Left.Expr().ConstantValue.Value()
					right = n.Right.Expr().ConstantValue.Value()
				)
				//
				if !left.IsConstant() || !right.IsConstant() {
					return ast.Unknown(), nil
				}
				//
				return ast.BooleanOf(left.Equals(right) == n.Equal), nil
			}).
			Applies(setValue[*ast.EqualityExpression]),
		rule.New[*ast.EqualityExpression, []string]("equality-exceptions", ast.EqualityExpressionKind, rule.Body).
			Reads(rule.Sealed(ast.LeftRelation, ast.ExceptionsSlot), rule.Sealed(ast.RightRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.EqualityExpression) ([]string, []diag.Error) {
				return expressionExceptions(n.Left, n.Right), nil
			}).
			Applies(sealExceptions[*ast.EqualityExpression]),
	}
}

func precursorRules() []rule.Rule {
	return []rule.Rule{
		rule.New[*ast.PrecursorExpression, ast.Definition]("precursor-feature", ast.PrecursorExpressionKind,
			rule.Resolution).
			Reads(rule.Maybe(ast.EnclosingFeature, ast.PrecursorSlot)).
			Writes(rule.WriteOnce(ast.FeatureSlot)).
			Checks(checkPrecursorFeature).
			Applies(func(n *ast.PrecursorExpression, d ast.Definition) error { return n.Feature.Set(d) }),
		rule.New[*ast.PrecursorExpression, *ast.Type]("precursor-type", ast.PrecursorExpressionKind,
			rule.Resolution).
			Reads(rule.Assigned(ast.FeatureSlot, ast.SignatureSlot),
				rule.Assigned(ast.ArgumentsRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
			Checks(func(_ *rule.Env, n *ast.PrecursorExpression) (*ast.Type, []diag.Error) {
				return callType(n, n.Feature.Value(), n.Arguments)
			}).
			Applies(setType[*ast.PrecursorExpression]),
		rule.New[*ast.PrecursorExpression, ast.Value]("precursor-constant", ast.PrecursorExpressionKind,
			rule.Resolution).
			Reads(rule.Maybe(ast.FeatureSlot, ast.ConstantValueSlot)).
			Writes(rule.WriteOnce(ast.ConstantValueSlot)).
			Checks(func(_ *rule.Env, n *ast.PrecursorExpression) (ast.Value, []diag.Error) {
				return callValue(n.Feature.Value(), n.Arguments), nil
			}).
			Applies(setValue[*ast.PrecursorExpression]),
		rule.New[*ast.PrecursorExpression, []string]("precursor-exceptions", ast.PrecursorExpressionKind,
			rule.Body).
			Reads(rule.Sealed(ast.ArgumentsRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.PrecursorExpression) ([]string, []diag.Error) {
				return expressionExceptions(n.Arguments...), nil
			}).
			Applies(sealExceptions[*ast.PrecursorExpression]),
	}
}

func checkNumber(_ *rule.Env, n *ast.NumberExpression) (ast.Value, []diag.Error) {
	var number big.Int
	//
	if _, ok := number.SetString(n.Text, 10); !ok {
		return ast.Unknown(), diag.Errors(diag.InvalidExpression, n, "invalid number %q", n.Text)
	}
	//
	return ast.NumberOf(&number), nil
}

func checkKeywordType(env *rule.Env, n *ast.KeywordExpression) (*ast.Type, []diag.Error) {
	switch n.Keyword {
	case ast.TrueKeyword, ast.FalseKeyword:
		return languageType(env, n, tables.BooleanType)
	case ast.CurrentKeyword:
		if class := ast.EnclosingClassOf(n); class != nil {
			return class.ClassType.Value(), nil
		}
	case ast.ResultKeyword:
		if f, ok := ast.EnclosingFeatureOf(n).(*ast.FunctionFeature); ok {
			return f.Signature.Value().Result, nil
		}
	}
	//
	return nil, diag.Errors(diag.InvalidExpression, n, "%s is not available here", n.Keyword)
}

// The type of a query (or precursor call) is the result of the definition
// being queried, provided the arguments match its signature.
func callType(n ast.Expression, d ast.Definition, args []ast.Expression) (*ast.Type, []diag.Error) {
	sig := d.Definition().Signature.Value()
	//
	if errs := checkArguments(n, d.Name(), sig, args); len(errs) > 0 {
		return nil, errs
	} else if sig.IsProcedure() {
		return nil, diag.Errors(diag.InvalidExpression, n, "%s does not return a value", d.Name())
	}
	//
	return sig.Result, nil
}

// A query is constant only when it reads a constant feature.
func callValue(d ast.Definition, args []ast.Expression) ast.Value {
	if value := d.Definition().ConstantValue.Value(); value.HasValue() && len(args) == 0 {
		return value.Unwrap()
	}
	//
	return ast.Unknown()
}

func checkBinaryOperator(env *rule.Env, n *ast.BinaryExpression) (*ast.Operator, []diag.Error) {
	var (
		left  = n.Left.Expr().ResolvedType.Value()
		right = n.Right.Expr().ResolvedType.Value()
	)
	//
	if op, ok := env.Tables.SelectBinary(n.Symbol, left, right); ok {
		return op, nil
	} else if len(env.Tables.BinaryOperators(n.Symbol)) == 0 {
		return nil, diag.Errors(diag.UnknownIdentifier, n, "operator %s", n.Symbol)
	}
	//
	return nil, diag.Errors(diag.TypeMismatch, n, "no operator %s for %s and %s", n.Symbol, left, right)
}

func checkUnaryOperator(env *rule.Env, n *ast.UnaryExpression) (*ast.Operator, []diag.Error) {
	operand := n.Operand.Expr().ResolvedType.Value()
	//
	if op, ok := env.Tables.SelectUnary(n.Symbol, operand); ok {
		return op, nil
	} else if len(env.Tables.UnaryOperators(n.Symbol)) == 0 {
		return nil, diag.Errors(diag.UnknownIdentifier, n, "operator %s", n.Symbol)
	}
	//
	return nil, diag.Errors(diag.TypeMismatch, n, "no operator %s for %s", n.Symbol, operand)
}

// Evaluate an operator over its operands, provided they are all constant.
func evaluate(n ast.Expression, op *ast.Operator, operands ...ast.Expression) (ast.Value, []diag.Error) {
	args := make([]ast.Value, len(operands))
	//
	for i, operand := range operands {
		if args[i] = operand.Expr().ConstantValue.Value(); !args[i].IsConstant() {
			return ast.Unknown(), nil
		}
	}
	//
	value, err := op.Eval(args...)
	if err != nil {
		return ast.Unknown(), diag.Errors(diag.InvalidExpression, n, "%s", err)
	}
	//
	return value, nil
}

// Two values can be compared when either type conforms to the other.
func checkEqualityType(env *rule.Env, n *ast.EqualityExpression) (*ast.Type, []diag.Error) {
	var (
		left  = n.Left.Expr().ResolvedType.Value()
		right = n.Right.Expr().ResolvedType.Value()
	)
	//
	if !left.ConformsTo(right) && !right.ConformsTo(left) {
		return nil, diag.Errors(diag.TypeMismatch, n, "cannot compare %s with %s", left, right)
	}
	//
	return languageType(env, n, tables.BooleanType)
}

func checkPrecursorFeature(_ *rule.Env, n *ast.PrecursorExpression) (ast.Definition, []diag.Error) {
	if f := ast.EnclosingFeatureOf(n); f != nil {
		if precursor := f.Header().Precursor.Value(); precursor.HasValue() {
			return precursor.Unwrap(), nil
		}
		//
		return nil, diag.Errors(diag.InvalidExpression, n, "%s is not a redefinition", f.Name())
	}
	//
	return nil, diag.Errors(diag.InvalidExpression, n, "precursor outside of a feature")
}
