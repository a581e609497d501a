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
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
)

// Rules for bodies, instructions and assertions.
func instructionRules() []rule.Rule {
	return []rule.Rule{
		// Assignments
		rule.New[*ast.AssignmentInstruction, ast.Definition]("assignment-destination",
			ast.AssignmentInstructionKind, rule.Body).
			Reads(nameSources...).
			Writes(rule.WriteOnce(ast.DestinationSlot)).
			Checks(checkDestination).
			Applies(func(n *ast.AssignmentInstruction, d ast.Definition) error { return n.Destination.Set(d) }),
		rule.New[*ast.AssignmentInstruction, []string]("assignment-exceptions", ast.AssignmentInstructionKind,
			rule.Body).
			Reads(rule.Assigned(ast.DestinationSlot, ast.SignatureSlot),
				rule.Assigned(ast.SourceRelation, ast.ResolvedTypeSlot),
				rule.Sealed(ast.SourceRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(checkAssignment).
			Applies(sealInstructionExceptions[*ast.AssignmentInstruction]),
		// Conditionals
		rule.New[*ast.ConditionalInstruction, []string]("conditional-else", ast.ConditionalInstructionKind,
			rule.Body).
			Reads(rule.Sealed(ast.ElseRelation, ast.ExceptionsSlot)).
			Writes(rule.Conditional(ast.ElseExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.ConditionalInstruction) ([]string, []diag.Error) {
				return instructionExceptions(n.Else), nil
			}).
			Applies(func(n *ast.ConditionalInstruction, exceptions []string) error {
				if !n.HasElse {
					// absent
					return nil
				}
				//
				return n.ElseExceptions.Set(exceptions)
			}),
		rule.New[*ast.ConditionalInstruction, []string]("conditional-exceptions", ast.ConditionalInstructionKind,
			rule.Body).
			Reads(rule.Assigned(ast.ConditionRelation, ast.ResolvedTypeSlot),
				rule.Sealed(ast.ConditionRelation, ast.ExceptionsSlot),
				rule.Sealed(ast.ThenRelation, ast.ExceptionsSlot),
				rule.Maybe(ast.ElseExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(checkConditional).
			Applies(sealInstructionExceptions[*ast.ConditionalInstruction]),
		// Throws
		rule.New[*ast.ThrowInstruction, *ast.Type]("throw-type", ast.ThrowInstructionKind, rule.Body).
			Reads(typeSources...).
			Writes(rule.WriteOnce(ast.ExceptionTypeSlot)).
			Checks(checkThrow).
			Applies(func(n *ast.ThrowInstruction, t *ast.Type) error { return n.ExceptionType.Set(t) }),
		rule.New[*ast.ThrowInstruction, []string]("throw-exceptions", ast.ThrowInstructionKind, rule.Body).
			Reads(rule.Assigned(ast.ExceptionTypeSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.ThrowInstruction) ([]string, []diag.Error) {
				return []string{n.ExceptionType.Value().Name}, nil
			}).
			Applies(sealInstructionExceptions[*ast.ThrowInstruction]),
		// Commands
		rule.New[*ast.CommandInstruction, ast.Definition]("command-feature", ast.CommandInstructionKind,
			rule.Body).
			Reads(nameSources...).
			Writes(rule.WriteOnce(ast.FeatureSlot)).
			Checks(checkCommand).
			Applies(func(n *ast.CommandInstruction, d ast.Definition) error { return n.Feature.Set(d) }),
		rule.New[*ast.CommandInstruction, []string]("command-exceptions", ast.CommandInstructionKind, rule.Body).
			Reads(rule.Assigned(ast.FeatureSlot, ast.SignatureSlot),
				rule.Assigned(ast.ArgumentsRelation, ast.ResolvedTypeSlot),
				rule.Sealed(ast.ArgumentsRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.CommandInstruction) ([]string, []diag.Error) {
				d := n.Feature.Value()
				//
				if errs := checkArguments(n, d.Name(), d.Definition().Signature.Value(), n.Arguments); len(errs) > 0 {
					return nil, errs
				}
				//
				return expressionExceptions(n.Arguments...), nil
			}).
			Applies(sealInstructionExceptions[*ast.CommandInstruction]),
		// Bodies
		rule.New[*ast.Body, []string]("body-exceptions", ast.BodyKind, rule.Body).
			Reads(rule.Sealed(ast.InstructionsRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.Body) ([]string, []diag.Error) {
				return instructionExceptions(n.Instructions), nil
			}).
			Applies(func(n *ast.Body, exceptions []string) error { return n.Exceptions.SealWith(exceptions...) }),
		// Assertions
		rule.New[*ast.Assertion, *ast.Contract]("assertion-check", ast.AssertionKind, rule.Contract).
			Reads(rule.Assigned(ast.ExpressionRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.CheckedSlot)).
			Checks(func(env *rule.Env, n *ast.Assertion) (*ast.Contract, []diag.Error) {
				if errs := checkBoolean(env, n.Expr); len(errs) > 0 {
					return nil, errs
				}
				//
				return &ast.Contract{Tag: n.Tag, Expr: n.Expr}, nil
			}).
			Applies(func(n *ast.Assertion, c *ast.Contract) error { return n.Checked.Set(c) }),
	}
}

// The destination of an assignment is either the result of the enclosing
// function, or a local, parameter or attribute.
func checkDestination(_ *rule.Env, n *ast.AssignmentInstruction) (ast.Definition, []diag.Error) {
	if n.Target == ast.ResultName {
		if f, ok := ast.EnclosingFeatureOf(n).(*ast.FunctionFeature); ok {
			return f, nil
		}
		//
		return nil, diag.Errors(diag.InvalidInstruction, n, "%s outside of a function", n.Target)
	}
	//
	d, ok := lookupName(n, n.Target)
	if !ok {
		return nil, diag.Errors(diag.UnknownIdentifier, n, "%s", n.Target)
	}
	//
	switch d.(type) {
	case *ast.Entity, *ast.AttributeFeature:
		return d, nil
	default:
		return nil, diag.Errors(diag.InvalidInstruction, n, "cannot assign to %s", n.Target)
	}
}

func checkAssignment(_ *rule.Env, n *ast.AssignmentInstruction) ([]string, []diag.Error) {
	var (
		expected = n.Destination.Value().Definition().Signature.Value().Result
		actual   = n.Source.Expr().ResolvedType.Value()
	)
	//
	if !actual.ConformsTo(expected) {
		return nil, diag.Errors(diag.TypeMismatch, n.Source, "expected %s, got %s", expected, actual)
	}
	//
	return expressionExceptions(n.Source), nil
}

func checkConditional(env *rule.Env, n *ast.ConditionalInstruction) ([]string, []diag.Error) {
	if errs := checkBoolean(env, n.Condition); len(errs) > 0 {
		return nil, errs
	}
	//
	exceptions := union(expressionExceptions(n.Condition), instructionExceptions(n.Then))
	//
	if otherwise := n.ElseExceptions.Value(); otherwise.HasValue() {
		exceptions = union(exceptions, otherwise.Unwrap())
	}
	//
	return exceptions, nil
}

// Only classes of the program can be thrown.
func checkThrow(env *rule.Env, n *ast.ThrowInstruction) (*ast.Type, []diag.Error) {
	t, errs := lookupType(env, n, n.ExceptionName)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if t.IsLanguageDefined() {
		return nil, diag.Errors(diag.TypeMismatch, n, "%s is not an exception class", t)
	}
	//
	return t, nil
}

func checkCommand(_ *rule.Env, n *ast.CommandInstruction) (ast.Definition, []diag.Error) {
	d, ok := lookupName(n, n.Target)
	//
	if !ok {
		return nil, diag.Errors(diag.UnknownIdentifier, n, "%s", n.Target)
	} else if _, ok := d.(*ast.ProcedureFeature); !ok {
		return nil, diag.Errors(diag.InvalidInstruction, n, "%s is not a procedure", n.Target)
	}
	//
	return d, nil
}
