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
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
)

var featureKinds = []ast.Kind{
	ast.ConstantFeatureKind, ast.AttributeFeatureKind, ast.FunctionFeatureKind, ast.ProcedureFeatureKind,
}

// Rules for features, and the entities (parameters and locals) they declare.
func featureRules() []rule.Rule {
	var rules []rule.Rule
	// Rules common to all features
	for _, kind := range featureKinds {
		rules = append(rules,
			rule.New[ast.Feature, *ast.Type]("feature-declared-type", kind, rule.Resolution).
				Reads(typeSources...).
				Writes(rule.Conditional(ast.DeclaredTypeSlot)).
				Checks(checkDeclaredType).
				Applies(applyDeclaredType),
			rule.New[ast.Feature, ast.Feature]("feature-precursor", kind, rule.Resolution).
				Reads(rule.Sealed(ast.EnclosingClass, ast.ParentSlot, ast.FeatureTableSlot)).
				Writes(rule.Conditional(ast.PrecursorSlot)).
				Checks(checkPrecursor).
				Applies(applyPrecursor))
	}
	// Constants
	rules = append(rules,
		rule.New[*ast.ConstantFeature, *ast.Signature]("feature-signature", ast.ConstantFeatureKind, rule.Resolution).
			Reads(rule.Maybe(ast.DeclaredTypeSlot), rule.Assigned(ast.ValueRelation, ast.ResolvedTypeSlot)).
			Writes(rule.WriteOnce(ast.SignatureSlot)).
			Checks(checkConstantSignature).
			Applies(setSignature[*ast.ConstantFeature]),
		rule.New[*ast.ConstantFeature, ast.Value]("constant-value", ast.ConstantFeatureKind, rule.Resolution).
			Reads(rule.Assigned(ast.ValueRelation, ast.ConstantValueSlot)).
			Writes(rule.Conditional(ast.ConstantValueSlot)).
			Checks(checkConstantValue).
			Applies(func(n *ast.ConstantFeature, v ast.Value) error { return n.ConstantValue.Set(v) }),
		rule.New[*ast.ConstantFeature, []string]("feature-exceptions", ast.ConstantFeatureKind, rule.Body).
			Reads(rule.Sealed(ast.ValueRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n *ast.ConstantFeature) ([]string, []diag.Error) {
				return expressionExceptions(n.Value), nil
			}).
			Applies(sealFeatureExceptions[*ast.ConstantFeature]))
	// Attributes
	rules = append(rules,
		rule.New[*ast.AttributeFeature, *ast.Signature]("feature-signature", ast.AttributeFeatureKind,
			rule.Resolution).
			Reads(rule.Maybe(ast.DeclaredTypeSlot)).
			Writes(rule.WriteOnce(ast.SignatureSlot)).
			Checks(func(env *rule.Env, n *ast.AttributeFeature) (*ast.Signature, []diag.Error) {
				t, errs := resultType(env, n)
				return &ast.Signature{Result: t}, errs
			}).
			Applies(setSignature[*ast.AttributeFeature]),
		rule.New[*ast.AttributeFeature, []string]("feature-exceptions", ast.AttributeFeatureKind, rule.Body).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(noExceptions[*ast.AttributeFeature]).
			Applies(sealFeatureExceptions[*ast.AttributeFeature]))
	// Functions
	rules = append(rules,
		rule.New[*ast.FunctionFeature, *ast.Signature]("feature-signature", ast.FunctionFeatureKind,
			rule.Resolution).
			Reads(rule.Assigned(ast.ParametersRelation, ast.SignatureSlot), rule.Maybe(ast.DeclaredTypeSlot)).
			Writes(rule.WriteOnce(ast.SignatureSlot)).
			Checks(func(env *rule.Env, n *ast.FunctionFeature) (*ast.Signature, []diag.Error) {
				t, errs := resultType(env, n)
				return &ast.Signature{Parameters: parameterTypes(n.Parameters), Result: t}, errs
			}).
			Applies(setSignature[*ast.FunctionFeature]))
	rules = append(rules, routineRules[*ast.FunctionFeature](ast.FunctionFeatureKind)...)
	// Procedures
	rules = append(rules,
		rule.New[*ast.ProcedureFeature, *ast.Signature]("feature-signature", ast.ProcedureFeatureKind,
			rule.Resolution).
			Reads(rule.Assigned(ast.ParametersRelation, ast.SignatureSlot)).
			Writes(rule.WriteOnce(ast.SignatureSlot)).
			Checks(func(_ *rule.Env, n *ast.ProcedureFeature) (*ast.Signature, []diag.Error) {
				return &ast.Signature{Parameters: parameterTypes(n.Parameters)}, nil
			}).
			Applies(setSignature[*ast.ProcedureFeature]))
	rules = append(rules, routineRules[*ast.ProcedureFeature](ast.ProcedureFeatureKind)...)
	// Entities
	return append(rules,
		rule.New[*ast.Entity, *ast.Signature]("entity-type", ast.EntityKind, rule.Resolution).
			Reads(typeSources...).
			Writes(rule.WriteOnce(ast.SignatureSlot)).
			Checks(func(env *rule.Env, n *ast.Entity) (*ast.Signature, []diag.Error) {
				t, errs := lookupType(env, n, n.TypeName)
				return &ast.Signature{Result: t}, errs
			}).
			Applies(setSignature[*ast.Entity]))
}

// Rules common to functions and procedures.
func routineRules[N ast.Feature](kind ast.Kind) []rule.Rule {
	return []rule.Rule{
		rule.New[N, []ast.Definition]("feature-local-table", kind, rule.Resolution).
			Writes(rule.Seal(ast.LocalTableSlot)).
			Checks(checkLocalTable[N]).
			Applies(applyLocalTable[N]),
		rule.New[N, []*ast.Contract]("feature-contract", kind, rule.Contract).
			Reads(rule.Assigned(ast.RequireRelation, ast.CheckedSlot), rule.Assigned(ast.EnsureRelation, ast.CheckedSlot)).
			Writes(rule.Seal(ast.ContractSlot)).
			Checks(checkContract[N]).
			Applies(func(n N, cs []*ast.Contract) error { return ast.RoutineOf(n).Contract.SealWith(cs...) }),
		rule.New[N, []string]("feature-exceptions", kind, rule.Body).
			Reads(rule.Sealed(ast.BodyRelation, ast.ExceptionsSlot)).
			Writes(rule.Seal(ast.ExceptionsSlot)).
			Checks(func(_ *rule.Env, n N) ([]string, []diag.Error) {
				if body := ast.RoutineOf(n).Body; body != nil {
					return body.Exceptions.Items(), nil
				}
				//
				return nil, nil
			}).
			Applies(sealFeatureExceptions[N]),
	}
}

func checkDeclaredType(env *rule.Env, n ast.Feature) (*ast.Type, []diag.Error) {
	if name := n.Header().TypeName; name != "" {
		return lookupType(env, n, name)
	}
	//
	return nil, nil
}

func applyDeclaredType(n ast.Feature, t *ast.Type) error {
	if t == nil {
		// absent
		return nil
	}
	//
	return n.Header().DeclaredType.Set(t)
}

// A redefinition refers to the feature of the same name in the parent class.
func checkPrecursor(_ *rule.Env, n ast.Feature) (ast.Feature, []diag.Error) {
	if !n.Header().Redefine {
		return nil, nil
	}
	//
	if parent := ast.EnclosingClassOf(n).Super.Value(); parent.HasValue() {
		if f, ok := parent.Unwrap().FeatureTable.Get(n.Name()); ok {
			return f, nil
		}
	}
	//
	return nil, diag.Errors(diag.UnknownIdentifier, n, "%s has no precursor", n.Name())
}

func applyPrecursor(n ast.Feature, precursor ast.Feature) error {
	if precursor == nil {
		// absent
		return nil
	}
	//
	return n.Header().Precursor.Set(precursor)
}

// The type of a constant is the declared type (if given), to which its value
// must conform.  Otherwise, it is the type of its value.
func checkConstantSignature(_ *rule.Env, n *ast.ConstantFeature) (*ast.Signature, []diag.Error) {
	var (
		declared = n.DeclaredType.Value()
		actual   = n.Value.Expr().ResolvedType.Value()
	)
	//
	if declared.IsEmpty() {
		return &ast.Signature{Result: actual}, nil
	} else if !actual.ConformsTo(declared.Unwrap()) {
		return nil, diag.Errors(diag.TypeMismatch, n.Value, "expected %s, got %s", declared.Unwrap(), actual)
	}
	//
	return &ast.Signature{Result: declared.Unwrap()}, nil
}

func checkConstantValue(_ *rule.Env, n *ast.ConstantFeature) (ast.Value, []diag.Error) {
	value := n.Value.Expr().ConstantValue.Value()
	//
	if !value.IsConstant() {
		return value, diag.Errors(diag.InvalidExpression, n.Value, "value of %s is not constant", n.Name())
	}
	//
	return value, nil
}

// The result type of an attribute or function defaults to Any.
func resultType(env *rule.Env, n ast.Feature) (*ast.Type, []diag.Error) {
	if declared := n.Header().DeclaredType.Value(); declared.HasValue() {
		return declared.Unwrap(), nil
	}
	//
	return languageType(env, n, tables.AnyType)
}

func parameterTypes(parameters []*ast.Entity) []*ast.Type {
	types := make([]*ast.Type, len(parameters))
	//
	for i, p := range parameters {
		types[i] = p.Signature.Value().Result
	}
	//
	return types
}

// The local table holds parameters followed by locals, all of which must have
// distinct names.  The name of the result is reserved.
func checkLocalTable[N ast.Feature](_ *rule.Env, n N) ([]ast.Definition, []diag.Error) {
	var (
		routine  = ast.RoutineOf(n)
		entities = routine.Parameters
		seen     = make(map[string]bool)
		locals   []ast.Definition
		errs     []diag.Error
	)
	//
	if routine.Body != nil {
		entities = append(entities[:len(entities):len(entities)], routine.Body.Locals...)
	}
	//
	for _, e := range entities {
		if e.Name() == ast.ResultName {
			errs = append(errs, diag.New(diag.DuplicateName, e, "%s is reserved", e.Name()))
		} else if seen[e.Name()] {
			errs = append(errs, diag.New(diag.DuplicateName, e, "%s", e.Name()))
		}
		//
		seen[e.Name()] = true
		locals = append(locals, e)
	}
	//
	return locals, errs
}

func applyLocalTable[N ast.Feature](n N, locals []ast.Definition) error {
	table := &ast.RoutineOf(n).LocalTable
	//
	for _, d := range locals {
		if err := table.Put(d.Name(), d); err != nil {
			return err
		}
	}
	//
	return table.Seal()
}

func checkContract[N ast.Feature](_ *rule.Env, n N) ([]*ast.Contract, []diag.Error) {
	routine := ast.RoutineOf(n)
	//
	errs := append(checkTags(routine.Require), checkTags(routine.Ensure)...)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return append(contractsOf(routine.Require), contractsOf(routine.Ensure)...), nil
}

func setSignature[N ast.Definition](n N, sig *ast.Signature) error {
	return n.Definition().Signature.Set(sig)
}

func sealFeatureExceptions[N ast.Feature](n N, exceptions []string) error {
	return n.Header().Exceptions.SealWith(exceptions...)
}
