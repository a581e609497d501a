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
	"slices"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
)

// Sources read by any rule resolving a type name.  Only the class bearing that
// name is waited on, so language-defined names need nothing but the table.
var typeSources = []rule.Path{
	rule.Sealed(ast.EnclosingProgram, ast.ClassTableSlot),
	rule.Assigned(ast.NamedClass, ast.ClassTypeSlot),
}

// Sources read by any rule resolving a feature or entity name.
var nameSources = []rule.Path{
	rule.Sealed(ast.EnclosingRoutine, ast.LocalTableSlot),
	rule.Sealed(ast.EnclosingClass, ast.FeatureTableSlot),
}

// Resolve a type name, which can refer either to a language-defined type, or
// to a class of the program.
func lookupType(env *rule.Env, node ast.Node, name string) (*ast.Type, []diag.Error) {
	if t, ok := env.Tables.Type(name); ok {
		return t, nil
	} else if tables.IsReserved(name) {
		return nil, diag.Errors(diag.MissingLanguageType, node, "%s", name)
	} else if class, ok := programOf(node).ClassTable.Get(name); ok {
		return class.ClassType.Value(), nil
	}
	//
	return nil, diag.Errors(diag.UnknownIdentifier, node, "%s", name)
}

// Resolve a language-defined type, which must exist in the tables.
func languageType(env *rule.Env, node ast.Node, name string) (*ast.Type, []diag.Error) {
	if t, ok := env.Tables.Type(name); ok {
		return t, nil
	}
	//
	return nil, diag.Errors(diag.MissingLanguageType, node, "%s", name)
}

// Resolve a name visible from a given node, which can be a local or parameter
// of the enclosing routine (if any), or a feature of the enclosing class
// (including inherited features).  Locals hide features.
func lookupName(node ast.Node, name string) (ast.Definition, bool) {
	if routine := routineOf(node); routine != nil {
		if d, ok := routine.LocalTable.Get(name); ok {
			return d, true
		}
	}
	//
	if class := ast.EnclosingClassOf(node); class != nil {
		if f, ok := class.FeatureTable.Get(name); ok {
			return f, true
		}
	}
	//
	return nil, false
}

// Check the arguments passed to a definition conform to its signature.
func checkArguments(node ast.Node, name string, sig *ast.Signature, args []ast.Expression) []diag.Error {
	if len(args) != len(sig.Parameters) {
		return diag.Errors(diag.InvalidExpression, node, "%s expects %d argument(s), got %d", name,
			len(sig.Parameters), len(args))
	}
	//
	var errs []diag.Error
	//
	for i, arg := range args {
		actual := arg.Expr().ResolvedType.Value()
		//
		if !actual.ConformsTo(sig.Parameters[i]) {
			errs = append(errs, diag.New(diag.TypeMismatch, arg, "expected %s, got %s", sig.Parameters[i], actual))
		}
	}
	//
	return errs
}

// Check a given expression has the language-defined Boolean type.
func checkBoolean(env *rule.Env, expr ast.Expression) []diag.Error {
	boolean, errs := languageType(env, expr, tables.BooleanType)
	if errs != nil {
		return errs
	}
	//
	if actual := expr.Expr().ResolvedType.Value(); !actual.ConformsTo(boolean) {
		return diag.Errors(diag.TypeMismatch, expr, "expected %s, got %s", boolean, actual)
	}
	//
	return nil
}

// Check that non-empty assertion tags are unique.
func checkTags(assertions []*ast.Assertion) []diag.Error {
	var (
		seen = make(map[string]bool)
		errs []diag.Error
	)
	//
	for _, a := range assertions {
		if a.Tag == "" {
			continue
		} else if seen[a.Tag] {
			errs = append(errs, diag.New(diag.DuplicateName, a, "%s", a.Tag))
		}
		//
		seen[a.Tag] = true
	}
	//
	return errs
}

// Collect the checked contracts of a set of assertions.
func contractsOf(assertions []*ast.Assertion) []*ast.Contract {
	contracts := make([]*ast.Contract, len(assertions))
	//
	for i, a := range assertions {
		contracts[i] = a.Checked.Value()
	}
	//
	return contracts
}

// Union of the exceptions raised by a set of expressions.
func expressionExceptions(exprs ...ast.Expression) []string {
	var exceptions []string
	//
	for _, e := range exprs {
		exceptions = union(exceptions, e.Expr().Exceptions.Items())
	}
	//
	return exceptions
}

// Union of the exceptions raised by a block of instructions.
func instructionExceptions(instructions []ast.Instruction) []string {
	var exceptions []string
	//
	for _, i := range instructions {
		exceptions = union(exceptions, i.Instruction().Exceptions.Items())
	}
	//
	return exceptions
}

// Append exceptions not already present, preserving order.
func union(exceptions []string, others []string) []string {
	for _, e := range others {
		if !slices.Contains(exceptions, e) {
			exceptions = append(exceptions, e)
		}
	}
	//
	return exceptions
}

func programOf(node ast.Node) *ast.Program {
	for n := node; n != nil; n = n.Parent() {
		if p, ok := n.(*ast.Program); ok {
			return p
		}
	}
	//
	return nil
}

func routineOf(node ast.Node) *ast.Routine {
	if f := ast.EnclosingFeatureOf(node); f != nil {
		return ast.RoutineOf(f)
	}
	//
	return nil
}

// Generic writers shared by many rules.

func setType[N ast.Expression](node N, t *ast.Type) error {
	return node.Expr().ResolvedType.Set(t)
}

func setValue[N ast.Expression](node N, v ast.Value) error {
	return node.Expr().ConstantValue.Set(v)
}

func sealExceptions[N ast.Expression](node N, exceptions []string) error {
	return node.Expr().Exceptions.SealWith(exceptions...)
}

func sealInstructionExceptions[N ast.Instruction](node N, exceptions []string) error {
	return node.Instruction().Exceptions.SealWith(exceptions...)
}

func noExceptions[N ast.Node](*rule.Env, N) ([]string, []diag.Error) {
	return nil, nil
}
