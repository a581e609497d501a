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

// Rules for programs, classes and inheritance clauses.
func declarationRules() []rule.Rule {
	return []rule.Rule{
		rule.New[*ast.Program, []*ast.Class]("program-class-table", ast.ProgramKind, rule.Resolution).
			Writes(rule.Seal(ast.ClassTableSlot)).
			Checks(checkClassTable).
			Applies(applyClassTable),
		rule.New[*ast.Inheritance, *ast.Class]("inheritance-parent", ast.InheritanceKind, rule.Resolution).
			Reads(rule.Sealed(ast.EnclosingProgram, ast.ClassTableSlot)).
			Writes(rule.WriteOnce(ast.ParentClassSlot)).
			Checks(checkInheritance).
			Applies(func(n *ast.Inheritance, c *ast.Class) error { return n.ParentClass.Set(c) }),
		rule.New[*ast.Class, *ast.Class]("class-parent", ast.ClassKind, rule.Resolution).
			Reads(rule.Assigned(ast.InheritanceRelation, ast.ParentClassSlot)).
			Writes(rule.Conditional(ast.ParentSlot)).
			Checks(checkClassParent).
			Applies(applyClassParent),
		rule.New[*ast.Class, *ast.Type]("class-type", ast.ClassKind, rule.Resolution).
			Reads(rule.Assigned(ast.ParentSlot, ast.ClassTypeSlot)).
			Writes(rule.WriteOnce(ast.ClassTypeSlot)).
			Checks(checkClassType).
			Applies(func(n *ast.Class, t *ast.Type) error { return n.ClassType.Set(t) }),
		rule.New[*ast.Class, []ast.Feature]("class-feature-table", ast.ClassKind, rule.Resolution).
			Reads(rule.Sealed(ast.ParentSlot, ast.FeatureTableSlot)).
			Writes(rule.Seal(ast.FeatureTableSlot)).
			Checks(checkFeatureTable).
			Applies(applyFeatureTable),
		rule.New[*ast.Class, []*ast.Contract]("class-invariant", ast.ClassKind, rule.Contract).
			Reads(rule.Assigned(ast.InvariantsRelation, ast.CheckedSlot)).
			Writes(rule.Seal(ast.InvariantSlot)).
			Checks(checkInvariant).
			Applies(func(n *ast.Class, cs []*ast.Contract) error { return n.Invariant.SealWith(cs...) }),
	}
}

// Class names must be unique, and distinct from any language-defined type.
func checkClassTable(_ *rule.Env, n *ast.Program) ([]*ast.Class, []diag.Error) {
	var (
		seen = make(map[string]bool)
		errs []diag.Error
	)
	//
	for _, c := range n.Classes {
		if tables.IsReserved(c.Name) {
			errs = append(errs, diag.New(diag.DuplicateName, c, "%s is a language type", c.Name))
		} else if seen[c.Name] {
			errs = append(errs, diag.New(diag.DuplicateName, c, "%s", c.Name))
		}
		//
		seen[c.Name] = true
	}
	//
	return n.Classes, errs
}

func applyClassTable(n *ast.Program, classes []*ast.Class) error {
	for _, c := range classes {
		if err := n.ClassTable.Put(c.Name, c); err != nil {
			return err
		}
	}
	//
	return n.ClassTable.Seal()
}

func checkInheritance(_ *rule.Env, n *ast.Inheritance) (*ast.Class, []diag.Error) {
	if c, ok := programOf(n).ClassTable.Get(n.ParentName); ok {
		return c, nil
	} else if tables.IsReserved(n.ParentName) {
		return nil, diag.Errors(diag.InvalidExpression, n, "cannot inherit from %s", n.ParentName)
	}
	//
	return nil, diag.Errors(diag.UnknownIdentifier, n, "%s", n.ParentName)
}

func checkClassParent(_ *rule.Env, n *ast.Class) (*ast.Class, []diag.Error) {
	if n.Inheritance == nil {
		return nil, nil
	}
	//
	return n.Inheritance.ParentClass.Value(), nil
}

func applyClassParent(n *ast.Class, parent *ast.Class) error {
	if parent == nil {
		// absent
		return nil
	}
	//
	return n.Super.Set(parent)
}

func checkClassType(_ *rule.Env, n *ast.Class) (*ast.Type, []diag.Error) {
	var (
		parent = n.Super.Value()
		t      = &ast.Type{Name: n.Name, Class: n}
	)
	//
	if parent.HasValue() {
		t.Parent = parent.Unwrap().ClassType.Value()
	}
	//
	return t, nil
}

// The feature table begins with the inherited features, in the parent's
// order, with redefinitions substituted in place.  New features follow in
// declaration order.
func checkFeatureTable(_ *rule.Env, n *ast.Class) ([]ast.Feature, []diag.Error) {
	var (
		features []ast.Feature
		index    = make(map[string]int)
		own      = make(map[string]bool)
		errs     []diag.Error
	)
	//
	if parent := n.Super.Value(); parent.HasValue() {
		table := &parent.Unwrap().FeatureTable
		//
		for _, name := range table.Keys() {
			f, _ := table.Get(name)
			index[name] = len(features)
			features = append(features, f)
		}
	}
	//
	for _, f := range n.Features {
		name := f.Name()
		//
		if own[name] {
			errs = append(errs, diag.New(diag.DuplicateName, f, "%s", name))
			continue
		}
		//
		own[name] = true
		//
		if i, ok := index[name]; !ok {
			index[name] = len(features)
			features = append(features, f)
		} else if f.Header().Redefine {
			features[i] = f
		} else {
			errs = append(errs, diag.New(diag.DuplicateName, f, "%s is inherited", name))
		}
	}
	//
	return features, errs
}

func applyFeatureTable(n *ast.Class, features []ast.Feature) error {
	for _, f := range features {
		if err := n.FeatureTable.Put(f.Name(), f); err != nil {
			return err
		}
	}
	//
	return n.FeatureTable.Seal()
}

func checkInvariant(_ *rule.Env, n *ast.Class) ([]*ast.Contract, []diag.Error) {
	if errs := checkTags(n.Invariants); len(errs) > 0 {
		return nil, errs
	}
	//
	return contractsOf(n.Invariants), nil
}
