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
package rule

import (
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// Template is a generic rule implementation, parameterised over the concrete
// node type N it applies to and the type D of data it computes.  Templates are
// constructed with New() and then configured in a builder style, for example:
//
//	rule.New[*ast.NumberExpression, *ast.Type]("number-type", ast.NumberExpressionKind, rule.Resolution).
//		Writes(rule.WriteOnce(ast.ResolvedTypeSlot)).
//		Checks(numberType).
//		Applies(setResolvedType)
type Template[N ast.Node, D any] struct {
	name         string
	kind         ast.Kind
	tier         Tier
	sources      []Path
	destinations []Destination
	check        func(*Env, N) (D, []diag.Error)
	apply        func(N, D) error
}

// New constructs a new rule template bound to a given kind.
func New[N ast.Node, D any](name string, kind ast.Kind, tier Tier) *Template[N, D] {
	return &Template[N, D]{name: name, kind: kind, tier: tier}
}

// Reads declares one or more sources of this rule.
func (p *Template[N, D]) Reads(sources ...Path) *Template[N, D] {
	p.sources = append(p.sources, sources...)
	return p
}

// Writes declares one or more destinations of this rule.
func (p *Template[N, D]) Writes(destinations ...Destination) *Template[N, D] {
	p.destinations = append(p.destinations, destinations...)
	return p
}

// Checks sets the function computing this rule's data.
func (p *Template[N, D]) Checks(check func(*Env, N) (D, []diag.Error)) *Template[N, D] {
	p.check = check
	return p
}

// Applies sets the function writing this rule's data.
func (p *Template[N, D]) Applies(apply func(N, D) error) *Template[N, D] {
	p.apply = apply
	return p
}

// Name implementation for Rule interface.
func (p *Template[N, D]) Name() string {
	return p.name
}

// Kind implementation for Rule interface.
func (p *Template[N, D]) Kind() ast.Kind {
	return p.kind
}

// Tier implementation for Rule interface.
func (p *Template[N, D]) Tier() Tier {
	return p.tier
}

// Sources implementation for Rule interface.
func (p *Template[N, D]) Sources() []Path {
	return p.sources
}

// Destinations implementation for Rule interface.
func (p *Template[N, D]) Destinations() []Destination {
	return p.destinations
}

// Check implementation for Rule interface.
func (p *Template[N, D]) Check(env *Env, node ast.Node) (any, []diag.Error) {
	n, err := p.node(node)
	if err != nil {
		panic(err)
	}
	//
	return p.check(env, n)
}

// Apply implementation for Rule interface.
func (p *Template[N, D]) Apply(node ast.Node, data any) error {
	n, err := p.node(node)
	if err != nil {
		return err
	}
	//
	d, ok := data.(D)
	if !ok && data != nil {
		return fmt.Errorf("rule %s applied with %T", p.name, data)
	}
	//
	return p.apply(n, d)
}

func (p *Template[N, D]) node(node ast.Node) (N, error) {
	n, ok := node.(N)
	if !ok {
		return n, fmt.Errorf("%w: rule %s bound to %s applied to %s", slot.ErrStructural, p.name, p.kind, node.Kind())
	}
	//
	return n, nil
}
