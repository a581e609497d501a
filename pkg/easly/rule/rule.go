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
	"errors"
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// Tier groups rules by the kind of information they compute.  Rules in a later
// tier typically read slots written in the same or an earlier tier, though
// this is not enforced.
type Tier uint8

const (
	// Resolution rules build tables, resolve names and compute types and
	// constant values.
	Resolution Tier = iota
	// Contract rules check assertions and build contracts and invariants.
	Contract
	// Body rules check instructions and compute exceptions.
	Body
)

func (t Tier) String() string {
	switch t {
	case Resolution:
		return "resolution"
	case Contract:
		return "contract"
	case Body:
		return "body"
	}
	//
	return "unknown"
}

// Destination identifies a slot which a rule writes on the node it is bound
// to.
type Destination struct {
	// Name of the slot.
	Slot string
	// Discipline of the slot.
	Discipline slot.Discipline
}

// WriteOnce constructs a destination for a write-once slot.
func WriteOnce(name string) Destination {
	return Destination{name, slot.WriteOnce}
}

// Seal constructs a destination for a collection slot, which the rule fills and
// then seals.
func Seal(name string) Destination {
	return Destination{name, slot.Sealed}
}

// Conditional constructs a destination for a conditionally-assigned slot.
func Conditional(name string) Destination {
	return Destination{name, slot.Conditional}
}

// Env provides the read-only environment shared by all rules during
// resolution.
type Env struct {
	// Tables of language-defined types and operators.
	Tables *tables.Tables
}

// Rule is a small, single-purpose inference step bound to a node kind.  A rule
// declares the slots it reads (sources) and writes (destinations).  Once all
// its sources are ready, Check computes the data to be written (or errors to
// be reported) without modifying anything.  Apply then writes that data to
// the destination slots.
type Rule interface {
	// Name of this rule.  Names are unique within a kind.
	Name() string
	// Kind of node this rule is bound to.
	Kind() ast.Kind
	// Tier of this rule.
	Tier() Tier
	// Sources returns the paths to all slots read by this rule.
	Sources() []Path
	// Destinations returns all slots written by this rule.
	Destinations() []Destination
	// Check computes the data to be written by this rule, or reports one or
	// more errors.  This must not modify the tree.
	Check(env *Env, node ast.Node) (any, []diag.Error)
	// Apply writes data previously computed by Check.
	Apply(node ast.Node, data any) error
}

// Status of a rule application.
type Status uint8

const (
	// Deferred indicates some source slot is not yet ready.
	Deferred Status = iota
	// Applied indicates the rule can commit its data.
	Applied
	// Failed indicates the rule reported errors, and its destinations will
	// never be written.
	Failed
)

func (s Status) String() string {
	switch s {
	case Deferred:
		return "deferred"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	}
	//
	return "unknown"
}

// Outcome captures the result of trying a rule on a node.
type Outcome struct {
	// Status of the attempt.
	Status Status
	// Data to be applied (only when applied).
	Data any
	// Errors reported (only when failed).
	Errors []diag.Error
	// Blockers preventing the rule from proceeding (only when deferred).
	Blockers []Blocker
}

// TryResolve attempts a rule on a node against the current state of the tree.
// The tree is not modified.  The outcome is deferred when any source is not
// ready, otherwise it is determined by the rule's Check.  Errors reported by
// Check are stamped with the rule's name.  A Go error is returned only for
// structural violations (e.g. a source path which does not exist, or reading a
// slot which the rule did not declare as a source).
func TryResolve(env *Env, r Rule, node ast.Node) (outcome Outcome, err error) {
	var blockers []Blocker
	//
	for _, source := range r.Sources() {
		bs, err := Ready(node, source)
		if err != nil {
			return outcome, fmt.Errorf("rule %s on %s#%d: %w", r.Name(), node.Kind(), node.ID(), err)
		}
		//
		blockers = append(blockers, bs...)
	}
	//
	if len(blockers) > 0 {
		return Outcome{Status: Deferred, Blockers: blockers}, nil
	}
	// Reading an unassigned slot (or checking a node of the wrong kind) panics
	// with a structural error.
	defer func() {
		if r2 := recover(); r2 != nil {
			e, ok := r2.(error)
			if !ok || !errors.Is(e, slot.ErrStructural) {
				panic(r2)
			}
			//
			err = fmt.Errorf("rule %s on %s#%d: %w", r.Name(), node.Kind(), node.ID(), e)
		}
	}()
	//
	data, errs := r.Check(env, node)
	//
	if len(errs) > 0 {
		for i := range errs {
			errs[i].Rule = r.Name()
		}
		//
		return Outcome{Status: Failed, Errors: errs}, nil
	}
	//
	return Outcome{Status: Applied, Data: data}, nil
}
