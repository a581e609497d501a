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

// Feature is a named member of a class: a constant, an attribute, a function
// or a procedure.
type Feature interface {
	Definition
	// Header returns the state common to all features.
	Header() *FeatureHeader
}

// FeatureHeader captures the state common to all features.
type FeatureHeader struct {
	header
	DefinitionSlots
	// Name of the feature.
	FeatureName string
	// Name of the declared type (or result type for functions).  This is
	// empty when no type clause was given.
	TypeName string
	// Redefine indicates this feature redefines one inherited from the parent
	// class.
	Redefine bool
	// DeclaredType is present only when a type clause was given.
	DeclaredType slot.Optional[*Type]
	// Exceptions which can be raised by using this feature.
	Exceptions slot.List[string]
	// Precursor is the redefined feature, present only for redefinitions.
	Precursor slot.Optional[Feature]
}

func newFeatureHeader(name string, typename string, constant bool) FeatureHeader {
	return FeatureHeader{
		DefinitionSlots: newDefinitionSlots(constant),
		FeatureName:     name,
		TypeName:        typename,
		DeclaredType:    slot.NewOptional[*Type](DeclaredTypeSlot, typename != ""),
		Exceptions:      slot.NewList[string](ExceptionsSlot),
		Precursor:       slot.NewOptional[Feature](PrecursorSlot, false),
	}
}

// Header implementation for Feature interface.
func (p *FeatureHeader) Header() *FeatureHeader {
	return p
}

// Name implementation for Definition interface.
func (p *FeatureHeader) Name() string {
	return p.FeatureName
}

// MarkRedefinition marks this feature as redefining one with the same name in
// the parent class.  This must be done before resolution starts.
func (p *FeatureHeader) MarkRedefinition() {
	p.Redefine = true
	p.Precursor = slot.NewOptional[Feature](PrecursorSlot, true)
}

func (p *FeatureHeader) slot(name string) slot.Slot {
	switch name {
	case DeclaredTypeSlot:
		return &p.DeclaredType
	case ExceptionsSlot:
		return &p.Exceptions
	case PrecursorSlot:
		return &p.Precursor
	}
	//
	return p.DefinitionSlots.slot(name)
}

func (p *FeatureHeader) follow(node Node, relation string) ([]Node, error) {
	if relation == PrecursorSlot {
		return followOptional(&p.Precursor)
	}
	//
	return nil, unknownRelation(node, relation)
}

// ConstantFeature is a named constant, whose value is determined at compile
// time.
type ConstantFeature struct {
	FeatureHeader
	// Expression giving the constant's value.
	Value Expression
}

// NewConstantFeature constructs a new (unresolved) constant.  The type name is
// optional.
func NewConstantFeature(name string, typename string, value Expression) *ConstantFeature {
	return &ConstantFeature{newFeatureHeader(name, typename, true), value}
}

// Kind implementation for Node interface.
func (p *ConstantFeature) Kind() Kind {
	return ConstantFeatureKind
}

// Children implementation for Node interface.
func (p *ConstantFeature) Children() []Node {
	return []Node{p.Value}
}

// Slot implementation for Node interface.
func (p *ConstantFeature) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *ConstantFeature) Follow(relation string) ([]Node, error) {
	if relation == ValueRelation {
		return []Node{p.Value}, nil
	}
	//
	return p.follow(p, relation)
}

// AttributeFeature is a field of a class.
type AttributeFeature struct {
	FeatureHeader
}

// NewAttributeFeature constructs a new (unresolved) attribute.
func NewAttributeFeature(name string, typename string) *AttributeFeature {
	return &AttributeFeature{newFeatureHeader(name, typename, false)}
}

// Kind implementation for Node interface.
func (p *AttributeFeature) Kind() Kind {
	return AttributeFeatureKind
}

// Children implementation for Node interface.
func (p *AttributeFeature) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *AttributeFeature) Slot(name string) slot.Slot {
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *AttributeFeature) Follow(relation string) ([]Node, error) {
	return p.follow(p, relation)
}

// Routine captures what functions and procedures have in common.
type Routine struct {
	// Parameters of this routine.
	Parameters []*Entity
	// Preconditions.
	Require []*Assertion
	// Postconditions.
	Ensure []*Assertion
	// Body of this routine, or nil for a deferred routine.
	Body *Body
	// Contract is the list of checked preconditions followed by the checked
	// postconditions.
	Contract slot.List[*Contract]
	// LocalTable maps names of parameters and locals to their definitions.
	LocalTable slot.Table[string, Definition]
}

func newRoutine(parameters []*Entity, require []*Assertion, ensure []*Assertion, body *Body) Routine {
	return Routine{
		Parameters: parameters,
		Require:    require,
		Ensure:     ensure,
		Body:       body,
		Contract:   slot.NewList[*Contract](ContractSlot),
		LocalTable: slot.NewTable[string, Definition](LocalTableSlot),
	}
}

func (p *Routine) routineChildren() []Node {
	nodes := nodesOf(p.Parameters)
	nodes = append(nodes, nodesOf(p.Require)...)
	nodes = append(nodes, nodesOf(p.Ensure)...)
	//
	if p.Body != nil {
		nodes = append(nodes, p.Body)
	}
	//
	return nodes
}

func (p *Routine) routineSlot(name string) slot.Slot {
	switch name {
	case ContractSlot:
		return &p.Contract
	case LocalTableSlot:
		return &p.LocalTable
	}
	//
	return nil
}

func (p *Routine) routineFollow(relation string) ([]Node, bool) {
	switch relation {
	case ParametersRelation:
		return nodesOf(p.Parameters), true
	case RequireRelation:
		return nodesOf(p.Require), true
	case EnsureRelation:
		return nodesOf(p.Ensure), true
	case BodyRelation:
		if p.Body == nil {
			return nil, true
		}
		//
		return []Node{p.Body}, true
	case LocalsRelation:
		if p.Body == nil {
			return nil, true
		}
		//
		return nodesOf(p.Body.Locals), true
	}
	//
	return nil, false
}

// FunctionFeature is a routine returning a value.
type FunctionFeature struct {
	FeatureHeader
	Routine
}

// NewFunctionFeature constructs a new (unresolved) function.  The body may be
// nil.
func NewFunctionFeature(name string, parameters []*Entity, result string, require []*Assertion,
	ensure []*Assertion, body *Body) *FunctionFeature {
	return &FunctionFeature{newFeatureHeader(name, result, false), newRoutine(parameters, require, ensure, body)}
}

// Kind implementation for Node interface.
func (p *FunctionFeature) Kind() Kind {
	return FunctionFeatureKind
}

// Children implementation for Node interface.
func (p *FunctionFeature) Children() []Node {
	return p.routineChildren()
}

// Slot implementation for Node interface.
func (p *FunctionFeature) Slot(name string) slot.Slot {
	if s := p.routineSlot(name); s != nil {
		return s
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *FunctionFeature) Follow(relation string) ([]Node, error) {
	if nodes, ok := p.routineFollow(relation); ok {
		return nodes, nil
	}
	//
	return p.follow(p, relation)
}

// ProcedureFeature is a routine which returns no value.
type ProcedureFeature struct {
	FeatureHeader
	Routine
}

// NewProcedureFeature constructs a new (unresolved) procedure.  The body may
// be nil.
func NewProcedureFeature(name string, parameters []*Entity, require []*Assertion, ensure []*Assertion,
	body *Body) *ProcedureFeature {
	return &ProcedureFeature{newFeatureHeader(name, "", false), newRoutine(parameters, require, ensure, body)}
}

// Kind implementation for Node interface.
func (p *ProcedureFeature) Kind() Kind {
	return ProcedureFeatureKind
}

// Children implementation for Node interface.
func (p *ProcedureFeature) Children() []Node {
	return p.routineChildren()
}

// Slot implementation for Node interface.
func (p *ProcedureFeature) Slot(name string) slot.Slot {
	if s := p.routineSlot(name); s != nil {
		return s
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *ProcedureFeature) Follow(relation string) ([]Node, error) {
	if nodes, ok := p.routineFollow(relation); ok {
		return nodes, nil
	}
	//
	return p.follow(p, relation)
}

// RoutineOf returns the routine state of a feature, or nil if the feature is
// not a function or procedure.
func RoutineOf(f Feature) *Routine {
	switch f := f.(type) {
	case *FunctionFeature:
		return &f.Routine
	case *ProcedureFeature:
		return &f.Routine
	}
	//
	return nil
}
