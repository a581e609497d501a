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

// ResultName is the name under which the result of a function is accessed.
const ResultName = "Result"

// ============================================================================
// Program
// ============================================================================

// Program is the root of the tree, and holds all classes.
type Program struct {
	header
	// Classes declared in the program.
	Classes []*Class
	// ClassTable maps class names to classes.
	ClassTable slot.Table[string, *Class]
}

// NewProgram constructs a new (unresolved) program.
func NewProgram(classes ...*Class) *Program {
	return &Program{
		Classes:    classes,
		ClassTable: slot.NewTable[string, *Class](ClassTableSlot),
	}
}

// Kind implementation for Node interface.
func (p *Program) Kind() Kind {
	return ProgramKind
}

// Children implementation for Node interface.
func (p *Program) Children() []Node {
	return nodesOf(p.Classes)
}

// Slot implementation for Node interface.
func (p *Program) Slot(name string) slot.Slot {
	if name == ClassTableSlot {
		return &p.ClassTable
	}
	//
	return nil
}

// Follow implementation for Node interface.
func (p *Program) Follow(relation string) ([]Node, error) {
	if relation == ClassesRelation {
		return nodesOf(p.Classes), nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// ============================================================================
// Class
// ============================================================================

// Class is a named collection of features, optionally inheriting from another
// class.
type Class struct {
	header
	// Name of this class.
	Name string
	// Inheritance clause, or nil if this class has no parent.
	Inheritance *Inheritance
	// Features declared in this class.
	Features []Feature
	// Invariant assertions of this class.
	Invariants []*Assertion
	// Super is the inherited class, present only with an inheritance clause.
	Super slot.Optional[*Class]
	// FeatureTable maps names to features, including inherited ones.
	FeatureTable slot.Table[string, Feature]
	// ClassType is the type defined by this class.
	ClassType slot.Once[*Type]
	// Invariant is the list of checked invariants.
	Invariant slot.List[*Contract]
}

// NewClass constructs a new (unresolved) class.  The inheritance clause is
// optional.
func NewClass(name string, inheritance *Inheritance, features []Feature, invariants []*Assertion) *Class {
	return &Class{
		Name:         name,
		Inheritance:  inheritance,
		Features:     features,
		Invariants:   invariants,
		Super:        slot.NewOptional[*Class](ParentSlot, inheritance != nil),
		FeatureTable: slot.NewTable[string, Feature](FeatureTableSlot),
		ClassType:    slot.NewOnce[*Type](ClassTypeSlot),
		Invariant:    slot.NewList[*Contract](InvariantSlot),
	}
}

// Kind implementation for Node interface.
func (p *Class) Kind() Kind {
	return ClassKind
}

// Children implementation for Node interface.
func (p *Class) Children() []Node {
	var nodes []Node
	//
	if p.Inheritance != nil {
		nodes = append(nodes, p.Inheritance)
	}
	//
	nodes = append(nodes, nodesOf(p.Features)...)
	//
	return append(nodes, nodesOf(p.Invariants)...)
}

// Slot implementation for Node interface.
func (p *Class) Slot(name string) slot.Slot {
	switch name {
	case ParentSlot:
		return &p.Super
	case FeatureTableSlot:
		return &p.FeatureTable
	case ClassTypeSlot:
		return &p.ClassType
	case InvariantSlot:
		return &p.Invariant
	}
	//
	return nil
}

// Follow implementation for Node interface.
func (p *Class) Follow(relation string) ([]Node, error) {
	switch relation {
	case InheritanceRelation:
		if p.Inheritance == nil {
			return nil, nil
		}
		//
		return []Node{p.Inheritance}, nil
	case FeaturesRelation:
		return nodesOf(p.Features), nil
	case InvariantsRelation:
		return nodesOf(p.Invariants), nil
	case ParentSlot:
		return followOptional(&p.Super)
	}
	//
	return nil, unknownRelation(p, relation)
}

// Inheritance is the clause by which a class names its parent.
type Inheritance struct {
	header
	// Name of the parent class.
	ParentName string
	// ParentClass is the class named.
	ParentClass slot.Once[*Class]
}

// NewInheritance constructs a new (unresolved) inheritance clause.
func NewInheritance(parent string) *Inheritance {
	return &Inheritance{ParentName: parent, ParentClass: slot.NewOnce[*Class](ParentClassSlot)}
}

// Kind implementation for Node interface.
func (p *Inheritance) Kind() Kind {
	return InheritanceKind
}

// Children implementation for Node interface.
func (p *Inheritance) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *Inheritance) Slot(name string) slot.Slot {
	if name == ParentClassSlot {
		return &p.ParentClass
	}
	//
	return nil
}

// Follow implementation for Node interface.
func (p *Inheritance) Follow(relation string) ([]Node, error) {
	if relation == ParentClassSlot {
		return followOnce(&p.ParentClass)
	}
	//
	return nil, unknownRelation(p, relation)
}

// ============================================================================
// Definitions
// ============================================================================

// Definition is anything a name can resolve to, namely features and entities
// (i.e. parameters and locals).
type Definition interface {
	Node
	// Name of this definition.
	Name() string
	// Definition returns the slots common to all definitions.
	Definition() *DefinitionSlots
}

// DefinitionSlots holds the slots which any definition provides.
type DefinitionSlots struct {
	// Signature of this definition.
	Signature slot.Once[*Signature]
	// ConstantValue is present only for constant features.
	ConstantValue slot.Optional[Value]
}

func newDefinitionSlots(constant bool) DefinitionSlots {
	return DefinitionSlots{
		Signature:     slot.NewOnce[*Signature](SignatureSlot),
		ConstantValue: slot.NewOptional[Value](ConstantValueSlot, constant),
	}
}

// Definition implementation for Definition interface.
func (p *DefinitionSlots) Definition() *DefinitionSlots {
	return p
}

func (p *DefinitionSlots) slot(name string) slot.Slot {
	switch name {
	case SignatureSlot:
		return &p.Signature
	case ConstantValueSlot:
		return &p.ConstantValue
	}
	//
	return nil
}

// Entity is a parameter or local variable of a routine.
type Entity struct {
	header
	DefinitionSlots
	// Name of this entity.
	EntityName string
	// Name of this entity's type.
	TypeName string
}

// NewEntity constructs a new (unresolved) entity.
func NewEntity(name string, typename string) *Entity {
	return &Entity{EntityName: name, TypeName: typename, DefinitionSlots: newDefinitionSlots(false)}
}

// Name implementation for Definition interface.
func (p *Entity) Name() string {
	return p.EntityName
}

// Kind implementation for Node interface.
func (p *Entity) Kind() Kind {
	return EntityKind
}

// Children implementation for Node interface.
func (p *Entity) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *Entity) Slot(name string) slot.Slot {
	return p.DefinitionSlots.slot(name)
}

// Follow implementation for Node interface.
func (p *Entity) Follow(relation string) ([]Node, error) {
	return nil, unknownRelation(p, relation)
}

// ============================================================================
// Body & Assertions
// ============================================================================

// Body is the effective body of a routine.
type Body struct {
	header
	// Local variables.
	Locals []*Entity
	// Instructions executed in order.
	Instructions []Instruction
	// Exceptions which may be raised by this body.
	Exceptions slot.List[string]
}

// NewBody constructs a new (unresolved) body.
func NewBody(locals []*Entity, instructions []Instruction) *Body {
	return &Body{Locals: locals, Instructions: instructions, Exceptions: slot.NewList[string](ExceptionsSlot)}
}

// Kind implementation for Node interface.
func (p *Body) Kind() Kind {
	return BodyKind
}

// Children implementation for Node interface.
func (p *Body) Children() []Node {
	return append(nodesOf(p.Locals), nodesOf(p.Instructions)...)
}

// Slot implementation for Node interface.
func (p *Body) Slot(name string) slot.Slot {
	if name == ExceptionsSlot {
		return &p.Exceptions
	}
	//
	return nil
}

// Follow implementation for Node interface.
func (p *Body) Follow(relation string) ([]Node, error) {
	switch relation {
	case LocalsRelation:
		return nodesOf(p.Locals), nil
	case InstructionsRelation:
		return nodesOf(p.Instructions), nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// Assertion is a (possibly tagged) boolean expression used in contracts and
// invariants.
type Assertion struct {
	header
	// Tag of this assertion (may be empty).
	Tag string
	// Boolean expression asserted.
	Expr Expression
	// Checked is the contract which results from this assertion.
	Checked slot.Once[*Contract]
}

// NewAssertion constructs a new (unresolved) assertion.
func NewAssertion(tag string, expr Expression) *Assertion {
	return &Assertion{Tag: tag, Expr: expr, Checked: slot.NewOnce[*Contract](CheckedSlot)}
}

// Kind implementation for Node interface.
func (p *Assertion) Kind() Kind {
	return AssertionKind
}

// Children implementation for Node interface.
func (p *Assertion) Children() []Node {
	return []Node{p.Expr}
}

// Slot implementation for Node interface.
func (p *Assertion) Slot(name string) slot.Slot {
	if name == CheckedSlot {
		return &p.Checked
	}
	//
	return nil
}

// Follow implementation for Node interface.
func (p *Assertion) Follow(relation string) ([]Node, error) {
	if relation == ExpressionRelation {
		return []Node{p.Expr}, nil
	}
	//
	return nil, unknownRelation(p, relation)
}
