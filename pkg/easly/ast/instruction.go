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

// Instruction is a statement within a routine body.
type Instruction interface {
	Node
	// Instruction returns the state common to all instructions.
	Instruction() *InstructionHeader
}

// InstructionHeader captures the state common to all instructions.
type InstructionHeader struct {
	header
	// Exceptions which may be raised by executing this instruction.
	Exceptions slot.List[string]
}

func newInstructionHeader() InstructionHeader {
	return InstructionHeader{Exceptions: slot.NewList[string](ExceptionsSlot)}
}

// Instruction implementation for Instruction interface.
func (p *InstructionHeader) Instruction() *InstructionHeader {
	return p
}

func (p *InstructionHeader) slot(name string) slot.Slot {
	if name == ExceptionsSlot {
		return &p.Exceptions
	}
	//
	return nil
}

// AssignmentInstruction assigns the value of an expression to an attribute,
// local, parameter or the result of the enclosing function.
type AssignmentInstruction struct {
	InstructionHeader
	// Name of the entity being assigned.
	Target string
	// Expression being assigned.
	Source Expression
	// Destination is the definition being assigned.
	Destination slot.Once[Definition]
}

// NewAssignmentInstruction constructs a new (unresolved) assignment.
func NewAssignmentInstruction(target string, source Expression) *AssignmentInstruction {
	return &AssignmentInstruction{newInstructionHeader(), target, source,
		slot.NewOnce[Definition](DestinationSlot)}
}

// Kind implementation for Node interface.
func (p *AssignmentInstruction) Kind() Kind {
	return AssignmentInstructionKind
}

// Children implementation for Node interface.
func (p *AssignmentInstruction) Children() []Node {
	return []Node{p.Source}
}

// Slot implementation for Node interface.
func (p *AssignmentInstruction) Slot(name string) slot.Slot {
	if name == DestinationSlot {
		return &p.Destination
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *AssignmentInstruction) Follow(relation string) ([]Node, error) {
	switch relation {
	case SourceRelation:
		return []Node{p.Source}, nil
	case DestinationSlot:
		return followOnce(&p.Destination)
	}
	//
	return nil, unknownRelation(p, relation)
}

// ConditionalInstruction executes one of two instruction blocks, depending on
// a boolean condition.  The else block is optional.
type ConditionalInstruction struct {
	InstructionHeader
	// Condition determining which branch is executed.
	Condition Expression
	// Instructions executed when the condition holds.
	Then []Instruction
	// Instructions executed otherwise.
	Else []Instruction
	// HasElse indicates whether an else clause was given.
	HasElse bool
	// ElseExceptions is present only when an else clause was given.
	ElseExceptions slot.Optional[[]string]
}

// NewConditionalInstruction constructs a new (unresolved) conditional.  Passing
// a nil else block indicates there is no else clause.
func NewConditionalInstruction(condition Expression, then []Instruction,
	otherwise []Instruction) *ConditionalInstruction {
	return &ConditionalInstruction{
		InstructionHeader: newInstructionHeader(),
		Condition:         condition,
		Then:              then,
		Else:              otherwise,
		HasElse:           otherwise != nil,
		ElseExceptions:    slot.NewOptional[[]string](ElseExceptionsSlot, otherwise != nil),
	}
}

// Kind implementation for Node interface.
func (p *ConditionalInstruction) Kind() Kind {
	return ConditionalInstructionKind
}

// Children implementation for Node interface.
func (p *ConditionalInstruction) Children() []Node {
	nodes := []Node{p.Condition}
	nodes = append(nodes, nodesOf(p.Then)...)
	//
	return append(nodes, nodesOf(p.Else)...)
}

// Slot implementation for Node interface.
func (p *ConditionalInstruction) Slot(name string) slot.Slot {
	if name == ElseExceptionsSlot {
		return &p.ElseExceptions
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *ConditionalInstruction) Follow(relation string) ([]Node, error) {
	switch relation {
	case ConditionRelation:
		return []Node{p.Condition}, nil
	case ThenRelation:
		return nodesOf(p.Then), nil
	case ElseRelation:
		return nodesOf(p.Else), nil
	}
	//
	return nil, unknownRelation(p, relation)
}

// ThrowInstruction raises an exception of a given class.
type ThrowInstruction struct {
	InstructionHeader
	// Name of the exception class.
	ExceptionName string
	// ExceptionType is the type of the exception raised.
	ExceptionType slot.Once[*Type]
}

// NewThrowInstruction constructs a new (unresolved) throw instruction.
func NewThrowInstruction(exception string) *ThrowInstruction {
	return &ThrowInstruction{newInstructionHeader(), exception, slot.NewOnce[*Type](ExceptionTypeSlot)}
}

// Kind implementation for Node interface.
func (p *ThrowInstruction) Kind() Kind {
	return ThrowInstructionKind
}

// Children implementation for Node interface.
func (p *ThrowInstruction) Children() []Node {
	return nil
}

// Slot implementation for Node interface.
func (p *ThrowInstruction) Slot(name string) slot.Slot {
	if name == ExceptionTypeSlot {
		return &p.ExceptionType
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *ThrowInstruction) Follow(relation string) ([]Node, error) {
	return nil, unknownRelation(p, relation)
}

// CommandInstruction invokes a procedure of the enclosing class.
type CommandInstruction struct {
	InstructionHeader
	// Name of the procedure being invoked.
	Target string
	// Arguments passed.
	Arguments []Expression
	// Feature is the procedure invoked.
	Feature slot.Once[Definition]
}

// NewCommandInstruction constructs a new (unresolved) command.
func NewCommandInstruction(target string, arguments ...Expression) *CommandInstruction {
	return &CommandInstruction{newInstructionHeader(), target, arguments, slot.NewOnce[Definition](FeatureSlot)}
}

// Kind implementation for Node interface.
func (p *CommandInstruction) Kind() Kind {
	return CommandInstructionKind
}

// Children implementation for Node interface.
func (p *CommandInstruction) Children() []Node {
	return nodesOf(p.Arguments)
}

// Slot implementation for Node interface.
func (p *CommandInstruction) Slot(name string) slot.Slot {
	if name == FeatureSlot {
		return &p.Feature
	}
	//
	return p.slot(name)
}

// Follow implementation for Node interface.
func (p *CommandInstruction) Follow(relation string) ([]Node, error) {
	switch relation {
	case ArgumentsRelation:
		return nodesOf(p.Arguments), nil
	case FeatureSlot:
		return followOnce(&p.Feature)
	}
	//
	return nil, unknownRelation(p, relation)
}
