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
	"errors"
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// ErrUnknownRelation is returned when following a relation which a node does
// not have.  This always indicates a bug in the rule catalog.
var ErrUnknownRelation = fmt.Errorf("%w: unknown relation", slot.ErrStructural)

// Node is the common interface of every AST element.  Each node has a kind
// (its tag in the closed variant of node types), a set of named semantic
// slots and a set of named relations to other nodes.
type Node interface {
	// ID returns the pre-order index of this node, as assigned by Index().
	ID() uint
	// Kind returns the tag of this node.
	Kind() Kind
	// Parent returns the enclosing node, or nil for the root.
	Parent() Node
	// Children returns the immediate children of this node in source order.
	Children() []Node
	// Slot returns the semantic slot with the given name, or nil if no such
	// slot exists on this node.
	Slot(name string) slot.Slot
	// Follow returns the nodes reached via the given named relation.
	// Relations backed by a slot return an error wrapping slot.ErrUnassigned
	// when that slot has not been assigned yet.
	Follow(relation string) ([]Node, error)
	// Set the identifier and parent of this node.
	setHeader(id uint, parent Node)
}

// Names of the relations which walk up the tree, rather than down.  These are
// available on every node.
const (
	// EnclosingProgram leads to the root of the tree.
	EnclosingProgram = "@program"
	// EnclosingClass leads to the nearest enclosing class (if any).
	EnclosingClass = "@class"
	// EnclosingFeature leads to the nearest enclosing feature (if any).
	EnclosingFeature = "@feature"
	// EnclosingRoutine leads to the nearest enclosing function or procedure
	// (if any).
	EnclosingRoutine = "@routine"
	// NamedClass leads to the class of the program whose name matches the type
	// named by a node (if any).  Nothing is reached until the program's class
	// table is sealed, so paths along it should also require that table.
	NamedClass = "@named"
)

// header provides the state common to all nodes.
type header struct {
	id     uint
	parent Node
}

func (p *header) ID() uint {
	return p.id
}

func (p *header) Parent() Node {
	return p.parent
}

func (p *header) setHeader(id uint, parent Node) {
	p.id = id
	p.parent = parent
}

// Index assigns identifiers (in pre-order) and parent links to all nodes in
// the tree, returning them in pre-order.  This must be called before any
// rules are applied to the tree.
func Index(root Node) []Node {
	var nodes []Node
	//
	index(root, nil, &nodes)
	//
	return nodes
}

func index(node Node, parent Node, nodes *[]Node) {
	node.setHeader(uint(len(*nodes)), parent)
	*nodes = append(*nodes, node)
	//
	for _, child := range node.Children() {
		index(child, node, nodes)
	}
}

// Walk visits every node in the tree in pre-order.  The visitor returns false
// to stop descending into a given node's children.
func Walk(root Node, visitor func(Node) bool) {
	if visitor(root) {
		for _, child := range root.Children() {
			Walk(child, visitor)
		}
	}
}

// Follow returns the nodes reached from a given node via a named relation.
// This extends the node's own relations with those walking up the tree.
func Follow(node Node, relation string) ([]Node, error) {
	var target Node
	//
	switch relation {
	case EnclosingProgram:
		target = enclosing(node, func(k Kind) bool { return k == ProgramKind })
	case EnclosingClass:
		target = enclosing(node, func(k Kind) bool { return k == ClassKind })
	case EnclosingFeature:
		target = enclosing(node, Kind.IsFeature)
	case EnclosingRoutine:
		target = enclosing(node, Kind.IsRoutine)
	case NamedClass:
		target = namedClass(node)
	default:
		return node.Follow(relation)
	}
	//
	if target == nil {
		return nil, nil
	}
	//
	return []Node{target}, nil
}

// EnclosingClassOf returns the nearest class enclosing a given node (or nil).
func EnclosingClassOf(node Node) *Class {
	if c, ok := enclosing(node, func(k Kind) bool { return k == ClassKind }).(*Class); ok {
		return c
	}
	//
	return nil
}

// EnclosingFeatureOf returns the nearest feature enclosing a given node (or
// nil).
func EnclosingFeatureOf(node Node) Feature {
	if f, ok := enclosing(node, Kind.IsFeature).(Feature); ok {
		return f
	}
	//
	return nil
}

// Find the nearest strict ancestor whose kind matches.
func enclosing(node Node, matches func(Kind) bool) Node {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if matches(n.Kind()) {
			return n
		}
	}
	//
	return nil
}

// TypeNameOf returns the type name written on a node, or "" for nodes which
// name no type.
func TypeNameOf(node Node) string {
	switch n := node.(type) {
	case Feature:
		return n.Header().TypeName
	case *Entity:
		return n.TypeName
	case *ThrowInstruction:
		return n.ExceptionName
	}
	//
	return ""
}

func namedClass(node Node) Node {
	name := TypeNameOf(node)
	program, ok := enclosing(node, func(k Kind) bool { return k == ProgramKind }).(*Program)
	//
	if name == "" || !ok || !program.ClassTable.IsSealed() {
		return nil
	} else if class, ok := program.ClassTable.Get(name); ok {
		return class
	}
	//
	return nil
}

func unknownRelation(node Node, relation string) error {
	return fmt.Errorf("%w %q on %s", ErrUnknownRelation, relation, node.Kind())
}

// IsUnassigned determines whether an error returned from Follow() indicates a
// slot-backed relation which is not assigned yet.
func IsUnassigned(err error) bool {
	return errors.Is(err, slot.ErrUnassigned)
}

// Convert an array of specific nodes into an array of nodes.
func nodesOf[T Node](items []T) []Node {
	nodes := make([]Node, len(items))
	//
	for i, item := range items {
		nodes[i] = item
	}
	//
	return nodes
}

// Follow a relation backed by a write-once slot.
func followOnce[T Node](s *slot.Once[T]) ([]Node, error) {
	v, err := s.Get()
	if err != nil {
		return nil, err
	}
	//
	return []Node{v}, nil
}

// Follow a relation backed by a conditional slot.  Absent slots lead nowhere.
func followOptional[T Node](s *slot.Optional[T]) ([]Node, error) {
	v, err := s.Get()
	if err != nil {
		return nil, err
	} else if v.IsEmpty() {
		return nil, nil
	}
	//
	return []Node{v.Unwrap()}, nil
}
