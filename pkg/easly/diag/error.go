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
package diag

import (
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
)

// Kind enumerates the different kinds of error which can be reported.
type Kind uint8

const (
	// UnknownIdentifier arises when a name cannot be bound to anything.
	UnknownIdentifier Kind = iota
	// DuplicateName arises when a name (or tag) is declared twice in the same
	// scope.
	DuplicateName
	// TypeMismatch arises when a value of one type is used where another is
	// expected.
	TypeMismatch
	// MissingLanguageType arises when a language-defined type required by a
	// rule is not available.
	MissingLanguageType
	// InvalidExpression arises for expressions which are well-typed, but
	// otherwise meaningless (e.g. constant division by zero).
	InvalidExpression
	// InvalidInstruction arises for instructions which are well-typed, but
	// otherwise meaningless (e.g. assigning a constant).
	InvalidInstruction
	// UnresolvedDependency arises for rules which could never be applied,
	// because resolution stalled.
	UnresolvedDependency
)

func (k Kind) String() string {
	switch k {
	case UnknownIdentifier:
		return "unknown identifier"
	case DuplicateName:
		return "duplicate name"
	case TypeMismatch:
		return "type mismatch"
	case MissingLanguageType:
		return "missing language type"
	case InvalidExpression:
		return "invalid expression"
	case InvalidInstruction:
		return "invalid instruction"
	case UnresolvedDependency:
		return "unresolved dependency"
	}
	//
	return "unknown error"
}

// Cause explains why a dependency could not be resolved.
type Cause uint8

const (
	// NoCause applies to all errors except unresolved dependencies.
	NoCause Cause = iota
	// Blocked indicates the dependency transitively relies on a rule which
	// failed.
	Blocked
	// Cycle indicates the dependency is part of (or relies on) a cycle in which
	// no rule failed.
	Cycle
	// NoWriter indicates the dependency relies on a slot which no rule writes.
	NoWriter
	// Exhausted indicates the dependency was still progressing when the pass
	// ceiling was reached.
	Exhausted
)

func (c Cause) String() string {
	switch c {
	case NoCause:
		return ""
	case Blocked:
		return "blocked by upstream failure"
	case Cycle:
		return "cyclic dependency"
	case NoWriter:
		return "no rule assigns dependency"
	case Exhausted:
		return "pass limit reached"
	}
	//
	return "unknown cause"
}

// Origin identifies the application of a given rule to a given node.
type Origin struct {
	// Node to which the rule applies.
	Node ast.Node
	// Name of the rule.
	Rule string
}

func (o Origin) String() string {
	return fmt.Sprintf("%s@%s#%d", o.Rule, o.Node.Kind(), o.Node.ID())
}

// Error is an immutable record of a problem found during resolution.
type Error struct {
	// Kind of error.
	Kind Kind
	// Node on which the error is reported.
	Node ast.Node
	// Name of the rule which reported this error.
	Rule string
	// Context specific to the kind of error (e.g. the name which is
	// duplicated).
	Context string
	// Cause of an unresolved dependency.
	Cause Cause
	// Root is the failed (or cyclic) rule application responsible for an
	// unresolved dependency, where this is known.
	Root util.Option[Origin]
	// Exhausted marks an unresolved dependency reported because the pass
	// ceiling was reached.
	Exhausted bool
}

// New constructs an error of a given kind on a given node.  The rule is filled
// in by the engine when the error is recorded.
func New(kind Kind, node ast.Node, format string, args ...any) Error {
	return Error{Kind: kind, Node: node, Context: fmt.Sprintf(format, args...)}
}

// Errors is a shorthand for constructing an array holding a single error.
func Errors(kind Kind, node ast.Node, format string, args ...any) []Error {
	return []Error{New(kind, node, format, args...)}
}

// Unresolved constructs an unresolved dependency error.
func Unresolved(node ast.Node, rule string, cause Cause, root util.Option[Origin]) Error {
	return Error{Kind: UnresolvedDependency, Node: node, Rule: rule, Cause: cause, Root: root}
}

// Message returns a human-readable description of this error, without any
// location information.
func (e Error) Message() string {
	if e.Kind != UnresolvedDependency {
		return fmt.Sprintf("%s (%s)", e.Kind, e.Context)
	}
	//
	msg := fmt.Sprintf("%s in %s, %s", e.Kind, e.Rule, e.Cause)
	//
	if e.Root.HasValue() {
		msg = fmt.Sprintf("%s (%s)", msg, e.Root.Unwrap())
	}
	//
	if e.Exhausted && e.Cause != Exhausted {
		msg = fmt.Sprintf("%s, %s", msg, Exhausted)
	}
	//
	return msg
}

func (e Error) Error() string {
	return fmt.Sprintf("%s#%d: %s", e.Node.Kind(), e.Node.ID(), e.Message())
}

// SyntaxError converts this error into a syntax error, provided the node on
// which it is reported has a known source location.
func (e Error) SyntaxError(srcmap *source.Maps[ast.Node]) (*source.SyntaxError, bool) {
	if srcmap == nil || !srcmap.Has(e.Node) {
		return nil, false
	}
	//
	return srcmap.SyntaxError(e.Node, e.Message()), true
}

type key struct {
	node uint
	rule string
	kind Kind
}

func (e Error) key() key {
	return key{e.Node.ID(), e.Rule, e.Kind}
}
