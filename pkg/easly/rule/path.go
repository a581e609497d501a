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
	"strings"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
)

// Requirement determines what state a source slot must be in before a rule
// reading it can proceed.
type Requirement uint8

const (
	// MustBeAssigned requires a write-once slot to be assigned.
	MustBeAssigned Requirement = iota
	// MustBeSealed requires a collection slot to be sealed.
	MustBeSealed
	// MayBeAbsent requires a conditional slot to be either assigned, or
	// absent.
	MayBeAbsent
)

// Discipline returns the slot discipline which this requirement applies to.
func (r Requirement) Discipline() slot.Discipline {
	switch r {
	case MustBeAssigned:
		return slot.WriteOnce
	case MustBeSealed:
		return slot.Sealed
	default:
		return slot.Conditional
	}
}

func (r Requirement) String() string {
	switch r {
	case MustBeAssigned:
		return "assigned"
	case MustBeSealed:
		return "sealed"
	default:
		return "maybe"
	}
}

// Path identifies a source slot relative to the node a rule is bound to.  A
// path follows zero or more named relations in order, and then reads the named
// slot on every node reached.  Since relations can lead to any number of nodes
// (e.g. all arguments of a call), a path can identify any number of slots.
type Path struct {
	// Relations followed, in order.
	Steps []string
	// Slot read at the end of the path.
	Slot string
	// Requirement on that slot.
	Requirement Requirement
}

// Assigned constructs a path to a write-once slot.  The final element names
// the slot, and all others name relations.
func Assigned(elements ...string) Path {
	return newPath(MustBeAssigned, elements)
}

// Sealed constructs a path to a collection slot.  The final element names the
// slot, and all others name relations.
func Sealed(elements ...string) Path {
	return newPath(MustBeSealed, elements)
}

// Maybe constructs a path to a conditional slot.  The final element names the
// slot, and all others name relations.
func Maybe(elements ...string) Path {
	return newPath(MayBeAbsent, elements)
}

func newPath(requirement Requirement, elements []string) Path {
	if len(elements) == 0 {
		panic("empty path")
	}
	//
	n := len(elements) - 1
	//
	return Path{elements[:n], elements[n], requirement}
}

func (p Path) String() string {
	var builder strings.Builder
	//
	for _, step := range p.Steps {
		builder.WriteString(step)
		builder.WriteString(".")
	}
	//
	builder.WriteString(p.Slot)
	//
	return fmt.Sprintf("%s(%s)", builder.String(), p.Requirement)
}

// Blocker identifies a slot which is not ready yet, and which prevents a rule
// from being applied.
type Blocker struct {
	// Node owning the slot.
	Node ast.Node
	// Name of the slot.
	Slot string
}

// Ready evaluates a path from a given node, returning every slot along it
// which is not yet ready.  A path is ready when no blockers are returned.  A
// slot-backed relation which is not yet assigned blocks, and the remainder of
// the path cannot be explored beyond it.  An error is returned only for
// structural violations, such as a path naming a slot which does not exist
// or which has a different discipline.
func Ready(node ast.Node, path Path) ([]Blocker, error) {
	var (
		frontier = []ast.Node{node}
		blockers []Blocker
	)
	//
	for _, step := range path.Steps {
		var next []ast.Node
		//
		for _, n := range frontier {
			targets, err := ast.Follow(n, step)
			//
			if ast.IsUnassigned(err) {
				blockers = append(blockers, Blocker{n, step})
			} else if err != nil {
				return nil, err
			}
			//
			next = append(next, targets...)
		}
		//
		frontier = next
	}
	//
	for _, n := range frontier {
		s := n.Slot(path.Slot)
		//
		if s == nil {
			return nil, fmt.Errorf("%w: no slot %q on %s", slot.ErrStructural, path.Slot, n.Kind())
		} else if s.Discipline() != path.Requirement.Discipline() {
			return nil, fmt.Errorf("%w: slot %q on %s is %s, not %s", slot.ErrStructural, path.Slot, n.Kind(),
				s.Discipline(), path.Requirement.Discipline())
		} else if !s.IsReady() {
			blockers = append(blockers, Blocker{n, path.Slot})
		}
	}
	//
	return blockers, nil
}
