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
package slot

import (
	"errors"
	"fmt"
)

// Discipline identifies how a given slot may be assigned over its lifetime.
type Discipline uint8

const (
	// WriteOnce slots are unassigned until exactly one assignment is made.
	// Reading before assignment, or assigning twice, are both violations.
	WriteOnce Discipline = iota
	// Sealed slots are collections which can be extended until they are
	// sealed.  Their contents only make sense once sealed.
	Sealed
	// Conditional slots behave as write-once slots when their structural
	// precondition holds, and are otherwise permanently absent.
	Conditional
)

func (d Discipline) String() string {
	switch d {
	case WriteOnce:
		return "write-once"
	case Sealed:
		return "sealed"
	case Conditional:
		return "conditional"
	}
	//
	return "unknown"
}

// ErrStructural is the root of all slot errors.  Any such error escaping a rule
// indicates a bug in the rule catalog, rather than in the program being
// resolved.
var ErrStructural = errors.New("structural violation")

var (
	// ErrUnassigned is returned when reading a slot which has no value yet.
	ErrUnassigned = fmt.Errorf("%w: slot is unassigned", ErrStructural)
	// ErrAlreadyAssigned is returned when assigning a write-once slot twice.
	ErrAlreadyAssigned = fmt.Errorf("%w: slot is already assigned", ErrStructural)
	// ErrSealed is returned when mutating a sealed collection.
	ErrSealed = fmt.Errorf("%w: slot is sealed", ErrStructural)
	// ErrDuplicateKey is returned when a table key is inserted twice.
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrStructural)
	// ErrAbsent is returned when assigning a conditional slot whose
	// precondition does not hold.
	ErrAbsent = fmt.Errorf("%w: slot is absent", ErrStructural)
)

// Slot is implemented by every kind of semantic slot, and provides enough
// information for the scheduler to decide whether or not a slot can be read.
type Slot interface {
	// Name of this slot, as used in rule path expressions.
	Name() string
	// Discipline of this slot.
	Discipline() Discipline
	// IsReady determines whether this slot can be read.  That means assigned
	// for write-once slots, sealed for collections and either assigned or
	// absent for conditional slots.
	IsReady() bool
}

// Error records a slot operation which failed.  This is raised as a panic by
// accessors which do not return errors (e.g. Value()), and is recovered by the
// resolution engine.
type Error struct {
	// Slot on which the violation occurred.
	Slot string
	// Underlying cause
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("slot %s: %s", e.Slot, e.Err.Error())
}

// Unwrap provides access to the underlying sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

func fail(name string, err error) error {
	return &Error{name, err}
}
