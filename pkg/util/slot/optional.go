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

import "github.com/dlebansais/Easly-Compiler-sub002/pkg/util"

// Optional is a conditionally-assigned reference.  Whether or not it will ever
// be assigned is fixed at construction by a structural precondition (e.g.
// whether an optional clause was written in the source).  An absent slot is
// ready from the outset, and can never be assigned.
type Optional[T any] struct {
	name    string
	present bool
	set     bool
	value   T
}

// NewOptional constructs a conditional slot whose precondition is given by
// present.
func NewOptional[T any](name string, present bool) Optional[T] {
	return Optional[T]{name: name, present: present}
}

// Name implementation for the Slot interface.
func (p *Optional[T]) Name() string {
	return p.name
}

// Discipline implementation for the Slot interface.
func (p *Optional[T]) Discipline() Discipline {
	return Conditional
}

// IsReady implementation for the Slot interface.
func (p *Optional[T]) IsReady() bool {
	return !p.present || p.set
}

// IsPresent indicates whether the structural precondition of this slot holds.
func (p *Optional[T]) IsPresent() bool {
	return p.present
}

// Get returns the value of this slot, which is empty when the slot is absent.
// An error is returned when the slot is present but not yet assigned.
func (p *Optional[T]) Get() (util.Option[T], error) {
	if !p.present {
		return util.None[T](), nil
	} else if !p.set {
		return util.None[T](), fail(p.name, ErrUnassigned)
	}
	//
	return util.Some(p.value), nil
}

// Value returns the value of this slot (if any), or panics with a *slot.Error
// if the slot is present but not yet assigned.
func (p *Optional[T]) Value() util.Option[T] {
	v, err := p.Get()
	if err != nil {
		panic(err)
	}
	//
	return v
}

// Set assigns this slot, failing if it is absent or already assigned.
func (p *Optional[T]) Set(value T) error {
	if !p.present {
		return fail(p.name, ErrAbsent)
	} else if p.set {
		return fail(p.name, ErrAlreadyAssigned)
	}
	//
	p.value = value
	p.set = true
	//
	return nil
}
