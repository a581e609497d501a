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

// Once is a write-once reference.  It starts unset and can be assigned exactly
// once.
type Once[T any] struct {
	name  string
	set   bool
	value T
}

// NewOnce constructs an unassigned write-once slot with the given name.
func NewOnce[T any](name string) Once[T] {
	return Once[T]{name: name}
}

// Name implementation for the Slot interface.
func (p *Once[T]) Name() string {
	return p.name
}

// Discipline implementation for the Slot interface.
func (p *Once[T]) Discipline() Discipline {
	return WriteOnce
}

// IsReady implementation for the Slot interface.
func (p *Once[T]) IsReady() bool {
	return p.set
}

// Get returns the assigned value, or an error if this slot is unassigned.
func (p *Once[T]) Get() (T, error) {
	if !p.set {
		var empty T
		return empty, fail(p.name, ErrUnassigned)
	}
	//
	return p.value, nil
}

// Value returns the assigned value, or panics with a *slot.Error if this slot
// is unassigned.
func (p *Once[T]) Value() T {
	v, err := p.Get()
	if err != nil {
		panic(err)
	}
	//
	return v
}

// Set assigns this slot, failing if it was already assigned.
func (p *Once[T]) Set(value T) error {
	if p.set {
		return fail(p.name, ErrAlreadyAssigned)
	}
	//
	p.value = value
	p.set = true
	//
	return nil
}
