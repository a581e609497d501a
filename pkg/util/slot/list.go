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

// List is a sealed collection.  Items can be appended until the list is
// sealed, after which it is immutable.  Items can be read at any time, but
// they are only meaningful once the list is sealed.
type List[T any] struct {
	name   string
	items  []T
	sealed bool
}

// NewList constructs an empty (open) list with the given name.
func NewList[T any](name string) List[T] {
	return List[T]{name: name}
}

// Name implementation for the Slot interface.
func (p *List[T]) Name() string {
	return p.name
}

// Discipline implementation for the Slot interface.
func (p *List[T]) Discipline() Discipline {
	return Sealed
}

// IsReady implementation for the Slot interface.
func (p *List[T]) IsReady() bool {
	return p.sealed
}

// IsSealed determines whether this list has been sealed.
func (p *List[T]) IsSealed() bool {
	return p.sealed
}

// Len returns the number of items in this list.
func (p *List[T]) Len() int {
	return len(p.items)
}

// Items returns the items of this list.  The returned slice must not be
// modified.
func (p *List[T]) Items() []T {
	return p.items
}

// Append one or more items to this list, failing if it is sealed.
func (p *List[T]) Append(items ...T) error {
	if p.sealed {
		return fail(p.name, ErrSealed)
	}
	//
	p.items = append(p.items, items...)
	//
	return nil
}

// Seal this list, failing if it was already sealed.
func (p *List[T]) Seal() error {
	if p.sealed {
		return fail(p.name, ErrSealed)
	}
	//
	p.sealed = true
	//
	return nil
}

// SealWith appends the given items and then seals the list.
func (p *List[T]) SealWith(items ...T) error {
	if err := p.Append(items...); err != nil {
		return err
	}
	//
	return p.Seal()
}
