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

// Table is a sealed collection of key/value pairs.  Keys are unique and
// retained in insertion order, so that iterating a table is deterministic.
type Table[K comparable, V any] struct {
	name    string
	keys    []K
	entries map[K]V
	sealed  bool
}

// NewTable constructs an empty (open) table with the given name.
func NewTable[K comparable, V any](name string) Table[K, V] {
	return Table[K, V]{name: name, entries: make(map[K]V)}
}

// Name implementation for the Slot interface.
func (p *Table[K, V]) Name() string {
	return p.name
}

// Discipline implementation for the Slot interface.
func (p *Table[K, V]) Discipline() Discipline {
	return Sealed
}

// IsReady implementation for the Slot interface.
func (p *Table[K, V]) IsReady() bool {
	return p.sealed
}

// IsSealed determines whether this table has been sealed.
func (p *Table[K, V]) IsSealed() bool {
	return p.sealed
}

// Len returns the number of entries in this table.
func (p *Table[K, V]) Len() int {
	return len(p.keys)
}

// Keys returns the keys of this table, in insertion order.  The returned slice
// must not be modified.
func (p *Table[K, V]) Keys() []K {
	return p.keys
}

// Has determines whether a given key is present.
func (p *Table[K, V]) Has(key K) bool {
	_, ok := p.entries[key]
	return ok
}

// Get returns the value associated with a given key (if any).
func (p *Table[K, V]) Get(key K) (V, bool) {
	v, ok := p.entries[key]
	return v, ok
}

// Put inserts a new entry, failing if the table is sealed or the key already
// exists.
func (p *Table[K, V]) Put(key K, value V) error {
	if p.sealed {
		return fail(p.name, ErrSealed)
	} else if _, ok := p.entries[key]; ok {
		return fail(p.name, ErrDuplicateKey)
	}
	// Lazily initialise so that the zero table is usable.
	if p.entries == nil {
		p.entries = make(map[K]V)
	}
	//
	p.keys = append(p.keys, key)
	p.entries[key] = value
	//
	return nil
}

// Seal this table, failing if it was already sealed.
func (p *Table[K, V]) Seal() error {
	if p.sealed {
		return fail(p.name, ErrSealed)
	}
	//
	p.sealed = true
	//
	return nil
}
