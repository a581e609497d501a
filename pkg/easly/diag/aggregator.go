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
	"slices"
	"sync"
)

// Aggregator collects errors reported during resolution.  Errors are kept in
// the order they are recorded, and duplicates (i.e. those with the same node,
// rule and kind) are dropped.  The engine records errors in a deterministic
// order, hence snapshots are themselves deterministic.
type Aggregator struct {
	mux    sync.Mutex
	errors []Error
	seen   map[key]struct{}
}

// NewAggregator constructs an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{seen: make(map[key]struct{})}
}

// Record one or more errors, returning the number actually added (i.e. not
// duplicates).
func (p *Aggregator) Record(errs ...Error) uint {
	var count uint
	//
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	for _, err := range errs {
		k := err.key()
		//
		if _, ok := p.seen[k]; !ok {
			p.seen[k] = struct{}{}
			p.errors = append(p.errors, err)
			count++
		}
	}
	//
	return count
}

// IsEmpty determines whether any errors have been recorded.
func (p *Aggregator) IsEmpty() bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return len(p.errors) == 0
}

// Len returns the number of (distinct) errors recorded.
func (p *Aggregator) Len() int {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return len(p.errors)
}

// Snapshot returns a copy of the errors recorded so far, in recording order.
func (p *Aggregator) Snapshot() []Error {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return slices.Clone(p.errors)
}

// Filter returns those errors of a given kind.
func Filter(errors []Error, kind Kind) []Error {
	var matches []Error
	//
	for _, e := range errors {
		if e.Kind == kind {
			matches = append(matches, e)
		}
	}
	//
	return matches
}
