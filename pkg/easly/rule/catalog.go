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
	"errors"
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
)

var (
	// ErrMultipleWriters is reported when two rules bound to the same kind
	// write the same slot.
	ErrMultipleWriters = errors.New("multiple writers")
	// ErrDuplicateRule is reported when two rules bound to the same kind have
	// the same name.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrInvalidDestination is reported when a rule writes a slot which its
	// kind does not have.
	ErrInvalidDestination = errors.New("invalid destination")
	// ErrInvalidSource is reported when a rule reads a slot on its own node
	// which its kind does not have.
	ErrInvalidSource = errors.New("invalid source")
)

// Catalog is the registration table mapping each node kind to the ordered set
// of rules bound to it.  A catalog guarantees that, for any kind, every slot is
// written by at most one rule.
type Catalog struct {
	rules   []Rule
	kinds   [ast.NumberOfKinds][]Rule
	writers map[writer]Rule
}

type writer struct {
	kind ast.Kind
	slot string
}

// NewCatalog constructs a catalog from a given set of rules, whose order
// determines the order in which rules bound to the same kind are committed.
// This fails if the rules are inconsistent, for example if two rules write the
// same slot of the same kind.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	var (
		catalog = &Catalog{writers: make(map[writer]Rule)}
		names   = make(map[writer]bool)
		errs    []error
	)
	//
	for _, r := range rules {
		kind := r.Kind()
		// Rule names identify rules within a kind
		if key := (writer{kind, r.Name()}); names[key] {
			errs = append(errs, fmt.Errorf("%w: %s on %s", ErrDuplicateRule, r.Name(), kind))
		} else {
			names[key] = true
		}
		//
		for _, dst := range r.Destinations() {
			key := writer{kind, dst.Slot}
			//
			if !ast.HasSlot(kind, dst.Slot, dst.Discipline) {
				errs = append(errs, fmt.Errorf("%w: %s has no %s slot %q (rule %s)", ErrInvalidDestination, kind,
					dst.Discipline, dst.Slot, r.Name()))
			} else if other, ok := catalog.writers[key]; ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s written by %s and %s", ErrMultipleWriters, kind, dst.Slot,
					other.Name(), r.Name()))
			} else {
				catalog.writers[key] = r
			}
		}
		// Sources on the node itself can be checked statically.
		for _, src := range r.Sources() {
			if len(src.Steps) == 0 && !ast.HasSlot(kind, src.Slot, src.Requirement.Discipline()) {
				errs = append(errs, fmt.Errorf("%w: %s has no %s slot %q (rule %s)", ErrInvalidSource, kind,
					src.Requirement.Discipline(), src.Slot, r.Name()))
			}
		}
		//
		catalog.rules = append(catalog.rules, r)
		catalog.kinds[kind] = append(catalog.kinds[kind], r)
	}
	//
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	//
	return catalog, nil
}

// Rules returns all rules in this catalog, in registration order.
func (p *Catalog) Rules() []Rule {
	return p.rules
}

// Len returns the number of rules in this catalog.
func (p *Catalog) Len() int {
	return len(p.rules)
}

// RulesFor returns the rules bound to a given kind, in registration order.
func (p *Catalog) RulesFor(kind ast.Kind) []Rule {
	return p.kinds[kind]
}

// Writer returns the rule (if any) which writes a given slot on nodes of a
// given kind.
func (p *Catalog) Writer(kind ast.Kind, slot string) (Rule, bool) {
	r, ok := p.writers[writer{kind, slot}]
	return r, ok
}
