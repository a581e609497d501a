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
package engine

import (
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util"
	log "github.com/sirupsen/logrus"
)

// item is the application of a given rule to a given node, which remains
// pending until it is either applied or fails.
type item struct {
	node ast.Node
	rule rule.Rule
	// Status of this item (Deferred whilst pending).
	status rule.Status
	// Blockers found when this item was last tried.
	blockers []rule.Blocker
}

func (p *item) origin() diag.Origin {
	return diag.Origin{Node: p.node, Rule: p.rule.Name()}
}

type key struct {
	node uint
	rule string
}

// resolution maintains the state of an ongoing attempt to resolve a program.
type resolution struct {
	catalog *rule.Catalog
	// Nodes of the program, in pre-order.
	nodes []ast.Node
	// Every item, in commit order.
	items []*item
	// Items indexed by node and rule name.
	index map[key]*item
	// Errors recorded so far.
	errors *diag.Aggregator
	// Number of items applied in the last pass.
	applied uint
	// Number of items failed in the last pass.
	failures uint
}

func newResolution(catalog *rule.Catalog, nodes []ast.Node) *resolution {
	state := &resolution{
		catalog: catalog,
		nodes:   nodes,
		index:   make(map[key]*item),
		errors:  diag.NewAggregator(),
	}
	//
	for _, n := range nodes {
		for _, r := range catalog.RulesFor(n.Kind()) {
			it := &item{node: n, rule: r, status: rule.Deferred}
			state.items = append(state.items, it)
			state.index[key{n.ID(), r.Name()}] = it
		}
	}
	//
	return state
}

// Report every pending item as an unresolved dependency, classified by
// exploring what it (transitively) waits for.  When the ceiling was reached,
// every such error is also marked as exhausted.
func (p *resolution) unresolved(pending []*item, exhausted bool) {
	for _, it := range pending {
		cause, root := p.classify(it)
		e := diag.Unresolved(it.node, it.rule.Name(), cause, root)
		e.Exhausted = exhausted
		//
		log.Debugf("unresolved %s on %s#%d (%s)", it.rule.Name(), it.node.Kind(), it.node.ID(), cause)
		p.errors.Record(e)
	}
}

// Classify why a given item could not proceed.  This explores (breadth first)
// the items writing the slots it is blocked on, the items those are blocked on,
// and so on.  Reaching a failed item means it is blocked by that failure.
// Otherwise, reaching a slot which nothing writes means it can never proceed.
// Otherwise, reaching a slot written since it was last tried (or an item never
// tried) means it was still progressing when the ceiling was reached.
// Otherwise, since every item reached is itself pending and there are finitely
// many of them, it must be waiting on a cycle.
func (p *resolution) classify(start *item) (diag.Cause, util.Option[diag.Origin]) {
	var (
		worklist    = []*item{start}
		visited     = map[*item]bool{start: true}
		orphaned    = false
		progressing = false
	)
	//
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]
		//
		if len(it.blockers) == 0 {
			progressing = true
		}
		//
		for _, b := range it.blockers {
			w, ok := p.writerOf(b)
			//
			switch {
			case !ok:
				orphaned = true
			case w.status == rule.Failed:
				return diag.Blocked, util.Some(w.origin())
			case w.status == rule.Applied:
				progressing = true
			case !visited[w]:
				visited[w] = true
				worklist = append(worklist, w)
			}
		}
	}
	//
	if orphaned {
		return diag.NoWriter, util.None[diag.Origin]()
	} else if progressing {
		return diag.Exhausted, util.None[diag.Origin]()
	}
	//
	return diag.Cycle, util.None[diag.Origin]()
}

// Find the item responsible for writing the slot a blocker waits on.
func (p *resolution) writerOf(b rule.Blocker) (*item, bool) {
	r, ok := p.catalog.Writer(b.Node.Kind(), b.Slot)
	if !ok {
		return nil, false
	}
	//
	it, ok := p.index[key{b.Node.ID(), r.Name()}]
	//
	return it, ok
}
