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
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/slot"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPasses is the default ceiling on the number of passes.  Legitimate
// dependency chains in large programs can require many passes, hence this is
// generous.
const DefaultMaxPasses = 200

// Config determines how resolution is carried out.
type Config struct {
	// MaxPasses is the maximum number of passes before resolution is abandoned.
	MaxPasses uint
	// Workers is the maximum number of rules evaluated concurrently within a
	// pass.  This has no effect on the outcome.
	Workers uint
}

// DefaultConfig returns the default configuration, which uses one worker per
// available processor.
func DefaultConfig() Config {
	return Config{MaxPasses: DefaultMaxPasses, Workers: uint(runtime.GOMAXPROCS(0))}
}

// Status summarises how resolution terminated.
type Status uint8

const (
	// Resolved indicates every rule was either applied or failed.
	Resolved Status = iota
	// Stalled indicates a pass made no progress, with rules still pending.
	Stalled
	// CeilingReached indicates the maximum number of passes was reached, with
	// rules still pending.
	CeilingReached
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Stalled:
		return "stalled"
	case CeilingReached:
		return "ceiling reached"
	}
	//
	return "unknown"
}

// Result captures the outcome of resolving a program.
type Result struct {
	// Status on termination.
	Status Status
	// Passes is the number of passes carried out.
	Passes uint
	// Pending records the number of pending items at the start of each pass,
	// followed by the number remaining on termination.
	Pending []int
	// Errors reported, in a deterministic order.
	Errors []diag.Error
}

// Succeeded determines whether resolution completed without errors, which is
// the condition for any subsequent code generation.
func (p *Result) Succeeded() bool {
	return p.Status == Resolved && len(p.Errors) == 0
}

// Engine applies the rules of a catalog to a program until a fixed point is
// reached.  An engine holds no state between runs, and can be reused.
type Engine struct {
	catalog *rule.Catalog
	env     rule.Env
	config  Config
}

// New constructs an engine for a given catalog and set of language tables.
// The tables must not be modified once the engine is constructed.
func New(catalog *rule.Catalog, tables *tables.Tables, config Config) *Engine {
	if config.Workers == 0 {
		config.Workers = 1
	}
	//
	return &Engine{catalog, rule.Env{Tables: tables}, config}
}

// Resolve a program by repeatedly trying all pending rules.  Each pass
// evaluates every pending rule against the state left by the previous pass,
// and then commits the results in a fixed order (i.e. pre-order node, then
// catalog order).  Resolution ends when nothing remains pending, when a pass
// makes no progress or when the pass ceiling is reached.  In the latter two
// cases, every rule still pending is reported as an unresolved dependency.
// Errors in the program are reported in the result.  An error is returned only
// for structural violations (i.e. bugs in the catalog) or cancellation, in
// which case the program is left partially resolved.
func (p *Engine) Resolve(ctx context.Context, program *ast.Program) (*Result, error) {
	var (
		stats   = util.NewPerfStats()
		state   = newResolution(p.catalog, ast.Index(program))
		result  = &Result{Status: Resolved}
		pending = state.items
	)
	//
	log.Debugf("resolving %d nodes with %d rules (%d items)", len(state.nodes), p.catalog.Len(), len(pending))
	//
	for len(pending) > 0 {
		result.Pending = append(result.Pending, len(pending))
		//
		if result.Passes == p.config.MaxPasses {
			result.Status = CeilingReached
			break
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
		//
		next, err := p.pass(state, pending)
		if err != nil {
			return nil, err
		}
		//
		result.Passes++
		log.Debugf("pass %d: %d applied, %d failed, %d deferred", result.Passes, state.applied, state.failures,
			len(next))
		// No progress means a stall.
		if len(next) == len(pending) {
			result.Status = Stalled
			break
		}
		//
		pending = next
	}
	//
	if len(pending) > 0 {
		result.Pending = append(result.Pending, len(pending))
		state.unresolved(pending, result.Status == CeilingReached)
	} else {
		result.Pending = append(result.Pending, 0)
	}
	//
	result.Errors = state.errors.Snapshot()
	//
	stats.Log(fmt.Sprintf("Resolution (%s after %d passes)", result.Status, result.Passes))
	//
	return result, nil
}

// Carry out a single pass over the pending items, returning those which remain
// pending.  Evaluation is concurrent, but commits happen in order once every
// evaluation has finished.
func (p *Engine) pass(state *resolution, pending []*item) ([]*item, error) {
	var (
		outcomes = make([]rule.Outcome, len(pending))
		errs     = make([]error, len(pending))
		group    errgroup.Group
		next     []*item
	)
	//
	group.SetLimit(int(p.config.Workers))
	//
	for i, it := range pending {
		i, it := i, it
		group.Go(func() error {
			outcomes[i], errs[i] = rule.TryResolve(&p.env, it.rule, it.node)
			return nil
		})
	}
	//
	_ = group.Wait()
	// Report the first structural violation, in commit order.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	//
	state.applied, state.failures = 0, 0
	//
	for i, it := range pending {
		outcome := outcomes[i]
		//
		switch outcome.Status {
		case rule.Applied:
			if err := apply(it, outcome.Data); err != nil {
				return nil, err
			}
			//
			it.status = rule.Applied
			state.applied++
		case rule.Failed:
			state.errors.Record(outcome.Errors...)
			it.status = rule.Failed
			state.failures++
		default:
			it.blockers = outcome.Blockers
			next = append(next, it)
		}
	}
	//
	return next, nil
}

// Commit the data computed by a rule.  Reading unassigned slots within Apply
// raises a slot error, which is recovered as a structural violation.
func apply(it *item, data any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, slot.ErrStructural) {
				panic(r)
			}
			//
			err = e
		}
		//
		if err != nil {
			err = fmt.Errorf("applying %s to %s#%d: %w", it.rule.Name(), it.node.Kind(), it.node.ID(), err)
		}
	}()
	//
	return it.rule.Apply(it.node, data)
}
