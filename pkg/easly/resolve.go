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
package easly

import (
	"context"
	"fmt"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/config"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/fixture"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rules"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/tables"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util/source"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Resolve a program using the standard rule catalog and language tables.  The
// program is resolved in place.
func Resolve(ctx context.Context, program *ast.Program, cfg config.Config) (*engine.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	//
	return engine.New(rules.Catalog(), tables.Standard(), cfg.Engine()).Resolve(ctx, program)
}

// Compilation is the outcome of loading and resolving a set of fixture files.
type Compilation struct {
	// ID uniquely identifies this compilation in logs.
	ID string
	// Program loaded (and resolved, if it could be loaded).
	Program *ast.Program
	// SourceMaps locate each node of the program.
	SourceMaps *source.Maps[ast.Node]
	// Result of resolution, or nil if loading failed.
	Result *engine.Result
	// SyntaxErrors arising from loading.
	SyntaxErrors []source.SyntaxError
}

// ResolveSourceFiles loads a program from one or more fixture files, and then
// resolves it.  Problems in the files are reported as syntax errors, in which
// case no resolution is attempted.
func ResolveSourceFiles(ctx context.Context, files []*source.File, cfg config.Config) (*Compilation, error) {
	var (
		id     = uuid.NewString()
		logger = log.WithField("compilation", id)
	)
	//
	program, srcmaps, errs := fixture.ParseSourceFiles(files)
	if len(errs) > 0 {
		logger.Debugf("%d syntax error(s) in %d file(s)", len(errs), len(files))
		return &Compilation{ID: id, SourceMaps: srcmaps, SyntaxErrors: errs}, nil
	}
	//
	logger.Debugf("loaded %d class(es) from %d file(s)", len(program.Classes), len(files))
	//
	result, err := Resolve(ctx, program, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", id, err)
	}
	//
	logger.Debugf("%s after %d passes with %d error(s)", result.Status, result.Passes, len(result.Errors))
	//
	return &Compilation{id, program, srcmaps, result, nil}, nil
}

// Errors converts resolution errors into syntax errors where their nodes have
// known locations.  Errors without a known location are returned separately.
func (p *Compilation) Errors() ([]source.SyntaxError, []error) {
	var (
		located   = p.SyntaxErrors
		unlocated []error
	)
	//
	if p.Result == nil {
		return located, nil
	}
	//
	for _, e := range p.Result.Errors {
		if err, ok := e.SyntaxError(p.SourceMaps); ok {
			located = append(located, *err)
		} else {
			unlocated = append(unlocated, e)
		}
	}
	//
	return located, unlocated
}
