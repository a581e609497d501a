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
package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/ast"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/util"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stalled() *engine.Result {
	var (
		one   = ast.NewNumberExpression("1")
		query = ast.NewQueryExpression("x")
	)
	//
	return &engine.Result{
		Status:  engine.Stalled,
		Passes:  3,
		Pending: []int{10, 4, 2, 2},
		Errors: []diag.Error{
			diag.New(diag.TypeMismatch, one, "String"),
			diag.Unresolved(query, "query-type", diag.Cycle, util.None[diag.Origin]()),
			diag.Unresolved(one, "number-type", diag.Cycle, util.None[diag.Origin]()),
		},
	}
}

func Test_Recorder_01(t *testing.T) {
	recorder := NewRecorder()
	//
	recorder.Observe(stalled(), time.Millisecond)
	recorder.Observe(&engine.Result{Status: engine.Resolved, Passes: 4, Pending: []int{6, 0}}, time.Millisecond)
	//
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.runs.WithLabelValues("stalled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.runs.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.errors.WithLabelValues("type mismatch")))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.errors.WithLabelValues("unresolved dependency")))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.unresolved.WithLabelValues("cyclic dependency")))
	assert.Equal(t, 2, testutil.CollectAndCount(recorder.runs))
}

func Test_Recorder_02(t *testing.T) {
	var (
		recorder = NewRecorder()
		filename = filepath.Join(t.TempDir(), "easly.prom")
	)
	//
	recorder.Observe(stalled(), 2*time.Millisecond)
	require.NoError(t, recorder.WriteTextfile(filename))
	//
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `easly_resolution_runs_total{status="stalled"} 1`)
	assert.Contains(t, string(bytes), "easly_resolution_passes_count 1")
}
