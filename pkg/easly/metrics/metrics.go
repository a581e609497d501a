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
	"time"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/diag"
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "easly"
	subsystem = "resolution"
)

// Recorder accumulates statistics over one or more resolution runs, for export
// in the Prometheus text format.  Collectors are held in a private registry,
// so that any number of recorders can coexist.
type Recorder struct {
	registry *prometheus.Registry
	// Runs by final status.
	runs *prometheus.CounterVec
	// Errors reported by kind.
	errors *prometheus.CounterVec
	// Unresolved dependencies by cause.
	unresolved *prometheus.CounterVec
	// Passes taken per run.
	passes prometheus.Histogram
	// Wall-clock time per run.
	duration prometheus.Histogram
}

// NewRecorder constructs a recorder with every collector registered.
func NewRecorder() *Recorder {
	p := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Resolution runs by final status",
		}, []string{"status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Errors reported by kind",
		}, []string{"kind"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unresolved_total",
			Help:      "Unresolved dependencies by cause",
		}, []string{"cause"}),
		passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "passes",
			Help:      "Number of passes taken per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Time taken per run in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	//
	p.registry.MustRegister(p.runs, p.errors, p.unresolved, p.passes, p.duration)
	//
	return p
}

// Registry returns the registry holding this recorder's collectors.
func (p *Recorder) Registry() *prometheus.Registry {
	return p.registry
}

// Observe the outcome of a single resolution run.
func (p *Recorder) Observe(result *engine.Result, elapsed time.Duration) {
	p.runs.WithLabelValues(result.Status.String()).Inc()
	p.passes.Observe(float64(result.Passes))
	p.duration.Observe(elapsed.Seconds())
	//
	for _, e := range result.Errors {
		p.errors.WithLabelValues(e.Kind.String()).Inc()
		//
		if e.Kind == diag.UnresolvedDependency {
			p.unresolved.WithLabelValues(e.Cause.String()).Inc()
		}
	}
}

// WriteTextfile writes every metric gathered so far to a given file, in the
// format expected by the node exporter's textfile collector.
func (p *Recorder) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, p.registry)
}
