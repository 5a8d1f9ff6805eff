/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics records solver activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "knapsack"

// Search results used as the "result" label of knapsack_searches_total.
const (
	ResultSolved   = "solved"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Recorder holds the solver metrics. All methods are safe for concurrent use.
type Recorder struct {
	searches    *prometheus.CounterVec
	evaluations prometheus.Counter
	feasible    prometheus.Counter
	duration    prometheus.Histogram
	bestValue   *prometheus.GaugeVec
	itemCount   prometheus.Histogram
}

// NewRecorder creates the solver metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total searches by result",
		}, []string{"result"}),
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Candidates evaluated across all searches",
		}),
		feasible: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feasible_evaluations_total",
			Help:      "Evaluated candidates that fit within capacity",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of a search",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 8),
		}),
		bestValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_value",
			Help:      "Best value found for a problem",
		}, []string{"problem"}),
		itemCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "problem_items",
			Help:      "Number of items per searched problem",
			Buckets:   []float64{1, 2, 4, 8, 12, 16, 20, 24, 32},
		}),
	}
}

// ObserveSearch records a completed search.
func (r *Recorder) ObserveSearch(problem string, items int, evaluations, feasible, best uint64, elapsed time.Duration) {
	r.searches.WithLabelValues(ResultSolved).Inc()
	r.evaluations.Add(float64(evaluations))
	r.feasible.Add(float64(feasible))
	r.duration.Observe(elapsed.Seconds())
	r.itemCount.Observe(float64(items))
	r.bestValue.WithLabelValues(problem).Set(float64(best))
}

// ObserveRejected records a problem refused before searching.
func (r *Recorder) ObserveRejected() {
	r.searches.WithLabelValues(ResultRejected).Inc()
}

// ObserveError records a search that failed.
func (r *Recorder) ObserveError() {
	r.searches.WithLabelValues(ResultError).Inc()
}

// WriteText writes every metric gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes the metrics gathered from g to path, replacing it atomically.
func WriteFile(path string, g prometheus.Gatherer) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := WriteText(tmp, g); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metrics file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
