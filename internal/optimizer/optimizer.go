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

package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/llm-d/llm-d-knapsack-solver/internal/logging"
	"github.com/llm-d/llm-d-knapsack-solver/internal/metrics"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/config"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/solver"
)

// TracerName is the instrumentation scope of the optimizer spans.
const TracerName = "github.com/llm-d/llm-d-knapsack-solver/internal/optimizer"

// ErrTooManyItems is returned for problems above the configured item limit.
var ErrTooManyItems = errors.New("too many items for exhaustive search")

// NamedProblem is a problem and the name it is reported under.
type NamedProblem struct {
	Name    string
	Problem *core.Problem
}

// Decision is the outcome of optimizing one problem.
type Decision struct {
	Name     string
	Problem  *core.Problem
	Result   *solver.Result
	Duration time.Duration
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithTracerProvider sets the provider of the optimizer's tracer. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Optimizer) {
		o.tracer = tp.Tracer(TracerName)
	}
}

// Optimizer runs a Solver over problems, recording logs, spans and metrics.
// It is safe for concurrent use when its Solver is.
type Optimizer struct {
	solver   solver.Solver
	recorder *metrics.Recorder
	spec     config.SolverSpec
	tracer   trace.Tracer
}

// NewOptimizer creates an Optimizer. A nil recorder records into a private registry.
func NewOptimizer(s solver.Solver, recorder *metrics.Recorder, spec config.SolverSpec, opts ...Option) (*Optimizer, error) {
	if s == nil {
		return nil, fmt.Errorf("solver cannot be nil")
	}
	if spec.MaxItems < 0 || spec.Workers < 0 {
		return nil, fmt.Errorf("invalid solver spec: maxItems=%d, workers=%d", spec.MaxItems, spec.Workers)
	}
	if recorder == nil {
		recorder = metrics.NewRecorder(prometheus.NewRegistry())
	}
	o := &Optimizer{
		solver:   s,
		recorder: recorder,
		spec:     spec,
		tracer:   otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// NewOptimizerFromSpec creates an Optimizer with the Solver named by spec.Strategy.
func NewOptimizerFromSpec(spec config.SolverSpec, recorder *metrics.Recorder, opts ...Option) (*Optimizer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	strategy, err := solver.ParseStrategy(spec.Strategy)
	if err != nil {
		return nil, err
	}
	s, err := solver.NewSolver(strategy)
	if err != nil {
		return nil, err
	}
	return NewOptimizer(s, recorder, spec, opts...)
}

// Optimize searches a single problem.
func (o *Optimizer) Optimize(ctx context.Context, name string, problem *core.Problem) (*Decision, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem %q cannot be nil", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).WithValues("problem", name)
	items := problem.ItemCount()

	_, span := o.tracer.Start(ctx, "optimizer.Optimize", trace.WithAttributes(
		attribute.String("knapsack.problem", name),
		attribute.Int("knapsack.items", items),
		attribute.Int64("knapsack.capacity", clampInt64(problem.Capacity())),
	))
	defer span.End()

	if o.spec.MaxItems > 0 && items > o.spec.MaxItems {
		err := fmt.Errorf("%w: problem %q has %d items, limit is %d", ErrTooManyItems, name, items, o.spec.MaxItems)
		o.recorder.ObserveRejected()
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		logger.Info("Problem rejected", "items", items, "maxItems", o.spec.MaxItems)
		return nil, err
	}

	logger.V(logging.DEBUG).Info("Starting search",
		"items", items,
		"capacity", problem.Capacity())

	start := time.Now()
	result, err := o.solver.Solve(problem)
	elapsed := time.Since(start)
	if err != nil {
		o.recorder.ObserveError()
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, fmt.Errorf("search for problem %q failed: %w", name, err)
	}

	selected := result.Solution.Selected()
	span.SetAttributes(
		attribute.Int64("knapsack.evaluations", clampInt64(result.Evaluations)),
		attribute.Int64("knapsack.feasible", clampInt64(result.Feasible)),
		attribute.Int64("knapsack.best_value", clampInt64(result.Value)),
		attribute.IntSlice("knapsack.selected", selected),
	)
	o.recorder.ObserveSearch(name, items, result.Evaluations, result.Feasible, result.Value, elapsed)

	logger.Info("Search completed",
		"value", result.Value,
		"selected", selected,
		"evaluations", result.Evaluations,
		"duration", elapsed)
	logger.V(logging.TRACE).Info("Search details",
		"feasible", result.Feasible,
		"solution", result.Solution.String())

	return &Decision{
		Name:     name,
		Problem:  problem,
		Result:   result,
		Duration: elapsed,
	}, nil
}

// OptimizeAll searches problems concurrently, at most SolverSpec.Workers at a time.
// Decisions are returned in input order; a failed problem leaves a nil entry and its
// error is joined into the returned error while the other problems still run.
func (o *Optimizer) OptimizeAll(ctx context.Context, problems []NamedProblem) ([]*Decision, error) {
	workers := o.spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	decisions := make([]*Decision, len(problems))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(workers)
	for i, np := range problems {
		p.Go(func(ctx context.Context) error {
			d, err := o.Optimize(ctx, np.Name, np.Problem)
			if err != nil {
				return err
			}
			decisions[i] = d
			return nil
		})
	}
	err := p.Wait()
	return decisions, err
}

// clampInt64 converts v for int64 span attributes, saturating at math.MaxInt64.
func clampInt64(v uint64) int64 {
	return int64(min(v, math.MaxInt64))
}
