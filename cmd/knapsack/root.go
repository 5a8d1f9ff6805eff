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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/llm-d/llm-d-knapsack-solver/internal/actuator"
	"github.com/llm-d/llm-d-knapsack-solver/internal/generator"
	"github.com/llm-d/llm-d-knapsack-solver/internal/logging"
	"github.com/llm-d/llm-d-knapsack-solver/internal/metrics"
	"github.com/llm-d/llm-d-knapsack-solver/internal/optimizer"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/config"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// name of the problem generated when no problem files are given
const generatedProblemName = "random"

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "knapsack",
		Short: "Solve 0/1 knapsack problems by exhaustive search",
		Long: `knapsack evaluates every subset of a problem's items and reports the most
valuable one whose weight fits the capacity.

Problems are read from YAML or JSON files given with --problem. Without one,
a random problem is generated from the generator flags.

Settings can also come from a config file (--config) and from KNAPSACK_*
environment variables, e.g. KNAPSACK_SOLVER_WORKERS=4. Flags take precedence
over the environment, which takes precedence over the config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "run configuration file (YAML, JSON or TOML)")
	config.AddFlags(cmd.Flags())
	return cmd
}

// run solves the configured problems and writes the reports to out.
// Spans, when enabled, go to errOut.
func run(ctx context.Context, cfg *config.RunConfig, out, errOut io.Writer) error {
	logger, err := logging.NewLogger(logging.Options{
		Development: cfg.Log.Development,
		Verbosity:   cfg.Log.Verbosity,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = logging.IntoContext(ctx, logger)

	problems, err := loadProblems(ctx, cfg)
	if err != nil {
		return err
	}

	var opts []optimizer.Option
	if cfg.Output.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer func() {
			if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Error(err, "Failed to shut down tracer provider")
			}
		}()
		opts = append(opts, optimizer.WithTracerProvider(tp))
	}

	registry := prometheus.NewRegistry()
	opt, err := optimizer.NewOptimizerFromSpec(cfg.Solver, metrics.NewRecorder(registry), opts...)
	if err != nil {
		return err
	}
	act, err := actuator.NewActuator(out, cfg.Output.Format)
	if err != nil {
		return err
	}

	decisions, searchErr := opt.OptimizeAll(ctx, problems)
	if searchErr != nil {
		logger.Error(searchErr, "Some problems could not be solved")
	}
	if err := act.Emit(decisions); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}

	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.Output.MetricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.V(logging.DEBUG).Info("Metrics written", "path", cfg.Output.MetricsFile)
	}
	return searchErr
}

// loadProblems reads the configured problem files, or generates one problem when there are none.
func loadProblems(ctx context.Context, cfg *config.RunConfig) ([]optimizer.NamedProblem, error) {
	logger := logging.FromContext(ctx)

	if len(cfg.ProblemFiles) == 0 {
		gen, seed, err := generator.NewSeeded(cfg.Generator)
		if err != nil {
			return nil, err
		}
		spec := gen.GenerateSpec(generatedProblemName)
		problem, err := core.NewProblemFromSpec(spec)
		if err != nil {
			return nil, err
		}
		logger.Info("Generated random problem", "seed", seed, "items", problem.ItemCount())
		logger.V(logging.DEBUG).Info("Generated problem details", "spec", spec)
		return []optimizer.NamedProblem{{Name: spec.Name, Problem: problem}}, nil
	}

	problems := make([]optimizer.NamedProblem, 0, len(cfg.ProblemFiles))
	for _, path := range cfg.ProblemFiles {
		spec, err := config.LoadProblemSpec(path)
		if err != nil {
			return nil, err
		}
		problem, err := core.NewProblemFromSpec(spec)
		if err != nil {
			return nil, err
		}
		logger.V(logging.DEBUG).Info("Loaded problem", "path", path, "name", spec.Name, "items", problem.ItemCount())
		problems = append(problems, optimizer.NamedProblem{Name: spec.Name, Problem: problem})
	}
	return problems, nil
}
