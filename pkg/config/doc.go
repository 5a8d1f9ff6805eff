// Package config provides configuration management for the knapsack solver.
//
// This package holds the spec data the solver is driven by, and loads it
// from files, environment variables and command-line flags.
//
// Configuration Types:
//
//   - ProblemSpec: a capacity and an ordered list of items, read from YAML or JSON
//   - GeneratorSpec: bounds for random problem generation
//   - SolverSpec: search strategy, item-count guard and batch parallelism
//   - OutputSpec: report format, metrics dump and tracing
//   - LogSpec: logger encoder and verbosity
//   - RunConfig: everything above for one CLI run
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (KNAPSACK_ prefix, e.g. KNAPSACK_GENERATOR_COUNT)
//  3. Config file (--config)
//  4. Default values (lowest priority)
//
// Example usage:
//
//	fs := pflag.NewFlagSet("knapsack", pflag.ContinueOnError)
//	config.AddFlags(fs)
//	if err := fs.Parse(os.Args[1:]); err != nil {
//	    return err
//	}
//	cfg, err := config.Load(fs, configPath)
//	if err != nil {
//	    return err
//	}
//
//	spec, err := config.LoadProblemSpec("textbook.yaml")
//	if err != nil {
//	    return err
//	}
//
// All configuration values are validated on load:
//   - Numeric ranges (e.g., MinValue < MaxValue)
//   - Enumerations (e.g., output format)
//   - Non-negative counts
package config
