package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidRange is returned when a lower bound is not below its upper bound.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidValue is returned for values outside their allowed set.
	ErrInvalidValue = errors.New("invalid value")
)

const (
	// DefaultStrategy is the search strategy used when none is configured.
	DefaultStrategy = "brute-force"
	// DefaultMaxItems bounds the item count accepted by the optimizer (2^24 evaluations).
	DefaultMaxItems = 24

	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// OutputFormats lists the supported report formats.
var OutputFormats = []string{FormatText, FormatYAML, FormatJSON}

// ItemSpec is the configuration form of a knapsack item.
type ItemSpec struct {
	Value  uint64 `yaml:"value" json:"value" mapstructure:"value"`
	Weight uint64 `yaml:"weight" json:"weight" mapstructure:"weight"`
}

// ProblemSpec describes a knapsack problem. Item order defines item positions.
type ProblemSpec struct {
	// Name identifies the problem in logs, metrics and reports.
	Name string `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`

	// Capacity is the weight bound.
	Capacity uint64 `yaml:"capacity" json:"capacity" mapstructure:"capacity"`

	// Items are the candidate items in position order.
	Items []ItemSpec `yaml:"items" json:"items" mapstructure:"items"`
}

// Validate checks the problem spec. Any capacity and item list is a valid problem,
// so only a missing spec is rejected.
func (s *ProblemSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: problem spec is nil", ErrInvalidValue)
	}
	return nil
}

// GeneratorSpec bounds the random problems produced by the generator.
// Values are drawn from [MinValue, MaxValue) and weights from [MinWeight, MaxWeight).
type GeneratorSpec struct {
	Count     int    `yaml:"count" json:"count" mapstructure:"count"`
	Capacity  uint64 `yaml:"capacity" json:"capacity" mapstructure:"capacity"`
	MinValue  uint64 `yaml:"minValue" json:"minValue" mapstructure:"minValue"`
	MaxValue  uint64 `yaml:"maxValue" json:"maxValue" mapstructure:"maxValue"`
	MinWeight uint64 `yaml:"minWeight" json:"minWeight" mapstructure:"minWeight"`
	MaxWeight uint64 `yaml:"maxWeight" json:"maxWeight" mapstructure:"maxWeight"`

	// Seed makes generation reproducible. A random seed is chosen when nil.
	Seed *uint64 `yaml:"seed,omitempty" json:"seed,omitempty" mapstructure:"seed"`
}

// Validate checks for invalid generator bounds.
func (s *GeneratorSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidValue, s.Count)
	}
	if s.MinValue >= s.MaxValue {
		return fmt.Errorf("%w: minValue (%d) must be < maxValue (%d)", ErrInvalidRange, s.MinValue, s.MaxValue)
	}
	if s.MinWeight >= s.MaxWeight {
		return fmt.Errorf("%w: minWeight (%d) must be < maxWeight (%d)", ErrInvalidRange, s.MinWeight, s.MaxWeight)
	}
	return nil
}

// SolverSpec configures how problems are searched.
type SolverSpec struct {
	// Strategy names the search algorithm.
	Strategy string `yaml:"strategy" json:"strategy" mapstructure:"strategy"`

	// MaxItems rejects problems with more items; 0 disables the guard.
	MaxItems int `yaml:"maxItems" json:"maxItems" mapstructure:"maxItems"`

	// Workers bounds how many problems are searched concurrently; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
}

// Validate checks for invalid solver settings.
func (s *SolverSpec) Validate() error {
	if s.Strategy == "" {
		return fmt.Errorf("%w: strategy cannot be empty", ErrInvalidValue)
	}
	if s.MaxItems < 0 {
		return fmt.Errorf("%w: maxItems must be >= 0, got %d", ErrInvalidValue, s.MaxItems)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, s.Workers)
	}
	return nil
}

// OutputSpec configures reporting.
type OutputSpec struct {
	Format      string `yaml:"format" json:"format" mapstructure:"format"`
	MetricsFile string `yaml:"metricsFile,omitempty" json:"metricsFile,omitempty" mapstructure:"metricsFile"`
	Trace       bool   `yaml:"trace" json:"trace" mapstructure:"trace"`
}

// Validate checks the output format.
func (s *OutputSpec) Validate() error {
	if !slices.Contains(OutputFormats, s.Format) {
		return fmt.Errorf("%w: output format %q, expected one of %v", ErrInvalidValue, s.Format, OutputFormats)
	}
	return nil
}

// LogSpec configures the logger.
type LogSpec struct {
	Development bool `yaml:"development" json:"development" mapstructure:"development"`
	Verbosity   int  `yaml:"verbosity" json:"verbosity" mapstructure:"verbosity"`
}

// RunConfig holds the configuration of one solver run.
type RunConfig struct {
	// ProblemFiles are YAML or JSON problem specs. A random problem is generated when empty.
	ProblemFiles []string `yaml:"problems" json:"problems" mapstructure:"problems"`

	Generator GeneratorSpec `yaml:"generator" json:"generator" mapstructure:"generator"`
	Solver    SolverSpec    `yaml:"solver" json:"solver" mapstructure:"solver"`
	Output    OutputSpec    `yaml:"output" json:"output" mapstructure:"output"`
	Log       LogSpec       `yaml:"log" json:"log" mapstructure:"log"`
}

// Validate checks every section of the run configuration.
func (c *RunConfig) Validate() error {
	if len(c.ProblemFiles) == 0 {
		if err := c.Generator.Validate(); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log: %w: verbosity must be >= 0, got %d", ErrInvalidValue, c.Log.Verbosity)
	}
	return nil
}

// DefaultGeneratorSpec returns the generator bounds used when nothing is configured.
func DefaultGeneratorSpec() GeneratorSpec {
	return GeneratorSpec{
		Count:     4,
		Capacity:  500,
		MinValue:  100,
		MaxValue:  1000,
		MinWeight: 20,
		MaxWeight: 500,
	}
}
