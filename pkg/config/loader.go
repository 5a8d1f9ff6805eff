package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/utils/ptr"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KNAPSACK"

// flag name -> configuration key
var flagKeys = map[string]string{
	"problem":      "problems",
	"count":        "generator.count",
	"capacity":     "generator.capacity",
	"min-value":    "generator.minValue",
	"max-value":    "generator.maxValue",
	"min-weight":   "generator.minWeight",
	"max-weight":   "generator.maxWeight",
	"strategy":     "solver.strategy",
	"max-items":    "solver.maxItems",
	"workers":      "solver.workers",
	"output":       "output.format",
	"metrics-file": "output.metricsFile",
	"trace":        "output.trace",
	"dev-log":      "log.development",
	"v":            "log.verbosity",
}

// AddFlags registers the run configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	gen := DefaultGeneratorSpec()
	fs.StringSlice("problem", nil, "problem spec file (YAML or JSON); repeatable. A random problem is generated when omitted")
	fs.Int("count", gen.Count, "number of items in a generated problem")
	fs.Uint64("capacity", gen.Capacity, "capacity of a generated problem")
	fs.Uint64("min-value", gen.MinValue, "inclusive lower bound of generated item values")
	fs.Uint64("max-value", gen.MaxValue, "exclusive upper bound of generated item values")
	fs.Uint64("min-weight", gen.MinWeight, "inclusive lower bound of generated item weights")
	fs.Uint64("max-weight", gen.MaxWeight, "exclusive upper bound of generated item weights")
	fs.Uint64("seed", 0, "seed for problem generation; random when omitted")
	fs.String("strategy", DefaultStrategy, "search strategy")
	fs.Int("max-items", DefaultMaxItems, "reject problems with more items than this; 0 disables the guard")
	fs.Int("workers", 0, "problems searched concurrently; 0 uses GOMAXPROCS")
	fs.StringP("output", "o", FormatText, fmt.Sprintf("report format, one of %v", OutputFormats))
	fs.String("metrics-file", "", "write Prometheus metrics in text format to this file")
	fs.Bool("trace", false, "export OpenTelemetry spans to stderr")
	fs.Bool("dev-log", false, "use the human-readable development logger")
	fs.IntP("v", "v", 0, "log verbosity")
}

// Load builds a RunConfig from defaults, the optional config file at path,
// KNAPSACK_* environment variables and the flags in fs, in increasing priority.
// fs may be nil, and path may be empty.
func Load(fs *pflag.FlagSet, path string) (*RunConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// seed has no default, so it must be bound to be seen by Unmarshal
	if err := v.BindEnv("generator.seed"); err != nil {
		return nil, fmt.Errorf("failed to bind seed environment variable: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &RunConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// the seed flag always has a value, so only an explicit one overrides
	if fs != nil && fs.Changed("seed") {
		seed, err := fs.GetUint64("seed")
		if err != nil {
			return nil, err
		}
		cfg.Generator.Seed = ptr.To(seed)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	gen := DefaultGeneratorSpec()
	v.SetDefault("problems", []string{})
	v.SetDefault("generator.count", gen.Count)
	v.SetDefault("generator.capacity", gen.Capacity)
	v.SetDefault("generator.minValue", gen.MinValue)
	v.SetDefault("generator.maxValue", gen.MaxValue)
	v.SetDefault("generator.minWeight", gen.MinWeight)
	v.SetDefault("generator.maxWeight", gen.MaxWeight)
	v.SetDefault("solver.strategy", DefaultStrategy)
	v.SetDefault("solver.maxItems", DefaultMaxItems)
	v.SetDefault("solver.workers", 0)
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.metricsFile", "")
	v.SetDefault("output.trace", false)
	v.SetDefault("log.development", false)
	v.SetDefault("log.verbosity", 0)
}
