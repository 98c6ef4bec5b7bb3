// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/nataf/nataf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: NATAF_SOLVER__MAX_ITER → solver.max_iter.
const EnvPrefix = "NATAF_"

// DefaultSamples is the sample count used when none is configured.
const DefaultSamples = 1000

// defaultFiles are searched in the working directory when no file is given.
var defaultFiles = []string{"nataf.yaml", "nataf.yml"}

// flagKeys maps command-line flags to config keys. Flags absent from the map
// are not configuration (paths, toggles of a single command).
var flagKeys = map[string]string{
	"verbose":    "verbose",
	"output":     "output",
	"workers":    "workers",
	"seed":       "seed",
	"samples":    "samples",
	"joint":      "joint",
	"max-iter":   "solver.max_iter",
	"beta":       "solver.beta",
	"threshold1": "solver.threshold1",
	"threshold2": "solver.threshold2",
	"order":      "quadrature.order",
	"z-max":      "quadrature.z_max",
}

// Defaults returns the lowest-precedence layer.
func Defaults() map[string]any {
	return map[string]any{
		"joint":             false,
		"solver.max_iter":   nataf.DefaultMaxIter,
		"solver.beta":       nataf.DefaultBeta,
		"solver.threshold1": nataf.DefaultThreshold1,
		"solver.threshold2": nataf.DefaultThreshold2,
		"quadrature.order":  nataf.DefaultQuadratureOrder,
		"quadrature.z_max":  nataf.DefaultZMax,
		"samples":           DefaultSamples,
		"seed":              0,
		"workers":           0,
		"verbose":           false,
		"output":            OutputTable,
	}
}

// findConfigFile returns the explicit path, or the first default file present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range defaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load merges the configuration layers and validates the result.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set take part.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: NATAF_SOLVER__BETA -> solver.beta
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Output = strings.ToLower(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, used, err
	}
	return &cfg, used, nil
}
