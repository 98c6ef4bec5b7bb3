// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"
	"sort"
	"strings"
)

// Spec names a distribution and its parameters, the shape used by config
// files:
//
//	{name: lognormal, params: {mu: 0, sigma: 0.5}}
type Spec struct {
	Name   string             `koanf:"name" yaml:"name"`
	Params map[string]float64 `koanf:"params" yaml:"params,omitempty"`
}

// builder constructs a marginal from resolved parameters.
type builder struct {
	params   []string           // accepted keys, in constructor order
	defaults map[string]float64 // optional keys
	build    func(p []float64) (Marginal, error)
}

var builders = map[string]builder{
	"normal": {
		params:   []string{"mu", "sigma"},
		defaults: map[string]float64{"mu": 0, "sigma": 1},
		build:    func(p []float64) (Marginal, error) { return Normal(p[0], p[1]) },
	},
	"uniform": {
		params:   []string{"min", "max"},
		defaults: map[string]float64{"min": 0, "max": 1},
		build:    func(p []float64) (Marginal, error) { return Uniform(p[0], p[1]) },
	},
	"lognormal": {
		params:   []string{"mu", "sigma"},
		defaults: map[string]float64{"mu": 0},
		build:    func(p []float64) (Marginal, error) { return LogNormal(p[0], p[1]) },
	},
	"exponential": {
		params:   []string{"rate"},
		defaults: map[string]float64{"rate": 1},
		build:    func(p []float64) (Marginal, error) { return Exponential(p[0]) },
	},
	"gamma": {
		params:   []string{"alpha", "beta"},
		defaults: map[string]float64{"beta": 1},
		build:    func(p []float64) (Marginal, error) { return Gamma(p[0], p[1]) },
	},
	"beta": {
		params: []string{"alpha", "beta"},
		build:  func(p []float64) (Marginal, error) { return Beta(p[0], p[1]) },
	},
	"weibull": {
		params:   []string{"k", "lambda"},
		defaults: map[string]float64{"lambda": 1},
		build:    func(p []float64) (Marginal, error) { return Weibull(p[0], p[1]) },
	},
	"laplace": {
		params:   []string{"mu", "scale"},
		defaults: map[string]float64{"mu": 0},
		build:    func(p []float64) (Marginal, error) { return Laplace(p[0], p[1]) },
	},
	"studentst": {
		params:   []string{"mu", "sigma", "nu"},
		defaults: map[string]float64{"mu": 0, "sigma": 1},
		build:    func(p []float64) (Marginal, error) { return StudentsT(p[0], p[1], p[2]) },
	},
	"triangle": {
		params: []string{"a", "b", "c"},
		build:  func(p []float64) (Marginal, error) { return Triangle(p[0], p[1], p[2]) },
	},
}

// Names lists the distribution names understood by FromSpec, sorted.
func Names() []string {
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FromSpec builds a marginal from its name and parameters. Names are
// case-insensitive. Missing optional parameters take their defaults; a
// missing required parameter or an unexpected key fails with
// ErrInvalidParameter.
func FromSpec(s Spec) (Marginal, error) {
	name := strings.ToLower(strings.TrimSpace(s.Name))
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %s): %w", s.Name, strings.Join(Names(), ", "), ErrUnknownDistribution)
	}
	for key := range s.Params {
		if !contains(b.params, key) {
			return nil, invalid(name, "unexpected parameter %q", key)
		}
	}
	vals := make([]float64, len(b.params))
	for i, key := range b.params {
		if v, ok := s.Params[key]; ok {
			vals[i] = v
			continue
		}
		v, ok := b.defaults[key]
		if !ok {
			return nil, invalid(name, "missing parameter %q", key)
		}
		vals[i] = v
	}
	return b.build(vals)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
