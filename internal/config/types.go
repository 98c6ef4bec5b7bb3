// SPDX-License-Identifier: MIT

// Package config loads the nataf command configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidConfig is returned by Validate for any rejected setting.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output modes.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// Config is the merged configuration of one invocation.
type Config struct {
	Marginals  []marginal.Spec  `koanf:"marginals" yaml:"marginals"`
	Joint      bool             `koanf:"joint" yaml:"joint"`
	CorrX      [][]float64      `koanf:"corr_x" yaml:"corr_x,omitempty"`
	CorrZ      [][]float64      `koanf:"corr_z" yaml:"corr_z,omitempty"`
	Solver     SolverConfig     `koanf:"solver" yaml:"solver"`
	Quadrature QuadratureConfig `koanf:"quadrature" yaml:"quadrature"`
	Samples    int              `koanf:"samples" yaml:"samples"`
	Seed       int64            `koanf:"seed" yaml:"seed"`
	Workers    int              `koanf:"workers" yaml:"workers"`
	Verbose    bool             `koanf:"verbose" yaml:"verbose"`
	Output     string           `koanf:"output" yaml:"output"`
}

// SolverConfig holds the ITAM parameters.
type SolverConfig struct {
	MaxIter    int     `koanf:"max_iter" yaml:"max_iter"`
	Beta       float64 `koanf:"beta" yaml:"beta"`
	Threshold1 float64 `koanf:"threshold1" yaml:"threshold1"`
	Threshold2 float64 `koanf:"threshold2" yaml:"threshold2"`
}

// QuadratureConfig holds the Gauss–Legendre grid parameters.
type QuadratureConfig struct {
	Order int     `koanf:"order" yaml:"order"`
	ZMax  float64 `koanf:"z_max" yaml:"z_max"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}

// Validate checks the settings that the engine would otherwise reject with a
// panic or a late error.
func (c *Config) Validate() error {
	if len(c.Marginals) == 0 {
		return invalid("at least one marginal is required")
	}
	if len(c.CorrX) > 0 && len(c.CorrZ) > 0 {
		return invalid("corr_x and corr_z are mutually exclusive")
	}
	if c.Samples <= 0 {
		return invalid("samples must be positive, got %d", c.Samples)
	}
	switch strings.ToLower(c.Output) {
	case OutputTable, OutputYAML:
	default:
		return invalid("unknown output mode %q (table|yaml)", c.Output)
	}
	if c.Workers < 0 {
		return invalid("workers must be >= 0, got %d", c.Workers)
	}
	s := c.Solver
	if s.MaxIter <= 0 {
		return invalid("solver.max_iter must be positive, got %d", s.MaxIter)
	}
	if math.IsNaN(s.Beta) || math.IsInf(s.Beta, 0) || s.Beta <= 0 {
		return invalid("solver.beta must be finite and positive, got %g", s.Beta)
	}
	if math.IsNaN(s.Threshold1) || math.IsNaN(s.Threshold2) || s.Threshold1 < 0 || s.Threshold2 < 0 {
		return invalid("solver thresholds must be non-negative, got %g and %g", s.Threshold1, s.Threshold2)
	}
	q := c.Quadrature
	if q.Order < 2 {
		return invalid("quadrature.order must be >= 2, got %d", q.Order)
	}
	if math.IsNaN(q.ZMax) || math.IsInf(q.ZMax, 0) || q.ZMax <= 0 {
		return invalid("quadrature.z_max must be finite and positive, got %g", q.ZMax)
	}
	return nil
}

// MarginalSet builds the marginal set described by Marginals and Joint.
func (c *Config) MarginalSet() (*marginal.Set, error) {
	return marginal.FromSpecs(c.Marginals, c.Joint)
}

// CorrelationX returns corr_x as a matrix, or nil when unset.
func (c *Config) CorrelationX() (*mat.SymDense, error) {
	return correlation("corr_x", c.CorrX)
}

// CorrelationZ returns corr_z as a matrix, or nil when unset.
func (c *Config) CorrelationZ() (*mat.SymDense, error) {
	return correlation("corr_z", c.CorrZ)
}

func correlation(key string, rows [][]float64) (*mat.SymDense, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	m, err := matrix.NewCorrelation(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return m, nil
}
