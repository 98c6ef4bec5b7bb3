// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/nataf/internal/config"
	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
marginals:
  - {name: uniform, params: {min: 0, max: 1}}
  - {name: lognormal, params: {mu: 0, sigma: 0.5}}
corr_x:
  - [1, 0.5]
  - [0.5, 1]
samples: 50
seed: 42
solver:
  max_iter: 30
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nataf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("samples", 0, "")
	fs.Int("workers", 0, "")
	fs.Float64("beta", 0, "")
	fs.String("output", "", "")
	fs.String("csv", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg, used, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	assert.Len(t, cfg.Marginals, 2)
	assert.Equal(t, "lognormal", cfg.Marginals[1].Name)
	assert.Equal(t, 0.5, cfg.Marginals[1].Params["sigma"])
	assert.Equal(t, [][]float64{{1, 0.5}, {0.5, 1}}, cfg.CorrX)
	assert.Equal(t, 50, cfg.Samples)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 30, cfg.Solver.MaxIter)

	// Untouched keys keep their defaults.
	assert.Equal(t, nataf.DefaultBeta, cfg.Solver.Beta)
	assert.Equal(t, nataf.DefaultThreshold2, cfg.Solver.Threshold2)
	assert.Equal(t, nataf.DefaultQuadratureOrder, cfg.Quadrature.Order)
	assert.Equal(t, config.OutputTable, cfg.Output)
}

func TestLoad_EnvOverFile(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("NATAF_SAMPLES", "75")
	t.Setenv("NATAF_SOLVER__BETA", "0.5")

	cfg, _, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Samples)
	assert.Equal(t, 0.5, cfg.Solver.Beta)
}

func TestLoad_FlagsOverEnv(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("NATAF_SAMPLES", "75")

	cfg, _, err := config.Load(path, newFlags(t, "--samples=99", "--output=YAML", "--csv=out.csv"))
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Samples)
	assert.Equal(t, config.OutputYAML, cfg.Output)
	// Unchanged flags do not override lower layers.
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, nataf.DefaultBeta, cfg.Solver.Beta)
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, _, err = config.Load(writeConfig(t, "samples: 10\n"), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		return config.Config{
			Marginals:  []marginal.Spec{{Name: "normal"}},
			Solver:     config.SolverConfig{MaxIter: 10, Beta: 1, Threshold1: 0.001, Threshold2: 0.01},
			Quadrature: config.QuadratureConfig{Order: 64, ZMax: 8},
			Samples:    10,
			Output:     config.OutputTable,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"no marginals", func(c *config.Config) { c.Marginals = nil }},
		{"both correlations", func(c *config.Config) {
			c.CorrX = [][]float64{{1}}
			c.CorrZ = [][]float64{{1}}
		}},
		{"zero samples", func(c *config.Config) { c.Samples = 0 }},
		{"unknown output", func(c *config.Config) { c.Output = "json" }},
		{"negative workers", func(c *config.Config) { c.Workers = -1 }},
		{"zero max_iter", func(c *config.Config) { c.Solver.MaxIter = 0 }},
		{"negative beta", func(c *config.Config) { c.Solver.Beta = -1 }},
		{"negative threshold", func(c *config.Config) { c.Solver.Threshold1 = -1 }},
		{"order one", func(c *config.Config) { c.Quadrature.Order = 1 }},
		{"zero z_max", func(c *config.Config) { c.Quadrature.ZMax = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}

	c := valid()
	assert.NoError(t, c.Validate())
}

func TestConfig_Builders(t *testing.T) {
	t.Parallel()

	c := config.Config{
		Marginals: []marginal.Spec{{Name: "uniform"}, {Name: "exponential"}},
		Joint:     true,
		CorrZ:     [][]float64{{1, 0.2}, {0.2, 1}},
	}
	set, err := c.MarginalSet()
	require.NoError(t, err)
	assert.Equal(t, marginal.Joint, set.Kind())

	cx, err := c.CorrelationX()
	require.NoError(t, err)
	assert.Nil(t, cx)

	cz, err := c.CorrelationZ()
	require.NoError(t, err)
	assert.Equal(t, 0.2, cz.At(1, 0))

	c.CorrZ = [][]float64{{1, 2}, {2, 1}}
	_, err = c.CorrelationZ()
	assert.Error(t, err)
}
