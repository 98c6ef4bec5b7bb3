// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/nataf/nataf"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// SolveDocument is the persisted outcome of a solve or distort run.
type SolveDocument struct {
	Marginals  []string    `yaml:"marginals"`
	CorrX      [][]float64 `yaml:"corr_x"`
	CorrZ      [][]float64 `yaml:"corr_z"`
	Iterations int         `yaml:"iterations"`
	Converged  bool        `yaml:"converged"`
	Trace      nataf.Trace `yaml:"trace,omitempty"`
}

// SampleDocument summarises a sample run.
type SampleDocument struct {
	Samples     int         `yaml:"samples"`
	Seed        int64       `yaml:"seed"`
	TargetCorrX [][]float64 `yaml:"target_corr_x"`
	SampleCorrX [][]float64 `yaml:"sample_corr_x"`
	MaxAbsError float64     `yaml:"max_abs_error"`
	Converged   bool        `yaml:"converged"`
	CSV         string      `yaml:"csv,omitempty"`
	ScatterPlot string      `yaml:"scatter_plot,omitempty"`
}

// Rows copies m into a row-major slice of slices for encoding.
func Rows(m mat.Matrix) [][]float64 {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// WriteYAML encodes v with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// SaveYAML writes v to path.
func SaveYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteYAML(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
