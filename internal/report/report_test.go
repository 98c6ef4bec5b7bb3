// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/nataf/internal/report"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatrixTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := mat.NewSymDense(2, []float64{1, 0.517638, 0.517638, 1})
	report.Matrix(&buf, "Cz", m, []string{"u1"})

	out := buf.String()
	assert.NotContains(t, out, "U1", "labels keep their case")
	assert.Contains(t, out, "Cz")
	assert.Contains(t, out, "u1")
	assert.Contains(t, out, "1") // unlabeled second axis falls back to the index
	assert.Contains(t, out, "0.517638")
}

func TestTraceTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	report.Trace(&buf, nataf.Trace{{Iteration: 0, Abs: 0.02, Rel: 0.9998}})
	assert.Contains(t, buf.String(), "0.9998")
	assert.Contains(t, buf.String(), "error1 (abs)")
	assert.NotContains(t, buf.String(), "ERROR1")

	buf.Reset()
	report.Trace(&buf, nil)
	assert.Equal(t, "(no iterations)\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	doc := report.SolveDocument{
		Marginals:  []string{"uniform(min=0, max=1)"},
		CorrZ:      report.Rows(mat.NewSymDense(1, []float64{1})),
		Iterations: 3,
		Converged:  true,
		Trace:      nataf.Trace{{Iteration: 0, Abs: 0.5, Rel: 0.25}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, doc))

	out := buf.String()
	assert.Contains(t, out, "iterations: 3")
	assert.Contains(t, out, "converged: true")
	assert.Contains(t, out, "abs: 0.5")
	assert.Contains(t, out, "corr_z:")
}

func TestSaveYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, report.SaveYAML(path, map[string]int{"samples": 5}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "samples: 5\n", string(b))
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{0.1, 2, -3.5, 1e-9})
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, m, []string{"a", "b"}))
	assert.True(t, strings.HasPrefix(buf.String(), "a,b\n"))

	got, header, err := report.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	assert.True(t, mat.Equal(m, got))
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := report.ReadCSV(strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, report.ErrEmptyCSV)

	_, _, err = report.ReadCSV(strings.NewReader("1,2\n3,x\n"))
	assert.Error(t, err)

	got, header, err := report.ReadCSV(strings.NewReader("1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Nil(t, header)
	r, c := got.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
}

func TestPlots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.png")
	require.NoError(t, report.PlotTrace(tracePath, nataf.Trace{
		{Iteration: 0, Abs: 0.02, Rel: 0.99},
		{Iteration: 1, Abs: 4e-4, Rel: 0.98},
		{Iteration: 2, Abs: 0, Rel: 0},
	}))
	info, err := os.Stat(tracePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	scatterPath := filepath.Join(dir, "scatter.png")
	x := mat.NewDense(3, 2, []float64{0.1, 0.2, 0.5, 0.4, 0.9, 0.8})
	require.NoError(t, report.PlotScatter(scatterPath, x, 0, 1, nil))
	_, err = os.Stat(scatterPath)
	assert.NoError(t, err)

	assert.ErrorIs(t, report.PlotTrace(filepath.Join(dir, "none.png"), nil), report.ErrNothingToPlot)
	assert.ErrorIs(t, report.PlotScatter(scatterPath, x, 0, 2, nil), report.ErrNothingToPlot)
}
