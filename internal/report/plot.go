// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nataf/nataf"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNothingToPlot indicates an empty series.
var ErrNothingToPlot = errors.New("report: nothing to plot")

// plotSize is the edge of the square PNG canvas.
const plotSize = 5 * vg.Inch

// log10Floor keeps exact zeros on the log axis.
const log10Floor = 1e-16

// PlotTrace saves log10(error1) and log10(error2) per iteration to path.
func PlotTrace(path string, tr nataf.Trace) error {
	if len(tr) == 0 {
		return ErrNothingToPlot
	}
	abs := make(plotter.XYs, len(tr))
	rel := make(plotter.XYs, len(tr))
	for i, p := range tr {
		abs[i] = plotter.XY{X: float64(p.Iteration), Y: math.Log10(math.Max(p.Abs, log10Floor))}
		rel[i] = plotter.XY{X: float64(p.Iteration), Y: math.Log10(math.Max(p.Rel, log10Floor))}
	}

	p := plot.New()
	p.Title.Text = "ITAM convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10 error"
	if err := plotutil.AddLinePoints(p, "error1 (abs)", abs, "error2 (rel)", rel); err != nil {
		return fmt.Errorf("plot trace: %w", err)
	}
	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// PlotScatter saves a scatter of columns i and j of x to path.
func PlotScatter(path string, x mat.Matrix, i, j int, labels []string) error {
	rows, cols := x.Dims()
	if rows == 0 || i >= cols || j >= cols {
		return ErrNothingToPlot
	}
	pts := make(plotter.XYs, rows)
	for r := 0; r < rows; r++ {
		pts[r] = plotter.XY{X: x.At(r, i), Y: x.At(r, j)}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plot scatter: %w", err)
	}
	s.GlyphStyle.Radius = vg.Points(1)

	p := plot.New()
	p.Title.Text = "Nataf samples"
	p.X.Label.Text = axisLabel(labels, i)
	p.Y.Label.Text = axisLabel(labels, j)
	p.Add(s)
	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func axisLabel(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("x%d", i)
}
