// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"
	"math"
)

// Marginal is the capability set required from a one-dimensional distribution.
// Implementations must be safe for concurrent use by multiple goroutines.
type Marginal interface {
	// CDF returns P(X ≤ x).
	CDF(x float64) float64
	// ICDF returns the p-quantile, the inverse of CDF on (0, 1).
	ICDF(p float64) float64
	// PDF returns the density at x.
	PDF(x float64) float64
	// Moments returns the mean and the variance.
	Moments() (mean, variance float64)
}

// Gaussian is implemented by marginals that know whether they are normal.
// A linear map of a normal variable keeps its correlation unchanged, so the
// distortion solver can be skipped when every marginal reports true.
type Gaussian interface {
	IsGaussian() bool
}

// IsGaussian reports whether m declares itself normal.
func IsGaussian(m Marginal) bool {
	g, ok := m.(Gaussian)
	return ok && g.IsGaussian()
}

// CheckMoments fails with ErrInfiniteMoments unless m has a finite mean and a
// finite, positive variance.
func CheckMoments(m Marginal) error {
	if m == nil {
		return ErrNilMarginal
	}
	mean, variance := m.Moments()
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(variance) || math.IsInf(variance, 0) || variance <= 0 {
		return fmt.Errorf("%v: mean=%g variance=%g: %w", m, mean, variance, ErrInfiniteMoments)
	}
	return nil
}

// CDFs evaluates m.CDF over xs into a fresh slice.
func CDFs(m Marginal, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.CDF(x)
	}
	return out
}

// ICDFs evaluates m.ICDF over ps into a fresh slice.
func ICDFs(m Marginal, ps []float64) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = m.ICDF(p)
	}
	return out
}

// PDFs evaluates m.PDF over xs into a fresh slice.
func PDFs(m Marginal, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.PDF(x)
	}
	return out
}
