// SPDX-License-Identifier: MIT

// Package nataf: ITAM solver (Cx → Cz).
//
// Fixed point with multiplicative correction, starting from Cz⁰ = Cx:
//
//	Cx_est = DistortZ2X(Cz^k)
//	raw    = nan→0( (Cx / Cx_est)^β · Cz^k )        element-wise, off-diagonal
//	raw_ij = (max_ratio+1)/2 · Cz^k_ij  where |raw_ij| > 1
//	Cz^k+1 = NearestPSD(raw)
//
// max_ratio is max 1/|Cz^k_ij| over the non-zero entries of Cz^k. The
// iteration stops when error1 = ‖Cx − Cx_est‖_F ≤ threshold1 and
// error2 = |error1_k − error1_k−1| / error1_k−1 ≤ threshold2.
package nataf

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"gonum.org/v1/gonum/mat"
)

const opSolveDistortion = "SolveDistortion"

const (
	// referenceError seeds error1 before the first iteration.
	referenceError = 100.0

	// errorFloor is the level below which error1 is quadrature roundoff.
	// When two consecutive errors are both below it, error2 counts as zero.
	errorFloor = 1e-10
)

// TracePoint records the errors of one ITAM iteration.
type TracePoint struct {
	Iteration int     `yaml:"iteration"`
	Abs       float64 `yaml:"abs"` // error1: ‖Cx − Cx_est‖_F
	Rel       float64 `yaml:"rel"` // error2: relative change of error1
}

// Trace is the convergence history of SolveDistortion.
type Trace []TracePoint

// Abs returns the error1 series.
func (t Trace) Abs() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.Abs
	}
	return out
}

// Rel returns the error2 series.
func (t Trace) Rel() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.Rel
	}
	return out
}

// SolveResult is the outcome of SolveDistortion.
type SolveResult struct {
	Cz         *mat.SymDense
	Trace      Trace
	Iterations int
	Converged  bool
}

// SolveDistortion recovers the normal-space correlation Cz whose image under
// DistortZ2X reproduces cx for the marginals of set.
//
// Short-circuit: when cx is the identity or every marginal is Gaussian,
// Cz = cx with zero iterations and Converged = true.
//
// Non-convergence within WithMaxIter iterations is not an error; the latest
// iterate is returned with Converged = false.
//
// Options: WithMaxIter, WithBeta, WithThresholds, WithQuadrature,
// WithWorkers, WithLogger.
//
// Errors:
//   - marginal.ErrEmptySet, marginal.ErrInfiniteMoments.
//   - matrix validation sentinels for cx (shape, symmetry, unit diagonal, range),
//     matrix.ErrDimensionMismatch.
//   - ErrCorrelationRange when an iterate reaches |ρ| = 1.
//   - ErrClipDiverged when clipping leaves an entry outside [-1, 1].
//   - matrix.ErrEigenFailed from the PSD projection.
//   - ctx.Err() on cancellation.
func SolveDistortion(ctx context.Context, set *marginal.Set, cx mat.Symmetric, opts ...Option) (*SolveResult, error) {
	o := gatherOptions(opts...)
	if err := checkSet(set, cx); err != nil {
		return nil, natafErrorf(opSolveDistortion, err)
	}
	if err := matrix.ValidateCorrelation(cx); err != nil {
		return nil, natafErrorf(opSolveDistortion, err)
	}
	if matrix.IsIdentity(cx, matrix.DefaultEpsilon) || set.AllGaussian() {
		o.logger.Debug("itam skipped", "identity", matrix.IsIdentity(cx, matrix.DefaultEpsilon), "gaussian", set.AllGaussian())
		return &SolveResult{Cz: matrix.CloneSym(cx), Trace: Trace{}, Converged: true}, nil
	}

	cols, err := resolveSet(set, o)
	if err != nil {
		return nil, natafErrorf(opSolveDistortion, err)
	}
	g := legendreGrid(o.order, o.zmax)

	o.logger.Info("itam start", "dim", set.Dim(), "max_iter", o.maxIter, "beta", o.beta)

	res := &SolveResult{Cz: matrix.CloneSym(cx), Trace: make(Trace, 0, o.maxIter)}
	prev := referenceError
	for k := 0; k < o.maxIter; k++ {
		if err := ctx.Err(); err != nil {
			return nil, natafErrorf(opSolveDistortion, err)
		}

		est, err := distortZ2X(ctx, cols, g, res.Cz, o.workers)
		if err != nil {
			return nil, natafErrorf(opSolveDistortion, fmt.Errorf("iteration %d: %w", k, err))
		}
		raw, err := itamUpdate(cx, est, res.Cz, o.beta)
		if err != nil {
			return nil, natafErrorf(opSolveDistortion, fmt.Errorf("iteration %d: %w", k, err))
		}
		next, err := matrix.NearestPSD(raw)
		if err != nil {
			return nil, natafErrorf(opSolveDistortion, fmt.Errorf("iteration %d: %w", k, err))
		}

		e1, err := matrix.FrobeniusDistance(cx, est)
		if err != nil {
			return nil, natafErrorf(opSolveDistortion, err)
		}
		e2 := relativeChange(e1, prev)
		prev = e1

		res.Cz = next
		res.Iterations = k + 1
		res.Trace = append(res.Trace, TracePoint{Iteration: k, Abs: e1, Rel: e2})
		o.logger.Debug("itam iteration", "iteration", k, "abs", e1, "rel", e2)

		if e1 <= o.threshold1 && e2 <= o.threshold2 {
			res.Converged = true
			break
		}
	}

	o.logger.Info("itam done", "iterations", res.Iterations, "converged", res.Converged)
	return res, nil
}

// relativeChange returns |e - prev| / prev, or zero once both errors are
// below errorFloor.
func relativeChange(e, prev float64) float64 {
	if e <= errorFloor && prev <= errorFloor {
		return 0
	}
	return math.Abs(e-prev) / prev
}

// itamUpdate applies the damped multiplicative correction and the clipping
// policy to the off-diagonal entries. The diagonal is 1.
func itamUpdate(cx, est, cz mat.Symmetric, beta float64) (*mat.SymDense, error) {
	n := cz.SymmetricDim()

	maxRatio := 1.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v := math.Abs(cz.At(i, j)); v > 0 && 1/v > maxRatio {
				maxRatio = 1 / v
			}
		}
	}
	clip := (maxRatio + 1) / 2

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			v := math.Pow(cx.At(i, j)/est.At(i, j), beta) * cz.At(i, j)
			if math.IsNaN(v) {
				v = 0
			}
			if v > 1 || v < -1 {
				v = clip * cz.At(i, j)
				if v > 1 || v < -1 || math.IsNaN(v) {
					return nil, fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrClipDiverged)
				}
			}
			out.SetSym(i, j, v)
		}
	}
	return out, nil
}
