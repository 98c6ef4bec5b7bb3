// SPDX-License-Identifier: MIT

// Package nataf: the isoprobabilistic transform orchestrator.
//
// New resolves the correlation pair (Cx, Cz) once:
//
//	neither given  → Cx = Cz = I
//	Cx given       → Cz = SolveDistortion(Cx)
//	Cz given       → Cx = DistortZ2X(Cz)
//
// and factorises H = chol(Cz). Afterwards the Transform is read-only.
package nataf

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	opNew        = "New"
	opToNormal   = "ToNormal"
	opToPhysical = "ToPhysical"
	opRun        = "Run"
	opGenerate   = "Generate"
)

// Transform maps samples between physical space and standard normal space.
// It is immutable after New and safe for concurrent use.
type Transform struct {
	set   *marginal.Set
	cols  []marginal.Marginal
	corrX *mat.SymDense
	corrZ *mat.SymDense
	h     *mat.TriDense

	trace      Trace
	iterations int
	converged  bool
}

// New builds a Transform for the marginals of set.
//
// Options: WithCorrX or WithCorrZ (at most one), plus every solver and
// integrator option.
//
// Errors:
//   - ErrConflictingCorrelation when both correlations are given.
//   - marginal.ErrEmptySet for a nil set.
//   - matrix validation sentinels and matrix.ErrDimensionMismatch for the
//     given correlation.
//   - any error of SolveDistortion or DistortZ2X.
//   - matrix.ErrNotPositiveDefinite when Cz cannot be factorised.
func New(ctx context.Context, set *marginal.Set, opts ...Option) (*Transform, error) {
	o := gatherOptions(opts...)
	if set == nil {
		return nil, natafErrorf(opNew, marginal.ErrEmptySet)
	}
	if o.corrX != nil && o.corrZ != nil {
		return nil, natafErrorf(opNew, ErrConflictingCorrelation)
	}

	t := &Transform{set: set, cols: set.Columns(), converged: true}
	switch {
	case o.corrX != nil:
		res, err := SolveDistortion(ctx, set, o.corrX, opts...)
		if err != nil {
			return nil, natafErrorf(opNew, err)
		}
		t.corrX = matrix.CloneSym(o.corrX)
		t.corrZ = res.Cz
		t.trace = res.Trace
		t.iterations = res.Iterations
		t.converged = res.Converged

	case o.corrZ != nil:
		if err := checkSet(set, o.corrZ); err != nil {
			return nil, natafErrorf(opNew, err)
		}
		if err := matrix.ValidateCorrelation(o.corrZ); err != nil {
			return nil, natafErrorf(opNew, err)
		}
		t.corrZ = matrix.CloneSym(o.corrZ)
		if matrix.IsIdentity(o.corrZ, matrix.DefaultEpsilon) || set.AllGaussian() {
			t.corrX = matrix.CloneSym(o.corrZ)
			break
		}
		cx, err := DistortZ2X(ctx, set, o.corrZ, opts...)
		if err != nil {
			return nil, natafErrorf(opNew, err)
		}
		t.corrX = cx

	default:
		id, err := matrix.Identity(set.Dim())
		if err != nil {
			return nil, natafErrorf(opNew, err)
		}
		t.corrX = id
		t.corrZ = matrix.CloneSym(id)
	}

	h, err := matrix.CholeskyLower(t.corrZ)
	if err != nil {
		return nil, natafErrorf(opNew, err)
	}
	t.h = h
	return t, nil
}

// Dim returns the number of dimensions.
func (t *Transform) Dim() int { return len(t.cols) }

// Marginals returns the marginal set the transform was built for.
func (t *Transform) Marginals() *marginal.Set { return t.set }

// CorrX returns a copy of the physical-space correlation matrix.
func (t *Transform) CorrX() *mat.SymDense { return matrix.CloneSym(t.corrX) }

// CorrZ returns a copy of the normal-space correlation matrix.
func (t *Transform) CorrZ() *mat.SymDense { return matrix.CloneSym(t.corrZ) }

// Cholesky returns a copy of the lower Cholesky factor of CorrZ.
func (t *Transform) Cholesky() *mat.TriDense {
	n, _ := t.h.Triangle()
	h := mat.NewTriDense(n, mat.Lower, nil)
	h.Copy(t.h)
	return h
}

// Trace returns the solver history; empty unless SolveDistortion iterated.
func (t *Transform) Trace() Trace {
	out := make(Trace, len(t.trace))
	copy(out, t.trace)
	return out
}

// Iterations returns the number of solver iterations performed by New.
func (t *Transform) Iterations() int { return t.iterations }

// Converged reports whether the solver met its thresholds. It is true when no
// solver run was needed.
func (t *Transform) Converged() bool { return t.converged }

// ToNormal maps physical samples x (one row per realisation) to standard
// normal space column by column: Z_ij = Φ⁻¹(F_j(X_ij)).
//
// With jacobian set it also returns, per row, Jxz = diag(φ(z)/f(x))⁻¹·H.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrInvalidDimensions,
// matrix.ErrDimensionMismatch.
func (t *Transform) ToNormal(x mat.Matrix, jacobian bool) (*mat.Dense, []*mat.Dense, error) {
	if err := matrix.ValidateColumns(x, t.Dim()); err != nil {
		return nil, nil, natafErrorf(opToNormal, err)
	}
	rows, d := x.Dims()
	z := mat.NewDense(rows, d, nil)
	dens := make([][]float64, d) // f_j(x_ij), only with jacobian
	for j, m := range t.cols {
		xs := mat.Col(nil, j, x)
		ps := marginal.CDFs(m, xs)
		for i, p := range ps {
			z.Set(i, j, distuv.UnitNormal.Quantile(p))
		}
		if jacobian {
			dens[j] = marginal.PDFs(m, xs)
		}
	}
	if !jacobian {
		return z, nil, nil
	}

	jac := make([]*mat.Dense, rows)
	for i := 0; i < rows; i++ {
		// Solving diag(φ/f)·J = H scales row r of H by f_r/φ_r.
		ji := mat.NewDense(d, d, nil)
		for r := 0; r < d; r++ {
			s := dens[r][i] / distuv.UnitNormal.Prob(z.At(i, r))
			for c := 0; c <= r; c++ {
				ji.Set(r, c, s*t.h.At(r, c))
			}
		}
		jac[i] = ji
	}
	return z, jac, nil
}

// ToPhysical maps standard normal samples z to physical space column by
// column: X_ij = F_j⁻¹(Φ(Z_ij)).
//
// With jacobian set it also returns, per row, Jzx = H⁻¹·diag(f(x)/φ(z)),
// computed by a triangular solve.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrInvalidDimensions,
// matrix.ErrDimensionMismatch.
func (t *Transform) ToPhysical(z mat.Matrix, jacobian bool) (*mat.Dense, []*mat.Dense, error) {
	if err := matrix.ValidateColumns(z, t.Dim()); err != nil {
		return nil, nil, natafErrorf(opToPhysical, err)
	}
	rows, d := z.Dims()
	x := mat.NewDense(rows, d, nil)
	dens := make([][]float64, d) // f_j(x_ij), only with jacobian
	ps := make([]float64, rows)
	for j, m := range t.cols {
		for i := range ps {
			ps[i] = distuv.UnitNormal.CDF(z.At(i, j))
		}
		xs := marginal.ICDFs(m, ps)
		x.SetCol(j, xs)
		if jacobian {
			dens[j] = marginal.PDFs(m, xs)
		}
	}
	if !jacobian {
		return x, nil, nil
	}

	jac := make([]*mat.Dense, rows)
	diag := make([]float64, d)
	for i := 0; i < rows; i++ {
		for r := 0; r < d; r++ {
			diag[r] = dens[r][i] / distuv.UnitNormal.Prob(z.At(i, r))
		}
		ji, err := matrix.SolveLower(t.h, mat.NewDiagDense(d, diag))
		if err != nil {
			return nil, nil, natafErrorf(opToPhysical, fmt.Errorf("row %d: %w", i, err))
		}
		jac[i] = ji
	}
	return x, jac, nil
}

// RunInput selects the conversions performed by Run.
type RunInput struct {
	SamplesX mat.Matrix // physical samples to map to normal space
	SamplesZ mat.Matrix // normal samples to map to physical space
	Jacobian bool
}

// RunOutput holds both sample sets after Run.
//
// With only SamplesX given, SamplesX is a copy of the input and SamplesZ its
// image; symmetrically for SamplesZ. With both given, each output is the
// image of the other input and the two conversions are independent.
type RunOutput struct {
	SamplesX   *mat.Dense
	SamplesZ   *mat.Dense
	JacobianXZ []*mat.Dense // per row of the input SamplesX
	JacobianZX []*mat.Dense // per row of the input SamplesZ
}

// Run converts the supplied sample sets.
//
// Errors: ErrNoSamples when neither set is given, plus the errors of ToNormal
// and ToPhysical.
func (t *Transform) Run(in RunInput) (*RunOutput, error) {
	if in.SamplesX == nil && in.SamplesZ == nil {
		return nil, natafErrorf(opRun, ErrNoSamples)
	}
	out := &RunOutput{}
	if in.SamplesX != nil {
		z, jac, err := t.ToNormal(in.SamplesX, in.Jacobian)
		if err != nil {
			return nil, natafErrorf(opRun, err)
		}
		out.SamplesZ, out.JacobianXZ = z, jac
		out.SamplesX = mat.DenseCopyOf(in.SamplesX)
	}
	if in.SamplesZ != nil {
		x, jac, err := t.ToPhysical(in.SamplesZ, in.Jacobian)
		if err != nil {
			return nil, natafErrorf(opRun, err)
		}
		out.SamplesX, out.JacobianZX = x, jac
		if in.SamplesX == nil {
			out.SamplesZ = mat.DenseCopyOf(in.SamplesZ)
		}
	}
	return out, nil
}

// Generate draws n physical-space realisations: n independent standard normal
// rows from rnd, correlated with H, then mapped through the marginals. A nil
// rnd uses NewRand(DefaultSeed).
//
// Errors: ErrInvalidSampleCount when n <= 0.
func (t *Transform) Generate(n int, rnd *rand.Rand) (*mat.Dense, error) {
	if n <= 0 {
		return nil, natafErrorf(opGenerate, fmt.Errorf("n=%d: %w", n, ErrInvalidSampleCount))
	}
	if rnd == nil {
		rnd = NewRand(DefaultSeed)
	}
	u := standardNormal(rnd, n, t.Dim())
	z, err := correlate(t.h, u)
	if err != nil {
		return nil, natafErrorf(opGenerate, err)
	}
	x, _, err := t.ToPhysical(z, false)
	if err != nil {
		return nil, natafErrorf(opGenerate, err)
	}
	return x, nil
}

// GenerateNormal draws n correlated standard normal rows, the normal-space
// counterpart of Generate.
//
// Errors: ErrInvalidSampleCount when n <= 0.
func (t *Transform) GenerateNormal(n int, rnd *rand.Rand) (*mat.Dense, error) {
	if n <= 0 {
		return nil, natafErrorf(opGenerate, fmt.Errorf("n=%d: %w", n, ErrInvalidSampleCount))
	}
	if rnd == nil {
		rnd = NewRand(DefaultSeed)
	}
	z, err := correlate(t.h, standardNormal(rnd, n, t.Dim()))
	if err != nil {
		return nil, natafErrorf(opGenerate, err)
	}
	return z, nil
}

// Decorrelate maps correlated normal rows back to independent ones using the
// cached Cholesky factor.
func (t *Transform) Decorrelate(z mat.Matrix) (*mat.Dense, error) {
	u, err := decorrelate(t.h, z)
	if err != nil {
		return nil, natafErrorf(opDecorrelate, err)
	}
	return u, nil
}
