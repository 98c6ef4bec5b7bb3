// SPDX-License-Identifier: MIT

// Package nataf: bivariate correlation integrator (Cz → Cx).
//
// For a normal correlation ρ between Z_i and Z_j the implied physical
// correlation is
//
//	Cx_ij = 1/(σ_i σ_j) ∬ g_i(ξ) g_j(η) φ2(ξ, η; ρ) dξ dη
//	g_k(t) = F_k⁻¹(Φ(t)) − μ_k
//
// evaluated with a tensor-product Gauss–Legendre rule on [-z_max, z_max]².
// g_k is evaluated once per node (order calls), the double sum costs order².
package nataf

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const (
	opIntegratePair = "IntegratePair"
	opDistortZ2X    = "DistortZ2X"
)

// column is a marginal resolved against a grid: weighted centred quantiles
// w_k·g(t_k) and the standard deviation.
type column struct {
	wg    []float64
	sigma float64
}

// resolveColumn evaluates g on the grid nodes. Nodes whose quantile is not
// finite contribute nothing; their bivariate density is below 1e-14 anyway.
// The moments of m must already be checked.
func resolveColumn(m marginal.Marginal, g *grid) column {
	mean, variance := m.Moments()
	wg := marginal.ICDFs(m, g.probs)
	for k, q := range wg {
		v := q - mean
		if math.IsNaN(v) || math.IsInf(v, 0) {
			wg[k] = 0
			continue
		}
		wg[k] = g.weights[k] * v
	}
	return column{wg: wg, sigma: math.Sqrt(variance)}
}

// pairCorrelation sums the quadrature for one pair. rho is assumed to lie in
// (-1, 1).
func pairCorrelation(a, b column, g *grid, rho float64) float64 {
	// Independent normals give independent physical variables.
	if rho == 0 {
		return 0
	}
	omr := 1 - rho*rho
	norm := 1 / (2 * math.Pi * math.Sqrt(omr))
	k := 1 / (2 * omr)

	n := len(g.nodes)
	sq := make([]float64, n)
	for i, t := range g.nodes {
		sq[i] = t * t
	}

	var total float64
	for p := 0; p < n; p++ {
		if a.wg[p] == 0 {
			continue
		}
		xi := g.nodes[p]
		var inner float64
		for q := 0; q < n; q++ {
			if b.wg[q] == 0 {
				continue
			}
			e := sq[p] - 2*rho*xi*g.nodes[q] + sq[q]
			inner += b.wg[q] * math.Exp(-k*e)
		}
		total += a.wg[p] * inner
	}
	return norm * total / (a.sigma * b.sigma)
}

func checkRho(rho float64) error {
	if math.IsNaN(rho) || rho <= -1 || rho >= 1 {
		return fmt.Errorf("rho=%g: %w", rho, ErrCorrelationRange)
	}
	return nil
}

// IntegratePair returns the physical-space correlation of two marginals whose
// normal-space images have correlation rho.
//
// Options: WithQuadrature.
//
// Errors:
//   - marginal.ErrNilMarginal, marginal.ErrInfiniteMoments.
//   - ErrCorrelationRange when rho is NaN or |rho| >= 1.
//
// Complexity: O(order²).
func IntegratePair(mi, mj marginal.Marginal, rho float64, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	if err := checkRho(rho); err != nil {
		return 0, natafErrorf(opIntegratePair, err)
	}
	for _, m := range []marginal.Marginal{mi, mj} {
		if err := marginal.CheckMoments(m); err != nil {
			return 0, natafErrorf(opIntegratePair, err)
		}
	}
	g := legendreGrid(o.order, o.zmax)
	return pairCorrelation(resolveColumn(mi, g), resolveColumn(mj, g), g, rho), nil
}

// DistortZ2X returns the physical-space correlation matrix implied by the
// normal-space matrix cz for the marginals of set. The diagonal is 1.
//
// Pairs i<j are evaluated concurrently by at most WithWorkers goroutines; each
// pair is a sequential sum, so the result does not depend on the worker count.
//
// Options: WithQuadrature, WithWorkers.
//
// Errors:
//   - marginal.ErrEmptySet (nil set), marginal.ErrInfiniteMoments.
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrNaNInf,
//     matrix.ErrDimensionMismatch (cz dimension != set.Dim()).
//   - ErrCorrelationRange for an off-diagonal entry with |ρ| >= 1.
//   - ctx.Err() on cancellation.
//
// Complexity: O(d²·order²) work.
func DistortZ2X(ctx context.Context, set *marginal.Set, cz mat.Symmetric, opts ...Option) (*mat.SymDense, error) {
	o := gatherOptions(opts...)
	if err := checkSet(set, cz); err != nil {
		return nil, natafErrorf(opDistortZ2X, err)
	}
	cols, err := resolveSet(set, o)
	if err != nil {
		return nil, natafErrorf(opDistortZ2X, err)
	}
	out, err := distortZ2X(ctx, cols, legendreGrid(o.order, o.zmax), cz, o.workers)
	if err != nil {
		return nil, natafErrorf(opDistortZ2X, err)
	}
	return out, nil
}

// checkSet validates the pairing of a marginal set with a square matrix.
func checkSet(set *marginal.Set, c mat.Symmetric) error {
	if set == nil {
		return marginal.ErrEmptySet
	}
	if err := matrix.ValidateSquare(c); err != nil {
		return err
	}
	if err := matrix.ValidateFinite(c); err != nil {
		return err
	}
	if n := c.SymmetricDim(); n != set.Dim() {
		return fmt.Errorf("matrix %d×%d, %d marginals: %w", n, n, set.Dim(), matrix.ErrDimensionMismatch)
	}
	return nil
}

// resolveSet resolves every column of set on the configured grid.
func resolveSet(set *marginal.Set, o options) ([]column, error) {
	if err := set.CheckMoments(); err != nil {
		return nil, err
	}
	g := legendreGrid(o.order, o.zmax)
	ms := set.Columns()
	cols := make([]column, len(ms))
	for j, m := range ms {
		cols[j] = resolveColumn(m, g)
	}
	return cols, nil
}

// distortZ2X fans the i<j pairs out over an errgroup.
func distortZ2X(ctx context.Context, cols []column, g *grid, cz mat.Symmetric, workers int) (*mat.SymDense, error) {
	d := len(cols)
	type pair struct{ i, j int }
	pairs := make([]pair, 0, d*(d-1)/2)
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			rho := cz.At(i, j)
			if err := checkRho(rho); err != nil {
				return nil, fmt.Errorf("(%d,%d): %w", i, j, err)
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	vals := make([]float64, len(pairs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for idx, p := range pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vals[idx] = pairCorrelation(cols[p.i], cols[p.j], g, cz.At(p.i, p.j))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		out.SetSym(i, i, 1)
	}
	for idx, p := range pairs {
		out.SetSym(p.i, p.j, vals[idx])
	}
	return out, nil
}
