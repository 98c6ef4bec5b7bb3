// SPDX-License-Identifier: MIT
// Package matrix: nearest positive semi-definite correlation matrix.
//
// Purpose:
//   - Repair a symmetric "almost correlation" matrix into a valid one:
//     symmetric, unit diagonal, positive semi-definite.
//
// Implementation:
//   - Higham (2002) alternating projections with Dykstra's correction in the
//     unweighted Frobenius norm:
//     R = Y − ΔS;  X = P_S(R);  ΔS = X − R;  Y = P_U(X)
//     where P_S clamps eigenvalues from below (PSD cone) and P_U resets the
//     diagonal to 1 (unit-diagonal affine set).
//   - A final P_S followed by D^{-1/2}·X·D^{-1/2} rescaling guarantees both
//     constraints exactly on return, whatever the iteration budget.
//
// Complexity:
//   - Time O(k·n³) for k iterations (one symmetric eigendecomposition each).

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opNearestPSD = "NearestPSD"
	opProjectPSD = "ProjectPSD"
)

// NearestPSD returns the nearest correlation matrix to a.
//
// Inputs:
//   - a: symmetric matrix with finite entries (diagonal need not be 1).
//   - opts: WithPSDIterations, WithEigenFloor.
//
// Returns:
//   - *mat.SymDense: symmetric, unit diagonal, eigenvalues ≥ floor (up to
//     rounding of the final rescale).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNaNInf (validation).
//   - ErrEigenFailed (eigen decomposition did not converge).
func NearestPSD(a mat.Symmetric, opts ...Option) (*mat.SymDense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opNearestPSD, err)
	}
	if err := ValidateFinite(a); err != nil {
		return nil, matrixErrorf(opNearestPSD, err)
	}
	n := a.SymmetricDim()

	y := CloneSym(a)
	deltaS := mat.NewSymDense(n, nil)
	r := mat.NewSymDense(n, nil)
	for k := 0; k < o.iterations; k++ {
		// R = Y − ΔS
		subSymTo(r, y, deltaS)
		x, err := ProjectPSD(r, o.eigenFloor)
		if err != nil {
			return nil, matrixErrorf(opNearestPSD, err)
		}
		// ΔS = X − R
		subSymTo(deltaS, x, r)
		// Y = P_U(X)
		y.CopySym(x)
		for i := 0; i < n; i++ {
			y.SetSym(i, i, 1)
		}
	}

	x, err := ProjectPSD(y, o.eigenFloor)
	if err != nil {
		return nil, matrixErrorf(opNearestPSD, err)
	}
	return unitDiagonal(x), nil
}

// ProjectPSD clamps the eigenvalues of a from below at floor (≥ 0) and
// reassembles V·diag(λ⁺)·Vᵀ. The diagonal is not touched.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrNaNInf, ErrEigenFailed.
// Complexity: O(n³).
func ProjectPSD(a mat.Symmetric, floor float64) (*mat.SymDense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opProjectPSD, err)
	}
	if math.IsNaN(floor) || math.IsInf(floor, 0) || floor < 0 {
		return nil, matrixErrorf(opProjectPSD, ErrNaNInf)
	}
	n := a.SymmetricDim()
	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, matrixErrorf(opProjectPSD, ErrEigenFailed)
	}
	values := es.Values(nil)
	var v mat.Dense
	es.VectorsTo(&v)

	// scaled = V·diag(max(λ, floor))
	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		l := values[j]
		if l < floor {
			l = floor
		}
		for i := 0; i < n; i++ {
			scaled.Set(i, j, v.At(i, j)*l)
		}
	}
	var full mat.Dense
	full.Mul(scaled, v.T())

	// Rounding leaves full asymmetric in the last bits.
	out, err := Symmetrize(&full)
	if err != nil {
		return nil, matrixErrorf(opProjectPSD, err)
	}
	return out, nil
}

// unitDiagonal rescales a PSD matrix to unit diagonal: D^{-1/2}·X·D^{-1/2}.
// A non-positive diagonal entry is replaced by an isolated unit variable.
func unitDiagonal(x *mat.SymDense) *mat.SymDense {
	n := x.SymmetricDim()
	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		d := x.At(i, i)
		if d > 0 {
			scale[i] = 1 / math.Sqrt(d)
		}
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := x.At(i, j) * scale[i] * scale[j]
			// Rounding can push |v| a hair above 1.
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			out.SetSym(i, j, v)
		}
		out.SetSym(i, i, 1)
	}
	return out
}
