// SPDX-License-Identifier: MIT
// Package matrix: factorisation and triangular solves for correlation matrices.
//
// Purpose:
//   - Lower Cholesky factor H with H·Hᵀ = C (the precondition of every
//     correlated-sample transform).
//   - Triangular solves against H, numerically preferred over forming H⁻¹.
//
// Notes:
//   - Kernels delegate to gonum/mat (LAPACK-backed) and only add validation
//     and sentinel errors on top.

package matrix

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

const (
	opCholeskyLower = "CholeskyLower"
	opSolveLower    = "SolveLower"
)

// CholeskyLower computes the lower-triangular factor H of a symmetric
// positive-definite matrix c such that H·Hᵀ = c.
//
// Implementation:
//   - Stage 1: validate c (non-nil, square, finite).
//   - Stage 2: factorise with mat.Cholesky; a failed factorisation means c is
//     not positive definite (semi-definite with a zero pivot included).
//   - Stage 3: extract the lower factor into a fresh *mat.TriDense.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNaNInf (validation).
//   - ErrNotPositiveDefinite (factorisation failure).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func CholeskyLower(c mat.Symmetric) (*mat.TriDense, error) {
	if err := ValidateSquare(c); err != nil {
		return nil, matrixErrorf(opCholeskyLower, err)
	}
	if err := ValidateFinite(c); err != nil {
		return nil, matrixErrorf(opCholeskyLower, err)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(c); !ok {
		return nil, matrixErrorf(opCholeskyLower, ErrNotPositiveDefinite)
	}
	var h mat.TriDense
	chol.LTo(&h)
	return &h, nil
}

// SolveLower solves H·X = B for X where H is lower triangular.
//
// Inputs:
//   - h: lower-triangular n×n factor.
//   - b: n×k right-hand side.
//
// Returns:
//   - *mat.Dense: freshly allocated n×k solution.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (b.Rows != n).
//   - ErrNotPositiveDefinite when h is exactly singular (zero on the diagonal).
//
// Complexity:
//   - Time O(n²·k), Space O(n·k).
//
// Notes:
//   - mat.Condition is a warning about conditioning, not a failure; the
//     solution is still returned in that case.
func SolveLower(h mat.Triangular, b mat.Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(h); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	n, _ := h.Dims()
	rb, _ := b.Dims()
	if rb != n {
		return nil, matrixErrorf(opSolveLower, ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		if h.At(i, i) == 0 {
			return nil, matrixErrorf(opSolveLower, ErrNotPositiveDefinite)
		}
	}
	var x mat.Dense
	if err := x.Solve(h, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, matrixErrorf(opSolveLower, err)
		}
	}
	return &x, nil
}

// LowerTimesRows applies H to every row of u: out = (H·uᵀ)ᵀ = u·Hᵀ.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (u.Cols != n).
// Complexity: O(r·n²).
func LowerTimesRows(h mat.Triangular, u mat.Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(h); err != nil {
		return nil, matrixErrorf("LowerTimesRows", err)
	}
	n, _ := h.Dims()
	if err := ValidateColumns(u, n); err != nil {
		return nil, matrixErrorf("LowerTimesRows", err)
	}
	var out mat.Dense
	out.Mul(u, h.T())
	return &out, nil
}
