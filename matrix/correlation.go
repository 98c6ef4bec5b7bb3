// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Constructors and predicates for correlation matrices stored as *mat.SymDense.
//
// Determinism:
//   - Fixed i→j traversal; no randomness; fresh allocations only.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operation name constants for unified error wrapping.
const (
	opIdentity       = "Identity"
	opNewCorrelation = "NewCorrelation"
	opSymmetrize     = "Symmetrize"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Identity returns the n×n identity correlation matrix.
//
// Errors: ErrInvalidDimensions when n <= 0.
// Complexity: O(n²) time and space.
func Identity(n int) (*mat.SymDense, error) {
	if n <= 0 {
		return nil, matrixErrorf(opIdentity, ErrInvalidDimensions)
	}
	id := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		id.SetSym(i, i, 1)
	}
	return id, nil
}

// NewCorrelation builds a correlation matrix from row slices and validates it
// with ValidateCorrelation. The rows are copied; the caller keeps ownership.
//
// Implementation:
//   - Stage 1: check every row has len(rows) entries (ErrNonSquare otherwise).
//   - Stage 2: copy into a *mat.Dense and validate symmetry/diagonal/bounds.
//   - Stage 3: copy the upper triangle into a *mat.SymDense.
//
// Errors: ErrInvalidDimensions, ErrNonSquare, ErrNaNInf, ErrAsymmetry,
// ErrNotUnitDiagonal, ErrOutOfRange.
// Complexity: O(n²).
func NewCorrelation(rows [][]float64, opts ...Option) (*mat.SymDense, error) {
	n := len(rows)
	if n == 0 {
		return nil, matrixErrorf(opNewCorrelation, ErrInvalidDimensions)
	}
	dense := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, matrixErrorf(opNewCorrelation, fmt.Errorf("row %d: %w", i, ErrNonSquare))
		}
		dense.SetRow(i, row)
	}
	if err := ValidateCorrelation(dense, opts...); err != nil {
		return nil, matrixErrorf(opNewCorrelation, err)
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, dense.At(i, j))
		}
	}
	return out, nil
}

// Symmetrize returns (A + Aᵀ)/2 as a *mat.SymDense.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
// Complexity: O(n²).
func Symmetrize(a mat.Matrix) (*mat.SymDense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return out, nil
}

// IsIdentity reports whether m is square with |m[i,j] - δij| ≤ eps everywhere.
// A nil or non-square matrix is never the identity.
// Complexity: O(n²), early exit on the first violation.
func IsIdentity(m mat.Matrix, eps float64) bool {
	if ValidateSquare(m) != nil {
		return false
	}
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			d := m.At(i, j) - want
			if d > eps || d < -eps || d != d {
				return false
			}
		}
	}
	return true
}

// CloneSym returns a deep copy of a symmetric matrix.
// Complexity: O(n²).
func CloneSym(a mat.Symmetric) *mat.SymDense {
	n := a.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	out.CopySym(a)
	return out
}
