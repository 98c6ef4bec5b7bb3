// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for correlation-matrix checks.
//   - Keep kernels minimal by delegating nil/shape/symmetry/diagonal checks here.
//   - Return sentinels wrapped with the validator tag so call sites can re-wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.
//   - Symmetry and bound checks run O(n²) on the upper triangle only.
//
// Note:
//   - Each composite validator follows a fixed sequence (NotNil → Square → Finite → Symmetric → Diagonal → Bounds).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including typed nil
// pointers of the concrete gonum types hidden behind the interface.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *mat.Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *mat.SymDense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *mat.TriDense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}
	return nil
}

// ValidateSquare checks that m is non-nil, non-empty and square.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return validatorErrorf("ValidateSquare", ErrInvalidDimensions)
	}
	if r != c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}
	return nil
}

// ValidateColumns checks that a sample batch is non-nil, has at least one row
// and exactly n columns.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateColumns(x mat.Matrix, n int) error {
	if err := ValidateNotNil(x); err != nil {
		return validatorErrorf("ValidateColumns", err)
	}
	r, c := x.Dims()
	if r == 0 {
		return validatorErrorf("ValidateColumns", ErrInvalidDimensions)
	}
	if c != n {
		return validatorErrorf("ValidateColumns", ErrDimensionMismatch)
	}
	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry.
// Complexity: O(r*c).
func ValidateFinite(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}
	return nil
}

// ValidateSymmetric checks A is square and |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Inputs: matrix m, tolerance tol ≥ 0 (negative values are normalised by abs).
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation.
// Complexity: O(n²).
func ValidateSymmetric(m mat.Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)
	// *mat.SymDense is symmetric by construction.
	if _, ok := m.(mat.Symmetric); ok {
		return nil
	}
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return validatorErrorf("ValidateSymmetric", fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}
	return nil
}

// ValidateCorrelation checks that m is a valid correlation matrix:
// square, finite, symmetric, unit diagonal, every entry in [-1, 1].
// Positive semi-definiteness is NOT checked here; CholeskyLower reports it.
//
// Errors (in priority order):
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare
//   - ErrNaNInf
//   - ErrAsymmetry
//   - ErrNotUnitDiagonal
//   - ErrOutOfRange
//
// Complexity: O(n²).
func ValidateCorrelation(m mat.Matrix, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateCorrelation", err)
	}
	if err := ValidateFinite(m); err != nil {
		return validatorErrorf("ValidateCorrelation", err)
	}
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return validatorErrorf("ValidateCorrelation", err)
	}
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		if math.Abs(m.At(i, i)-1) > o.eps {
			return validatorErrorf("ValidateCorrelation", fmt.Errorf("(%d,%d): %w", i, i, ErrNotUnitDiagonal))
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)) > 1+o.eps {
				return validatorErrorf("ValidateCorrelation", fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
			}
		}
	}
	return nil
}
