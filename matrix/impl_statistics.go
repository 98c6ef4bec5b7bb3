// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Empirical correlation of a sample batch, used to compare generated
//     realisations against the target correlation.

package matrix

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const opSampleCorrelation = "SampleCorrelation"

// SampleCorrelation returns the Pearson correlation of the columns of x
// (rows are observations).
//
// Errors:
//   - ErrNilMatrix.
//   - ErrInvalidDimensions when x has fewer than two rows or no columns.
//
// Complexity:
//   - Time O(r·c²), Space O(c²).
//
// Notes:
//   - A constant column yields NaN entries in its row/column (zero variance).
func SampleCorrelation(x mat.Matrix) (*mat.SymDense, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, matrixErrorf(opSampleCorrelation, err)
	}
	r, c := x.Dims()
	if r < 2 || c == 0 {
		return nil, matrixErrorf(opSampleCorrelation, ErrInvalidDimensions)
	}
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, x, nil)
	return &corr, nil
}
