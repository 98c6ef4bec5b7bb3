// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nataf/matrix"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestValidateCorrelation_ErrorPriority(t *testing.T) {
	t.Parallel()

	var nilDense *mat.Dense
	cases := []struct {
		name string
		in   mat.Matrix
		want error
	}{
		{"nil interface", nil, matrix.ErrNilMatrix},
		{"typed nil", nilDense, matrix.ErrNilMatrix},
		{"empty", &mat.Dense{}, matrix.ErrInvalidDimensions},
		{"non-square", mat.NewDense(2, 3, nil), matrix.ErrNonSquare},
		{"nan", mat.NewDense(2, 2, []float64{1, math.NaN(), math.NaN(), 1}), matrix.ErrNaNInf},
		{"asymmetric", mat.NewDense(2, 2, []float64{1, 0.2, 0.3, 1}), matrix.ErrAsymmetry},
		{"diagonal", mat.NewDense(2, 2, []float64{2, 0.2, 0.2, 1}), matrix.ErrNotUnitDiagonal},
		{"bounds", mat.NewDense(2, 2, []float64{1, 1.5, 1.5, 1}), matrix.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, matrix.ValidateCorrelation(tc.in), tc.want)
		})
	}
}

func TestValidateCorrelation_Valid(t *testing.T) {
	t.Parallel()

	c := mat.NewDense(3, 3, []float64{
		1, 0.3, -0.2,
		0.3, 1, 0.1,
		-0.2, 0.1, 1,
	})
	assert.NoError(t, matrix.ValidateCorrelation(c))

	// A tiny asymmetry is tolerated within a relaxed epsilon.
	c.Set(0, 1, 0.3+1e-7)
	assert.ErrorIs(t, matrix.ValidateCorrelation(c), matrix.ErrAsymmetry)
	assert.NoError(t, matrix.ValidateCorrelation(c, matrix.WithEpsilon(1e-6)))
}

func TestValidateColumns(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(4, 2, nil)
	assert.NoError(t, matrix.ValidateColumns(x, 2))
	assert.ErrorIs(t, matrix.ValidateColumns(x, 3), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateColumns(&mat.Dense{}, 2), matrix.ErrInvalidDimensions)
	assert.ErrorIs(t, matrix.ValidateColumns(nil, 2), matrix.ErrNilMatrix)
}

func TestValidateSymmetric_SymDenseShortCircuit(t *testing.T) {
	t.Parallel()

	s := mat.NewSymDense(2, []float64{1, 0.4, 0.4, 1})
	assert.NoError(t, matrix.ValidateSymmetric(s, 0))
	assert.ErrorIs(t, matrix.ValidateSymmetric(s, math.NaN()), matrix.ErrNaNInf)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.Panics(t, func() { matrix.WithPSDIterations(0) })
	assert.Panics(t, func() { matrix.WithEigenFloor(math.NaN()) })
	assert.NotPanics(t, func() { matrix.WithEigenFloor(1e-12) })
}
