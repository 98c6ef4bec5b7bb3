// SPDX-License-Identifier: MIT

package nataf_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/nataf/internal/testutil"
	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSolveDistortion_IdentityShortCircuits(t *testing.T) {
	t.Parallel()

	set, err := marginal.NewList(mustUniform(t, 0, 1), mustExponential(t, 1), mustUniform(t, -2, 2))
	require.NoError(t, err)
	id, err := matrix.Identity(3)
	require.NoError(t, err)

	res, err := nataf.SolveDistortion(context.Background(), set, id)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Iterations)
	assert.Empty(t, res.Trace)
	assert.True(t, res.Converged)
	assert.True(t, mat.Equal(id, res.Cz))
}

func TestSolveDistortion_GaussianShortCircuits(t *testing.T) {
	t.Parallel()

	set, err := marginal.NewList(mustNormal(t, 0, 1), mustNormal(t, 5, 0.1))
	require.NoError(t, err)
	for _, rho := range []float64{-0.99, -0.5, 0.3, 0.999} {
		cx := corr(t, [][]float64{{1, rho}, {rho, 1}})
		res, err := nataf.SolveDistortion(context.Background(), set, cx)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Iterations)
		assert.True(t, mat.Equal(cx, res.Cz), "rho=%g", rho)
	}
}

func TestSolveDistortion_UniformInflatesCorrelation(t *testing.T) {
	t.Parallel()

	set := uniformPair(t)
	cx := corr(t, [][]float64{{1, 0.5}, {0.5, 1}})

	res, err := nataf.SolveDistortion(context.Background(), set, cx,
		nataf.WithBeta(1.0), nataf.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	require.True(t, res.Converged)
	assert.LessOrEqual(t, res.Iterations, nataf.DefaultMaxIter)
	assert.Len(t, res.Trace, res.Iterations)

	cz := res.Cz.At(0, 1)
	assert.Greater(t, cz, 0.5)
	assert.Less(t, cz, 1.0)
	// Closed form for uniform marginals: ρz = 2·sin(π·ρx/6).
	assert.InDelta(t, 2*math.Sin(math.Pi*0.5/6), cz, 1e-4)

	back, err := nataf.DistortZ2X(context.Background(), set, res.Cz)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, back.At(0, 1), 1e-3)
}

func TestSolveDistortion_ErrorDoesNotDiverge(t *testing.T) {
	t.Parallel()

	set, err := marginal.NewList(mustUniform(t, 0, 1), mustExponential(t, 1))
	require.NoError(t, err)
	cx := corr(t, [][]float64{{1, 0.4}, {0.4, 1}})

	res, err := nataf.SolveDistortion(context.Background(), set, cx,
		nataf.WithThresholds(0, 0),
		nataf.WithMaxIter(10),
		nataf.WithQuadrature(fastOrder, fastZMax),
	)
	require.NoError(t, err)
	require.NotEmpty(t, res.Trace)
	assert.LessOrEqual(t, res.Iterations, 10)

	abs := res.Trace.Abs()
	for k := 1; k < len(abs); k++ {
		assert.LessOrEqual(t, abs[k], 10*abs[k-1]+1e-12, "iteration %d", k)
	}
	assert.Less(t, abs[len(abs)-1], 1e-6)
	assert.Equal(t, 0, res.Trace[0].Iteration)
}

func TestSolveDistortion_Errors(t *testing.T) {
	t.Parallel()

	set := uniformPair(t)
	ctx := context.Background()

	_, err := nataf.SolveDistortion(ctx, set, corr(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	notUnit := mat.NewSymDense(2, []float64{2, 0.5, 0.5, 1})
	_, err = nataf.SolveDistortion(ctx, set, notUnit)
	assert.ErrorIs(t, err, matrix.ErrNotUnitDiagonal)

	heavy, err := marginal.StudentsT(0, 1, 1.5)
	require.NoError(t, err)
	hs, err := marginal.NewList(mustUniform(t, 0, 1), heavy)
	require.NoError(t, err)
	_, err = nataf.SolveDistortion(ctx, hs, corr(t, [][]float64{{1, 0.3}, {0.3, 1}}))
	assert.ErrorIs(t, err, marginal.ErrInfiniteMoments)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = nataf.SolveDistortion(cancelled, set, corr(t, [][]float64{{1, 0.3}, {0.3, 1}}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrace_Series(t *testing.T) {
	t.Parallel()

	tr := nataf.Trace{{Iteration: 0, Abs: 0.1, Rel: 0.9}, {Iteration: 1, Abs: 0.01, Rel: 0.9}}
	assert.Equal(t, []float64{0.1, 0.01}, tr.Abs())
	assert.Equal(t, []float64{0.9, 0.9}, tr.Rel())
}
