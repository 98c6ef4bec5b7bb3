// SPDX-License-Identifier: MIT

package nataf_test

import (
	"testing"

	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fastQuad keeps the pair sums cheap where accuracy is not under test.
const (
	fastOrder = 256
	fastZMax  = 8.0
)

func corr(t *testing.T, rows [][]float64) *mat.SymDense {
	t.Helper()
	c, err := matrix.NewCorrelation(rows)
	require.NoError(t, err)
	return c
}

func mustUniform(t *testing.T, a, b float64) marginal.Marginal {
	t.Helper()
	m, err := marginal.Uniform(a, b)
	require.NoError(t, err)
	return m
}

func mustExponential(t *testing.T, rate float64) marginal.Marginal {
	t.Helper()
	m, err := marginal.Exponential(rate)
	require.NoError(t, err)
	return m
}

func mustNormal(t *testing.T, mu, sigma float64) marginal.Marginal {
	t.Helper()
	m, err := marginal.Normal(mu, sigma)
	require.NoError(t, err)
	return m
}

func uniformPair(t *testing.T) *marginal.Set {
	t.Helper()
	s, err := marginal.NewSingle(mustUniform(t, 0, 1), 2)
	require.NoError(t, err)
	return s
}
