// SPDX-License-Identifier: MIT

// Package nataf maps correlated random vectors with arbitrary marginals
// to and from independent standard normal space (the Nataf transformation).
//
// Everything is organised under a few subpackages:
//
//	marginal/ — one-dimensional distributions (CDF, ICDF, PDF, moments) and
//	            the Set that assigns a marginal to every coordinate
//	matrix/   — correlation-matrix validation, Cholesky helpers, nearest
//	            PSD projection and small element-wise kernels over gonum mat
//	nataf/    — pair integration, the ITAM distortion solver and the
//	            Transform that maps samples between X, Z and U spaces
//	cmd/nataf — the command-line front end (solve, distort, sample, map)
//
// Quick example:
//
//	u, _ := marginal.Uniform(0, 1)
//	set, _ := marginal.NewSingle(u, 2)
//	cx, _ := matrix.NewCorrelation([][]float64{{1, 0.5}, {0.5, 1}})
//	tr, _ := nataf.New(ctx, set, nataf.WithCorrX(cx))
//	x, _ := tr.Generate(1000, nataf.NewRand(42))
//
// tr.CorrZ() now holds 2·sin(π/12) off the diagonal, and the columns of x
// are uniform with Pearson correlation close to 0.5.
//
//	go install github.com/katalvlaran/nataf/cmd/nataf@latest
package nataf
