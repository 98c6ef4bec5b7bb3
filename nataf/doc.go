// SPDX-License-Identifier: MIT

// Package nataf implements the Nataf isoprobabilistic transformation between
// a physical space, where each coordinate follows its own marginal
// distribution, and a standard normal space whose dependence is carried by a
// single correlation matrix.
//
// Building blocks:
//
//	IntegratePair    – physical correlation implied by one normal correlation
//	                   (Gauss–Legendre quadrature over the bivariate normal).
//	DistortZ2X       – IntegratePair over every pair of a Set (Cz → Cx).
//	SolveDistortion  – ITAM fixed point recovering Cz from a target Cx.
//	Correlate        – Z = (H·Uᵀ)ᵀ with H the lower Cholesky factor of Cz.
//	Decorrelate      – U solving H·Uᵀ = Zᵀ.
//	Transform        – the orchestrator: resolves Cx/Cz once, then maps samples
//	                   in both directions and generates correlated samples.
//
// A Transform is immutable after New and safe for concurrent use. Sample
// matrices are never mutated; every result is freshly allocated. Randomness
// only enters through the *rand.Rand given to Generate.
//
// Errors:
//
//	Input-shape and numerical-precondition failures are reported through the
//	sentinels of this package and of the matrix and marginal packages; match
//	with errors.Is. Non-convergence of the solver is not an error: inspect
//	SolveResult.Converged and the Trace.
package nataf
