// SPDX-License-Identifier: MIT

// Package marginal describes the one-dimensional distributions that feed the
// Nataf transform.
//
// A Marginal exposes four capabilities: CDF, ICDF, PDF and the first two
// moments. Ready-made marginals wrap gonum's distuv distributions; any other
// type satisfying the interface works as well.
//
// A Set groups the marginals of a random vector. It is a tagged variant:
//
//	Single — one marginal shared by every dimension,
//	List   — one marginal per dimension,
//	Joint  — an independent joint distribution given by its marginals.
//
// The variant is resolved once at construction into a per-column accessor,
// so hot transform loops never inspect types again.
package marginal
