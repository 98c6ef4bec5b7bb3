// SPDX-License-Identifier: MIT

package marginal

import "errors"

var (
	// ErrNilMarginal indicates a nil Marginal where a distribution was required.
	ErrNilMarginal = errors.New("marginal: nil marginal")

	// ErrEmptySet indicates a Set without any dimension.
	ErrEmptySet = errors.New("marginal: set has no marginals")

	// ErrInvalidParameter indicates a distribution parameter outside its domain.
	ErrInvalidParameter = errors.New("marginal: invalid distribution parameter")

	// ErrUnknownDistribution indicates an unrecognised distribution name in a Spec.
	ErrUnknownDistribution = errors.New("marginal: unknown distribution")

	// ErrInfiniteMoments indicates a marginal without finite mean and variance.
	// Correlation distortion is undefined for such marginals.
	ErrInfiniteMoments = errors.New("marginal: mean and variance must be finite")

	// ErrOutOfRange indicates a column index outside the Set.
	ErrOutOfRange = errors.New("marginal: column index out of range")
)
