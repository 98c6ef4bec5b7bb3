// SPDX-License-Identifier: MIT

package nataf

import (
	"errors"
	"fmt"
)

var (
	// ErrConflictingCorrelation indicates that both a physical and a normal
	// correlation matrix were supplied to New.
	ErrConflictingCorrelation = errors.New("nataf: only one of corr_x and corr_z may be given")

	// ErrNoSamples indicates a Run call without any sample matrix.
	ErrNoSamples = errors.New("nataf: at least one of samples_x and samples_z is required")

	// ErrCorrelationRange indicates a normal correlation outside (-1, 1).
	ErrCorrelationRange = errors.New("nataf: correlation must lie strictly inside (-1, 1)")

	// ErrClipDiverged indicates an ITAM update that stayed outside [-1, 1]
	// after clipping.
	ErrClipDiverged = errors.New("nataf: clipped correlation still outside [-1, 1]")

	// ErrInvalidSampleCount indicates a non-positive sample count.
	ErrInvalidSampleCount = errors.New("nataf: sample count must be positive")
)

// natafErrorf tags err with the failing operation.
func natafErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
