// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"
	"strings"
)

// Kind tags how a Set was assembled.
type Kind int

const (
	// Single shares one marginal across every dimension.
	Single Kind = iota
	// List holds one marginal per dimension.
	List
	// Joint is an independent joint distribution given by its marginals.
	Joint
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case List:
		return "list"
	case Joint:
		return "joint"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Set is the marginal description of a random vector. It is immutable and
// safe for concurrent use.
type Set struct {
	kind Kind
	cols []Marginal
}

// NewSingle repeats m over dim dimensions.
func NewSingle(m Marginal, dim int) (*Set, error) {
	if m == nil {
		return nil, ErrNilMarginal
	}
	if dim <= 0 {
		return nil, fmt.Errorf("dim=%d: %w", dim, ErrEmptySet)
	}
	cols := make([]Marginal, dim)
	for i := range cols {
		cols[i] = m
	}
	return &Set{kind: Single, cols: cols}, nil
}

// NewList uses one marginal per dimension.
func NewList(ms ...Marginal) (*Set, error) {
	return newSet(List, ms)
}

// NewJoint groups independent marginals into one joint distribution.
func NewJoint(ms ...Marginal) (*Set, error) {
	return newSet(Joint, ms)
}

func newSet(kind Kind, ms []Marginal) (*Set, error) {
	if len(ms) == 0 {
		return nil, ErrEmptySet
	}
	cols := make([]Marginal, len(ms))
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("column %d: %w", i, ErrNilMarginal)
		}
		cols[i] = m
	}
	return &Set{kind: kind, cols: cols}, nil
}

// FromSpecs builds a List (or Joint when joint is true) from config specs.
func FromSpecs(specs []Spec, joint bool) (*Set, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySet
	}
	ms := make([]Marginal, len(specs))
	for i, s := range specs {
		m, err := FromSpec(s)
		if err != nil {
			return nil, fmt.Errorf("marginal %d: %w", i, err)
		}
		ms[i] = m
	}
	if joint {
		return NewJoint(ms...)
	}
	return NewList(ms...)
}

// Kind returns how the set was assembled.
func (s *Set) Kind() Kind { return s.kind }

// Dim returns the number of dimensions.
func (s *Set) Dim() int { return len(s.cols) }

// Column returns the marginal of dimension j.
func (s *Set) Column(j int) (Marginal, error) {
	if j < 0 || j >= len(s.cols) {
		return nil, fmt.Errorf("column %d of %d: %w", j, len(s.cols), ErrOutOfRange)
	}
	return s.cols[j], nil
}

// Columns returns a copy of the per-dimension marginals.
func (s *Set) Columns() []Marginal {
	out := make([]Marginal, len(s.cols))
	copy(out, s.cols)
	return out
}

// AllGaussian reports whether every marginal declares itself normal.
func (s *Set) AllGaussian() bool {
	for _, m := range s.cols {
		if !IsGaussian(m) {
			return false
		}
	}
	return true
}

// CheckMoments validates the moments of every marginal.
func (s *Set) CheckMoments() error {
	for j, m := range s.cols {
		if err := CheckMoments(m); err != nil {
			return fmt.Errorf("column %d: %w", j, err)
		}
	}
	return nil
}

// String renders the kind and the marginals, e.g. "list[uniform(...), normal(...)]".
func (s *Set) String() string {
	parts := make([]string, len(s.cols))
	for i, m := range s.cols {
		parts[i] = fmt.Sprint(m)
	}
	return s.kind.String() + "[" + strings.Join(parts, ", ") + "]"
}
