// SPDX-License-Identifier: MIT

// Package surface: whole-surface transforms.

package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extreme selects the direction of Best.
type Extreme int

const (
	// Minimum selects the smallest value (best misfit).
	Minimum Extreme = iota
	// Maximum selects the largest value (best likelihood or variance reduction).
	Maximum
)

// Sum adds two misfit surfaces point by point, e.g. body-wave and surface-wave
// contributions evaluated over the same grid. The result takes the layout and
// enumeration order of a.
//
// Errors: ErrQuantityMismatch, ErrNormMismatch, ErrCoordinateMismatch.
func Sum(a, b *Surface) (*Surface, error) {
	if a.spec.Quantity != Misfit || b.spec.Quantity != Misfit {
		return nil, fmt.Errorf("%w: Sum needs misfit surfaces", ErrQuantityMismatch)
	}
	if a.spec.Norm != b.spec.Norm {
		return nil, fmt.Errorf("%w: %v and %v", ErrNormMismatch, a.spec.Norm, b.spec.Norm)
	}
	if len(a.values) != len(b.values) {
		return nil, fmt.Errorf("%w: %d and %d points", ErrCoordinateMismatch, len(a.values), len(b.values))
	}

	out := make([]float64, len(a.values))
	for i, c := range a.coords {
		j, ok := b.index[c.key()]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing from second surface", ErrCoordinateMismatch, c)
		}
		out[i] = a.values[i] + b.values[j]
	}

	return a.Derive(out, Spec{Quantity: Misfit, Norm: a.spec.Norm})
}

// ToVarianceReduction converts misfit into percent variance reduction,
// 100·(1 − m/dataNorm). Larger is better.
func ToVarianceReduction(s *Surface, dataNorm float64) (*Surface, error) {
	if s.spec.Quantity != Misfit {
		return nil, fmt.Errorf("%w: variance reduction needs misfit, got %s", ErrQuantityMismatch, s.spec.Quantity)
	}
	if math.IsNaN(dataNorm) || math.IsInf(dataNorm, 0) || dataNorm <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDataNorm, dataNorm)
	}

	out := s.Values()
	floats.Scale(-1/dataNorm, out)
	floats.AddConst(1, out)
	floats.Scale(100, out)

	return s.Derive(out, Spec{Quantity: VarianceReduction, Norm: s.spec.Norm})
}

// Best returns the coordinate holding the extreme value of s. Ties resolve to
// the first point in enumeration order.
func Best(s *Surface, ext Extreme) (Coordinate, float64) {
	var i int
	if ext == Maximum {
		i = floats.MaxIdx(s.values)
	} else {
		i = floats.MinIdx(s.values)
	}

	return s.At(i)
}
