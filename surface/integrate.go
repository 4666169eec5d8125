// SPDX-License-Identifier: MIT

// Package surface: numerical integration over regular grids.
//
// A regular grid is treated as a discretized continuous density. Integration
// is the iterated trapezoidal rule, one axis at a time from the fastest axis
// outwards. Axes with a single position have no extent and act as a delta:
// the slice is taken as-is.

package surface

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Integrate returns the trapezoidal integral of row-major values over axes.
// Complexity: O(Cells(axes)) time, O(Cells(axes)/last axis length) scratch.
func Integrate(axes []Axis, values []float64) (float64, error) {
	if len(axes) == 0 {
		return 0, ErrEmptySurface
	}
	if n := Cells(axes); len(values) != n {
		return 0, fmt.Errorf("%w: %d values for %d cells", ErrShapeMismatch, len(values), n)
	}

	buf := values
	for k := len(axes) - 1; k >= 0; k-- {
		m := axes[k].Len()
		if m == 1 {
			continue // delta axis: nothing to reduce
		}
		outer := len(buf) / m
		next := make([]float64, outer)
		for o := 0; o < outer; o++ {
			next[o] = integrate.Trapezoidal(axes[k].Values, buf[o*m:(o+1)*m])
		}
		buf = next
	}

	return buf[0], nil
}

// Degenerate reports whether no axis has extent, i.e. the grid is a single
// point and no density can be defined over it.
func Degenerate(axes []Axis) bool {
	for _, ax := range axes {
		if ax.Len() > 1 {
			return false
		}
	}

	return true
}

// Mass returns the total mass of s: the plain sum for irregular clouds and the
// integral for regular grids.
func Mass(s *Surface) float64 {
	if s.kind == Regular {
		m, _ := Integrate(s.axes, s.values) // shape is an invariant of s
		return m
	}

	return floats.Sum(s.values)
}
