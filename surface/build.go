// SPDX-License-Identifier: MIT

// Package surface: constructors for derived surfaces.
// These are the entry points used by likelihood, marginal and the snapshot
// codec; grid-search output goes through New instead.

package surface

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// checkValue enforces the value domain of q.
func checkValue(q Quantity, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidValue
	}
	switch q {
	case Misfit:
		if v < 0 {
			return ErrInvalidMisfitValue
		}
	case Likelihood:
		if v < 0 {
			return ErrInvalidValue
		}
	}

	return nil
}

func checkValues(q Quantity, values []float64) error {
	for i, v := range values {
		if err := checkValue(q, v); err != nil {
			return fmt.Errorf("%w: %s value %d is %g", err, q, i, v)
		}
	}

	return nil
}

// NewRegular builds a regular surface from axes and row-major values.
// Stage 1 (Validate): axes non-empty, strictly increasing, unique names;
// len(values) == Cells(axes); values in the quantity's domain.
// Stage 2 (Execute): materialize coordinates and the lookup index.
// Complexity: O(n·p).
func NewRegular(axes []Axis, values []float64, spec Spec) (*Surface, error) {
	if len(axes) == 0 {
		return nil, ErrEmptySurface
	}
	names := make(map[string]bool, len(axes))
	for _, ax := range axes {
		if err := validateAxis(ax); err != nil {
			return nil, err
		}
		if names[ax.Name] {
			return nil, fmt.Errorf("%w: axis %q repeated", ErrInvalidAxis, ax.Name)
		}
		names[ax.Name] = true
	}
	n := Cells(axes)
	if len(values) != n {
		return nil, fmt.Errorf("%w: %d values for %d cells", ErrShapeMismatch, len(values), n)
	}
	if err := checkValues(spec.Quantity, values); err != nil {
		return nil, err
	}

	axes = cloneAxes(axes)
	st := strides(axes)
	coords := make([]Coordinate, n)
	index := make(map[string]int, n)
	for flat := 0; flat < n; flat++ {
		c := make(Coordinate, len(axes))
		for k, ax := range axes {
			c[ax.Name] = ax.Values[(flat/st[k])%ax.Len()]
		}
		coords[flat] = c
		index[c.key()] = flat
	}

	return &Surface{
		id:     uuid.New(),
		kind:   Regular,
		spec:   spec,
		params: axisNames(axes),
		coords: coords,
		values: append([]float64(nil), values...),
		index:  index,
		axes:   axes,
	}, nil
}

func validateAxis(ax Axis) error {
	if ax.Name == "" || len(ax.Values) == 0 {
		return fmt.Errorf("%w: axis %q is empty", ErrInvalidAxis, ax.Name)
	}
	for i, v := range ax.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: axis %q value %g", ErrInvalidAxis, ax.Name, v)
		}
		if i > 0 && v <= ax.Values[i-1] {
			return fmt.Errorf("%w: axis %q not increasing at %d", ErrInvalidAxis, ax.Name, i)
		}
	}

	return nil
}

// NewIrregular builds a point cloud. Every coordinate must carry all params;
// the enumeration order is the order of coords.
func NewIrregular(params []string, coords []Coordinate, values []float64, spec Spec) (*Surface, error) {
	if len(coords) == 0 {
		return nil, ErrEmptySurface
	}
	if len(coords) != len(values) {
		return nil, fmt.Errorf("%w: %d coordinates, %d values", ErrShapeMismatch, len(coords), len(values))
	}
	if err := checkValues(spec.Quantity, values); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(coords))
	cs := make([]Coordinate, len(coords))
	for i, c := range coords {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		for _, p := range params {
			if _, ok := c[p]; !ok {
				return nil, fmt.Errorf("%w: point %d lacks %q", ErrUnknownParameter, i, p)
			}
		}
		k := c.key()
		if j, dup := index[k]; dup {
			return nil, fmt.Errorf("%w: points %d and %d at %s", ErrDuplicateCoordinate, j, i, c)
		}
		index[k] = i
		cs[i] = c.Clone()
	}

	return &Surface{
		id:     uuid.New(),
		kind:   Irregular,
		spec:   spec,
		params: append([]string(nil), params...),
		coords: cs,
		values: append([]float64(nil), values...),
		index:  index,
	}, nil
}

// Derive returns a surface with the shape of s and new values (same
// enumeration order). Coordinates and axes are shared, which is safe because
// surfaces are never mutated.
func (s *Surface) Derive(values []float64, spec Spec) (*Surface, error) {
	if len(values) != len(s.values) {
		return nil, fmt.Errorf("%w: %d values for %d points", ErrShapeMismatch, len(values), len(s.values))
	}
	if err := checkValues(spec.Quantity, values); err != nil {
		return nil, err
	}

	return &Surface{
		id:     uuid.New(),
		kind:   s.kind,
		spec:   spec,
		params: s.params,
		coords: s.coords,
		values: append([]float64(nil), values...),
		index:  s.index,
		axes:   s.axes,
	}, nil
}

// SameShape reports whether a and b hold the same coordinates in the same
// enumeration order.
func SameShape(a, b *Surface) bool {
	if a.kind != b.kind || len(a.values) != len(b.values) {
		return false
	}
	for i, c := range a.coords {
		if j, ok := b.index[c.key()]; !ok || j != i {
			return false
		}
	}

	return true
}
