// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"

	"github.com/thurinj/mtuq/surface"
)

// Tradeoff reads target off the best point of every group of s sharing the
// kept parameters. The best point is the smallest value for ext Minimum (a
// misfit) and the largest for ext Maximum (a likelihood). Ties keep the first
// point in enumeration order.
//
// The result has Quantity surface.Parameter and the layout of s: a regular
// grid over the kept axes in keep order, or a cloud in first-appearance order.
//
// Errors: those of Reduce for keep; ErrUnknownParameter when target is not a
// parameter of s; ErrDuplicateParameter when target is also kept.
// Complexity: O(n·p).
func Tradeoff(s *surface.Surface, keep []string, target string, ext surface.Extreme) (*surface.Surface, error) {
	kept, err := checkKeep(s, keep)
	if err != nil {
		return nil, err
	}
	if !s.HasParameter(target) {
		return nil, fmt.Errorf("%w: target %q not in %v", ErrUnknownParameter, target, s.Parameters())
	}
	if kept[target] {
		return nil, fmt.Errorf("%w: target %q is also kept", ErrDuplicateParameter, target)
	}
	better := func(v, cur float64) bool { return v < cur }
	if ext == surface.Maximum {
		better = func(v, cur float64) bool { return v > cur }
	}

	var (
		coords []surface.Coordinate
		values []float64
		best   []float64
		slot   = make(map[string]int)
	)
	s.Each(func(_ int, c surface.Coordinate, v float64) bool {
		k := tupleKey(c, keep)
		j, ok := slot[k]
		if !ok {
			sub := make(surface.Coordinate, len(keep))
			for _, name := range keep {
				sub[name] = c[name]
			}
			slot[k] = len(values)
			coords = append(coords, sub)
			values = append(values, c[target])
			best = append(best, v)
			return true
		}
		if better(v, best[j]) {
			best[j], values[j] = v, c[target]
		}
		return true
	})

	spec := surface.Spec{Quantity: surface.Parameter, Norm: s.Norm()}
	if s.Kind() != surface.Regular {
		return surface.NewIrregular(keep, coords, values, spec)
	}

	axes, err := s.Axes()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]surface.Axis, len(axes))
	for _, ax := range axes {
		byName[ax.Name] = ax
	}
	keptAxes := make([]surface.Axis, len(keep))
	for i, name := range keep {
		keptAxes[i] = byName[name]
	}
	st := strides(keptAxes)
	grid := make([]float64, surface.Cells(keptAxes))
	for j, c := range coords {
		o := 0
		for i, ax := range keptAxes {
			o += ax.Index(c[ax.Name]) * st[i]
		}
		grid[o] = values[j]
	}

	return surface.NewRegular(keptAxes, grid, spec)
}
