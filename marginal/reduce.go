// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/thurinj/mtuq/surface"
)

// Reduce collapses every parameter of s not named in keep according to mode.
// When keep names every parameter of s, s itself is returned.
//
// Stage 1 (Validate): mode known; keep non-empty, unique, all parameters of s;
// Marginal only on likelihood surfaces.
// Stage 2 (Execute): regular or irregular reduction.
// Complexity: O(n·p) time, O(n) memory for Marginal, O(output) otherwise.
func Reduce(s *surface.Surface, keep []string, mode Mode) (*surface.Surface, error) {
	// Stage 1
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	seen, err := checkKeep(s, keep)
	if err != nil {
		return nil, err
	}
	if mode == Marginal && s.Quantity() != surface.Likelihood {
		return nil, fmt.Errorf("%w: %s of %s", ErrModeQuantity, mode, s.Quantity())
	}
	if len(keep) == len(s.Parameters()) {
		return s, nil
	}

	// Stage 2
	spec := surface.Spec{Quantity: s.Quantity(), Norm: s.Norm()}
	if mode == Marginal {
		spec.Normalized = s.Normalized()
	}
	if s.Kind() == surface.Regular {
		return reduceRegular(s, keep, seen, mode, spec)
	}

	return reduceIrregular(s, keep, seen, mode, spec)
}

// checkKeep validates keep against the parameters of s and returns it as a set.
func checkKeep(s *surface.Surface, keep []string) (map[string]bool, error) {
	if len(keep) == 0 {
		return nil, ErrEmptyKeep
	}
	seen := make(map[string]bool, len(keep))
	for _, name := range keep {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
		}
		if !s.HasParameter(name) {
			return nil, fmt.Errorf("%w: %q not in %v", ErrUnknownParameter, name, s.Parameters())
		}
		seen[name] = true
	}

	return seen, nil
}

//----------------------------------------------------------------------------//
// Regular grids
//----------------------------------------------------------------------------//

func reduceRegular(s *surface.Surface, keep []string, kept map[string]bool, mode Mode, spec surface.Spec) (*surface.Surface, error) {
	axes, err := s.Axes()
	if err != nil {
		return nil, err
	}
	pos := make(map[string]int, len(axes))
	for k, ax := range axes {
		pos[ax.Name] = k
	}
	keptAxes := make([]surface.Axis, len(keep))
	keptIdx := make([]int, len(keep))
	for i, name := range keep {
		keptIdx[i] = pos[name]
		keptAxes[i] = axes[pos[name]]
	}
	var dropAxes []surface.Axis
	var dropIdx []int
	for k, ax := range axes {
		if !kept[ax.Name] {
			dropAxes = append(dropAxes, ax)
			dropIdx = append(dropIdx, k)
		}
	}

	inStride := strides(axes)
	outStride := strides(keptAxes)
	dropStride := strides(dropAxes)
	split := func(flat int) (out, sub int) {
		for i, k := range keptIdx {
			out += (flat / inStride[k]) % axes[k].Len() * outStride[i]
		}
		for i, k := range dropIdx {
			sub += (flat / inStride[k]) % axes[k].Len() * dropStride[i]
		}
		return out, sub
	}

	nOut := surface.Cells(keptAxes)
	values := make([]float64, nOut)
	switch mode {
	case Maximum, Minimum:
		filled := make([]bool, nOut)
		for flat := 0; flat < s.Len(); flat++ {
			o, _ := split(flat)
			if v := s.Value(flat); !filled[o] || mode.better(v, values[o]) {
				values[o], filled[o] = v, true
			}
		}

	case Marginal:
		nSub := surface.Cells(dropAxes)
		groups := make([]float64, nOut*nSub)
		for flat := 0; flat < s.Len(); flat++ {
			o, sub := split(flat)
			groups[o*nSub+sub] = s.Value(flat)
		}
		for o := range values {
			if values[o], err = surface.Integrate(dropAxes, groups[o*nSub:(o+1)*nSub]); err != nil {
				return nil, err
			}
		}

	case SliceMaximum, SliceMinimum:
		best, _ := surface.Best(s, mode.extreme())
		for o := range values {
			c := make(surface.Coordinate, len(axes))
			for name, v := range best {
				c[name] = v
			}
			for i, ax := range keptAxes {
				c[ax.Name] = ax.Values[(o/outStride[i])%ax.Len()]
			}
			if values[o], err = s.Get(c); err != nil {
				return nil, err
			}
		}
	}

	return surface.NewRegular(keptAxes, values, spec)
}

// strides returns row-major strides for axes, last axis fastest.
func strides(axes []surface.Axis) []int {
	st := make([]int, len(axes))
	acc := 1
	for k := len(axes) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= axes[k].Len()
	}

	return st
}

//----------------------------------------------------------------------------//
// Irregular clouds
//----------------------------------------------------------------------------//

func reduceIrregular(s *surface.Surface, keep []string, kept map[string]bool, mode Mode, spec surface.Spec) (*surface.Surface, error) {
	var (
		coords []surface.Coordinate
		values []float64
		slot   = make(map[string]int)
		target surface.Coordinate
	)
	if mode == SliceMaximum || mode == SliceMinimum {
		target, _ = surface.Best(s, mode.extreme())
	}

	s.Each(func(i int, c surface.Coordinate, v float64) bool {
		if target != nil && !sameDropped(c, target, kept) {
			return true
		}
		k := tupleKey(c, keep)
		j, ok := slot[k]
		if !ok {
			sub := make(surface.Coordinate, len(keep))
			for _, name := range keep {
				sub[name] = c[name]
			}
			slot[k] = len(values)
			coords = append(coords, sub)
			values = append(values, v)
			return true
		}
		switch mode {
		case Marginal:
			values[j] += v
		case Maximum, Minimum:
			if mode.better(v, values[j]) {
				values[j] = v
			}
		}
		return true
	})

	return surface.NewIrregular(keep, coords, values, spec)
}

// sameDropped reports whether c and target agree on every parameter of target
// that is not kept.
func sameDropped(c, target surface.Coordinate, kept map[string]bool) bool {
	for name, v := range target {
		if kept[name] {
			continue
		}
		if w, ok := c[name]; !ok || w != v {
			return false
		}
	}

	return true
}

// tupleKey encodes the kept values of c by their IEEE bits, folding -0 to +0.
func tupleKey(c surface.Coordinate, keep []string) string {
	var sb strings.Builder
	for _, name := range keep {
		v := c[name]
		if v == 0 {
			v = 0
		}
		sb.WriteString(strconv.FormatUint(math.Float64bits(v), 16))
		sb.WriteByte(';')
	}

	return sb.String()
}
