// SPDX-License-Identifier: MIT

// Package surface: binning of scattered samples onto regular cells.

package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BinSpec describes Count equal-width bins over [Min, Max] for one parameter.
type BinSpec struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Reducer collapses the values falling into one bin.
type Reducer func(values []float64) float64

// Built-in reducers.
var (
	ReduceMin  Reducer = floats.Min
	ReduceMax  Reducer = floats.Max
	ReduceSum  Reducer = floats.Sum
	ReduceMean Reducer = func(v []float64) float64 { return stat.Mean(v, nil) }
)

// ClosedInterval returns n evenly spaced points from a to b inclusive.
// n must be at least 2.
func ClosedInterval(a, b float64, n int) []float64 {
	return floats.Span(make([]float64, n), a, b)
}

// OpenInterval returns the centres of n equal cells partitioning [a, b].
func OpenInterval(a, b float64, n int) []float64 {
	out := make([]float64, n)
	w := (b - a) / float64(n)
	for i := range out {
		out[i] = a + (float64(i)+0.5)*w
	}

	return out
}

// Bin groups the points of s into the cells described by specs and reduces
// each occupied cell with reduce. Cells are half-open [lo, hi) except the last
// one per axis, which also takes hi. Points outside every range are dropped.
//
// The result is placed at cell centres: a regular surface when every cell is
// occupied, otherwise an irregular cloud of the occupied centres.
func Bin(s *Surface, specs []BinSpec, reduce Reducer) (*Surface, error) {
	if len(specs) == 0 || reduce == nil {
		return nil, fmt.Errorf("%w: no bins or reducer", ErrInvalidBin)
	}
	axes := make([]Axis, len(specs))
	edges := make([][]float64, len(specs))
	for k, sp := range specs {
		if !s.HasParameter(sp.Name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, sp.Name)
		}
		if sp.Count < 1 || !(sp.Min < sp.Max) || math.IsInf(sp.Min, 0) || math.IsInf(sp.Max, 0) {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidBin, sp)
		}
		axes[k] = Axis{Name: sp.Name, Values: OpenInterval(sp.Min, sp.Max, sp.Count)}
		edges[k] = ClosedInterval(sp.Min, sp.Max, sp.Count+1)
	}

	st := strides(axes)
	groups := make([][]float64, Cells(axes))
	for i, c := range s.coords {
		flat, ok := 0, true
		for k, sp := range specs {
			b := binOf(edges[k], c[sp.Name])
			if b < 0 {
				ok = false
				break
			}
			flat += b * st[k]
		}
		if ok {
			groups[flat] = append(groups[flat], s.values[i])
		}
	}

	spec := Spec{Quantity: s.spec.Quantity, Norm: s.spec.Norm}
	full := true
	for _, g := range groups {
		if len(g) == 0 {
			full = false
			break
		}
	}
	if full {
		values := make([]float64, len(groups))
		for i, g := range groups {
			values[i] = reduce(g)
		}
		return NewRegular(axes, values, spec)
	}

	var coords []Coordinate
	var values []float64
	for flat, g := range groups {
		if len(g) == 0 {
			continue
		}
		c := make(Coordinate, len(axes))
		for k, ax := range axes {
			c[ax.Name] = ax.Values[(flat/st[k])%ax.Len()]
		}
		coords = append(coords, c)
		values = append(values, reduce(g))
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: every bin is empty", ErrEmptySurface)
	}

	return NewIrregular(axisNames(axes), coords, values, spec)
}

// binOf returns the cell of v among edges, or -1 when out of range.
func binOf(edges []float64, v float64) int {
	last := len(edges) - 1
	if v < edges[0] || v > edges[last] {
		return -1
	}
	if v == edges[last] {
		return last - 1
	}
	lo, hi := 0, last
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if v < edges[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}

	return lo
}
