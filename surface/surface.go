// SPDX-License-Identifier: MIT

// Package surface: the Surface container and its read operations.

package surface

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Surface is an immutable mapping from coordinates to scalar values, stored
// either as a regular grid or as an irregular point cloud.
type Surface struct {
	id     uuid.UUID
	kind   Kind
	spec   Spec
	params []string       // names present in every coordinate (regular: axis order)
	coords []Coordinate   // natural enumeration order (regular: row-major)
	values []float64      // parallel to coords
	index  map[string]int // coordinate key -> position
	axes   []Axis         // regular only
}

// New builds a misfit surface from grid-search samples.
// Implementation:
//   - Stage 1: validate norm, coordinates and misfit values.
//   - Stage 2: reject duplicate coordinates; collect common parameter names.
//   - Stage 3: detect (or enforce) the layout and lay the values out.
//
// Errors:
//   - ErrEmptySurface, ErrUnknownNorm, ErrInvalidCoordinate,
//     ErrInvalidMisfitValue, ErrDuplicateCoordinate, ErrIncompleteGrid.
//
// Complexity: O(n·p·log p) for n samples of p parameters.
func New(samples []Sample, norm Norm, opts ...Option) (*Surface, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Validate)
	if len(samples) == 0 {
		return nil, ErrEmptySurface
	}
	if norm != L1 && norm != L2 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNorm, norm)
	}
	for i, smp := range samples {
		if err := smp.Coordinate.validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if err := checkMisfit(smp.Misfit); err != nil {
			return nil, fmt.Errorf("%w: sample %d at %s: %g", ErrInvalidMisfitValue, i, smp.Coordinate, smp.Misfit)
		}
	}

	// Stage 2 (Prepare)
	seen := make(map[string]int, len(samples))
	for i, smp := range samples {
		k := smp.Coordinate.key()
		if j, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: samples %d and %d at %s", ErrDuplicateCoordinate, j, i, smp.Coordinate)
		}
		seen[k] = i
	}
	names, uniform := commonNames(samples)
	names = orderNames(names, o.order)
	spec := Spec{Quantity: Misfit, Norm: norm}

	// Stage 3 (Layout)
	var axes []Axis
	grid := false
	if uniform && o.layout != LayoutIrregular {
		axes, grid = detectAxes(samples, names)
	}
	if o.layout == LayoutRegular && !grid {
		return nil, ErrIncompleteGrid
	}
	if grid {
		return placeRegular(samples, axes, spec), nil
	}

	coords := make([]Coordinate, len(samples))
	values := make([]float64, len(samples))
	for i, smp := range samples {
		coords[i] = smp.Coordinate.Clone()
		values[i] = smp.Misfit
	}

	s := &Surface{
		kind:   Irregular,
		spec:   spec,
		params: names,
		coords: coords,
		values: values,
		index:  seen,
	}
	s.id = contentID(s)

	return s, nil
}

// checkMisfit enforces the misfit domain for both norms.
func checkMisfit(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return ErrInvalidMisfitValue
	}

	return nil
}

// commonNames returns, in lexical order, the names present in every sample and
// whether all samples share exactly that name set.
func commonNames(samples []Sample) ([]string, bool) {
	counts := make(map[string]int)
	for _, smp := range samples {
		for name := range smp.Coordinate {
			counts[name]++
		}
	}
	names := make([]string, 0, len(counts))
	uniform := true
	for name, n := range counts {
		if n == len(samples) {
			names = append(names, name)
		} else {
			uniform = false
		}
	}
	sort.Strings(names)

	return names, uniform
}

// detectAxes collects per-name distinct values and reports whether the samples
// cover their cartesian product exactly once. Duplicates were rejected before,
// so equal cardinalities imply a bijection.
func detectAxes(samples []Sample, names []string) ([]Axis, bool) {
	axes := make([]Axis, len(names))
	cells := 1
	for k, name := range names {
		set := make(map[float64]struct{})
		for _, smp := range samples {
			v := smp.Coordinate[name]
			if v == 0 {
				v = 0
			}
			set[v] = struct{}{}
		}
		vals := make([]float64, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Float64s(vals)
		axes[k] = Axis{Name: name, Values: vals}

		cells *= len(vals)
		if cells > len(samples) {
			return nil, false // early exit, also guards overflow
		}
	}

	return axes, cells == len(samples)
}

// placeRegular writes samples into row-major order over axes.
func placeRegular(samples []Sample, axes []Axis, spec Spec) *Surface {
	n := len(samples)
	strides := strides(axes)
	coords := make([]Coordinate, n)
	values := make([]float64, n)
	index := make(map[string]int, n)
	for _, smp := range samples {
		flat := 0
		for k, ax := range axes {
			flat += ax.Index(foldZero(smp.Coordinate[ax.Name])) * strides[k]
		}
		c := smp.Coordinate.Clone()
		coords[flat] = c
		values[flat] = smp.Misfit
		index[c.key()] = flat
	}

	s := &Surface{
		kind:   Regular,
		spec:   spec,
		params: axisNames(axes),
		coords: coords,
		values: values,
		index:  index,
		axes:   cloneAxes(axes),
	}
	s.id = contentID(s)

	return s
}

// storeNamespace scopes the name-based identities minted by New.
var storeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/thurinj/mtuq/surface"))

// contentID hashes layout, norm, parameter order and every point in
// enumeration order into a version 5 UUID. Equal grid-search output always
// gets the same identity; any change to a coordinate or misfit gives another.
func contentID(s *Surface) uuid.UUID {
	buf := make([]byte, 0, 64+len(s.values)*8*(len(s.params)+2))
	buf = append(buf, byte(s.kind), byte(s.spec.Norm))
	for _, p := range s.params {
		buf = append(buf, p...)
		buf = append(buf, 0)
	}
	for i, c := range s.coords {
		buf = append(buf, 0xff)
		for _, name := range c.Names() {
			buf = append(buf, name...)
			buf = append(buf, 0)
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(foldZero(c[name])))
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.values[i]))
	}

	return uuid.NewSHA1(storeNamespace, buf)
}

// ID returns the identity of this surface. New derives it from the samples,
// so reloading the same grid-search output yields the same ID; builders and
// derivations mint a fresh one.
func (s *Surface) ID() uuid.UUID { return s.id }

// Kind returns the storage layout.
func (s *Surface) Kind() Kind { return s.kind }

// Spec returns quantity, norm and normalization state.
func (s *Surface) Spec() Spec { return s.spec }

// Quantity returns what the values mean.
func (s *Surface) Quantity() Quantity { return s.spec.Quantity }

// Norm returns the misfit norm the surface was derived from.
func (s *Surface) Norm() Norm { return s.spec.Norm }

// Normalized reports whether the total mass of the surface is 1.
func (s *Surface) Normalized() bool { return s.spec.Normalized }

// Len returns the number of points.
func (s *Surface) Len() int { return len(s.values) }

// Get returns the value stored at c.
// Complexity: O(p log p) for p parameters.
func (s *Surface) Get(c Coordinate) (float64, error) {
	i, ok := s.index[c.key()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, c)
	}

	return s.values[i], nil
}

// Axes returns a copy of the grid axes in storage order.
func (s *Surface) Axes() ([]Axis, error) {
	if s.kind != Regular {
		return nil, fmt.Errorf("%w: Axes on %s surface", ErrUnsupportedOperation, s.kind)
	}

	return cloneAxes(s.axes), nil
}

// Parameters returns the names present in every coordinate.
func (s *Surface) Parameters() []string {
	return append([]string(nil), s.params...)
}

// HasParameter reports whether name is one of Parameters().
func (s *Surface) HasParameter(name string) bool {
	for _, p := range s.params {
		if p == name {
			return true
		}
	}

	return false
}

// At returns the i-th point in enumeration order. The coordinate is a copy.
func (s *Surface) At(i int) (Coordinate, float64) {
	return s.coords[i].Clone(), s.values[i]
}

// Value returns the i-th value in enumeration order.
func (s *Surface) Value(i int) float64 { return s.values[i] }

// Values returns a copy of all values in enumeration order.
func (s *Surface) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Each calls fn for every point in enumeration order until fn returns false.
// The coordinate passed to fn must not be modified.
func (s *Surface) Each(fn func(i int, c Coordinate, v float64) bool) {
	for i := range s.values {
		if !fn(i, s.coords[i], s.values[i]) {
			return
		}
	}
}

// String implements fmt.Stringer.
func (s *Surface) String() string {
	return fmt.Sprintf("%s %s surface, %d points over %v", s.kind, s.spec.Quantity, len(s.values), s.params)
}

func foldZero(v float64) float64 {
	if v == 0 {
		return 0
	}

	return v
}

func axisNames(axes []Axis) []string {
	names := make([]string, len(axes))
	for i, ax := range axes {
		names[i] = ax.Name
	}

	return names
}

func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, ax := range axes {
		out[i] = Axis{Name: ax.Name, Values: append([]float64(nil), ax.Values...)}
	}

	return out
}

// strides returns row-major strides (last axis fastest).
func strides(axes []Axis) []int {
	st := make([]int, len(axes))
	step := 1
	for k := len(axes) - 1; k >= 0; k-- {
		st[k] = step
		step *= axes[k].Len()
	}

	return st
}

// Cells returns the number of cells spanned by axes.
func Cells(axes []Axis) int {
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, ax := range axes {
		n *= ax.Len()
	}

	return n
}
