// SPDX-License-Identifier: MIT

// Package surface: domain types shared by the store and its consumers.

package surface

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Norm identifies how misfit values were measured.
type Norm int

const (
	// L2 is the squared-error norm; the only norm a Gaussian likelihood accepts.
	L2 Norm = iota
	// L1 is the absolute-error norm.
	L1
)

// String implements fmt.Stringer.
func (n Norm) String() string {
	switch n {
	case L2:
		return "L2"
	case L1:
		return "L1"
	default:
		return "Norm(" + strconv.Itoa(int(n)) + ")"
	}
}

// Kind is the storage layout of a surface.
type Kind int

const (
	// Irregular is an unordered point cloud.
	Irregular Kind = iota
	// Regular is a dense axis-aligned grid.
	Regular
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Regular {
		return "regular"
	}

	return "irregular"
}

// Quantity names what the values of a surface mean.
type Quantity int

const (
	// Misfit values are non-negative distances between data and synthetics.
	Misfit Quantity = iota
	// Likelihood values are non-negative probability weights.
	Likelihood
	// VarianceReduction values are percentages, 100·(1 − misfit/‖data‖).
	VarianceReduction
	// Parameter values are source parameters read off the best-fitting point
	// of each cell, e.g. the magnitude behind every lune position.
	Parameter
)

// String implements fmt.Stringer.
func (q Quantity) String() string {
	switch q {
	case Misfit:
		return "misfit"
	case Likelihood:
		return "likelihood"
	case VarianceReduction:
		return "variance_reduction"
	case Parameter:
		return "parameter"
	default:
		return "Quantity(" + strconv.Itoa(int(q)) + ")"
	}
}

// Coordinate is a named tuple of source-model parameters. Names are opaque
// labels; the surface only needs equality, and an order per axis.
type Coordinate map[string]float64

// Names returns the parameter names of c in lexical order.
func (c Coordinate) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Clone returns an independent copy of c.
func (c Coordinate) Clone() Coordinate {
	out := make(Coordinate, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// String renders c as {name=value, ...} in lexical name order.
func (c Coordinate) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range c.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(c[name], 'g', -1, 64))
	}
	sb.WriteByte('}')

	return sb.String()
}

// key encodes c into a hashable string. Names are visited in lexical order and
// values by their IEEE bits, so 0.1 and 0.1000000001 stay distinct. Negative
// zero is folded onto zero.
func (c Coordinate) key() string {
	var sb strings.Builder
	for _, name := range c.Names() {
		v := c[name]
		if v == 0 {
			v = 0 // fold -0
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatUint(math.Float64bits(v), 16))
		sb.WriteByte(';')
	}

	return sb.String()
}

// validate rejects empty coordinates and NaN/Inf parameter values.
func (c Coordinate) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no parameters", ErrInvalidCoordinate)
	}
	for name, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%g", ErrInvalidCoordinate, name, v)
		}
	}

	return nil
}

// Sample is one grid-search evaluation: a candidate source model and its misfit.
type Sample struct {
	Coordinate Coordinate
	Misfit     float64
}

// Axis is one dimension of a regular grid.
type Axis struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"` // strictly increasing
}

// Len returns the number of grid positions along the axis.
func (a Axis) Len() int { return len(a.Values) }

// Index returns the position of v on the axis, or -1.
func (a Axis) Index(v float64) int {
	i := sort.SearchFloat64s(a.Values, v)
	if i < len(a.Values) && a.Values[i] == v {
		return i
	}

	return -1
}

// Reader is the read contract every consumer of a surface relies on. It is
// structural: any type exposing these operations is accepted, whatever its
// concrete layout.
type Reader interface {
	// Get returns the value stored at c, or ErrKeyNotFound.
	Get(c Coordinate) (float64, error)
	// Axes returns the grid axes, or ErrUnsupportedOperation for point clouds.
	Axes() ([]Axis, error)
	// Parameters returns the names present in every coordinate.
	Parameters() []string
}

// Spec carries the metadata of a surface that is not implied by its shape.
type Spec struct {
	Quantity   Quantity
	Norm       Norm
	Normalized bool // total mass (sum or integral) is 1
}
