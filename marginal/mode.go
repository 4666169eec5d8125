// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"

	"github.com/thurinj/mtuq/surface"
)

// Mode selects how dropped parameters are collapsed.
type Mode int

const (
	// Maximum keeps the largest value over the dropped parameters.
	Maximum Mode = iota
	// Marginal integrates (regular) or sums (irregular) over them.
	Marginal
	// Minimum keeps the smallest value over them.
	Minimum
	// SliceMaximum fixes them at the point of largest value.
	SliceMaximum
	// SliceMinimum fixes them at the point of smallest value.
	SliceMinimum
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Maximum:
		return "maximum"
	case Marginal:
		return "marginal"
	case Minimum:
		return "minimum"
	case SliceMaximum:
		return "slice_maximum"
	case SliceMinimum:
		return "slice_minimum"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(name string) (Mode, error) {
	for m := Maximum; m <= SliceMinimum; m++ {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (m Mode) valid() bool { return m >= Maximum && m <= SliceMinimum }

// extreme maps the extremal modes to the direction they search.
func (m Mode) extreme() surface.Extreme {
	if m == Maximum || m == SliceMaximum {
		return surface.Maximum
	}

	return surface.Minimum
}

// better reports whether v replaces cur under an extremal mode. Strict
// comparison keeps the first point on ties.
func (m Mode) better(v, cur float64) bool {
	if m.extreme() == surface.Maximum {
		return v > cur
	}

	return v < cur
}
