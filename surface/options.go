// SPDX-License-Identifier: MIT

// Package surface: functional options for New.

package surface

// Layout is the layout requested by the producer of the samples.
type Layout int

const (
	// LayoutAuto detects the layout from the samples (default).
	LayoutAuto Layout = iota
	// LayoutRegular demands a complete regular grid; ErrIncompleteGrid otherwise.
	LayoutRegular
	// LayoutIrregular stores the samples as a point cloud even if they happen
	// to form a grid.
	LayoutIrregular
)

// DefaultLayout is the layout policy applied when no WithLayout is given.
const DefaultLayout = LayoutAuto

// Option configures New.
type Option func(*options)

type options struct {
	layout Layout
	order  []string // preferred axis order; remaining names follow lexically
}

// WithLayout declares how the grid search sampled the parameter space.
func WithLayout(l Layout) Option {
	return func(o *options) { o.layout = l }
}

// WithParameterOrder fixes the order of Parameters() and of the axes of a
// regular grid. Names absent from the samples are ignored; names not listed
// follow in lexical order.
//
// Example: WithParameterOrder("rho", "v", "w", "kappa", "sigma", "h").
func WithParameterOrder(names ...string) Option {
	return func(o *options) { o.order = append([]string(nil), names...) }
}

func gatherOptions(opts ...Option) options {
	o := options{layout: DefaultLayout}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// orderNames arranges names (already lexical) so that preferred ones come first.
func orderNames(names, preferred []string) []string {
	if len(preferred) == 0 {
		return names
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	for _, n := range preferred {
		if present[n] {
			out = append(out, n)
			present[n] = false // guard against repeated preferences
		}
	}
	for _, n := range names {
		if present[n] {
			out = append(out, n)
		}
	}

	return out
}
