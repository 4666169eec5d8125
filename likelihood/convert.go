// SPDX-License-Identifier: MIT

package likelihood

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/thurinj/mtuq/surface"
)

// Convert turns one L2 misfit surface into a likelihood surface using the
// variance held by the 1×1 covariance cov. See ConvertJoint.
func Convert(s *surface.Surface, cov mat.Matrix, opts ...Option) (*surface.Surface, error) {
	return ConvertJoint([]*surface.Surface{s}, cov, opts...)
}

// ConvertJoint combines several misfit components evaluated over the same
// coordinates (e.g. body and surface waves) into one likelihood surface.
// Component k is weighted by the k-th diagonal entry of cov.
//
// The result has the layout, coordinates and enumeration order of the first
// component and Quantity() == surface.Likelihood.
//
// Stage 1 (Validate): components are L2 misfit over identical coordinates;
// cov is square, diagonal, positive, one entry per component.
// Stage 2 (Execute): accumulate exponents, shift, exponentiate.
// Stage 3 (Normalize): divide by Mass unless it is zero or undefined.
// Complexity: O(k·n) time, O(n) memory.
func ConvertJoint(components []*surface.Surface, cov mat.Matrix, opts ...Option) (*surface.Surface, error) {
	o := gatherOptions(opts...)

	// Stage 1
	if len(components) == 0 {
		return nil, ErrNoComponents
	}
	for k, c := range components {
		if c == nil {
			return nil, fmt.Errorf("%w: component %d is nil", ErrNoComponents, k)
		}
		if c.Quantity() != surface.Misfit {
			return nil, fmt.Errorf("%w: component %d is %s", ErrNotMisfit, k, c.Quantity())
		}
		if c.Norm() != surface.L2 {
			return nil, fmt.Errorf("%w: component %d uses %s", ErrUnsupportedMisfitKind, k, c.Norm())
		}
	}
	vars, err := Variances(cov)
	if err != nil {
		return nil, err
	}
	if len(vars) != len(components) {
		return nil, fmt.Errorf("%w: %d variances for %d components", ErrCovarianceDimension, len(vars), len(components))
	}

	// Stage 2
	base := components[0]
	expo := make([]float64, base.Len())
	for k, comp := range components {
		if err := accumulate(expo, base, comp, -o.scale/vars[k]); err != nil {
			return nil, fmt.Errorf("component %d: %w", k, err)
		}
	}
	if !o.raw {
		floats.AddConst(-floats.Max(expo), expo)
	}
	weights := make([]float64, len(expo))
	for i, e := range expo {
		weights[i] = math.Exp(e)
	}

	// Stage 3
	spec := surface.Spec{Quantity: surface.Likelihood, Norm: surface.L2}
	if reason := normalize(base, weights); reason != "" {
		o.logger.Warn("likelihood normalization skipped",
			"reason", reason,
			"store", base.ID(),
			"points", base.Len(),
		)
	} else {
		spec.Normalized = true
	}

	return base.Derive(weights, spec)
}

// accumulate adds factor·comp to expo, aligning comp on the coordinates of base.
func accumulate(expo []float64, base, comp *surface.Surface, factor float64) error {
	if comp.Len() != base.Len() {
		return fmt.Errorf("%w: %d and %d points", ErrComponentMismatch, base.Len(), comp.Len())
	}
	if comp == base || surface.SameShape(base, comp) {
		floats.AddScaled(expo, factor, comp.Values())
		return nil
	}

	var err error
	base.Each(func(i int, c surface.Coordinate, _ float64) bool {
		var m float64
		if m, err = comp.Get(c); err != nil {
			err = fmt.Errorf("%w: %s", ErrComponentMismatch, c)
			return false
		}
		expo[i] += factor * m
		return true
	})

	return err
}

// normalize scales weights to unit mass in place and returns "" on success,
// or the reason normalization was skipped.
func normalize(shape *surface.Surface, weights []float64) string {
	var mass float64
	if axes, err := shape.Axes(); err == nil {
		if surface.Degenerate(axes) {
			return "single-point grid"
		}
		mass, _ = surface.Integrate(axes, weights)
	} else {
		mass = floats.Sum(weights)
	}

	inv := 1 / mass
	if mass == 0 || math.IsNaN(mass) || math.IsInf(mass, 0) || math.IsInf(inv, 0) {
		return "zero or undefined mass"
	}
	floats.Scale(inv, weights)

	return ""
}

// Mass returns the total mass of a likelihood surface: the sum of its values
// for irregular clouds and their trapezoidal integral for regular grids.
func Mass(s *surface.Surface) float64 { return surface.Mass(s) }
