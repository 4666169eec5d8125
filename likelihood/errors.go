// SPDX-License-Identifier: MIT

package likelihood

import "errors"

var (
	// ErrUnsupportedMisfitKind is returned for L1 misfit: the Gaussian kernel
	// is defined over squared-error misfit only.
	ErrUnsupportedMisfitKind = errors.New("likelihood: only L2 misfit can be converted")

	// ErrUnsupportedCovarianceStructure is returned when the covariance has a
	// non-zero off-diagonal entry.
	ErrUnsupportedCovarianceStructure = errors.New("likelihood: only diagonal covariance is supported")

	// ErrInvalidCovariance marks a nil, empty or non-square covariance, or a
	// diagonal entry that is not finite and positive.
	ErrInvalidCovariance = errors.New("likelihood: invalid covariance")

	// ErrCovarianceDimension is returned when the covariance size differs from
	// the number of misfit components.
	ErrCovarianceDimension = errors.New("likelihood: covariance dimension does not match misfit components")

	// ErrNoComponents is returned when no misfit surface is supplied.
	ErrNoComponents = errors.New("likelihood: no misfit components")

	// ErrNotMisfit is returned when a component is not a misfit surface.
	ErrNotMisfit = errors.New("likelihood: component is not a misfit surface")

	// ErrComponentMismatch is returned when components do not share coordinates.
	ErrComponentMismatch = errors.New("likelihood: misfit components cover different coordinates")
)
