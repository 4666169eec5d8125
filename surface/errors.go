// SPDX-License-Identifier: MIT

// Package surface: sentinel errors.
// Every message is prefixed with "surface: ...". Call sites wrap with
// fmt.Errorf("%w: detail", ErrX) so errors.Is keeps matching.

package surface

import "errors"

var (
	// ErrEmptySurface is returned when a surface would hold no points.
	ErrEmptySurface = errors.New("surface: no samples")

	// ErrInvalidMisfitValue marks a negative or non-finite misfit.
	ErrInvalidMisfitValue = errors.New("surface: misfit must be finite and non-negative")

	// ErrInvalidValue marks a derived value that violates its quantity's domain
	// (NaN/Inf anywhere, negative likelihood weights).
	ErrInvalidValue = errors.New("surface: invalid value")

	// ErrInvalidCoordinate marks an empty coordinate or a NaN/Inf parameter value.
	ErrInvalidCoordinate = errors.New("surface: invalid coordinate")

	// ErrDuplicateCoordinate is returned when two samples share one coordinate.
	ErrDuplicateCoordinate = errors.New("surface: duplicate coordinate")

	// ErrUnknownNorm is returned for a misfit norm other than L1 or L2.
	ErrUnknownNorm = errors.New("surface: unknown misfit norm")

	// ErrIncompleteGrid is returned when a regular layout was demanded but the
	// samples do not cover every cell exactly once.
	ErrIncompleteGrid = errors.New("surface: samples do not form a complete regular grid")

	// ErrKeyNotFound is returned by Get for a coordinate absent from the surface.
	ErrKeyNotFound = errors.New("surface: coordinate not found")

	// ErrUnsupportedOperation is returned by Axes on irregular surfaces.
	ErrUnsupportedOperation = errors.New("surface: operation not supported by layout")

	// ErrUnknownParameter is returned when a parameter name is not declared.
	ErrUnknownParameter = errors.New("surface: unknown parameter")

	// ErrShapeMismatch indicates values that do not fit the declared axes or
	// coordinates.
	ErrShapeMismatch = errors.New("surface: shape mismatch")

	// ErrInvalidAxis marks an empty axis or one that is not strictly increasing.
	ErrInvalidAxis = errors.New("surface: axis values must be finite and strictly increasing")

	// ErrCoordinateMismatch is returned when two surfaces that must share
	// coordinates do not.
	ErrCoordinateMismatch = errors.New("surface: coordinate sets differ")

	// ErrNormMismatch is returned when combining misfits of different norms.
	ErrNormMismatch = errors.New("surface: misfit norms differ")

	// ErrQuantityMismatch is returned when an operation receives the wrong
	// kind of surface (e.g. summing likelihoods as misfits).
	ErrQuantityMismatch = errors.New("surface: unexpected quantity")

	// ErrInvalidDataNorm is returned for a non-positive or non-finite data norm.
	ErrInvalidDataNorm = errors.New("surface: data norm must be finite and positive")

	// ErrInvalidBin marks a bin layout with an empty or inverted range.
	ErrInvalidBin = errors.New("surface: invalid bin layout")

	// ErrInvalidSnapshot marks a snapshot that cannot be restored.
	ErrInvalidSnapshot = errors.New("surface: invalid snapshot")
)
