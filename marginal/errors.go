// SPDX-License-Identifier: MIT

package marginal

import (
	"errors"

	"github.com/thurinj/mtuq/surface"
)

var (
	// ErrEmptyKeep is returned when no parameter is kept.
	ErrEmptyKeep = errors.New("marginal: keep is empty")

	// ErrUnknownParameter is returned when a kept name is not a parameter of
	// the surface. It is the surface package sentinel.
	ErrUnknownParameter = surface.ErrUnknownParameter

	// ErrDuplicateParameter is returned when keep names a parameter twice, or
	// when the Tradeoff target is also kept.
	ErrDuplicateParameter = errors.New("marginal: parameter kept twice")

	// ErrUnknownMode is returned for a Mode outside the declared set.
	ErrUnknownMode = errors.New("marginal: unknown mode")

	// ErrModeQuantity is returned when Marginal is applied to a surface that
	// is not a likelihood.
	ErrModeQuantity = errors.New("marginal: mode does not apply to this quantity")
)
