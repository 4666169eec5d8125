// SPDX-License-Identifier: MIT

package uq

import (
	"log/slog"

	"github.com/thurinj/mtuq/cache"
	"github.com/thurinj/mtuq/likelihood"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache stores derived surfaces in c. The default is a fresh Memory cache.
func WithCache(c cache.Cache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithKernelScale sets the likelihood kernel scale (see likelihood.WithScale).
// Panics when c is not finite and positive.
func WithKernelScale(c float64) Option {
	likelihood.WithScale(c) // validates
	return func(a *Analyzer) { a.scale = c }
}

// WithRawKernel disables exponent shifting (see likelihood.WithRawKernel).
func WithRawKernel(raw bool) Option {
	return func(a *Analyzer) { a.raw = raw }
}
