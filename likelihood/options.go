// SPDX-License-Identifier: MIT

package likelihood

import (
	"log/slog"
	"math"
)

// DefaultScale is the kernel scale c in exp(−c·m/σ²).
const DefaultScale = 0.5

const panicScaleInvalid = "likelihood: WithScale: scale must be finite and positive"

// Option configures Convert and ConvertJoint.
type Option func(*options)

type options struct {
	scale  float64
	raw    bool
	logger *slog.Logger
}

// WithScale sets the kernel scale c. Panics when c is not finite and positive
// (programmer error).
func WithScale(c float64) Option {
	if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
		panic(panicScaleInvalid)
	}

	return func(o *options) { o.scale = c }
}

// WithRawKernel evaluates exp(−c·m/σ²) as written. By default exponents are
// shifted by their maximum first, which leaves normalized weights unchanged
// but keeps them from underflowing to zero for large misfits.
func WithRawKernel() Option {
	return func(o *options) { o.raw = true }
}

// WithLogger routes warnings (skipped normalization) to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{scale: DefaultScale}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
