// SPDX-License-Identifier: MIT

package waveform

import "math"

const panicToleranceInvalid = "waveform: WithRateTolerance: tolerance must be finite and in [0, 1)"

// Option configures Validate.
type Option func(*options)

type options struct {
	rateTol float64
}

// WithRateTolerance accepts sampling rates whose relative difference is at most
// rel. The default, 0, demands exact equality. Panics on rel outside [0, 1).
func WithRateTolerance(rel float64) Option {
	if math.IsNaN(rel) || rel < 0 || rel >= 1 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.rateTol = rel }
}

func gatherOptions(opts ...Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

func (o options) sameRate(a, b float64) bool {
	if a == b {
		return true
	}

	return math.Abs(a-b) <= o.rateTol*math.Max(math.Abs(a), math.Abs(b))
}
