// SPDX-License-Identifier: MIT

package surface_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thurinj/mtuq/surface"
)

// lune axes used throughout the tests: v ∈ [-1/3, 1/3], w ∈ [-3/8, 3/8].
var (
	vAxis = []float64{-1.0 / 3, 0, 1.0 / 3}
	wAxis = []float64{-3.0 / 8, 0, 3.0 / 8}
)

// bowl is a misfit minimized at (0,0) with value 0.
func bowl(v, w float64) float64 { return v*v + w*w }

// gridSamples enumerates v×w in v-major order and evaluates f.
func gridSamples(vs, ws []float64, f func(v, w float64) float64) []surface.Sample {
	out := make([]surface.Sample, 0, len(vs)*len(ws))
	for _, v := range vs {
		for _, w := range ws {
			out = append(out, surface.Sample{
				Coordinate: surface.Coordinate{"v": v, "w": w},
				Misfit:     f(v, w),
			})
		}
	}

	return out
}

// reversed reverses samples in place and returns them.
func reversed(samples []surface.Sample) []surface.Sample {
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}

	return samples
}

// mustNew builds a surface or fails the test.
func mustNew(t *testing.T, samples []surface.Sample, opts ...surface.Option) *surface.Surface {
	t.Helper()
	s, err := surface.New(samples, surface.L2, opts...)
	require.NoError(t, err)

	return s
}
