// SPDX-License-Identifier: MIT

package surface_test

import (
	"testing"

	"github.com/thurinj/mtuq/surface"
)

// benchmarkNew builds an n×n regular grid per iteration.
func benchmarkNew(b *testing.B, n int) {
	vs := surface.ClosedInterval(-1.0/3, 1.0/3, n)
	ws := surface.ClosedInterval(-3.0/8, 3.0/8, n)
	samples := gridSamples(vs, ws, bowl)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := surface.New(samples, surface.L2); err != nil {
			b.Fatalf("New failed: %v", err)
		}
	}
}

func BenchmarkNew_20x20(b *testing.B)   { benchmarkNew(b, 20) }
func BenchmarkNew_100x100(b *testing.B) { benchmarkNew(b, 100) }

// BenchmarkIntegrate_100x100 measures the iterated trapezoid on a dense grid.
func BenchmarkIntegrate_100x100(b *testing.B) {
	axes := []surface.Axis{
		{Name: "v", Values: surface.ClosedInterval(-1.0/3, 1.0/3, 100)},
		{Name: "w", Values: surface.ClosedInterval(-3.0/8, 3.0/8, 100)},
	}
	values := make([]float64, 100*100)
	for i := range values {
		values[i] = 1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := surface.Integrate(axes, values); err != nil {
			b.Fatalf("Integrate failed: %v", err)
		}
	}
}
