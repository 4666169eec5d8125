// SPDX-License-Identifier: MIT

package likelihood_test

import (
	"fmt"

	"github.com/thurinj/mtuq/likelihood"
	"github.com/thurinj/mtuq/surface"
)

// ExampleConvert turns three depth misfits, kept as a point cloud, into a
// probability mass function.
func ExampleConvert() {
	s, _ := surface.New([]surface.Sample{
		{Coordinate: surface.Coordinate{"depth": 1000}, Misfit: 2},
		{Coordinate: surface.Coordinate{"depth": 2000}, Misfit: 0},
		{Coordinate: surface.Coordinate{"depth": 3000}, Misfit: 2},
	}, surface.L2, surface.WithLayout(surface.LayoutIrregular))

	l, _ := likelihood.Convert(s, likelihood.Diagonal(1))
	for i := 0; i < l.Len(); i++ {
		c, p := l.At(i)
		fmt.Printf("%s %.4f\n", c, p)
	}
	fmt.Printf("mass %.4f\n", likelihood.Mass(l))
	// Output:
	// {depth=1000} 0.2119
	// {depth=2000} 0.5761
	// {depth=3000} 0.2119
	// mass 1.0000
}
