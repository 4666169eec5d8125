// SPDX-License-Identifier: MIT

package figure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/thurinj/mtuq/surface"
)

// ErrNotGrid2D is returned by WriteGrid for surfaces that are not regular
// with exactly two axes.
var ErrNotGrid2D = errors.New("figure: surface is not a regular 2-D grid")

// WriteXYZ writes one row per point of s in enumeration order: the parameter
// values in Parameters() order followed by the surface value. The first line
// is a '#' header naming the columns.
func WriteXYZ(w io.Writer, s *surface.Surface) error {
	bw := bufio.NewWriter(w)
	params := s.Parameters()

	bw.WriteString("#")
	for _, p := range params {
		bw.WriteString(" " + p)
	}
	bw.WriteString(" " + s.Quantity().String() + "\n")

	s.Each(func(_ int, c surface.Coordinate, v float64) bool {
		for i, p := range params {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(formatFloat(c[p]))
		}
		bw.WriteString(" " + formatFloat(v) + "\n")
		return true
	})

	return bw.Flush()
}

// WriteGrid writes a regular 2-D surface as a matrix: the first line holds the
// second axis values, every following line one position of the first axis
// followed by its row of values.
func WriteGrid(w io.Writer, s *surface.Surface) error {
	axes, err := s.Axes()
	if err != nil || len(axes) != 2 {
		return fmt.Errorf("%w: %s", ErrNotGrid2D, s)
	}
	rows, cols := axes[0], axes[1]
	m := mat.NewDense(rows.Len(), cols.Len(), s.Values())

	bw := bufio.NewWriter(w)
	bw.WriteString(rows.Name + `\` + cols.Name)
	for _, x := range cols.Values {
		bw.WriteString(" " + formatFloat(x))
	}
	bw.WriteByte('\n')
	for i, y := range rows.Values {
		bw.WriteString(formatFloat(y))
		for _, v := range m.RawRowView(i) {
			bw.WriteString(" " + formatFloat(v))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
