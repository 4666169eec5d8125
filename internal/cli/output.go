// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/figure"
	"github.com/thurinj/mtuq/surface"
)

// outputFlags are shared by the commands producing a surface.
type outputFlags struct {
	table  string // XYZ table path, "-" or empty for stdout
	figure string // figure filename handed to the plotting toolkit
	grid   bool   // write a matrix instead of XYZ rows
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.table, "output", "o", "", "table output path (default stdout)")
	cmd.Flags().StringVar(&f.figure, "figure", "", "figure filename; the extension selects the image format")
	cmd.Flags().BoolVar(&f.grid, "grid", false, "write a 2-D matrix instead of XYZ rows")
}

// write emits s and reports the resolved figure target.
func (f *outputFlags) write(cmd *cobra.Command, o *RootOptions, s *surface.Surface) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if f.table != "" && f.table != "-" {
		file, cerr := os.Create(f.table)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", f.table, cerr)
			}
		}()
		w = file
	}

	if f.grid {
		err = figure.WriteGrid(w, s)
	} else {
		err = figure.WriteXYZ(w, s)
	}
	if err != nil {
		return err
	}

	if f.figure != "" {
		fallback, ferr := figure.ParseFormat(o.cfg.DefaultFormat)
		if ferr != nil {
			fallback = figure.PNG
		}
		format, name := figure.ResolveFilename(f.figure, fallback)
		o.logger.Info("figure target", "file", name, "format", format)
	}
	if s.Quantity() != surface.Parameter {
		best, v := surface.Best(s, bestExtreme(s))
		o.logger.Info("best point", "coordinate", best.String(), s.Quantity().String(), v, "normalized", s.Normalized())
	}

	return nil
}

func bestExtreme(s *surface.Surface) surface.Extreme {
	if s.Quantity() == surface.Misfit {
		return surface.Minimum
	}

	return surface.Maximum
}
