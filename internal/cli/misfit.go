// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/marginal"
)

// NewMisfitCommand creates the misfit command.
func NewMisfitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		view     string
		keep     []string
		mode     string
		norm     string
		dataNorm float64
		bins     []string
		out      outputFlags
	)

	cmd := &cobra.Command{
		Use:   "misfit <samples.csv>...",
		Short: "Reduce summed misfit, or variance reduction, onto a view",
		Long: `Sum the misfit components and reduce the total onto the kept parameters.

With --data-norm the total is first converted to percent variance reduction,
100·(1 − misfit/data-norm); use --mode maximum for the best-fit view.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args, view, norm, keep, mode, bins)
			if err != nil {
				return err
			}
			a, release, err := rootOpts.analyzer()
			if err != nil {
				return err
			}
			defer release()

			if cmd.Flags().Changed("data-norm") {
				s, err := a.VarianceReduction(cmd.Context(), req, dataNorm)
				if err != nil {
					return err
				}
				return out.write(cmd, rootOpts, s)
			}
			s, err := a.Misfit(cmd.Context(), req)
			if err != nil {
				return err
			}
			return out.write(cmd, rootOpts, s)
		},
	}

	cmd.Flags().StringVar(&view, "view", contract.Lune.Name, "parameter view")
	cmd.Flags().StringSliceVar(&keep, "keep", nil, "parameters to keep, in axis order (default all)")
	cmd.Flags().StringVar(&mode, "mode", marginal.Minimum.String(), "reduction: minimum|maximum|slice_minimum|slice_maximum")
	cmd.Flags().StringVar(&norm, "norm", "l2", "misfit norm of the tables (l1|l2)")
	cmd.Flags().Float64Var(&dataNorm, "data-norm", 0, "data norm for variance reduction")
	cmd.Flags().StringArrayVar(&bins, "bin", nil, "bin the view onto cells, name:min:max:count (repeatable)")
	out.register(cmd)

	return cmd
}
