// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/marginal"
)

// NewTradeoffCommand creates the tradeoff command.
func NewTradeoffCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		view   string
		keep   []string
		target string
		norm   string
		out    outputFlags
	)

	cmd := &cobra.Command{
		Use:   "tradeoff <samples.csv>...",
		Short: "Map a parameter of the best-fitting source over a view",
		Long: `Sum the misfit components and, for every combination of the kept
parameters, report the value of --target at the point of minimum misfit,
e.g. the magnitude behind each lune position:

  mtuq tradeoff --keep v,w --target rho lune.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args, view, norm, keep, marginal.Minimum.String(), nil)
			if err != nil {
				return err
			}
			a, release, err := rootOpts.analyzer()
			if err != nil {
				return err
			}
			defer release()

			s, err := a.Tradeoff(cmd.Context(), req, target)
			if err != nil {
				return err
			}
			return out.write(cmd, rootOpts, s)
		},
	}

	cmd.Flags().StringVar(&view, "view", contract.Lune.Name, "parameter view")
	cmd.Flags().StringSliceVar(&keep, "keep", []string{"v", "w"}, "parameters to keep, in axis order")
	cmd.Flags().StringVar(&target, "target", "rho", "parameter read off the best-fitting source")
	cmd.Flags().StringVar(&norm, "norm", "l2", "misfit norm of the tables (l1|l2)")
	out.register(cmd)

	return cmd
}
