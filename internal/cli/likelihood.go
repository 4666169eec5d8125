// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/marginal"
	"github.com/thurinj/mtuq/uq"
)

// NewLikelihoodCommand creates the likelihood command.
func NewLikelihoodCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		view      string
		keep      []string
		mode      string
		norm      string
		variances []float64
		bins      []string
		out       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "likelihood <samples.csv>...",
		Short: "Convert misfit tables to a likelihood view",
		Long: `Convert one or more misfit components to a Gaussian likelihood and reduce
it onto the kept parameters.

One variance is used per component; a single --variance applies to all
components, and none falls back to the configured variance.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args, view, norm, keep, mode, bins)
			if err != nil {
				return err
			}
			vars, err := expandVariances(variances, len(args), rootOpts.cfg.Variance)
			if err != nil {
				return err
			}

			a, release, err := rootOpts.analyzer()
			if err != nil {
				return err
			}
			defer release()

			s, err := a.Likelihood(cmd.Context(), req, vars)
			if err != nil {
				return err
			}
			return out.write(cmd, rootOpts, s)
		},
	}

	cmd.Flags().StringVar(&view, "view", contract.Lune.Name, "parameter view")
	cmd.Flags().StringSliceVar(&keep, "keep", nil, "parameters to keep, in axis order (default all)")
	cmd.Flags().StringVar(&mode, "mode", marginal.Marginal.String(), "reduction: maximum|marginal|slice_maximum")
	cmd.Flags().StringVar(&norm, "norm", "l2", "misfit norm of the tables (l1|l2)")
	cmd.Flags().Float64SliceVar(&variances, "variance", nil, "noise variance per component")
	cmd.Flags().StringArrayVar(&bins, "bin", nil, "bin the view onto cells, name:min:max:count (repeatable)")
	out.register(cmd)

	return cmd
}

// buildRequest loads the tables and resolves the view, reduction and bins.
func buildRequest(paths []string, view, norm string, keep []string, mode string, bins []string) (uq.Request, error) {
	v, err := contract.Lookup(view)
	if err != nil {
		return uq.Request{}, err
	}
	m, err := marginal.ParseMode(mode)
	if err != nil {
		return uq.Request{}, err
	}
	n, err := parseNorm(norm)
	if err != nil {
		return uq.Request{}, err
	}
	b, err := parseBins(bins)
	if err != nil {
		return uq.Request{}, err
	}
	stores, err := loadSurfaces(paths, n)
	if err != nil {
		return uq.Request{}, err
	}

	return uq.Request{Stores: stores, View: v, Keep: keep, Mode: m, Bins: b}, nil
}

func expandVariances(given []float64, components int, fallback float64) ([]float64, error) {
	switch len(given) {
	case 0:
		given = []float64{fallback}
		fallthrough
	case 1:
		out := make([]float64, components)
		for i := range out {
			out[i] = given[0]
		}
		return out, nil
	case components:
		return given, nil
	}

	return nil, fmt.Errorf("%d variances for %d components", len(given), components)
}

