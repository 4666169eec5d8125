// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thurinj/mtuq/waveform"
)

// NewValidateDataCommand creates the validate-data command.
func NewValidateDataCommand(rootOpts *RootOptions) *cobra.Command {
	var demean bool

	cmd := &cobra.Command{
		Use:   "validate-data <dataset.yaml>",
		Short: "Check that processed waveforms share one discretization",
		Long: `Check that every trace has the same sampling rate and sample count, and
that traces of one station share start and end time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}
			var steps []waveform.ProcessFunc
			if demean {
				steps = append(steps, Demean)
			}
			ds, err = waveform.MapValidated(cmd.Context(), ds, waveform.Chain(steps...), rootOpts.cfg.Concurrency,
				waveform.WithRateTolerance(rootOpts.cfg.RateTolerance))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d stations, %d traces)\n", args[0], len(ds.Stations()), ds.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&demean, "demean", false, "remove the mean of every trace before checking")

	return cmd
}

// Demean removes the mean of every trace.
func Demean(_ context.Context, s waveform.Stream) (waveform.Stream, error) {
	out := waveform.Stream{Station: s.Station, Traces: make([]waveform.Trace, len(s.Traces))}
	for i, tr := range s.Traces {
		tr.Samples = append([]float64(nil), tr.Samples...)
		if len(tr.Samples) > 0 {
			floats.AddConst(-stat.Mean(tr.Samples, nil), tr.Samples)
		}
		out.Traces[i] = tr
	}

	return out, nil
}
