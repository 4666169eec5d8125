// SPDX-License-Identifier: MIT

// Package cli implements the mtuq command.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/cache"
	"github.com/thurinj/mtuq/internal/config"
	"github.com/thurinj/mtuq/internal/logging"
	"github.com/thurinj/mtuq/uq"
)

// RootOptions holds global flags and the state loaded from them.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root command of the mtuq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mtuq",
		Short: "Moment tensor uncertainty quantification",
		Long: `mtuq turns grid-search misfit tables into likelihood and misfit views.

Misfit tables are CSV files with one column per source parameter and a
"misfit" column. Several tables passed together are treated as misfit
components (e.g. body and surface waves) over the same grid.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			level := cfg.Level()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.cfg = cfg
			opts.logger = logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewLikelihoodCommand(opts))
	cmd.AddCommand(NewMisfitCommand(opts))
	cmd.AddCommand(NewTradeoffCommand(opts))
	cmd.AddCommand(NewValidateDataCommand(opts))

	return cmd
}

// analyzer builds an Analyzer from the loaded configuration. The returned
// function releases the cache.
func (o *RootOptions) analyzer() (*uq.Analyzer, func(), error) {
	aopts := []uq.Option{
		uq.WithLogger(o.logger),
		uq.WithKernelScale(o.cfg.KernelScale),
		uq.WithRawKernel(o.cfg.RawKernel),
	}
	release := func() {}
	if o.cfg.CachePath != "" {
		db, err := cache.OpenSQLite(o.cfg.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		aopts = append(aopts, uq.WithCache(db))
		release = func() {
			if err := db.Close(); err != nil {
				o.logger.Warn("closing cache", "error", err)
			}
		}
	}

	return uq.New(aopts...), release, nil
}
