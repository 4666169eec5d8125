// SPDX-License-Identifier: MIT

// Command mtuq converts grid-search misfit tables into likelihood and misfit
// views and checks processed waveform datasets.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/thurinj/mtuq/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
