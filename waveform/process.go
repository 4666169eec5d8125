// SPDX-License-Identifier: MIT

package waveform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ProcessFunc applies a configured processing step (filtering, windowing,
// resampling) to the stream of one station. Implementations must not modify
// the input stream.
type ProcessFunc func(ctx context.Context, s Stream) (Stream, error)

// Chain composes fns left to right. Nil functions are skipped.
func Chain(fns ...ProcessFunc) ProcessFunc {
	return func(ctx context.Context, s Stream) (Stream, error) {
		var err error
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if s, err = fn(ctx, s); err != nil {
				return Stream{}, err
			}
		}

		return s, nil
	}
}

// Map applies fn to every stream of ds with at most limit calls in flight
// (limit <= 0 means unbounded) and returns the results in input order. The
// first error cancels the remaining calls and is returned wrapped with the
// station it came from.
func Map(ctx context.Context, ds Dataset, fn ProcessFunc, limit int) (Dataset, error) {
	out := make([]Stream, len(ds.Streams))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, s := range ds.Streams {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, s)
			if err != nil {
				return fmt.Errorf("waveform: station %s: %w", s.Station, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}

	return Dataset{Streams: out}, nil
}

// MapValidated runs Map and gates the result through Validate.
func MapValidated(ctx context.Context, ds Dataset, fn ProcessFunc, limit int, opts ...Option) (Dataset, error) {
	processed, err := Map(ctx, ds, fn, limit)
	if err != nil {
		return Dataset{}, err
	}

	return Validate(processed, opts...)
}
