// SPDX-License-Identifier: MIT

package uq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thurinj/mtuq/cache"
	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/likelihood"
	"github.com/thurinj/mtuq/marginal"
	"github.com/thurinj/mtuq/surface"
)

// Stage names used in cache keys and logs.
const (
	StageLikelihood        = "likelihood"
	StageReduce            = "reduce"
	StageMisfit            = "misfit"
	StageVarianceReduction = "variance_reduction"
	StageBin               = "bin"
	StageTradeoff          = "tradeoff"
)

// Request selects the inputs and the view of one analysis.
type Request struct {
	// Stores are misfit components over the same coordinates, e.g. body
	// waves then surface waves.
	Stores []*surface.Surface
	// View is the parameter contract every store must satisfy.
	View contract.View
	// Keep lists the parameters of the result, in axis order. Empty keeps
	// every parameter.
	Keep []string
	// Mode reduces the dropped parameters.
	Mode marginal.Mode
	// Bins, when set, bins the reduced result onto cell centres; points
	// sharing a cell are combined the way Mode combines dropped parameters.
	// This puts point clouds on a plotting grid.
	Bins []surface.BinSpec
}

// Analyzer runs check → convert → reduce with caching. Safe for concurrent
// use when its cache is.
type Analyzer struct {
	cache  cache.Cache
	logger *slog.Logger
	scale  float64
	raw    bool
}

// New returns an Analyzer configured by opts.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{scale: likelihood.DefaultScale}
	for _, fn := range opts {
		if fn != nil {
			fn(a)
		}
	}
	if a.cache == nil {
		a.cache = cache.NewMemory()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Likelihood converts req.Stores into one likelihood surface using one
// variance per store, then reduces it onto req.Keep with req.Mode.
func (a *Analyzer) Likelihood(ctx context.Context, req Request, variances []float64) (*surface.Surface, error) {
	if err := a.check(ctx, req); err != nil {
		return nil, err
	}
	cov := likelihood.Diagonal(variances...)
	vars, err := likelihood.Variances(cov)
	if err != nil {
		return nil, err
	}

	key := cache.Key{Stage: StageLikelihood, Stores: ids(req.Stores), Variances: vars, Scale: a.scale, Raw: a.raw}
	l, err := a.memo(ctx, key, func() (*surface.Surface, error) {
		opts := []likelihood.Option{likelihood.WithScale(a.scale), likelihood.WithLogger(a.logger)}
		if a.raw {
			opts = append(opts, likelihood.WithRawKernel())
		}
		return likelihood.ConvertJoint(req.Stores, cov, opts...)
	})
	if err != nil {
		return nil, err
	}
	r, err := a.reduce(ctx, l, req.Keep, req.Mode)
	if err != nil {
		return nil, err
	}

	return a.bin(ctx, r, req.Bins, req.Mode)
}

// Misfit sums req.Stores and reduces the total misfit onto req.Keep with
// req.Mode (Minimum for the best-fit view).
func (a *Analyzer) Misfit(ctx context.Context, req Request) (*surface.Surface, error) {
	if err := a.check(ctx, req); err != nil {
		return nil, err
	}
	key := cache.Key{Stage: StageMisfit, Stores: ids(req.Stores), Keep: req.Keep, Mode: req.Mode.String()}

	r, err := a.memo(ctx, key, func() (*surface.Surface, error) {
		total, err := sum(req.Stores)
		if err != nil {
			return nil, err
		}
		return reduceAll(total, req.Keep, req.Mode)
	})
	if err != nil {
		return nil, err
	}

	return a.bin(ctx, r, req.Bins, req.Mode)
}

// VarianceReduction sums req.Stores, converts the total to percent variance
// reduction against dataNorm and reduces it onto req.Keep with req.Mode
// (Maximum for the best-fit view).
func (a *Analyzer) VarianceReduction(ctx context.Context, req Request, dataNorm float64) (*surface.Surface, error) {
	if err := a.check(ctx, req); err != nil {
		return nil, err
	}
	key := cache.Key{Stage: StageVarianceReduction, Stores: ids(req.Stores), DataNorm: dataNorm, Keep: req.Keep, Mode: req.Mode.String()}

	r, err := a.memo(ctx, key, func() (*surface.Surface, error) {
		total, err := sum(req.Stores)
		if err != nil {
			return nil, err
		}
		vr, err := surface.ToVarianceReduction(total, dataNorm)
		if err != nil {
			return nil, err
		}
		return reduceAll(vr, req.Keep, req.Mode)
	})
	if err != nil {
		return nil, err
	}

	return a.bin(ctx, r, req.Bins, req.Mode)
}

// Tradeoff sums req.Stores and, for every combination of req.Keep, reports
// the value of target at the best-fitting point (see marginal.Tradeoff).
// req.Mode and req.Bins are ignored.
func (a *Analyzer) Tradeoff(ctx context.Context, req Request, target string) (*surface.Surface, error) {
	if err := a.check(ctx, req); err != nil {
		return nil, err
	}
	key := cache.Key{Stage: StageTradeoff, Stores: ids(req.Stores), Keep: req.Keep, Target: target}

	return a.memo(ctx, key, func() (*surface.Surface, error) {
		total, err := sum(req.Stores)
		if err != nil {
			return nil, err
		}
		return marginal.Tradeoff(total, req.Keep, target, surface.Minimum)
	})
}

// check runs the parameter contract of the view against every store.
func (a *Analyzer) check(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(req.Stores) == 0 {
		return likelihood.ErrNoComponents
	}
	for i, s := range req.Stores {
		if s == nil {
			return fmt.Errorf("%w: store %d is nil", likelihood.ErrNoComponents, i)
		}
		if err := req.View.Check(s); err != nil {
			return fmt.Errorf("uq: store %d: %w", i, err)
		}
	}

	return nil
}

func (a *Analyzer) reduce(ctx context.Context, s *surface.Surface, keep []string, mode marginal.Mode) (*surface.Surface, error) {
	if len(keep) == 0 {
		return s, nil
	}
	key := cache.Key{Stage: StageReduce, Stores: []uuid.UUID{s.ID()}, Keep: keep, Mode: mode.String()}

	return a.memo(ctx, key, func() (*surface.Surface, error) {
		return marginal.Reduce(s, keep, mode)
	})
}

// bin places s onto bins, combining the points of a cell with the reducer
// matching mode.
func (a *Analyzer) bin(ctx context.Context, s *surface.Surface, bins []surface.BinSpec, mode marginal.Mode) (*surface.Surface, error) {
	if len(bins) == 0 {
		return s, nil
	}
	if mode == marginal.Marginal && s.Quantity() != surface.Likelihood {
		return nil, fmt.Errorf("%w: binning %s by sum", marginal.ErrModeQuantity, s.Quantity())
	}
	key := cache.Key{Stage: StageBin, Stores: []uuid.UUID{s.ID()}, Mode: mode.String(), Bins: bins}

	return a.memo(ctx, key, func() (*surface.Surface, error) {
		return surface.Bin(s, bins, binReducer(mode))
	})
}

func binReducer(mode marginal.Mode) surface.Reducer {
	switch mode {
	case marginal.Marginal:
		return surface.ReduceSum
	case marginal.Maximum, marginal.SliceMaximum:
		return surface.ReduceMax
	default:
		return surface.ReduceMin
	}
}

// memo returns the cached surface for key or computes and stores it.
func (a *Analyzer) memo(ctx context.Context, key cache.Key, compute func() (*surface.Surface, error)) (*surface.Surface, error) {
	digest := key.Digest()
	if s, ok, err := a.cache.Get(ctx, key); err != nil {
		a.logger.Warn("cache read failed", "stage", key.Stage, "digest", digest, "error", err)
	} else if ok {
		a.logger.Debug("cache hit", "stage", key.Stage, "digest", digest)
		return s, nil
	}

	s, err := compute()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("computed", "stage", key.Stage, "digest", digest, "points", s.Len(), "kind", s.Kind())
	if err := a.cache.Put(ctx, key, s); err != nil {
		a.logger.Warn("cache write failed", "stage", key.Stage, "digest", digest, "error", err)
	}

	return s, nil
}

func ids(stores []*surface.Surface) []uuid.UUID {
	out := make([]uuid.UUID, len(stores))
	for i, s := range stores {
		out[i] = s.ID()
	}

	return out
}

func sum(stores []*surface.Surface) (*surface.Surface, error) {
	total := stores[0]
	for _, s := range stores[1:] {
		var err error
		if total, err = surface.Sum(total, s); err != nil {
			return nil, err
		}
	}

	return total, nil
}

func reduceAll(s *surface.Surface, keep []string, mode marginal.Mode) (*surface.Surface, error) {
	if len(keep) == 0 {
		return s, nil
	}

	return marginal.Reduce(s, keep, mode)
}
