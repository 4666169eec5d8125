// Package surface holds the misfit surfaces produced by a grid search and the
// surfaces derived from them (likelihoods, marginals, variance reduction).
//
// A Surface maps opaque coordinates (named tuples of source parameters such as
// rho, v, w, kappa, sigma, h) to one scalar value. Two layouts exist behind the
// same type:
//
//   - Irregular: an unordered cloud of (Coordinate, value) pairs with no grid
//     structure; any sampling design is accepted.
//   - Regular: an axis-aligned dense grid. Each axis is a strictly increasing
//     sequence of parameter values and every cell holds exactly one value,
//     stored row-major (last axis fastest).
//
// New detects the layout at construction time: a sample set forms a regular
// grid iff the cartesian product of its per-axis distinct values is covered
// exactly once.
//
// Consumers should depend on the Reader interface (Get, Axes, Parameters) and
// branch on layout only where axis structure matters, e.g. contouring.
//
// Surfaces are immutable. Every constructor and every derivation returns a new
// value with a fresh identity (ID), so caches keyed by identity never serve a
// value computed from an older store.
//
// Usage:
//
//	s, err := surface.New(samples, surface.L2)
//	if err != nil { ... }
//	axes, err := s.Axes() // ErrUnsupportedOperation for irregular clouds
package surface
