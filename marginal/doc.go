// Package marginal reduces a surface over a subset of its parameters.
//
// Reduce keeps the named parameters and collapses every other one:
//
//   - Maximum takes the largest value over the dropped parameters (the
//     maximum-likelihood view);
//   - Marginal integrates over them (regular grids, trapezoidal rule) or sums
//     them (irregular clouds), producing a marginal density or mass function;
//   - Minimum takes the smallest value (the minimum-misfit view);
//   - SliceMaximum and SliceMinimum fix the dropped parameters at the global
//     best point and return that cross-section.
//
// Regular inputs give regular outputs whose axes follow the order of keep.
// Irregular inputs give irregular outputs whose points appear in the order in
// which their kept coordinates are first met. Ties in Maximum and Minimum
// resolve to the first point in enumeration order.
//
// Results are not renormalized: a Marginal of a normalized likelihood keeps
// unit mass; the other modes report Normalized() == false.
package marginal
