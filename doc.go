// Package mtuq quantifies the uncertainty of seismic source estimates from the
// misfit surfaces of a grid search.
//
// The pipeline runs in this order:
//
//	waveform/   gate processed traces: one sampling rate, one sample count,
//	              one time window per station
//	surface/    misfit surfaces over regular grids or irregular clouds,
//	              integration, sums, variance reduction, binning, snapshots
//	contract/   the parameters each view (lune, double couple, depth …) needs
//	likelihood/ Gaussian likelihood with diagonal covariance, normalized
//	marginal/   maximum, marginal, minimum and slice views over kept axes
//	cache/      content-addressed store for derived surfaces (memory, SQLite)
//	uq/         check → convert → reduce, with caching
//	figure/     output format selection and table export for plotting
//
// The mtuq command (cmd/mtuq) exposes the pipeline over CSV misfit tables.
package mtuq
