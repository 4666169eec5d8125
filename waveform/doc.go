// Package waveform holds processed seismic traces and gates them before misfit
// evaluation.
//
// A Dataset is an ordered list of Streams, one per station, each holding the
// traces (components) recorded there. Filtering, windowing and similar
// processing are configured elsewhere; this package only sees their output,
// through ProcessFunc, Chain and Map, and checks it with Validate:
//
//  1. every trace in the dataset shares one sampling rate and one sample count;
//  2. traces of the same station share start and end time.
//
// Misfit functions compare traces sample by sample, so a dataset that fails
// either check must not reach them.
package waveform
