// SPDX-License-Identifier: MIT

package waveform

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Validate checks that ds can be compared sample by sample and returns it
// unchanged on success. An empty dataset is valid.
//
// Stage 1 (Traces): station agrees with its stream, positive finite sampling
// rate, End not before Start.
// Stage 2 (Sampling): every trace matches the first trace of ds in sampling
// rate, then in sample count.
// Stage 3 (Time support): every trace matches the first trace of its station
// in start time, then in end time.
//
// The first violation is returned as *DiscretizationError.
// Complexity: O(number of traces).
func Validate(ds Dataset, opts ...Option) (Dataset, error) {
	o := gatherOptions(opts...)

	// Stage 1
	for i, s := range ds.Streams {
		for j, t := range s.Traces {
			if t.Station != "" && s.Station != "" && t.Station != s.Station {
				ref := TraceRef{Stream: i, Trace: j, Station: t.Station, Channel: t.Channel}
				return Dataset{}, fmt.Errorf("%w: %s: stream station is %s", ErrInvalidTrace, ref, s.Station)
			}
		}
	}
	var err error
	ds.each(func(ref TraceRef, t Trace) {
		if err != nil {
			return
		}
		if math.IsNaN(t.SamplingRate) || math.IsInf(t.SamplingRate, 0) || t.SamplingRate <= 0 {
			err = fmt.Errorf("%w: %s: sampling rate %g", ErrInvalidTrace, ref, t.SamplingRate)
		} else if t.End.Before(t.Start) {
			err = fmt.Errorf("%w: %s: ends before it starts", ErrInvalidTrace, ref)
		}
	})
	if err != nil {
		return Dataset{}, err
	}

	// Stage 2
	var (
		ref   TraceRef
		first *Trace
	)
	ds.each(func(r TraceRef, t Trace) {
		if err != nil {
			return
		}
		if first == nil {
			ref, first = r, &t
			return
		}
		switch {
		case !o.sameRate(first.SamplingRate, t.SamplingRate):
			err = &DiscretizationError{
				Kind: SamplingRateMismatch, First: ref, Second: r,
				Want: formatRate(first.SamplingRate), Got: formatRate(t.SamplingRate),
			}
		case first.Len() != t.Len():
			err = &DiscretizationError{
				Kind: SampleCountMismatch, First: ref, Second: r,
				Want: strconv.Itoa(first.Len()), Got: strconv.Itoa(t.Len()),
			}
		}
	})
	if err != nil {
		return Dataset{}, err
	}

	// Stage 3
	type anchor struct {
		ref   TraceRef
		start time.Time
		end   time.Time
	}
	anchors := make(map[string]anchor)
	ds.each(func(r TraceRef, t Trace) {
		if err != nil {
			return
		}
		a, ok := anchors[t.Station]
		if !ok {
			anchors[t.Station] = anchor{ref: r, start: t.Start, end: t.End}
			return
		}
		switch {
		case !a.start.Equal(t.Start):
			err = &DiscretizationError{
				Kind: StartTimeMismatch, Station: t.Station, First: a.ref, Second: r,
				Want: formatTime(a.start), Got: formatTime(t.Start),
			}
		case !a.end.Equal(t.End):
			err = &DiscretizationError{
				Kind: EndTimeMismatch, Station: t.Station, First: a.ref, Second: r,
				Want: formatTime(a.end), Got: formatTime(t.End),
			}
		}
	})
	if err != nil {
		return Dataset{}, err
	}

	return ds, nil
}

func formatRate(hz float64) string {
	return strconv.FormatFloat(hz, 'g', -1, 64) + " Hz"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
