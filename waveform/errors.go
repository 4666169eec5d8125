// SPDX-License-Identifier: MIT

package waveform

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscretization matches every *DiscretizationError.
	ErrDiscretization = errors.New("waveform: inconsistent discretization")

	// ErrSamplingMismatch matches sampling-rate and sample-count violations.
	ErrSamplingMismatch = errors.New("waveform: sampling mismatch")

	// ErrTimeSupportMismatch matches start-time and end-time violations.
	ErrTimeSupportMismatch = errors.New("waveform: time support mismatch")

	// ErrInvalidTrace marks a trace with a non-positive sampling rate, an
	// end time before its start time, or a station other than its stream's.
	ErrInvalidTrace = errors.New("waveform: invalid trace")
)

// MismatchKind names the violated condition.
type MismatchKind int

const (
	// SamplingRateMismatch: two traces have different sampling rates.
	SamplingRateMismatch MismatchKind = iota
	// SampleCountMismatch: two traces have different numbers of samples.
	SampleCountMismatch
	// StartTimeMismatch: two traces of one station start at different times.
	StartTimeMismatch
	// EndTimeMismatch: two traces of one station end at different times.
	EndTimeMismatch
)

// String implements fmt.Stringer.
func (k MismatchKind) String() string {
	switch k {
	case SamplingRateMismatch:
		return "sampling rate mismatch"
	case SampleCountMismatch:
		return "sample count mismatch"
	case StartTimeMismatch:
		return "start time mismatch"
	case EndTimeMismatch:
		return "end time mismatch"
	default:
		return "unknown mismatch"
	}
}

// TraceRef locates a trace inside a Dataset.
type TraceRef struct {
	Stream  int // index into Dataset.Streams
	Trace   int // index into Stream.Traces
	Station string
	Channel string
}

func (r TraceRef) String() string {
	return fmt.Sprintf("%s.%s (stream %d, trace %d)", r.Station, r.Channel, r.Stream, r.Trace)
}

// DiscretizationError reports the first violated condition: the reference
// trace (First), the offending trace (Second) and the two values compared.
type DiscretizationError struct {
	Kind    MismatchKind
	Station string // set for time-support violations
	First   TraceRef
	Second  TraceRef
	Want    string
	Got     string
}

func (e *DiscretizationError) Error() string {
	if e.Station != "" {
		return fmt.Sprintf("waveform: station %s: %s: %s has %s, %s has %s",
			e.Station, e.Kind, e.Second, e.Got, e.First, e.Want)
	}

	return fmt.Sprintf("waveform: %s: %s has %s, %s has %s", e.Kind, e.Second, e.Got, e.First, e.Want)
}

// Is matches ErrDiscretization and the sentinel of the violated group.
func (e *DiscretizationError) Is(target error) bool {
	switch target {
	case ErrDiscretization:
		return true
	case ErrSamplingMismatch:
		return e.Kind == SamplingRateMismatch || e.Kind == SampleCountMismatch
	case ErrTimeSupportMismatch:
		return e.Kind == StartTimeMismatch || e.Kind == EndTimeMismatch
	}

	return false
}
