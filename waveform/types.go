// SPDX-License-Identifier: MIT

package waveform

import (
	"time"
)

// Trace is one processed component at one station. An empty Station
// inherits the station of the enclosing Stream.
type Trace struct {
	Station      string    `yaml:"station"`
	Channel      string    `yaml:"channel"`
	SamplingRate float64   `yaml:"sampling_rate"` // Hz
	Start        time.Time `yaml:"start"`
	End          time.Time `yaml:"end"`
	Samples      []float64 `yaml:"samples"`
}

// Len returns the number of samples.
func (t Trace) Len() int { return len(t.Samples) }

// Stream groups the traces recorded at one station.
type Stream struct {
	Station string  `yaml:"station"`
	Traces  []Trace `yaml:"traces"`
}

// Dataset is an ordered collection of streams.
type Dataset struct {
	Streams []Stream `yaml:"streams"`
}

// Stations returns station identifiers in stream order, without repeats.
func (d Dataset) Stations() []string {
	seen := make(map[string]bool, len(d.Streams))
	out := make([]string, 0, len(d.Streams))
	for _, s := range d.Streams {
		if !seen[s.Station] {
			seen[s.Station] = true
			out = append(out, s.Station)
		}
	}

	return out
}

// ByStation returns every trace recorded at station, in dataset order.
// Traces without a station of their own are returned with the stream's.
func (d Dataset) ByStation(station string) []Trace {
	var out []Trace
	d.each(func(_ TraceRef, t Trace) {
		if t.Station == station {
			out = append(out, t)
		}
	})

	return out
}

// Len returns the total number of traces.
func (d Dataset) Len() int {
	n := 0
	for _, s := range d.Streams {
		n += len(s.Traces)
	}

	return n
}

// each visits traces in dataset order, with Station resolved.
func (d Dataset) each(fn func(ref TraceRef, t Trace)) {
	for i, s := range d.Streams {
		for j, t := range s.Traces {
			if t.Station == "" {
				t.Station = s.Station
			}
			fn(TraceRef{Stream: i, Trace: j, Station: t.Station, Channel: t.Channel}, t)
		}
	}
}
