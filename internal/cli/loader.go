// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thurinj/mtuq/surface"
	"github.com/thurinj/mtuq/waveform"
)

// MisfitColumn is the header of the misfit column in sample tables.
const MisfitColumn = "misfit"

// ErrBadTable is returned for malformed sample tables.
var ErrBadTable = errors.New("malformed sample table")

// readSamples parses a CSV table whose header names the parameters and the
// misfit column.
func readSamples(r io.Reader) ([]surface.Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadTable, err)
	}
	misfitCol := -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == MisfitColumn {
			misfitCol = i
		}
	}
	if misfitCol < 0 || len(header) < 2 {
		return nil, fmt.Errorf("%w: header %v needs a %q column and at least one parameter", ErrBadTable, header, MisfitColumn)
	}

	var samples []surface.Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
		}
		line, _ := cr.FieldPos(0)
		s := surface.Sample{Coordinate: make(surface.Coordinate, len(header)-1)}
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", ErrBadTable, line, header[i], err)
			}
			if i == misfitCol {
				s.Misfit = v
			} else {
				s.Coordinate[header[i]] = v
			}
		}
		samples = append(samples, s)
	}

	return samples, nil
}

// loadSurface reads a CSV sample table into a misfit surface.
func loadSurface(path string, norm surface.Norm) (*surface.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := readSamples(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := surface.New(samples, norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func loadSurfaces(paths []string, norm surface.Norm) ([]*surface.Surface, error) {
	out := make([]*surface.Surface, len(paths))
	for i, p := range paths {
		s, err := loadSurface(p, norm)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

// loadDataset reads a YAML dataset description.
func loadDataset(path string) (waveform.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return waveform.Dataset{}, err
	}
	defer f.Close()

	var ds waveform.Dataset
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return waveform.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

func parseNorm(name string) (surface.Norm, error) {
	switch strings.ToLower(name) {
	case "l2":
		return surface.L2, nil
	case "l1":
		return surface.L1, nil
	}

	return 0, fmt.Errorf("%w: %q", surface.ErrUnknownNorm, name)
}

// parseBins reads --bin values of the form name:min:max:count.
func parseBins(specs []string) ([]surface.BinSpec, error) {
	out := make([]surface.BinSpec, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 4 || parts[0] == "" {
			return nil, fmt.Errorf("%w: %q, want name:min:max:count", surface.ErrInvalidBin, spec)
		}
		lo, err1 := strconv.ParseFloat(parts[1], 64)
		hi, err2 := strconv.ParseFloat(parts[2], 64)
		n, err3 := strconv.Atoi(parts[3])
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", surface.ErrInvalidBin, spec, err)
		}
		out = append(out, surface.BinSpec{Name: parts[0], Min: lo, Max: hi, Count: n})
	}

	return out, nil
}
