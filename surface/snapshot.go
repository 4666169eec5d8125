// SPDX-License-Identifier: MIT

// Package surface: serializable snapshots used by persistent caches.

package surface

import (
	"fmt"

	"github.com/google/uuid"
)

// Snapshot is the JSON-friendly form of a Surface. Regular surfaces carry
// axes only; coordinates are rebuilt on restore.
type Snapshot struct {
	ID          string       `json:"id"`
	Kind        Kind         `json:"kind"`
	Quantity    Quantity     `json:"quantity"`
	Norm        Norm         `json:"norm"`
	Normalized  bool         `json:"normalized"`
	Parameters  []string     `json:"parameters"`
	Axes        []Axis       `json:"axes,omitempty"`
	Coordinates []Coordinate `json:"coordinates,omitempty"`
	Values      []float64    `json:"values"`
}

// Snapshot captures s, identity included.
func (s *Surface) Snapshot() Snapshot {
	sn := Snapshot{
		ID:         s.id.String(),
		Kind:       s.kind,
		Quantity:   s.spec.Quantity,
		Norm:       s.spec.Norm,
		Normalized: s.spec.Normalized,
		Parameters: s.Parameters(),
		Values:     s.Values(),
	}
	if s.kind == Regular {
		sn.Axes = cloneAxes(s.axes)
	} else {
		sn.Coordinates = make([]Coordinate, len(s.coords))
		for i, c := range s.coords {
			sn.Coordinates[i] = c.Clone()
		}
	}

	return sn
}

// FromSnapshot restores a surface and its original identity.
func FromSnapshot(sn Snapshot) (*Surface, error) {
	id, err := uuid.Parse(sn.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", ErrInvalidSnapshot, err)
	}
	spec := Spec{Quantity: sn.Quantity, Norm: sn.Norm, Normalized: sn.Normalized}

	var s *Surface
	switch sn.Kind {
	case Regular:
		s, err = NewRegular(sn.Axes, sn.Values, spec)
	case Irregular:
		s, err = NewIrregular(sn.Parameters, sn.Coordinates, sn.Values, spec)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidSnapshot, sn.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	s.id = id

	return s, nil
}
