// SPDX-License-Identifier: MIT

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/thurinj/mtuq/surface"
)

// Key describes one derivation.
type Key struct {
	Stage     string            `json:"stage"`  // e.g. "likelihood", "reduce"
	Stores    []uuid.UUID       `json:"stores"` // input surface identities, in order
	Variances []float64         `json:"variances,omitempty"`
	Scale     float64           `json:"scale,omitempty"`
	DataNorm  float64           `json:"data_norm,omitempty"`
	Raw       bool              `json:"raw,omitempty"`
	Keep      []string          `json:"keep,omitempty"`
	Mode      string            `json:"mode,omitempty"`
	Target    string            `json:"target,omitempty"`
	Bins      []surface.BinSpec `json:"bins,omitempty"`
}

// Digest returns the hex SHA-256 of the canonical JSON form of k. Field order
// is fixed by the struct and floats use their shortest round-trip form, so
// equal keys always digest equally.
func (k Key) Digest() string {
	raw, _ := json.Marshal(k) // only plain fields, cannot fail
	sum := sha256.Sum256(raw)

	return hex.EncodeToString(sum[:])
}
