// Package cache stores derived surfaces (likelihoods, marginals, misfit views)
// under content-addressed keys.
//
// A Key names the identity of every input surface together with every
// parameter of the derivation. Surfaces are never mutated and a regenerated
// store receives a new identity, so an entry can never go stale: it can only
// stop being asked for.
//
// Memory keeps entries in process. SQLite persists them as zstd-compressed
// JSON snapshots in a single-file database.
package cache
