// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/thurinj/mtuq/surface"
)

// ErrCorruptEntry is returned when a stored entry cannot be decoded.
var ErrCorruptEntry = errors.New("cache: corrupt entry")

// Cache is a store of derived surfaces.
type Cache interface {
	// Get returns the surface stored under k, or ok == false.
	Get(ctx context.Context, k Key) (s *surface.Surface, ok bool, err error)
	// Put stores s under k, replacing any previous entry.
	Put(ctx context.Context, k Key, s *surface.Surface) error
}

// Memory is an in-process Cache. The zero value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*surface.Surface
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory { return &Memory{} }

// Get implements Cache.
func (m *Memory) Get(_ context.Context, k Key) (*surface.Surface, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.entries[k.Digest()]

	return s, ok, nil
}

// Put implements Cache.
func (m *Memory) Put(_ context.Context, k Key, s *surface.Surface) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]*surface.Surface)
	}
	m.entries[k.Digest()] = s

	return nil
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
