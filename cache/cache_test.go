// SPDX-License-Identifier: MIT

package cache_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurinj/mtuq/cache"
	"github.com/thurinj/mtuq/surface"
)

func lune(t *testing.T, layout surface.Layout) *surface.Surface {
	t.Helper()
	var samples []surface.Sample
	for _, v := range []float64{-1.0 / 3, 0, 1.0 / 3} {
		for _, w := range []float64{-3.0 / 8, 0, 3.0 / 8} {
			samples = append(samples, surface.Sample{Coordinate: surface.Coordinate{"v": v, "w": w}, Misfit: v*v + w*w})
		}
	}
	s, err := surface.New(samples, surface.L2, surface.WithLayout(layout))
	require.NoError(t, err)

	return s
}

//----------------------------------------------------------------------------//
// Key
//----------------------------------------------------------------------------//

func TestKey_DigestIsContentAddressed(t *testing.T) {
	id := uuid.New()
	base := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 0.5}

	same := base
	assert.Equal(t, base.Digest(), same.Digest())
	assert.Len(t, base.Digest(), 64)

	variants := map[string]cache.Key{
		"Store":    {Stage: "likelihood", Stores: []uuid.UUID{uuid.New()}, Variances: []float64{0.5}, Scale: 0.5},
		"Variance": {Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.25}, Scale: 0.5},
		"Scale":    {Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 1},
		"Raw":      {Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 0.5, Raw: true},
		"Stage":    {Stage: "reduce", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 0.5},
		"Target":   {Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 0.5, Target: "rho"},
		"Bins": {Stage: "likelihood", Stores: []uuid.UUID{id}, Variances: []float64{0.5}, Scale: 0.5,
			Bins: []surface.BinSpec{{Name: "v", Min: -1, Max: 1, Count: 4}}},
	}
	for name, k := range variants {
		assert.NotEqual(t, base.Digest(), k.Digest(), name)
	}

	a := cache.Key{Stage: "reduce", Stores: []uuid.UUID{id}, Keep: []string{"v", "w"}, Mode: "maximum"}
	b := cache.Key{Stage: "reduce", Stores: []uuid.UUID{id}, Keep: []string{"w", "v"}, Mode: "maximum"}
	assert.NotEqual(t, a.Digest(), b.Digest(), "keep order selects axis order")
}

//----------------------------------------------------------------------------//
// Memory
//----------------------------------------------------------------------------//

func TestMemory_GetPut(t *testing.T) {
	ctx := context.Background()
	var m cache.Memory
	s := lune(t, surface.LayoutAuto)
	k := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{s.ID()}}

	_, ok, err := m.Get(ctx, k)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, k, s))
	got, ok, err := m.Get(ctx, k)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	m := cache.NewMemory()
	s := lune(t, surface.LayoutAuto)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{s.ID()}, Scale: float64(g)}
			assert.NoError(t, m.Put(ctx, k, s))
			_, ok, err := m.Get(ctx, k)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, m.Len())
}

//----------------------------------------------------------------------------//
// SQLite
//----------------------------------------------------------------------------//

func openTemp(t *testing.T) (*cache.SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surfaces.db")
	c, err := cache.OpenSQLite(path)
	require.NoError(t, err)

	return c, path
}

func TestSQLite_RoundTripBothLayouts(t *testing.T) {
	ctx := context.Background()
	c, _ := openTemp(t)
	defer c.Close()

	for _, layout := range []surface.Layout{surface.LayoutAuto, surface.LayoutIrregular} {
		s := lune(t, layout)
		k := cache.Key{Stage: "misfit", Stores: []uuid.UUID{s.ID()}}
		require.NoError(t, c.Put(ctx, k, s))

		got, ok, err := c.Get(ctx, k)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, s.ID(), got.ID())
		assert.Equal(t, s.Kind(), got.Kind())
		assert.Equal(t, s.Values(), got.Values())
		assert.True(t, surface.SameShape(s, got))
	}
	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	c, path := openTemp(t)
	s := lune(t, surface.LayoutAuto)
	k := cache.Key{Stage: "misfit", Stores: []uuid.UUID{s.ID()}}
	require.NoError(t, c.Put(ctx, k, s))
	require.NoError(t, c.Close())

	again, err := cache.OpenSQLite(path)
	require.NoError(t, err)
	defer again.Close()
	got, ok, err := again.Get(ctx, k)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.Values(), got.Values())
}

func TestSQLite_MissAndPurge(t *testing.T) {
	ctx := context.Background()
	c, _ := openTemp(t)
	defer c.Close()

	s := lune(t, surface.LayoutAuto)
	other := lune(t, surface.LayoutIrregular)
	k1 := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{s.ID()}}
	k2 := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{s.ID(), other.ID()}}
	k3 := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{other.ID()}}
	for _, k := range []cache.Key{k1, k2, k3} {
		require.NoError(t, c.Put(ctx, k, s))
	}

	n, err := c.Purge(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err := c.Get(ctx, k1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, k3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLite_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, path := openTemp(t)
	defer c.Close()

	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	k := cache.Key{Stage: "likelihood", Stores: []uuid.UUID{uuid.New()}}
	_, err = raw.ExecContext(ctx,
		"INSERT INTO surfaces (digest, stage, created_at, payload) VALUES (?, 'likelihood', 0, ?)",
		k.Digest(), []byte("not zstd"))
	require.NoError(t, err)

	_, _, err = c.Get(ctx, k)
	assert.ErrorIs(t, err, cache.ErrCorruptEntry)
}

// Both implementations satisfy Cache.
var (
	_ cache.Cache = (*cache.Memory)(nil)
	_ cache.Cache = (*cache.SQLite)(nil)
)
