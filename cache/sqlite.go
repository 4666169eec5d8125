// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/thurinj/mtuq/surface"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 1 - surfaces + surface_inputs
const currentSchemaVersion = 1

// SQLite is a Cache persisted in a SQLite database.
type SQLite struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenSQLite creates or opens the database at path (":memory:" works too),
// applies pragmas and migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: connect %s: %w", path, err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("cache: zstd decoder: %w", err)
	}

	return &SQLite{db: db, enc: enc, dec: dec}, nil
}

// Close releases the database and codecs.
func (c *SQLite) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}

	return c.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("cache: %q: %w", p, err)
		}
	}

	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("cache: user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("cache: schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("cache: schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("cache: set user_version: %w", err)
	}

	return nil
}

// Get implements Cache.
func (c *SQLite) Get(ctx context.Context, k Key) (*surface.Surface, bool, error) {
	digest := k.Digest()
	var payload []byte
	err := c.db.QueryRowContext(ctx, "SELECT payload FROM surfaces WHERE digest = ?", digest).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", digest, err)
	}

	raw, err := c.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, digest, err)
	}
	var sn surface.Snapshot
	if err := json.Unmarshal(raw, &sn); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, digest, err)
	}
	s, err := surface.FromSnapshot(sn)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrCorruptEntry, digest, err)
	}

	return s, true, nil
}

// Put implements Cache.
func (c *SQLite) Put(ctx context.Context, k Key, s *surface.Surface) error {
	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	payload := c.enc.EncodeAll(raw, nil)
	digest := k.Digest()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO surfaces (digest, stage, created_at, payload) VALUES (?, ?, ?, ?)",
		digest, k.Stage, time.Now().Unix(), payload,
	); err != nil {
		return fmt.Errorf("cache: put %s: %w", digest, err)
	}
	for _, id := range k.Stores {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO surface_inputs (digest, store_id) VALUES (?, ?)",
			digest, id.String(),
		); err != nil {
			return fmt.Errorf("cache: put %s: %w", digest, err)
		}
	}

	return tx.Commit()
}

// Purge deletes every entry derived from store and returns how many went.
func (c *SQLite) Purge(ctx context.Context, store uuid.UUID) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM surfaces WHERE digest IN (SELECT digest FROM surface_inputs WHERE store_id = ?)",
		store.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache: purge %s: %w", store, err)
	}

	return res.RowsAffected()
}

// Len returns the number of entries.
func (c *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM surfaces").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache: count: %w", err)
	}

	return n, nil
}
