// Package mapcache is a file-backed SQLite mapping store for the
// offline CLI. It implements the same override and popularity contract
// as the Postgres store, scoped to a single machine.
package mapcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/setforge/internal/models"
)

// Cache holds the local mapping database.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite mapping cache at dir/mappings.db.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "mappings.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening mapping cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_mappings (
			name      TEXT PRIMARY KEY,
			canonical TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS global_mappings (
			name      TEXT NOT NULL,
			canonical TEXT NOT NULL,
			count     INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (name, canonical)
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating mapping tables: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// LookupOverride returns the cached canonical for a name, or "" when
// the cache holds no override.
func (c *Cache) LookupOverride(ctx context.Context, name string) (string, error) {
	var canonical string
	err := c.db.QueryRowContext(ctx,
		`SELECT canonical FROM user_mappings WHERE name = ?`, name).Scan(&canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up cached mapping: %w", err)
	}
	return canonical, nil
}

// SaveOverride stores a confirmed name override.
func (c *Cache) SaveOverride(ctx context.Context, name, canonical string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO user_mappings (name, canonical) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET canonical = excluded.canonical`,
		name, canonical)
	if err != nil {
		return fmt.Errorf("saving cached mapping: %w", err)
	}
	return nil
}

// DeleteOverride removes a stored override.
func (c *Cache) DeleteOverride(ctx context.Context, name string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM user_mappings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting cached mapping: %w", err)
	}
	return nil
}

// RecordUsage bumps the local popularity counter for a mapping.
func (c *Cache) RecordUsage(ctx context.Context, name, canonical string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO global_mappings (name, canonical, count) VALUES (?, ?, 1)
		 ON CONFLICT (name, canonical) DO UPDATE SET count = count + 1`,
		name, canonical)
	if err != nil {
		return fmt.Errorf("recording cached usage: %w", err)
	}
	return nil
}

// PopularMappings returns the locally most-chosen canonicals for a name.
func (c *Cache) PopularMappings(ctx context.Context, name string, limit int) ([]models.PopularMapping, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT canonical, count FROM global_mappings
		 WHERE name = ?
		 ORDER BY count DESC, canonical ASC
		 LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying cached popularity: %w", err)
	}
	defer rows.Close()

	var out []models.PopularMapping
	for rows.Next() {
		var m models.PopularMapping
		if err := rows.Scan(&m.Canonical, &m.Count); err != nil {
			return nil, fmt.Errorf("scanning cached popularity: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
