package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/setforge/internal/models"
)

// UpsertMapping stores a user-confirmed name override, replacing any
// previous canonical for the same key.
func (db *DB) UpsertMapping(ctx context.Context, name, canonical string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO user_mappings (name, canonical)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET canonical = EXCLUDED.canonical, updated_at = now()`,
		name, canonical)
	if err != nil {
		return fmt.Errorf("upserting mapping: %w", err)
	}
	return nil
}

// LookupOverride returns the stored canonical for a name, or "" when no
// override exists.
func (db *DB) LookupOverride(ctx context.Context, name string) (string, error) {
	var canonical string
	err := db.Pool.QueryRow(ctx,
		`SELECT canonical FROM user_mappings WHERE name = $1`, name).Scan(&canonical)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up mapping: %w", err)
	}
	return canonical, nil
}

// DeleteMapping removes a stored override. Deleting an absent key is
// not an error.
func (db *DB) DeleteMapping(ctx context.Context, name string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM user_mappings WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting mapping: %w", err)
	}
	return nil
}

// ListMappings returns every stored override as name → canonical.
func (db *DB) ListMappings(ctx context.Context) (map[string]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT name, canonical FROM user_mappings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, canonical string
		if err := rows.Scan(&name, &canonical); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		out[name] = canonical
	}
	return out, rows.Err()
}

// RecordUsage bumps the popularity counter for a name → canonical pair.
// The conflict clause keeps concurrent increments from losing updates.
func (db *DB) RecordUsage(ctx context.Context, name, canonical string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO global_mappings (name, canonical, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (name, canonical) DO UPDATE SET count = global_mappings.count + 1`,
		name, canonical)
	if err != nil {
		return fmt.Errorf("recording mapping usage: %w", err)
	}
	return nil
}

// PopularMappings returns the most-chosen canonicals for a name, highest
// count first.
func (db *DB) PopularMappings(ctx context.Context, name string, limit int) ([]models.PopularMapping, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT canonical, count FROM global_mappings
		 WHERE name = $1
		 ORDER BY count DESC, canonical ASC
		 LIMIT $2`,
		name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying popular mappings: %w", err)
	}
	defer rows.Close()

	var out []models.PopularMapping
	for rows.Next() {
		var m models.PopularMapping
		if err := rows.Scan(&m.Canonical, &m.Count); err != nil {
			return nil, fmt.Errorf("scanning popular mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
