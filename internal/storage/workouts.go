package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/setforge/internal/models"
)

// SavedWorkout is a persisted raw workout plus bookkeeping fields.
type SavedWorkout struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Source    string         `json:"source"`
	Workout   models.Workout `json:"workout"`
	CreatedAt time.Time      `json:"created_at"`
}

// ErrWorkoutNotFound is returned when no saved workout has the given id.
var ErrWorkoutNotFound = errors.New("workout not found")

// SaveWorkout persists a raw workout tree and returns its new id.
func (db *DB) SaveWorkout(ctx context.Context, w models.Workout) (uuid.UUID, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding workout: %w", err)
	}

	id := uuid.New()
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, title, source, payload) VALUES ($1, $2, $3, $4)`,
		id, w.Title, w.Source, raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting workout: %w", err)
	}
	return id, nil
}

// GetWorkout loads a saved workout by id.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (SavedWorkout, error) {
	var (
		sw  SavedWorkout
		raw []byte
	)
	err := db.Pool.QueryRow(ctx,
		`SELECT id, title, source, payload, created_at FROM workouts WHERE id = $1`, id).
		Scan(&sw.ID, &sw.Title, &sw.Source, &raw, &sw.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SavedWorkout{}, ErrWorkoutNotFound
	}
	if err != nil {
		return SavedWorkout{}, fmt.Errorf("querying workout: %w", err)
	}
	if err := json.Unmarshal(raw, &sw.Workout); err != nil {
		return SavedWorkout{}, fmt.Errorf("decoding workout payload: %w", err)
	}
	return sw, nil
}

// ListWorkouts returns saved workouts newest first, without payloads.
func (db *DB) ListWorkouts(ctx context.Context, limit int) ([]SavedWorkout, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, title, source, created_at FROM workouts
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()

	var out []SavedWorkout
	for rows.Next() {
		var sw SavedWorkout
		if err := rows.Scan(&sw.ID, &sw.Title, &sw.Source, &sw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

// DeleteWorkout removes a saved workout.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}
