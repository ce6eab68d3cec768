package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitscribe/internal/models"
	"github.com/google/uuid"
)

// InsertWorkout inserts a parsed workout document. Returns true if inserted,
// false if a row with the same ID already exists.
func (db *DB) InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, source, title, document, created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.Source, row.Title, row.Document, row.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListWorkouts retrieves the most recent workouts, newest first.
func (db *DB) ListWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, source, title, document, created_at
		 FROM workouts
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.Source, &w.Title, &w.Document, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single workout by ID.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, source, title, document, created_at
		 FROM workouts
		 WHERE id = $1`,
		id)

	var w models.WorkoutRow
	err := row.Scan(&w.ID, &w.Source, &w.Title, &w.Document, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return &w, nil
}
