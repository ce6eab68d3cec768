package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitscribe/internal/models"
)

// LogExport records a generated FIT file.
func (db *DB) LogExport(ctx context.Context, row models.ExportRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO fit_exports (id, workout_id, filename, size_bytes, step_count, exported_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		row.ID, row.WorkoutID, row.Filename, row.SizeBytes, row.StepCount, row.ExportedAt)
	if err != nil {
		return fmt.Errorf("logging export: %w", err)
	}
	return nil
}

// ListExports retrieves the most recent FIT exports, newest first.
func (db *DB) ListExports(ctx context.Context, limit int) ([]models.ExportRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, filename, size_bytes, step_count, exported_at
		 FROM fit_exports
		 ORDER BY exported_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var result []models.ExportRow
	for rows.Next() {
		var e models.ExportRow
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Filename, &e.SizeBytes, &e.StepCount, &e.ExportedAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
