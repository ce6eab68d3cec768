package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row ready for insertion into the workouts table. Document
// holds the parsed workout as JSON.
type WorkoutRow struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Title     string          `json:"title"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExportRow is a row ready for insertion into the fit_exports table. One row
// per generated FIT file.
type ExportRow struct {
	ID         uuid.UUID `json:"id"`
	WorkoutID  uuid.UUID `json:"workout_id"`
	Filename   string    `json:"filename"`
	SizeBytes  int       `json:"size_bytes"`
	StepCount  int       `json:"step_count"`
	ExportedAt time.Time `json:"exported_at"`
}
