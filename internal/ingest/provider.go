package ingest

import "github.com/google/uuid"

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutID uuid.UUID `json:"workout_id"`
	Title     string    `json:"title"`

	BlocksParsed    int `json:"blocks_parsed"`
	ExercisesParsed int `json:"exercises_parsed"`
	SupersetsParsed int `json:"supersets_parsed"`

	Inserted bool   `json:"inserted"`
	Message  string `json:"message,omitempty"`
}
