package models

// Workout is the structured result of parsing one workout's text.
// It is built once per parse call and not mutated afterwards.
type Workout struct {
	Title  string  `json:"title"`
	Source string  `json:"source,omitempty"`
	Blocks []Block `json:"blocks"`
}

// Block is one labeled section of a workout (e.g. "Strength", "Tabata").
// It owns its exercises and supersets exclusively.
type Block struct {
	Label           string     `json:"label"`
	Structure       string     `json:"structure,omitempty"` // free text, e.g. "3 rounds"
	DefaultSets     int        `json:"default_sets,omitempty"`
	DefaultRepRange string     `json:"default_reps_range,omitempty"`
	TimeWorkSec     int        `json:"time_work_sec,omitempty"`
	RestBetweenSec  int        `json:"rest_between_sec,omitempty"`
	Exercises       []Exercise `json:"exercises,omitempty"` // standalone, unlettered
	Supersets       []Superset `json:"supersets,omitempty"`
}

// Superset groups exercises performed back to back within one block.
type Superset struct {
	Exercises []Exercise `json:"exercises"`
}

// ExerciseType classifies how an exercise is performed.
type ExerciseType string

const (
	TypeStrength ExerciseType = "strength"
	TypeInterval ExerciseType = "interval"
	TypeCardio   ExerciseType = "cardio"
)

// Exercise is a single movement with its prescribed quantities.
// At most one of Reps/RepsRange is set, and at most one of
// DistanceM/DistanceRange; zero values mean "unset".
type Exercise struct {
	Name          string       `json:"name"`
	Sets          int          `json:"sets,omitempty"`
	Reps          int          `json:"reps,omitempty"`
	RepsRange     string       `json:"reps_range,omitempty"` // "min-max"
	DurationSec   int          `json:"duration_sec,omitempty"`
	RestSec       int          `json:"rest_sec,omitempty"`
	DistanceM     int          `json:"distance_m,omitempty"`
	DistanceRange string       `json:"distance_range,omitempty"`
	Type          ExerciseType `json:"type"`
	Notes         string       `json:"notes,omitempty"`
}

// HasContent reports whether the block holds any exercises or supersets.
func (b *Block) HasContent() bool {
	return len(b.Exercises) > 0 || len(b.Supersets) > 0
}
