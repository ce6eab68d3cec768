package fit

import (
	"errors"
	"testing"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/models"
)

var testLookup = exercises.Static{
	"back squat":  {CategoryID: 28, CategoryName: "squat", DisplayName: "Back Squat"},
	"bench press": {CategoryID: 0, CategoryName: "bench_press", DisplayName: "Bench Press"},
}

// TestCompileStepCountLaw verifies the core step expansion: a "3 rounds"
// block with 2 exercises and 30s rest compiles to exactly 6 steps in the
// order [Exercise, Rest, Repeat, Exercise, Rest, Repeat].
func TestCompileStepCountLaw(t *testing.T) {
	w := &models.Workout{
		Title: "Test",
		Blocks: []models.Block{{
			Label:          "Strength",
			Structure:      "3 rounds",
			RestBetweenSec: 30,
			Exercises: []models.Exercise{
				{Name: "Back Squat", Type: models.TypeStrength},
				{Name: "Bench Press", Type: models.TypeStrength},
			},
		}},
	}

	steps, err := Compile(w, testLookup)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if len(steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(steps))
	}

	wantKinds := []StepKind{StepExercise, StepRest, StepRepeat, StepExercise, StepRest, StepRepeat}
	for i, k := range wantKinds {
		if steps[i].Kind != k {
			t.Errorf("step %d kind = %s, want %s", i, steps[i].Kind, k)
		}
	}

	if steps[2].RepeatCount != 2 {
		t.Errorf("repeat count = %d, want 2", steps[2].RepeatCount)
	}
	if steps[2].DurationStep != 0 {
		t.Errorf("repeat duration_step = %d, want 0", steps[2].DurationStep)
	}
	if steps[5].DurationStep != 3 {
		t.Errorf("second repeat duration_step = %d, want 3", steps[5].DurationStep)
	}
	if steps[1].DurationValue != 30000 {
		t.Errorf("rest duration = %d ms, want 30000", steps[1].DurationValue)
	}
}

// TestCompileRepeatBackReference verifies that every repeat step points at a
// strictly earlier index, never forward or at itself.
func TestCompileRepeatBackReference(t *testing.T) {
	w := &models.Workout{
		Title: "Mixed",
		Blocks: []models.Block{
			{
				Label:     "A",
				Structure: "4 rounds",
				Supersets: []models.Superset{{Exercises: []models.Exercise{
					{Name: "Back Squat"},
					{Name: "Bench Press", Sets: 2},
				}}},
				Exercises: []models.Exercise{{Name: "Row", Reps: 12}},
			},
			{
				Label:     "B",
				Exercises: []models.Exercise{{Name: "Plank", DurationSec: 60, Sets: 3}},
			},
		},
	}

	steps, err := Compile(w, testLookup)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	for i, s := range steps {
		if s.Kind != StepRepeat {
			continue
		}
		if s.DurationStep >= i {
			t.Errorf("repeat at %d references %d, want backward reference", i, s.DurationStep)
		}
		if steps[s.DurationStep].Kind != StepExercise {
			t.Errorf("repeat at %d references a %s step", i, steps[s.DurationStep].Kind)
		}
	}
}

// TestCompileSupersetsBeforeStandalone verifies the block-internal ordering:
// all superset exercises come before the block's standalone exercises.
func TestCompileSupersetsBeforeStandalone(t *testing.T) {
	w := &models.Workout{
		Blocks: []models.Block{{
			Label:     "Strength",
			Exercises: []models.Exercise{{Name: "Standalone Row", Reps: 10}},
			Supersets: []models.Superset{
				{Exercises: []models.Exercise{{Name: "Back Squat", Reps: 5}}},
				{Exercises: []models.Exercise{{Name: "Bench Press", Reps: 5}}},
			},
		}},
	}

	steps, err := Compile(w, testLookup)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	var names []string
	for _, s := range steps {
		if s.Kind == StepExercise {
			names = append(names, s.DisplayName)
		}
	}
	want := []string{"Back Squat", "Bench Press", "Standalone Row"}
	if len(names) != len(want) {
		t.Fatalf("exercise steps = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("exercise %d = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestCompileDefaults verifies reps default to 10, sets default to the
// block's round count, and a timed exercise switches to a time duration.
func TestCompileDefaults(t *testing.T) {
	w := &models.Workout{
		Blocks: []models.Block{{
			Label:     "Intervals",
			Structure: "2 rounds",
			Exercises: []models.Exercise{
				{Name: "Burpees"},
				{Name: "Plank", DurationSec: 45, Sets: 1},
			},
		}},
	}

	steps, err := Compile(w, testLookup)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	// Burpees: default 10 reps, 2 sets from rounds -> exercise+rest+repeat.
	if steps[0].DurationType != durationReps || steps[0].DurationValue != 10 {
		t.Errorf("burpees duration = (%d, %d), want (reps, 10)", steps[0].DurationType, steps[0].DurationValue)
	}
	if steps[2].Kind != StepRepeat || steps[2].RepeatCount != 1 {
		t.Errorf("burpees repeat = %+v, want count 1", steps[2])
	}

	// Plank: explicit single set, timed.
	plank := steps[3]
	if plank.Kind != StepExercise || plank.DurationType != durationTime || plank.DurationValue != 45000 {
		t.Errorf("plank step = %+v, want 45000 ms time step", plank)
	}
	if len(steps) != 4 {
		t.Errorf("steps = %d, want 4 (no rest/repeat for single set)", len(steps))
	}
}

// TestCompileEmptyWorkout verifies the single fatal condition: a workout
// with no exercises anywhere must not reach the encoder.
func TestCompileEmptyWorkout(t *testing.T) {
	_, err := Compile(&models.Workout{Title: "Empty"}, testLookup)
	if !errors.Is(err, ErrNoExercises) {
		t.Fatalf("err = %v, want ErrNoExercises", err)
	}

	_, err = Compile(&models.Workout{Blocks: []models.Block{{Label: "Hollow"}}}, testLookup)
	if !errors.Is(err, ErrNoExercises) {
		t.Fatalf("err = %v, want ErrNoExercises", err)
	}
}
