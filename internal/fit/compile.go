package fit

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/claude/fitscribe/internal/models"
)

// ErrNoExercises is the pipeline's single fatal condition: the workout
// resolved to zero steps, so there is nothing to encode.
var ErrNoExercises = errors.New("no exercises found")

var firstIntRe = regexp.MustCompile(`\d+`)

const (
	defaultReps        = 10
	defaultRestSeconds = 30
)

// Compile flattens a workout into an ordered step list. Within each block,
// superset exercises come first (in superset order), then the block's
// standalone exercises; this matches verified device playback and must not
// be reordered.
func Compile(w *models.Workout, lookup exercises.Lookup) ([]Step, error) {
	var steps []Step

	for _, block := range w.Blocks {
		rounds := firstInt(block.Structure, 1)
		restBetween := block.RestBetweenSec
		if restBetween == 0 {
			restBetween = defaultRestSeconds
		}

		var seq []models.Exercise
		for _, ss := range block.Supersets {
			seq = append(seq, ss.Exercises...)
		}
		seq = append(seq, block.Exercises...)

		for _, ex := range seq {
			res := lookup.Resolve(ex.Name)

			reps := ex.Reps
			if reps == 0 {
				reps = defaultReps
			}
			sets := ex.Sets
			if sets == 0 {
				sets = rounds
			}

			step := Step{
				Kind:          StepExercise,
				CategoryID:    res.CategoryID,
				DisplayName:   res.DisplayName,
				DurationType:  durationReps,
				DurationValue: uint32(reps),
			}
			if ex.DurationSec > 0 {
				step.DurationType = durationTime
				step.DurationValue = uint32(ex.DurationSec) * 1000
			}
			steps = append(steps, step)
			exerciseIdx := len(steps) - 1

			if sets > 1 && restBetween > 0 {
				steps = append(steps, Step{
					Kind:          StepRest,
					DurationType:  durationTime,
					DurationValue: uint32(restBetween) * 1000,
				})
			}
			if sets > 1 {
				steps = append(steps, Step{
					Kind:         StepRepeat,
					DurationStep: exerciseIdx,
					RepeatCount:  sets - 1,
				})
			}
		}
	}

	if len(steps) == 0 {
		return nil, ErrNoExercises
	}
	return steps, nil
}

func firstInt(s string, def int) int {
	m := firstIntRe.FindString(s)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil || n == 0 {
		return def
	}
	return n
}
