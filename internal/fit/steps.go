// Package fit flattens a parsed workout into FIT workout steps and encodes
// them as a binary .FIT workout file.
package fit

// StepKind discriminates the three workout step variants.
type StepKind int

const (
	StepExercise StepKind = iota
	StepRest
	StepRepeat
)

func (k StepKind) String() string {
	switch k {
	case StepExercise:
		return "exercise"
	case StepRest:
		return "rest"
	case StepRepeat:
		return "repeat"
	}
	return "unknown"
}

// Step is one compiled workout step in execution order.
//
// For exercise steps DurationValue is a rep count or milliseconds depending
// on DurationType. For rest steps it is milliseconds. For repeat steps
// DurationStep is the index of an earlier step in the same sequence (always
// a backward reference) and RepeatCount is the number of extra passes.
type Step struct {
	Kind          StepKind
	CategoryID    int
	DisplayName   string
	DurationType  byte
	DurationValue uint32
	DurationStep  int
	RepeatCount   int
}

// FIT wkt_step_duration codes used by the compiler.
const (
	durationTime                  byte = 0
	durationOpen                  byte = 5
	durationRepeatUntilStepsCmplt byte = 6
	durationReps                  byte = 29
)
