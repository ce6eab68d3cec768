package ocrtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/fitscribe/internal/models"
)

var (
	weekTitleRe = regexp.MustCompile(`(?i)\bweek\s+\d+\s+of\s+\d+\b`)
	titleHintRe = regexp.MustCompile(`(?i)\b(week|day|workout|session|program)\b`)

	exerciseLetterRe = regexp.MustCompile(`^([A-E])(\d{0,2})\s*[:\-.]\s*`)

	// intervalRe matches "30S ON 15S OFF x3" and similar timed prescriptions.
	intervalRe = regexp.MustCompile(`(?i)(\d+)\s*s?(?:ecs?)?\s+on[\s,/]+(\d+)\s*s?(?:ecs?)?\s+off(?:\s*x\s*(\d+))?`)

	distanceRangeRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*(m|km|mi)\b`)
	distanceSingleRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(m|km|mi)\b`)

	setsRepsRe   = regexp.MustCompile(`(\d+)\s*[xX]\s*(\d+)(?:\s*-\s*(\d+))?`)
	repsRangeRe  = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*reps?`)
	xRepsRangeRe = regexp.MustCompile(`(?i)\bx\s*(\d+)\s*-\s*(\d+)\b`)
	xRepsRe      = regexp.MustCompile(`(?i)\bx\s*(\d+)\b`)

	roundsRe        = regexp.MustCompile(`(?i)(\d+)\s*rounds?\b`)
	setsDirectiveRe = regexp.MustCompile(`(?i)(\d+)\s*sets?\b`)
	repsRangeBareRe = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	restDirValueRe  = regexp.MustCompile(`(?i)(?:rest\s+)?(\d+)\s*(s|secs?|seconds?|m|mins?|minutes?)`)

	skiErgDistRe = regexp.MustCompile(`(?i)ski\s?erg|skier\b`)

	trailingPunctRe  = regexp.MustCompile(`[\s:;,.\-–·]+$`)
	trailingSocialRe = regexp.MustCompile(`(?i)\s+(like|likes|comment|comments|follow|share|save|subscribe)$`)
	trailingStrayRe  = regexp.MustCompile(`\s+[a-z]$`)
	corruptedFragRe  = regexp.MustCompile(`^[^A-Za-z]*$|^[A-Za-z][:;]`)

	muscularEnduranceRe     = regexp.MustCompile(`(?i)muscular\s+endurance`)
	metabolicConditioningRe = regexp.MustCompile(`(?i)metabolic\s+conditioning|met[\s-]?con\b`)
)

// parserState accumulates the workout tree while lines are consumed. Each
// line class has one transition method; none of them can fail.
type parserState struct {
	title         string
	blocks        []models.Block
	current       models.Block
	pendingSS     []models.Exercise
	pendingLetter string
}

// Parse converts cleaned workout text into a structured Workout. It is a
// total function: unrecognizable lines degrade to junk or best-effort
// exercises, and the worst case is a workout with no blocks.
func Parse(text, source string) *models.Workout {
	raw := strings.Split(text, "\n")
	var lines []string
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	lines = Normalize(lines)

	st := &parserState{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Junk is filtered before title detection: a social caption that
		// happens to contain a hint word must not become the title.
		class := Classify(line)
		if class == ClassJunk {
			continue
		}

		if st.consumeTitle(line) {
			continue
		}

		switch class {
		case ClassHeader:
			st.onHeader(line)
		case ClassTabataConfig:
			st.onTabataConfig(line)
		case ClassDirective:
			st.onDirective(line)
		default:
			st.onExerciseLine(line)
		}
	}
	st.flushSuperset()
	st.flushBlock()

	title := st.title
	if title == "" {
		title = "Imported Workout"
	}
	return &models.Workout{Title: title, Source: source, Blocks: st.blocks}
}

// consumeTitle claims a line as the workout title. Only the first match
// counts, and only title-shaped lines qualify: a "week N of M" marker or a
// short line with a title hint word.
func (st *parserState) consumeTitle(line string) bool {
	if st.title != "" {
		return false
	}
	if weekTitleRe.MatchString(line) {
		st.title = line
		return true
	}
	if len(strings.Fields(line)) <= 6 && titleHintRe.MatchString(line) &&
		!exerciseLetterRe.MatchString(line) {
		st.title = line
		return true
	}
	return false
}

func (st *parserState) onTabataConfig(line string) {
	m := tabataRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return
	}
	work, _ := strconv.Atoi(m[1])
	rest, _ := strconv.Atoi(m[2])
	st.current.TimeWorkSec = work
	st.current.RestBetweenSec = rest
	if m[3] != "" {
		rounds, _ := strconv.Atoi(m[3])
		st.current.Structure = fmt.Sprintf("%d rounds", rounds)
	}
	if st.current.Label == "" {
		st.current.Label = "Tabata"
	}
}

func (st *parserState) onHeader(line string) {
	st.flushSuperset()
	st.flushBlock()
	st.pendingLetter = ""

	label := strings.TrimSpace(trailingPunctRe.ReplaceAllString(line, ""))
	switch {
	case muscularEnduranceRe.MatchString(label):
		label = "Muscular Endurance"
	case metabolicConditioningRe.MatchString(label):
		label = "Metabolic Conditioning"
	}
	st.current = models.Block{Label: label}

	// A header can embed block defaults, e.g. "STRENGTH 3 ROUNDS" or
	// "MUSCULAR ENDURANCE 8-12".
	if m := roundsRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		st.current.Structure = fmt.Sprintf("%d rounds", n)
	}
	if m := setsDirectiveRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		st.current.DefaultSets = n
	}
	if m := repsRangeBareRe.FindStringSubmatch(line); m != nil {
		st.current.DefaultRepRange = m[1] + "-" + m[2]
	}
}

func (st *parserState) onDirective(line string) {
	if m := roundsRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		st.current.Structure = fmt.Sprintf("%d rounds", n)
	}
	if m := setsDirectiveRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		st.current.DefaultSets = n
		if st.current.Structure == "" {
			st.current.Structure = fmt.Sprintf("%d sets", n)
		}
	}
	if bareRepsRangeRe.MatchString(line) {
		if m := repsRangeBareRe.FindStringSubmatch(line); m != nil {
			st.current.DefaultRepRange = m[1] + "-" + m[2]
		}
		return
	}
	if restDurationRe.MatchString(line) {
		if m := restDirValueRe.FindStringSubmatch(line); m != nil {
			st.current.RestBetweenSec = durationSeconds(m[1], m[2])
		}
	}
}

func (st *parserState) onExerciseLine(line string) {
	if skiErgDistRe.MatchString(line) && !exerciseLetterRe.MatchString(line) {
		st.onSkiErg(line)
		return
	}

	letter := ""
	rest := line
	if m := exerciseLetterRe.FindStringSubmatch(line); m != nil {
		letter = m[1]
		rest = line[len(m[0]):]
	}

	ex, ok := st.extractExercise(rest)
	if !ok {
		return
	}

	st.groupExercise(ex, letter)
}

// extractExercise pulls at most one quantity signal out of the line text,
// classifies the exercise type, and cleans the remaining name. Returns
// ok=false when the cleaned name is itself junk and the line is discarded.
func (st *parserState) extractExercise(text string) (models.Exercise, bool) {
	var ex models.Exercise

	switch {
	case intervalRe.MatchString(text):
		m := intervalRe.FindStringSubmatch(text)
		ex.DurationSec, _ = strconv.Atoi(m[1])
		ex.RestSec, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			ex.Sets, _ = strconv.Atoi(m[3])
		}
		ex.Type = models.TypeInterval
		text = intervalRe.ReplaceAllString(text, " ")

	case distanceRangeRe.MatchString(text):
		m := distanceRangeRe.FindStringSubmatch(text)
		lo := toMeters(m[1], m[3])
		hi := toMeters(m[2], m[3])
		ex.DistanceRange = fmt.Sprintf("%d-%d", lo, hi)
		text = distanceRangeRe.ReplaceAllString(text, " ")

	case distanceSingleRe.MatchString(text):
		m := distanceSingleRe.FindStringSubmatch(text)
		ex.DistanceM = toMeters(m[1], m[2])
		text = distanceSingleRe.ReplaceAllString(text, " ")

	case setsRepsRe.MatchString(text):
		m := setsRepsRe.FindStringSubmatch(text)
		ex.Sets, _ = strconv.Atoi(m[1])
		if m[3] != "" {
			ex.RepsRange = m[2] + "-" + m[3]
		} else {
			ex.Reps, _ = strconv.Atoi(m[2])
		}
		text = setsRepsRe.ReplaceAllString(text, " ")

	case repsRangeRe.MatchString(text):
		m := repsRangeRe.FindStringSubmatch(text)
		ex.RepsRange = m[1] + "-" + m[2]
		text = repsRangeRe.ReplaceAllString(text, " ")

	case xRepsRangeRe.MatchString(text):
		m := xRepsRangeRe.FindStringSubmatch(text)
		ex.RepsRange = m[1] + "-" + m[2]
		text = xRepsRangeRe.ReplaceAllString(text, " ")

	case xRepsRe.MatchString(text):
		m := xRepsRe.FindStringSubmatch(text)
		ex.Reps, _ = strconv.Atoi(m[1])
		text = xRepsRe.ReplaceAllString(text, " ")

	default:
		if st.current.DefaultRepRange != "" {
			ex.RepsRange = st.current.DefaultRepRange
		}
	}

	if ex.Type == "" {
		if ex.Reps > 0 || ex.RepsRange != "" || ex.DistanceM > 0 || ex.DistanceRange != "" {
			ex.Type = models.TypeStrength
		} else {
			ex.Type = models.TypeInterval
		}
	}

	// The line-level junk rules are too strict for names ("Row" is real), so
	// only clearly corrupted remainders are discarded here.
	name := cleanExerciseName(text)
	if len(name) < 3 || corruptedFragRe.MatchString(name) {
		return models.Exercise{}, false
	}
	ex.Name = name

	if ex.Sets == 0 {
		ex.Sets = st.current.DefaultSets
	}
	return ex, true
}

func (st *parserState) onSkiErg(line string) {
	st.current.Label = "Ski Erg"
	if st.current.TimeWorkSec == 0 {
		st.current.TimeWorkSec = 60
	}
	if st.current.RestBetweenSec == 0 {
		st.current.RestBetweenSec = 60
	}

	ex := models.Exercise{Name: "Ski Erg", Type: models.TypeInterval}
	if m := distanceRangeRe.FindStringSubmatch(line); m != nil {
		lo := toMeters(m[1], m[3])
		hi := toMeters(m[2], m[3])
		ex.DistanceRange = fmt.Sprintf("%d-%d", lo, hi)
	} else if m := distanceSingleRe.FindStringSubmatch(line); m != nil {
		ex.DistanceM = toMeters(m[1], m[2])
	}

	st.flushSuperset()
	st.current.Exercises = append(st.current.Exercises, ex)
}

// groupExercise routes one parsed exercise into its superset or the block's
// standalone list, following the per-block grouping rules.
func (st *parserState) groupExercise(ex models.Exercise, letter string) {
	switch {
	case strings.Contains(st.current.Label, "Metabolic Conditioning") && letter == "E":
		st.flushSuperset()
		st.current.Exercises = append(st.current.Exercises, ex)

	case strings.Contains(st.current.Label, "Muscular Endurance"):
		if letter != st.pendingLetter {
			st.flushSuperset()
			st.pendingLetter = letter
		}
		st.pendingSS = append(st.pendingSS, ex)

	case letter != "":
		st.pendingSS = append(st.pendingSS, ex)
		st.pendingLetter = letter

	default:
		st.flushSuperset()
		st.current.Exercises = append(st.current.Exercises, ex)
	}
}

func (st *parserState) flushSuperset() {
	if len(st.pendingSS) == 0 {
		return
	}
	st.current.Supersets = append(st.current.Supersets, models.Superset{Exercises: st.pendingSS})
	st.pendingSS = nil
}

func (st *parserState) flushBlock() {
	if st.current.HasContent() {
		st.blocks = append(st.blocks, st.current)
	}
	st.current = models.Block{}
}

func cleanExerciseName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = trailingSocialRe.ReplaceAllString(s, "")
	s = trailingPunctRe.ReplaceAllString(s, "")
	s = trailingStrayRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func toMeters(value, unit string) int {
	f, _ := strconv.ParseFloat(value, 64)
	switch strings.ToLower(unit) {
	case "km":
		f *= 1000
	case "mi":
		f *= 1609.344
	}
	return int(f + 0.5)
}

func durationSeconds(value, unit string) int {
	n, _ := strconv.Atoi(value)
	if strings.HasPrefix(strings.ToLower(unit), "m") {
		return n * 60
	}
	return n
}
