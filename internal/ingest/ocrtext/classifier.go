package ocrtext

import (
	"regexp"
	"strings"
)

// LineClass is the category the classifier assigns to one cleaned line.
type LineClass int

const (
	ClassJunk LineClass = iota
	ClassHeader
	ClassTabataConfig
	ClassDirective
	ClassExercise
)

func (c LineClass) String() string {
	switch c {
	case ClassJunk:
		return "junk"
	case ClassHeader:
		return "header"
	case ClassTabataConfig:
		return "tabata_config"
	case ClassDirective:
		return "directive"
	case ClassExercise:
		return "exercise"
	}
	return "unknown"
}

var (
	bareIntRe       = regexp.MustCompile(`^\d{1,3}$`)
	blockNumRe      = regexp.MustCompile(`(?i)^block\s+\d+$`)
	loneLetterRe    = regexp.MustCompile(`^[A-Za-z][:;]\s*[a-z]{1,10}$`)
	letterCountRe   = regexp.MustCompile(`[A-Za-z]`)
	exerciseLabelRe = regexp.MustCompile(`^[A-E][0-9A-Za-z]{0,3}[:\-]`)
	upperRunRe      = regexp.MustCompile(`[A-Z]{3,}`)
	metricDigitRe   = regexp.MustCompile(`(?i)\d+\s*(rounds?|sets?|mins?|secs?|rest|s\b|m\b)`)

	// tabataRe matches an interval timing config like "20s work / 10s rest x 8"
	// or "40 on / 20 off". The round multiplier is optional.
	tabataRe = regexp.MustCompile(`(?i)^(\d+)\s*s?(?:ecs?)?\s*(?:work|on)?\s*[/:]\s*(\d+)\s*s?(?:ecs?)?\s*(?:rest|off)?\s*(?:x\s*(\d+))?$`)

	roundsSetsRe    = regexp.MustCompile(`(?i)(\d+)\s*(rounds?|sets?)\b`)
	restDurationRe  = regexp.MustCompile(`(?i)^(?:rest\s+)?(\d+)\s*(s|secs?|seconds?|m|mins?|minutes?)\s*(?:rest|off|between(?:\s+sets)?)?$`)
	bareRepsRangeRe = regexp.MustCompile(`(?i)^x?\s*(\d+)\s*-\s*(\d+)\s*(?:reps?)?$`)

	phaseKeywordRe = regexp.MustCompile(`(?i)\b(primer|strength|power|finisher|metabolic|conditioning|amrap|circuit|muscular endurance|tabata|warm[\s-]?up)\b`)

	socialWordRe = regexp.MustCompile(`(?i)\b(like|likes|comment|comments|follow|followers|share|subscribe|save this|link in bio|tag|dm)\b`)

	exerciseHintRe = regexp.MustCompile(`(?i)(\bx\b|x\d|:|\bkgs?\b|\bkbs?\b|\bdbs?\b|reps?|sets?|rounds?|squat|press|row|curl|lunge|deadlift|push|pull|plank|carry|swing|snatch|clean|jerk|erg|sprint|jump|dip|crunch|raise|extension|bridge|burpee)`)

	exerciseHintLabelRe = regexp.MustCompile(`^[A-E]\d*:`)
)

// Classify tags one cleaned, non-empty line. Checks run in a fixed order:
// junk first, then header, interval config, structural directive, and
// finally the exercise-line default.
func Classify(line string) LineClass {
	line = strings.TrimSpace(line)

	if IsJunk(line) {
		return ClassJunk
	}
	if isHeader(line) {
		return ClassHeader
	}
	if isTabataConfig(line) {
		return ClassTabataConfig
	}
	if isDirective(line) {
		return ClassDirective
	}
	return ClassExercise
}

// IsJunk reports whether a line carries no workout content: screenshot
// artifacts, social UI text, stray fragments, and the like.
func IsJunk(line string) bool {
	if len(line) < 4 {
		return true
	}
	if bareIntRe.MatchString(line) {
		return true
	}
	if blockNumRe.MatchString(line) {
		return true
	}
	if loneLetterRe.MatchString(line) {
		return true
	}
	if strings.Count(line, `\`) > 2 || strings.Count(line, "|") > 2 {
		return true
	}

	tokens := strings.Fields(line)
	if len(tokens) > 0 {
		single := 0
		for _, t := range tokens {
			if len(t) == 1 {
				single++
			}
		}
		if single*2 > len(tokens) {
			return true
		}
	}

	if socialWordRe.MatchString(line) &&
		!exerciseHintRe.MatchString(line) &&
		!exerciseHintLabelRe.MatchString(line) {
		return true
	}

	return len(letterCountRe.FindAllString(line, -1)) < 3
}

func isHeader(line string) bool {
	if phaseKeywordRe.MatchString(line) {
		return true
	}
	if exerciseLabelRe.MatchString(line) {
		return false
	}
	if len(line) > 28 {
		return false
	}
	if !upperRunRe.MatchString(line) {
		return false
	}
	if metricDigitRe.MatchString(line) {
		return false
	}
	flat := strings.ReplaceAll(line, "/", " ")
	return flat == strings.ToUpper(flat)
}

func isTabataConfig(line string) bool {
	if !tabataRe.MatchString(line) {
		return false
	}
	// A bare "20/10" is ambiguous with rep schemes; require a seconds
	// suffix or a work/on/rest/off word somewhere.
	lower := strings.ToLower(line)
	if strings.ContainsAny(lower, "s") ||
		strings.Contains(lower, "work") || strings.Contains(lower, "on") ||
		strings.Contains(lower, "rest") || strings.Contains(lower, "off") {
		return true
	}
	return false
}

func isDirective(line string) bool {
	if roundsSetsRe.MatchString(line) && !exerciseLabelRe.MatchString(line) {
		// "3 rounds", "4 sets of everything" — but a lettered line with a
		// rounds mention is still an exercise.
		if len(strings.Fields(line)) <= 5 {
			return true
		}
	}
	if restDurationRe.MatchString(line) {
		return true
	}
	return bareRepsRangeRe.MatchString(line)
}
