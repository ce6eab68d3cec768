package ocrtext

import (
	"regexp"
	"strings"
)

var (
	// digitLabelRe matches an OCR-corrupted superset label like "82:" or "71:"
	// at the start of a line. 8 is a misread B (or C/D from context), 7 a misread A.
	digitLabelRe = regexp.MustCompile(`^([87])([123]):`)

	// letterPrefixRe matches a letter label whose digit got read as lowercase
	// letters, e.g. "Bl:" or "Cz:".
	letterPrefixRe = regexp.MustCompile(`^([A-E])[a-z]+:`)

	// labelLetterRe extracts the letter of a corrected label line.
	labelLetterRe = regexp.MustCompile(`^([A-E])\d*:`)

	// leadingQuoteRe matches a stray quote glued in front of a letter.
	leadingQuoteRe = regexp.MustCompile(`^['"]([A-Za-z])`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"`", "'", "´", "'",
	)
)

// Normalize repairs predictable OCR misreadings line by line. The output has
// the same length and order as the input, and running Normalize over its own
// output is a no-op.
func Normalize(lines []string) []string {
	out := make([]string, len(lines))
	prevLabel := ""

	for i, line := range lines {
		line = quoteReplacer.Replace(line)
		line = repairDigitLabel(line, prevLabel)
		line = letterPrefixRe.ReplaceAllString(line, "$1:")
		line = strings.ReplaceAll(line, "oS OFF", "90S OFF")
		line = leadingQuoteRe.ReplaceAllString(line, "$1")
		out[i] = line

		if m := labelLetterRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			prevLabel = m[1]
		}
	}
	return out
}

// repairDigitLabel turns "8N:" into "BN:" and "7N:" into "AN:". An isolated
// "8N:" inherits the letter of the previous corrected label when that label
// was in the B/C/D series, so a misread "D2:" stays in its superset.
func repairDigitLabel(line, prevLabel string) string {
	m := digitLabelRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	letter := "A"
	if m[1] == "8" {
		letter = "B"
		switch prevLabel {
		case "B", "C", "D":
			letter = prevLabel
		}
	}
	return letter + line[1:]
}
