package fit

import "strings"

// Filename derives a download filename from a workout title: spaces become
// underscores and the .fit extension is appended.
func Filename(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "workout"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return name + ".fit"
}
