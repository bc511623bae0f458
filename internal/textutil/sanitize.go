package textutil

import "strings"

// CollapseWhitespace trims a string and collapses internal runs of
// whitespace (including newlines) into single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NonEmptyLines splits text into trimmed lines, dropping blanks.
func NonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
