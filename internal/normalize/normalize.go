// Package normalize cleans raw extracted text before it is handed to the
// structurer. The transform is total and idempotent on any input string.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text canonicalizes encoding to Unicode NFC, collapses whitespace runs
// within each line to single spaces, and drops lines that are empty after
// trimming. Line-break structure is otherwise preserved.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFC.String(s)

	lines := strings.Split(s, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cleaned = append(cleaned, strings.Join(fields, " "))
	}

	return strings.Join(cleaned, "\n")
}
