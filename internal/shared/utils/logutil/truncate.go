// Package logutil shortens user-supplied values before they reach the logs.
package logutil

import "unicode/utf8"

const ellipsis = "..."

// Truncate keeps at most maxRunes runes of s and marks the cut with "...".
// It never splits a multi-byte character, so accented caller names and
// search terms stay valid UTF-8 in JSON logs.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		if s == "" {
			return ""
		}
		return ellipsis
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
