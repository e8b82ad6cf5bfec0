package text

import (
	"strings"
	"unicode/utf8"
)

// Flatten collapses every run of whitespace, line breaks included, into a
// single space.
func Flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens text to at most n runes and marks the cut with "...".
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}

	if utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)

	return strings.TrimRight(string(runes[:n]), " ") + "..."
}

func Preview(text string, n int) string {
	return Truncate(Flatten(text), n)
}
