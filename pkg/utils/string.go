// Package utils provides common utility functions.
package utils

import "strings"

// NormalizeWhitespace replaces runs of whitespace with a single space and
// trims the result.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates a string to max length, appending an ellipsis.
// It cuts on rune boundaries so multi-byte names are not broken mid-character.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
