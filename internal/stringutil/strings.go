// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NameKey normalizes a subject name for index lookups: lower-cased with all
// spaces removed, so "Engineering  Mathematics" and "engineering mathematics"
// collide on the same key.
func NameKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// FirstToken returns the first whitespace-delimited token of s lower-cased,
// or the empty string when s is blank.
func FirstToken(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
