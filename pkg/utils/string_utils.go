package utils

import "strings"

// FirstWordLower returns the first whitespace separated word of s in lower case.
// Used to derive a username from a display name ("John Doe" -> "john").
func FirstWordLower(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
