package utils

import (
	"os"
	"strings"
)

// Getenv returns the trimmed value of key, or fallback when it is unset or blank.
func Getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// GetenvList splits a comma separated variable, dropping empty entries.
func GetenvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(Getenv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
