package stringutil

import "strings"

// Coalesce returns the first value that is non-empty after trimming
// whitespace, or "" when none is. The value is returned as given, not
// trimmed.
func Coalesce(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// EnvOr returns value (trimmed) if non-empty, otherwise fallback.
func EnvOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
