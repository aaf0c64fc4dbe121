package strx

import "strings"

// Coalesce returns s if non-empty, otherwise d.
func Coalesce(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

// Key folds a config token for case-insensitive matching ("  CW " -> "cw").
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
