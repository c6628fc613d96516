package command

import "strings"

// Normalize canonicalizes a raw transcript for matching and parsing:
// lowercased, surrounding whitespace removed. Empty input stays empty.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
