package leveling

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical key of an exercise, category or athlete name. Two names are the same iff their
// keys are equal. The key is lower case with surrounding whitespace trimmed and internal whitespace, hyphens and
// underscores removed. Normalize is idempotent.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeName is the name used by callers outside the engine. It is identical to [Normalize].
func NormalizeName(s string) string {
	return Normalize(s)
}

// SameName reports whether a and b refer to the same exercise, category or athlete.
func SameName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
