package domain

import (
	"regexp"
	"strings"
)

// EscapeLiteral escapes every regex metacharacter in s:
// . * + ? ^ $ { } ( ) | [ ] and backslash.
func EscapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}

// LiteralPattern builds a pattern matching input literally.
// Multiple whitespace-separated tokens are joined by \s+.
func LiteralPattern(input string) string {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return ".*"
	}

	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = EscapeLiteral(t)
	}
	return strings.Join(escaped, `\s+`)
}
