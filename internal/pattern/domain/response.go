package domain

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxTestCases caps how many collaborator test strings are kept.
const MaxTestCases = 7

var (
	slashDelimited = regexp.MustCompile(`^/(.*)/[dgimsuy]*$`)
	blockClosers   = regexp.MustCompile(`(?i)</(?:p|h[1-6]|li|div|ul|ol|pre|table|tr)>|<br\s*/?>`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)

	explanationPolicy = bluemonday.UGCPolicy()
	textPolicy        = bluemonday.StrictPolicy()
)

// stripFences removes a surrounding ``` block, including a language tag line.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		tag := strings.TrimSpace(s[:nl])
		if tag == "" || !strings.ContainsAny(tag, " \t") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// CleanPattern strips common wrapping artifacts from a collaborator's regex reply:
// code fences, single backticks and /slash/flags delimiters.
func CleanPattern(raw string) string {
	s := stripFences(raw)
	if len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if m := slashDelimited.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return s
}

// ParseTestCases splits a collaborator reply into at most MaxTestCases non-empty lines.
func ParseTestCases(raw string) []string {
	var cases []string
	for _, line := range strings.Split(stripFences(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cases = append(cases, line)
		if len(cases) == MaxTestCases {
			break
		}
	}
	return cases
}

// SanitizeExplanation keeps only safe formatting markup from collaborator HTML.
func SanitizeExplanation(raw string) string {
	return strings.TrimSpace(explanationPolicy.Sanitize(stripFences(raw)))
}

// ExplanationText renders explanation HTML as plain terminal text.
func ExplanationText(htmlText string) string {
	s := blockClosers.ReplaceAllString(htmlText, "$0\n")
	s = html.UnescapeString(textPolicy.Sanitize(s))

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n\n"))
}
