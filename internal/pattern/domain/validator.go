package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Engine selects the regex dialect used to compile patterns.
type Engine string

const (
	// EngineRE2 is Go's native regexp package.
	EngineRE2 Engine = "re2"
	// EngineECMAScript follows JavaScript RegExp syntax (lookarounds, backreferences).
	EngineECMAScript Engine = "ecmascript"
)

// ParseEngine maps a configuration value to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "re2", "go":
		return EngineRE2, nil
	case "ecmascript", "js", "javascript":
		return EngineECMAScript, nil
	default:
		return "", fmt.Errorf("unknown regex engine %q (use re2 or ecmascript)", name)
	}
}

const ecmaMatchTimeout = 2 * time.Second

// Match is one non-overlapping match. Offset counts runes from the start of the input.
type Match struct {
	Text   string
	Offset int
}

// Matcher is a compiled pattern in find-all mode.
type Matcher interface {
	Pattern() string
	FindAll(s string) []Match
}

// Compile validates pattern for the engine and returns a reusable Matcher.
func Compile(pattern string, engine Engine) (Matcher, error) {
	switch engine {
	case EngineECMAScript:
		re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Reason: err.Error()}
		}
		re.MatchTimeout = ecmaMatchTimeout
		return &ecmaMatcher{re: re}, nil
	default:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Reason: err.Error()}
		}
		return &re2Matcher{re: re}, nil
	}
}

type re2Matcher struct {
	re *regexp.Regexp
}

func (m *re2Matcher) Pattern() string { return m.re.String() }

func (m *re2Matcher) FindAll(s string) []Match {
	locs := m.re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Match, len(locs))
	for i, loc := range locs {
		out[i] = Match{
			Text:   s[loc[0]:loc[1]],
			Offset: utf8.RuneCountInString(s[:loc[0]]),
		}
	}
	return out
}

type ecmaMatcher struct {
	re *regexp2.Regexp
}

func (m *ecmaMatcher) Pattern() string { return m.re.String() }

func (m *ecmaMatcher) FindAll(s string) []Match {
	var out []Match
	match, err := m.re.FindStringMatch(s)
	for err == nil && match != nil {
		out = append(out, Match{Text: match.String(), Offset: match.Index})
		match, err = m.re.FindNextMatch(match)
	}
	return out
}

// TestResult holds every match found in one test input.
type TestResult struct {
	Input   string
	Matches []Match
}

// Matched reports whether at least one match was found.
func (r TestResult) Matched() bool {
	return len(r.Matches) > 0
}

// Texts returns the matched substrings in order.
func (r TestResult) Texts() []string {
	texts := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		texts[i] = m.Text
	}
	return texts
}

// Summary renders the result the way the activity log records it.
func (r TestResult) Summary() string {
	if !r.Matched() {
		return "No match"
	}
	return strings.Join(r.Texts(), ", ")
}

// Evaluate runs every test case against m, preserving input order.
func Evaluate(m Matcher, cases []string) []TestResult {
	results := make([]TestResult, len(cases))
	for i, c := range cases {
		results[i] = TestResult{Input: c, Matches: m.FindAll(c)}
	}
	return results
}
