package domain

import (
	"strings"
	"testing"
)

// Test: Wrapping artifacts are stripped from collaborator replies
func TestCleanPattern(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`\d+`, `\d+`},
		{"  /\\d{3}-\\d{4}/g  ", `\d{3}-\d{4}`},
		{"/abc/", "abc"},
		{"`[a-z]+`", "[a-z]+"},
		{"```\n\\w+\n```", `\w+`},
		{"```regex\n/^foo$/gim\n```", "^foo$"},
		{"https?://[^/]+/path", "https?://[^/]+/path"},
	}

	for _, tt := range tests {
		if got := CleanPattern(tt.raw); got != tt.want {
			t.Errorf("CleanPattern(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// Test: Test case replies are trimmed, blank lines dropped, capped at seven
func TestParseTestCases(t *testing.T) {
	raw := "  one\n\ntwo  \nthree\nfour\nfive\nsix\nseven\neight\n"
	got := ParseTestCases(raw)

	if len(got) != MaxTestCases {
		t.Fatalf("expected %d cases, got %d", MaxTestCases, len(got))
	}
	if got[0] != "one" || got[1] != "two" || got[6] != "seven" {
		t.Errorf("unexpected cases %v", got)
	}
	if len(ParseTestCases("   \n  ")) != 0 {
		t.Error("expected no cases from blank reply")
	}
}

// Test: Unsafe markup is removed from collaborator explanations
func TestSanitizeExplanation(t *testing.T) {
	got := SanitizeExplanation("```html\n<h4>Hi</h4><script>alert(1)</script><p onclick=\"x()\">ok</p>\n```")

	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Errorf("unsafe markup kept: %s", got)
	}
	if !strings.Contains(got, "<h4>Hi</h4>") || !strings.Contains(got, "<p>ok</p>") {
		t.Errorf("formatting lost: %s", got)
	}
}

// Test: Explanation HTML renders as plain text
func TestExplanationText(t *testing.T) {
	text := ExplanationText(Explain(`\d+`, "numbers & more", CategoryNumber))

	if strings.Contains(text, "<") {
		t.Errorf("tags left in text:\n%s", text)
	}
	for _, want := range []string{"Pattern Analysis", `Regex: \d+`, "Description: numbers & more", "Matches each run of one or more digits."} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}
