package domain

import (
	"fmt"
	"html"
	"strings"
)

// Artifacts is the offline result for one category.
type Artifacts struct {
	Category        Category
	Label           string
	Regex           string
	TestCases       []string
	ExplanationHTML string
}

type catalogEntry struct {
	label   string
	regex   string
	summary string
	tests   []string
}

var catalog = map[Category]catalogEntry{
	CategoryCommaSeparated: {
		label:   "Comma-separated values",
		regex:   `[^,]+(?:\s*,\s*[^,]+)*`,
		summary: "Matches runs of text separated by commas, allowing optional whitespace around each comma.",
		tests: []string{
			"apple, banana, cherry",
			"red,green,blue",
			"single",
			"one, two, three, four",
			"No commas here",
			"item1,item2,item3",
			"first, second",
		},
	},
	CategoryPipeSeparated: {
		label:   "Pipe-separated values",
		regex:   `[^|]+(?:\s*\|\s*[^|]+)*`,
		summary: "Matches runs of text separated by pipe characters, allowing optional whitespace around each pipe.",
		tests: []string{
			"value1|value2|value3",
			"apple | banana | cherry",
			"first|second|third|fourth",
			"single",
			"data1 | data2 | data3",
			"No pipes here",
			"column1|column2|column3",
		},
	},
	CategoryTabSeparated: {
		label:   "Tab-separated values",
		regex:   `[^\t]+(?:\t[^\t]+)*`,
		summary: "Matches runs of text separated by tab characters.",
		tests: []string{
			"value1\tvalue2\tvalue3",
			"apple\tbanana\tcherry",
			"first\tsecond\tthird",
			"single",
			"data1\tdata2\tdata3\tdata4",
			"No tabs here",
			"col1\tcol2\tcol3",
		},
	},
	CategorySemicolonSeparated: {
		label:   "Semicolon-separated values",
		regex:   `[^;]+(?:\s*;\s*[^;]+)*`,
		summary: "Matches runs of text separated by semicolons, allowing optional whitespace around each semicolon.",
		tests: []string{
			"value1; value2; value3",
			"apple;banana;cherry",
			"first; second; third",
			"single",
			"item1; item2; item3; item4",
			"No semicolons here",
			"data1;data2;data3",
		},
	},
	CategoryItemList: {
		label:   "List items, one per line",
		regex:   `[^\n]+`,
		summary: "Matches each non-empty line as a separate list item.",
		tests: []string{
			"Item 1\nItem 2\nItem 3",
			"First line\nSecond line",
			"Single line",
			"Multiple\nlines\nof\ntext",
			"List:\nApple\nBanana\nCherry",
		},
	},
	CategoryEmail: {
		label:   "Email addresses",
		regex:   `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
		summary: "Matches an email address: a local part, an @ sign, a domain and a top-level domain of at least two letters.",
		tests: []string{
			"Contact us at john.doe@example.com for more info",
			"Send email to admin@company.org",
			"Invalid email: notanemail",
			"Multiple emails: alice@test.com and bob@demo.net",
			"user123+tag@domain.co.uk",
		},
	},
	CategoryPhone: {
		label:   "Phone numbers (US format)",
		regex:   `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`,
		summary: "Matches a ten-digit US phone number with an optional parenthesised area code and optional dash, dot or space separators.",
		tests: []string{
			"Call me at (555) 123-4567",
			"Phone: 555-123-4567",
			"Contact: 555.123.4567",
			"Invalid: 123-45-6789",
			"International: +1-555-123-4567",
		},
	},
	CategoryURL: {
		label:   "URLs",
		regex:   `https?://[^\s]+`,
		summary: "Matches an http or https URL up to the next whitespace character.",
		tests: []string{
			"Visit https://www.example.com for details",
			"Check out http://demo.org/page",
			"Invalid: not-a-url",
			"Secure site: https://secure.bank.com/login",
			"Simple: www.google.com",
		},
	},
	CategoryIPAddress: {
		label:   "IP addresses",
		regex:   `\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`,
		summary: "Matches four dot-separated groups of one to three digits, the shape of an IPv4 address.",
		tests: []string{
			"Server IP: 192.168.1.1",
			"Connect to 10.0.0.1",
			"Invalid: 999.999.999.999",
			"Localhost: 127.0.0.1",
			"Not an IP: 192.168.1",
		},
	},
	CategoryCreditCard: {
		label:   "Credit card numbers",
		regex:   `\b(?:\d{4}[-\s]?){3}\d{4}\b`,
		summary: "Matches sixteen digits in four groups of four, optionally separated by dashes or spaces.",
		tests: []string{
			"Card: 4111 1111 1111 1111",
			"Pay with 5500-0000-0000-0004",
			"Compact 4012888888881881",
			"Too short: 1234 5678",
			"Order #12345",
		},
	},
	CategorySSN: {
		label:   "Social Security Numbers",
		regex:   `\b\d{3}-\d{2}-\d{4}\b`,
		summary: "Matches a US Social Security Number written as three, two and four digits separated by dashes.",
		tests: []string{
			"SSN: 123-45-6789",
			"Employee 987-65-4321 on file",
			"Invalid: 123-456-789",
			"Phone 555-123-4567",
			"No number here",
		},
	},
	CategoryHexColor: {
		label:   "Hexadecimal colors",
		regex:   `#[0-9A-Fa-f]{6}\b`,
		summary: "Matches a six-digit hexadecimal color code preceded by a hash sign.",
		tests: []string{
			"Brand color #FF5733",
			"Background: #00ff00;",
			"Short form #FFF",
			"Not hex: #GGGGGG",
			"Accent #1a2B3c and #ABCDEF",
		},
	},
	CategoryDate: {
		label:   "Dates (MM/DD/YYYY)",
		regex:   `\b(?:0?[1-9]|1[0-2])/(?:0?[1-9]|[12][0-9]|3[01])/\d{4}\b`,
		summary: "Matches a month/day/year date with a one or two digit month and day and a four digit year.",
		tests: []string{
			"Born on 12/25/1990",
			"Meeting: 01/15/2024",
			"Invalid: 13/45/2023",
			"Today is 3/7/2024",
			"Not a date: abc/def/ghij",
		},
	},
	CategoryNumber: {
		label:   "Numbers",
		regex:   `\d+`,
		summary: "Matches each run of one or more digits.",
		tests: []string{
			"The price is 123.45 dollars",
			"Count: 42",
			"No numbers here",
			"Multiple: 1, 2, 3.14, 999",
			"Negative: -123",
		},
	},
	CategoryWord: {
		label:   "Words",
		regex:   `\w+`,
		summary: "Matches each run of word characters: letters, digits and underscores.",
		tests: []string{
			"Hello world",
			"snake_case_identifier",
			"123 numbers count too",
			"   leading spaces",
			"?!",
		},
	},
	CategoryDefault: {
		label:   "Exact text match",
		summary: "Matches the provided text literally, with any run of whitespace accepted between words.",
		tests: []string{
			"Sample text for testing",
			"Another test string",
			"Different content here",
			"Test case number four",
			"Fifth test example",
			"Sixth sample text",
			"Final test case",
		},
	},
}

// Generate produces the offline regex, test cases and explanation for a category.
// Default derives its regex from rawInput.
func Generate(category Category, rawInput string) Artifacts {
	entry, ok := catalog[category]
	if !ok {
		category = CategoryDefault
		entry = catalog[CategoryDefault]
	}

	regex := entry.regex
	label := entry.label
	if category == CategoryDefault {
		regex = LiteralPattern(rawInput)
		if len(strings.Fields(rawInput)) > 1 {
			label = "Word sequence match"
		}
	}

	description := strings.TrimSpace(rawInput)
	if description == "" {
		description = label
	}

	return Artifacts{
		Category:        category,
		Label:           label,
		Regex:           regex,
		TestCases:       TestCases(category),
		ExplanationHTML: Explain(regex, description, category),
	}
}

// TestCases returns a copy of the fixed test inputs for a category.
func TestCases(category Category) []string {
	entry, ok := catalog[category]
	if !ok {
		entry = catalog[CategoryDefault]
	}
	out := make([]string, len(entry.tests))
	copy(out, entry.tests)
	return out
}

// Label returns the human-readable name of a category.
func Label(category Category) string {
	if entry, ok := catalog[category]; ok {
		return entry.label
	}
	return catalog[CategoryDefault].label
}

// Explain renders the offline HTML explanation of a pattern.
func Explain(regex, description string, category Category) string {
	entry, ok := catalog[category]
	if !ok {
		entry = catalog[CategoryDefault]
	}

	var b strings.Builder
	b.WriteString("<h4>Pattern Analysis</h4>\n")
	fmt.Fprintf(&b, "<p><strong>Regex:</strong> <code>%s</code></p>\n", html.EscapeString(regex))
	fmt.Fprintf(&b, "<p><strong>Description:</strong> %s</p>\n", html.EscapeString(description))
	b.WriteString("<h4>Basic Breakdown</h4>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(entry.summary))
	b.WriteString("<h4>Common Components</h4>\n")
	for _, c := range commonComponents {
		fmt.Fprintf(&b, "<p>&bull; <code>%s</code> - %s</p>\n", html.EscapeString(c.token), c.meaning)
	}
	b.WriteString("<h4>Usage</h4>\n")
	b.WriteString("<p>Use this pattern to find every non-overlapping match in a text. Check it against the test cases above before relying on it.</p>\n")
	return b.String()
}

var commonComponents = []struct {
	token   string
	meaning string
}{
	{`\d`, "Matches any digit (0-9)"},
	{`\w`, "Matches any word character (letters, digits, underscore)"},
	{`\s`, "Matches any whitespace character"},
	{`+`, "Matches one or more of the preceding element"},
	{`*`, "Matches zero or more of the preceding element"},
	{`?`, "Matches zero or one of the preceding element"},
	{`[^x]`, "Matches any character except x"},
}
