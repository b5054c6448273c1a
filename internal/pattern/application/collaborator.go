package application

import "context"

// Role tags a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    Role
	Content string
}

// Collaborator is the hosted AI chat service.
// Chat returns the single text completion for the conversation.
type Collaborator interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Logger receives activity entries.
type Logger interface {
	Record(action, details string)
}

const (
	regexSystemPrompt = "You are a regex expert. Generate accurate regular expressions based on user descriptions. " +
		"Return only the regex pattern without delimiters or explanations."

	testCaseSystemPrompt = "Generate 7 test cases for the given regex pattern. Include both matching and non-matching examples. " +
		"Return only the test strings, one per line, without explanations or numbering."

	explanationSystemPrompt = "You are a regex expert. Explain regex patterns in simple, clear terms. " +
		"Break down each component and provide examples. Use HTML formatting with <h4>, <p>, and <code> tags."

	probePrompt = `Say "Hello" if you can hear me.`
)

func samplePrompt(sample string) string {
	return "Analyze this sample text and generate a regex pattern that would match similar content: \"" +
		sample + "\". Return only the regex pattern without delimiters."
}

func descriptionPrompt(description string) string {
	return "Convert this English description to a regex pattern: \"" +
		description + "\". Return only the regex pattern without delimiters."
}

func testCasePrompt(regex, description string) string {
	return "Generate test cases for this regex pattern: /" + regex + "/g\n" +
		"Description: " + description + "\n\n" +
		"Please provide diverse examples that would test the pattern effectively."
}

func explanationPrompt(regex, description string) string {
	return "Explain this regex pattern in detail: " + regex + "\n\n" +
		"Context: " + description + "\n\n" +
		"Please provide:\n" +
		"1. What this pattern matches\n" +
		"2. Breakdown of each component\n" +
		"3. Examples of matching and non-matching strings"
}
