package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/pattern/domain"
)

const bannerArt = `
  _ __ _____  ___ __  _ __ ___  ___ ___
 | '__/ _ \ \/ / '_ \| '__/ _ \/ __/ __|
 | | |  __/>  <| |_) | | |  __/\__ \__ \
 |_|  \___/_/\_\ .__/|_|  \___||___/___/
               |_|`

const tagline = "Describe it, we hunt the regex."

// PrintBanner displays the application banner.
func PrintBanner(version string) {
	fmt.Println(BannerStyle.Render(bannerArt))
	fmt.Println()
	fmt.Println(MutedStyle.Render(fmt.Sprintf("  v%s — %s", version, tagline)))
	fmt.Println()
}

// UpdateResult holds the result of an update check.
type UpdateResult struct {
	Latest    string
	HasUpdate bool
}

// PrintBannerWithUpdateCheck displays the banner with an inline update check.
func PrintBannerWithUpdateCheck(version string, checkFn func() (string, bool, error)) *UpdateResult {
	fmt.Println(BannerStyle.Render(bannerArt))
	fmt.Println()

	versionText := MutedStyle.Render(fmt.Sprintf("  v%s — %s", version, tagline))

	var result *UpdateResult

	if checkFn != nil {
		fmt.Printf("%s  %s", versionText, MutedStyle.Render("⟳ checking..."))

		type checkResult struct {
			latest    string
			hasUpdate bool
			err       error
		}
		ch := make(chan checkResult, 1)
		go func() {
			l, h, e := checkFn()
			ch <- checkResult{l, h, e}
		}()

		var cr checkResult
		select {
		case cr = <-ch:
		case <-time.After(3 * time.Second):
			cr = checkResult{err: fmt.Errorf("timeout")}
		}

		fmt.Print("\r\033[K")

		if cr.err != nil {
			fmt.Println(versionText)
		} else if !cr.hasUpdate {
			fmt.Printf("%s  %s\n", versionText, SuccessStyle.Render("✓ up to date"))
		} else {
			fmt.Printf("%s  %s\n", versionText, WarningStyle.Render(fmt.Sprintf("↑ v%s available", cr.latest)))
			result = &UpdateResult{Latest: cr.latest, HasUpdate: true}
		}
	} else {
		fmt.Println(versionText)
	}
	fmt.Println()

	return result
}

// PrintStep displays a styled step message.
func PrintStep(icon, message string) {
	fmt.Printf("%s %s\n", TitleStyle.Render(icon), message)
}

// PrintSuccess displays a success message.
func PrintSuccess(message string) {
	fmt.Println(SuccessStyle.Render("✓ " + message))
}

// PrintWarning displays a warning message.
func PrintWarning(message string) {
	fmt.Println(WarningStyle.Render("! " + message))
}

// PrintError displays an error message.
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("✗ " + message))
}

// PrintInfo displays an info box.
func PrintInfo(title, content string) {
	header := TitleStyle.Render(title)
	body := BoxStyle.Render(content)
	fmt.Printf("%s\n%s\n", header, body)
}

// RenderPattern formats a generated pattern with its description.
func RenderPattern(regex, description, source string) string {
	var b strings.Builder
	b.WriteString(PatternStyle.Render(regex))
	b.WriteString("\n")
	b.WriteString(description)
	if source != "" {
		b.WriteString("  ")
		b.WriteString(MutedStyle.Render("(" + source + ")"))
	}
	return b.String()
}

// RenderTests formats test results one per line.
func RenderTests(results []domain.TestResult) string {
	if len(results) == 0 {
		return MutedStyle.Render("No test cases")
	}

	lines := make([]string, len(results))
	for i, r := range results {
		input := fmt.Sprintf("%q", r.Input)
		if r.Matched() {
			lines[i] = fmt.Sprintf("%s %s → %s", SuccessStyle.Render("✓"), input, SuccessStyle.Render(r.Summary()))
		} else {
			lines[i] = fmt.Sprintf("%s %s → %s", MutedStyle.Render("·"), input, MutedStyle.Render(r.Summary()))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderExplanation converts explanation HTML to terminal text.
func RenderExplanation(explanationHTML string) string {
	return domain.ExplanationText(explanationHTML)
}

// RenderHistory formats the history list, marking the active record.
func RenderHistory(records []history.Record, active int) string {
	if len(records) == 0 {
		return MutedStyle.Render("No patterns hunted yet")
	}

	lines := make([]string, len(records))
	for i, r := range records {
		marker := "  "
		if i == active {
			marker = TitleStyle.Render("› ")
		}
		lines[i] = fmt.Sprintf("%s%2d. %s  %s  %s",
			marker, i+1,
			PatternStyle.Render(r.Regex),
			r.Input,
			MutedStyle.Render(r.Timestamp),
		)
	}
	return strings.Join(lines, "\n")
}

// HistoryOption builds a select label for a history record.
func HistoryOption(index int, r history.Record) SelectOption {
	return SelectOption{
		Display: fmt.Sprintf("%2d. %s  %s", index+1, r.Regex, MutedStyle.Render(r.Input)),
		Value:   fmt.Sprint(index),
	}
}
