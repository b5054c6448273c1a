package cmd

import (
	"fmt"

	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/ui"
)

func printResult(r *application.Result) {
	if r.Source == application.SourceFallback {
		ui.PrintWarning("AI unavailable, pattern taken from the offline catalog")
	}

	fmt.Println()
	ui.PrintInfo("🦖 Pattern", ui.RenderPattern(r.Regex, r.Description, string(r.Source)))
	printTests(r)

	if r.ExplanationHTML != "" {
		ui.PrintInfo(fmt.Sprintf("Explanation (%s)", r.ExplanationSource), ui.RenderExplanation(r.ExplanationHTML))
	}
}

func printTests(r *application.Result) {
	ui.PrintInfo(fmt.Sprintf("Test cases (%s)", r.TestSource), ui.RenderTests(r.Tests))
}
