package cmd

import (
	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/pattern/domain"
	"github.com/20uf/rexpress/internal/ui"
)

var testCmd = &cobra.Command{
	Use:   "test <regex> [input...]",
	Short: "Run a regex against inputs, or against generated test cases",
	Long: `Validate a regular expression and show every match in each input.
Without inputs, test strings are generated by the AI model (or the offline catalog).

Examples:
  rexpress test '\d{3}-\d{4}' "555-1234" "no digits"
  rexpress test '[^,]+(?:\s*,\s*[^,]+)*'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.gen.Load(args[0], "")
	if err != nil {
		s.ctrl.Log().Record("Regex validation", err.Error())
		return err
	}
	ui.PrintSuccess("Valid " + string(s.gen.Engine()) + " pattern")

	result := &application.Result{Resolution: *res}
	if len(args) > 1 {
		result.Tests = domain.Evaluate(res.Matcher, args[1:])
		result.TestSource = "input"
	} else {
		result.Tests, result.TestSource = s.gen.Test(cmd.Context(), res)
	}

	printTests(result)
	return nil
}
