package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/pattern/application"
)

var (
	flagSample string
	flagRaw    bool
)

var generateCmd = &cobra.Command{
	Use:     "generate [description]",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a regex from a description or a sample",
	Long: `Generate a regular expression, test it and explain it.

Examples:
  rexpress generate "email addresses"
  rexpress generate --sample "Call me at 555-123-4567"
  rexpress generate "comma separated values" --raw`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagSample, "sample", "s", "", "Sample text to derive the pattern from")
	generateCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print only the pattern")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	req := application.Request{
		Description: strings.Join(args, " "),
		Sample:      flagSample,
	}

	result, err := s.ctrl.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if flagRaw {
		fmt.Println(result.Regex)
		return nil
	}
	printResult(result)
	return nil
}
