package cmd

import (
	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:               "theme [name]",
	Short:             "Show or change the color theme",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeThemes,
	RunE:              runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		return applyTheme(s, args[0])
	}
	return chooseTheme(s)
}

func chooseTheme(s *session) error {
	var options []ui.SelectOption
	for _, name := range ui.ThemeNames() {
		display := name
		if name == s.ctrl.Theme() {
			display += " (current)"
		}
		options = append(options, ui.SelectOption{Display: display, Value: name})
	}

	name, err := ui.SelectWithOptions("Theme", options)
	if err != nil {
		return err
	}
	return applyTheme(s, name)
}

func applyTheme(s *session, name string) error {
	if err := s.ctrl.SetTheme(name); err != nil {
		return err
	}
	ui.PrintSuccess("Theme set to " + s.ctrl.Theme())
	return nil
}
