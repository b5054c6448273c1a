package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/ui"
)

var (
	flagYes          bool
	flagExportFormat string
	flagExportOutput string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List and manage past patterns",
	RunE:    runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past patterns, most recent first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Load a past pattern and re-run its tests",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,

	ValidArgsFunction: completeHistoryNumbers,
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <n>",
	Aliases: []string{"rm"},
	Short:   "Delete a past pattern",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryDelete,

	ValidArgsFunction: completeHistoryNumbers,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as JSON or YAML",
	RunE:  runHistoryExport,
}

func init() {
	historyDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	historyExportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json or yaml")
	historyExportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Write to a file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// parseIndex converts a 1-based position into a record index.
func parseIndex(arg string, count int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid history number %q", arg)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %d (history has %d entries)", history.ErrNotFound, n, count)
	}
	return n - 1, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	records, active := s.ctrl.History()
	fmt.Println(ui.RenderHistory(records, active))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	records, _ := s.ctrl.History()
	index, err := parseIndex(args[0], len(records))
	if err != nil {
		return err
	}
	return showHistory(cmd, s, index)
}

func showHistory(cmd *cobra.Command, s *session, index int) error {
	rec, result, err := s.ctrl.SelectHistory(cmd.Context(), index)
	if err != nil {
		return err
	}

	ui.PrintStep("↺", fmt.Sprintf("%s  %s", rec.Input, ui.MutedStyle.Render(rec.Timestamp)))
	ui.PrintInfo("🦖 Pattern", ui.RenderPattern(rec.Regex, rec.Description, ""))
	printTests(result)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	records, _ := s.ctrl.History()
	index, err := parseIndex(args[0], len(records))
	if err != nil {
		return err
	}
	return deleteHistory(s, index, flagYes)
}

func deleteHistory(s *session, index int, skipConfirm bool) error {
	rec, err := s.ctrl.HistoryRecord(index)
	if err != nil {
		return err
	}

	if !skipConfirm {
		ok, err := ui.Confirm(fmt.Sprintf("Delete %s (%s)?", rec.Regex, rec.Input))
		if err != nil {
			return err
		}
		if !ok {
			ui.PrintWarning("Kept")
			return nil
		}
	}

	s.ctrl.DeleteHistory(index)
	ui.PrintSuccess("Deleted " + rec.Regex)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	records, _ := s.ctrl.History()

	if flagExportOutput == "" {
		return history.Export(os.Stdout, records, flagExportFormat)
	}

	f, err := os.Create(flagExportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", flagExportOutput, err)
	}
	defer f.Close() //nolint:errcheck

	if err := history.Export(f, records, flagExportFormat); err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Exported %d patterns to %s", len(records), flagExportOutput))
	return nil
}
