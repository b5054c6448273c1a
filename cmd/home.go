package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/ui"
	"github.com/20uf/rexpress/internal/updater"
)

const (
	menuDescribe = "describe"
	menuSample   = "sample"
	menuHistory  = "history"
	menuDelete   = "delete"
	menuPing     = "ping"
	menuReset    = "reset"
	menuLog      = "log"
	menuTheme    = "theme"
	menuQuit     = "quit"
)

var homeOptions = []ui.SelectOption{
	{Display: "Describe a pattern", Value: menuDescribe},
	{Display: "Paste sample text", Value: menuSample},
	{Display: "Browse history", Value: menuHistory},
	{Display: "Delete from history", Value: menuDelete},
	{Display: "Test AI connection", Value: menuPing},
	{Display: "Reset", Value: menuReset},
	{Display: "Export activity log", Value: menuLog},
	{Display: "Change theme", Value: menuTheme},
	{Display: "Quit", Value: menuQuit},
}

func runHome(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ui.PrintBannerWithUpdateCheck(appVersion, func() (string, bool, error) {
		return updater.New().Check(cmd.Context(), appVersion, false)
	})
	if !s.ai {
		ui.PrintWarning("No AI model configured, using the offline catalog")
	}

	for {
		choice, err := ui.SelectWithOptions("What are we hunting?", homeOptions)
		if err != nil || choice == menuQuit {
			return nil
		}

		if err := runMenuChoice(cmd, s, choice); err != nil {
			if errors.Is(err, ui.ErrUserAbort) {
				continue
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			ui.PrintError(err.Error())
		}
		fmt.Println()
	}
}

func runMenuChoice(cmd *cobra.Command, s *session, choice string) error {
	ctx := cmd.Context()

	switch choice {
	case menuDescribe:
		text, err := ui.Input("Describe the pattern", "e.g. comma separated values")
		if err != nil {
			return err
		}
		return huntAndPrint(ctx, s, application.Request{Description: text})

	case menuSample:
		text, err := ui.Text("Paste sample text", "e.g. contact: jane@example.com")
		if err != nil {
			return err
		}
		return huntAndPrint(ctx, s, application.Request{Sample: text})

	case menuHistory:
		index, err := pickHistory(s, "Load which pattern?")
		if err != nil {
			return err
		}
		return showHistory(cmd, s, index)

	case menuDelete:
		index, err := pickHistory(s, "Delete which pattern?")
		if err != nil {
			return err
		}
		return deleteHistory(s, index, false)

	case menuPing:
		return probe(cmd, s)

	case menuReset:
		s.ctrl.Reset()
		ui.PrintSuccess("Hunting ground cleared")
		return nil

	case menuLog:
		dir, err := ui.Input("Export directory", ".")
		if err != nil {
			return err
		}
		if strings.TrimSpace(dir) == "" {
			dir = "."
		}
		path, err := s.ctrl.ExportLog(dir)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Activity log saved: " + path)
		return nil

	case menuTheme:
		return chooseTheme(s)
	}
	return nil
}

func huntAndPrint(ctx context.Context, s *session, req application.Request) error {
	ui.PrintStep("🦖", "Hunting...")
	result, err := s.ctrl.Generate(ctx, req)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func pickHistory(s *session, label string) (int, error) {
	records, active := s.ctrl.History()
	if len(records) == 0 {
		ui.PrintWarning("No patterns hunted yet")
		return 0, ui.ErrUserAbort
	}

	options := make([]ui.SelectOption, len(records))
	for i, r := range records {
		options[i] = ui.HistoryOption(i, r)
		if i == active {
			options[i].Display += " ●"
		}
	}

	value, err := ui.SelectWithOptions(label, options)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}
