package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/verbose"
)

var (
	flagVerbose   bool
	flagConfig    string
	flagExportLog string
)

var rootCmd = &cobra.Command{
	Use:   "rexpress",
	Short: "Turn plain-English descriptions into tested regular expressions",
	Long: `rexpress asks an AI model for a regular expression matching your description
or sample text, validates it, runs generated test strings against it and explains it.
Without an AI model it falls back to a built-in catalog of common patterns.

Run without arguments for the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			verbose.Enable()
		}
	},
	RunE: runHome,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Echo the activity log to the terminal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.rexpress/config.ini)")
	rootCmd.PersistentFlags().StringVar(&flagExportLog, "export-log", "", "Write the activity log into this directory on exit")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
