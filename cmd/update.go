package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/ui"
	"github.com/20uf/rexpress/internal/updater"
)

var flagPreRelease bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update rexpress to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintStep("⟳", "Checking for updates...")

		u := updater.New()
		latest, hasUpdate, err := u.Check(cmd.Context(), appVersion, flagPreRelease)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}

		if !hasUpdate {
			ui.PrintSuccess(fmt.Sprintf("Already up to date (%s)", appVersion))
			return nil
		}

		fmt.Printf("New version available: %s (current: %s)\n", latest, appVersion)

		if err := u.Apply(cmd.Context(), latest); err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}

		ui.PrintSuccess(fmt.Sprintf("Updated to %s successfully!", latest))
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&flagPreRelease, "pre-release", false, "Include pre-releases")
	rootCmd.AddCommand(updateCmd)
}
