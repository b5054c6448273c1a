package cmd

import (
	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/ui"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the AI model answers",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return probe(cmd, s)
}

func probe(cmd *cobra.Command, s *session) error {
	ui.PrintStep("⟳", "Calling "+s.cfg.AI.Model+"...")

	reply, err := s.ctrl.Probe(cmd.Context())
	if err != nil {
		ui.PrintError("AI unavailable: " + err.Error())
		ui.PrintInfo("Offline mode", "Patterns will come from the built-in catalog.\nSet OPENAI_API_KEY or [ai] api_key in "+s.cfg.Path()+" to enable the AI.")
		return err
	}

	ui.PrintSuccess("AI connected: " + reply)
	return nil
}
