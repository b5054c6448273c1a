package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/20uf/rexpress/internal/activity"
	"github.com/20uf/rexpress/internal/config"
	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/storage"
	"github.com/20uf/rexpress/internal/ui"
)

var flagSetup bool

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate or install shell completion",
	Long: `Generate shell completion script.

Theme names and history numbers complete from your saved data.
By default, prints the completion script to stdout.
Use --setup to install it for the current user.`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&flagSetup, "setup", false, "Install completion for your shell")
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	shell := args[0]
	if !flagSetup {
		return genCompletion(shell, os.Stdout)
	}
	return setupCompletion(shell)
}

func genCompletion(shell string, f *os.File) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(f, true)
	case "zsh":
		return rootCmd.GenZshCompletion(f)
	case "fish":
		return rootCmd.GenFishCompletion(f, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(f)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

// completionPath is the per-user completion file for shell.
func completionPath(home, shell string) (string, error) {
	switch shell {
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "rexpress"), nil
	case "zsh":
		return filepath.Join(home, ".zsh", "completions", "_rexpress"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "rexpress.fish"), nil
	default:
		return "", fmt.Errorf("--setup supports bash, zsh and fish; redirect the output for %s", shell)
	}
}

func setupCompletion(shell string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	path, err := completionPath(home, shell)
	if err != nil {
		return err
	}
	if !confirmOverwrite(path) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := genCompletion(shell, f); err != nil {
		return err
	}

	if shell == "zsh" {
		rcFile := filepath.Join(home, ".zshrc")
		if err := ensureLineInFile(rcFile, fmt.Sprintf("fpath=(%s $fpath)", filepath.Dir(path)), "fpath="); err != nil {
			return err
		}
		if err := ensureLineInFile(rcFile, "autoload -Uz compinit && compinit", "compinit"); err != nil {
			return err
		}
	}

	ui.PrintSuccess("Completion installed: " + path)
	fmt.Println("Restart your shell to use it.")
	return nil
}

// confirmOverwrite asks before replacing an existing completion file.
func confirmOverwrite(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}
	ok, err := ui.Confirm(fmt.Sprintf("Completion file already exists: %s. Overwrite?", path))
	if err != nil || !ok {
		ui.PrintWarning("Skipped")
		return false
	}
	return true
}

func ensureLineInFile(path, line, marker string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, existing := range strings.Split(string(content), "\n") {
		if strings.Contains(existing, marker) && !strings.HasPrefix(strings.TrimSpace(existing), "#") {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	_, err = fmt.Fprintf(f, "\n# rexpress shell completion\n%s\n", line)
	return err
}

// completeThemes offers theme names, marking the saved one.
func completeThemes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return themeCompletions(savedTheme()), cobra.ShellCompDirectiveNoFileComp
}

func themeCompletions(current string) []string {
	var out []string
	for _, name := range ui.ThemeNames() {
		desc := "theme"
		if name == current {
			desc = "current theme"
		}
		out = append(out, name+"\t"+desc)
	}
	return out
}

// completeHistoryNumbers offers 1-based history positions with their pattern.
func completeHistoryNumbers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return historyCompletions(savedHistory()), cobra.ShellCompDirectiveNoFileComp
}

func historyCompletions(records []history.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = strconv.Itoa(i+1) + "\t" + r.Regex + "  " + r.Input
	}
	return out
}

// openCompletionStore opens the configured store without printing anything.
func openCompletionStore() (storage.Store, bool) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, false
	}
	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, false
	}
	return kv, true
}

func savedHistory() []history.Record {
	kv, ok := openCompletionStore()
	if !ok {
		return nil
	}
	defer kv.Close() //nolint:errcheck
	return history.Load(kv, activity.New())
}

func savedTheme() string {
	kv, ok := openCompletionStore()
	if !ok {
		return ""
	}
	defer kv.Close() //nolint:errcheck
	name, _, _ := kv.Get(storage.ThemeKey)
	return name
}
