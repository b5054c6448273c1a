package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/20uf/rexpress/internal/activity"
	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/storage"
)

// fileConfig points --config at a file-backed store in a temp dir.
func fileConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("REXPRESS_STORAGE", "")
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store.json")
	cfgPath := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[storage]\nbackend = file\npath = "+storePath+"\n"), 0644))

	old := flagConfig
	flagConfig = cfgPath
	t.Cleanup(func() { flagConfig = old })
	return storePath
}

// Test: History numbers complete from the saved history
func TestCompleteHistoryNumbers(t *testing.T) {
	storePath := fileConfig(t)
	h := history.Open(storage.NewFileStore(storePath), activity.New())
	h.Add("emails", `\S+@\S+`, "Email")
	h.Add("digits", `\d+`, "Digits")

	got, directive := completeHistoryNumbers(historyShowCmd, nil, "")

	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	require.Len(t, got, 2)
	assert.Equal(t, "1\t\\d+  digits", got[0])
	assert.Equal(t, "2\t\\S+@\\S+  emails", got[1])

	got, _ = completeHistoryNumbers(historyShowCmd, []string{"1"}, "")
	assert.Empty(t, got)
}

// Test: Theme names complete with the saved theme marked
func TestCompleteThemes(t *testing.T) {
	storePath := fileConfig(t)
	require.NoError(t, storage.NewFileStore(storePath).Set(storage.ThemeKey, "midnight"))

	got, _ := completeThemes(themeCmd, nil, "")

	assert.Equal(t, []string{
		"daylight\ttheme",
		"jurassic\ttheme",
		"kiro\ttheme",
		"midnight\tcurrent theme",
	}, got)
}

// Test: Per-user completion paths
func TestCompletionPath(t *testing.T) {
	p, err := completionPath("/home/u", "zsh")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.zsh/completions/_rexpress", p)

	_, err = completionPath("/home/u", "powershell")
	assert.Error(t, err)
}

// Test: Only one rc line is added per marker
func TestEnsureLineInFile(t *testing.T) {
	rc := filepath.Join(t.TempDir(), ".zshrc")

	require.NoError(t, ensureLineInFile(rc, "autoload -Uz compinit && compinit", "compinit"))
	require.NoError(t, ensureLineInFile(rc, "autoload -Uz compinit && compinit", "compinit"))

	data, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "compinit\n"))
}
