package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/storage"
	"github.com/20uf/rexpress/internal/ui"
)

// offlineSession opens a session on in-memory storage with no AI configured.
func offlineSession(t *testing.T) *session {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "REXPRESS_BASE_URL", "REXPRESS_MODEL", "REXPRESS_STORAGE"} {
		t.Setenv(k, "")
	}

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = memory\n\n[ai]\nprobe_wait = 0s\n"), 0644))

	old := flagConfig
	flagConfig = path
	t.Cleanup(func() {
		flagConfig = old
		_ = ui.SetTheme(ui.DefaultTheme)
	})

	s, err := openSession()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// Test: Session without an API key runs offline
func TestOpenSession_Offline(t *testing.T) {
	s := offlineSession(t)

	assert.False(t, s.ai)
	assert.Equal(t, ui.DefaultTheme, s.ctrl.Theme())

	result, err := s.ctrl.Generate(context.Background(), application.Request{Description: "hex color"})
	require.NoError(t, err)
	assert.Equal(t, application.SourceFallback, result.Source)
}

// Test: A locked store degrades to memory without blocking generation
func TestOpenSession_StorageLocked(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "REXPRESS_BASE_URL", "REXPRESS_MODEL", "REXPRESS_STORAGE"} {
		t.Setenv(k, "")
	}
	dir := filepath.Join(t.TempDir(), "badger")
	held, err := storage.OpenBadgerStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Close() })

	path := filepath.Join(t.TempDir(), "config.ini")
	cfg := "[storage]\nbackend = badger\npath = " + dir + "\n\n[ai]\nprobe_wait = 0s\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	old := flagConfig
	flagConfig = path
	t.Cleanup(func() { flagConfig = old })

	s, err := openSession()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	_, isMemory := s.kv.(*storage.MemoryStore)
	assert.True(t, isMemory)
	assert.Contains(t, s.ctrl.Log().Text(), "Storage error")

	result, err := s.ctrl.Generate(context.Background(), application.Request{Description: "email"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Regex)
	records, _ := s.ctrl.History()
	assert.Len(t, records, 1)
}

// Test: Unknown regex engine is rejected
func TestOpenSession_BadEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = memory\n[regex]\nengine = pcre\n"), 0644))

	old := flagConfig
	flagConfig = path
	t.Cleanup(func() { flagConfig = old })

	_, err := openSession()
	assert.Error(t, err)
}

// Test: History numbers are 1-based
func TestParseIndex(t *testing.T) {
	i, err := parseIndex("3", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = parseIndex("0", 5)
	assert.True(t, errors.Is(err, history.ErrNotFound))

	_, err = parseIndex("6", 5)
	assert.True(t, errors.Is(err, history.ErrNotFound))

	_, err = parseIndex("x", 5)
	assert.Error(t, err)
}

// Test: Confirmed deletion removes the record
func TestDeleteHistory_SkipConfirm(t *testing.T) {
	s := offlineSession(t)
	_, err := s.ctrl.Generate(context.Background(), application.Request{Description: "email"})
	require.NoError(t, err)

	require.NoError(t, deleteHistory(s, 0, true))

	records, _ := s.ctrl.History()
	assert.Empty(t, records)
}

// Test: Every subcommand is registered on the root
func TestRootCommands(t *testing.T) {
	want := []string{"generate", "test", "ping", "history", "theme", "version", "update", "completion"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}

	for _, sub := range []string{"list", "show", "delete", "export"} {
		c, _, err := rootCmd.Find([]string{"history", sub})
		require.NoError(t, err, sub)
		assert.Equal(t, sub, c.Name())
	}
}
