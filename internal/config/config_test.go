package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "REXPRESS_BASE_URL", "REXPRESS_MODEL", "REXPRESS_STORAGE", "REXPRESS_CONFIG"} {
		t.Setenv(k, "")
	}
}

// Test: Missing file yields defaults
func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.ini"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, time.Second, cfg.AI.ProbeWait)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "re2", cfg.Regex.Engine)
}

// Test: File values override defaults
func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.ini")
	content := `[ai]
api_key = sk-file
model = gpt-4o
probe_wait = 250ms
requests_per_minute = 20

[storage]
backend = sqlite

[regex]
engine = ecmascript

[ui]
theme = midnight
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-file", cfg.AI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.AI.ProbeWait)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 20, cfg.AI.RequestsPerMinute)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "ecmascript", cfg.Regex.Engine)
	assert.Equal(t, "midnight", cfg.UI.Theme)
	assert.Equal(t, path, cfg.Path())
}

// Test: Environment wins over the file
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[ai]\napi_key = sk-file\n"), 0644))

	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("REXPRESS_MODEL", "local-model")
	t.Setenv("REXPRESS_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("REXPRESS_STORAGE", "BADGER")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.AI.APIKey)
	assert.Equal(t, "local-model", cfg.AI.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.BaseURL)
	assert.Equal(t, "badger", cfg.Storage.Backend)
}

// Test: REXPRESS_CONFIG selects the file
func TestDefaultPath_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("REXPRESS_CONFIG", "/tmp/custom.ini")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.ini", p)
}

// Test: Save then Load keeps values
func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.ini")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.AI.Model = "gpt-4o"
	cfg.UI.Theme = "jurassic"
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", again.AI.Model)
	assert.Equal(t, "jurassic", again.UI.Theme)
}
