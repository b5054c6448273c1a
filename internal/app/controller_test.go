package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/20uf/rexpress/internal/activity"
	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/pattern/domain"
	"github.com/20uf/rexpress/internal/storage"
	"github.com/20uf/rexpress/internal/ui"
)

// BlockingCollaborator holds every chat until released.
type BlockingCollaborator struct {
	entered chan struct{}
	release chan struct{}
}

func (b *BlockingCollaborator) Chat(ctx context.Context, messages []application.Message) (string, error) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "", domain.ErrCollaboratorUnavailable
}

func newController(t *testing.T, ai application.Collaborator) (*Controller, storage.Store) {
	t.Helper()
	kv := storage.NewMemoryStore()
	log := activity.New()
	gen := application.NewGenerator(ai, log, application.Options{})
	c := NewController(gen, kv, log)
	c.newID = func() string { return "req-1" }
	t.Cleanup(func() { _ = ui.SetTheme(ui.DefaultTheme) })
	return c, kv
}

func logContains(c *Controller, s string) bool {
	return strings.Contains(c.Log().Text(), s)
}

// Test: Offline generation records history and explanation
func TestController_Generate_Offline(t *testing.T) {
	c, kv := newController(t, nil)

	result, err := c.Generate(context.Background(), application.Request{Description: "  comma separated values "})
	require.NoError(t, err)

	assert.Equal(t, `[^,]+(?:\s*,\s*[^,]+)*`, result.Regex)
	assert.Equal(t, application.SourceFallback, result.Source)
	assert.Len(t, result.Tests, 7)
	assert.NotEmpty(t, result.ExplanationHTML)

	records, active := c.History()
	require.Len(t, records, 1)
	assert.Equal(t, "comma separated values", records[0].Input)
	assert.Equal(t, -1, active)

	_, ok, err := kv.Get(storage.HistoryKey)
	require.NoError(t, err)
	assert.True(t, ok)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, result.Regex, cur.Regex)
	assert.True(t, logContains(c, "id=req-1"))
}

// Test: Empty input is rejected without touching history
func TestController_Generate_EmptyInput(t *testing.T) {
	c, _ := newController(t, nil)

	_, err := c.Generate(context.Background(), application.Request{Description: "   "})

	assert.True(t, errors.Is(err, domain.ErrEmptyInput))
	records, _ := c.History()
	assert.Empty(t, records)
}

// Test: A second hunt while one is running is rejected
func TestController_Generate_Busy(t *testing.T) {
	ai := &BlockingCollaborator{entered: make(chan struct{}, 1), release: make(chan struct{})}
	c, _ := newController(t, ai)

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), application.Request{Description: "email"})
		done <- err
	}()
	<-ai.entered

	_, err := c.Generate(context.Background(), application.Request{Description: "digits"})
	assert.True(t, errors.Is(err, ErrBusy))

	close(ai.release)
	require.NoError(t, <-done)

	records, _ := c.History()
	require.Len(t, records, 1)
	assert.Equal(t, "email", records[0].Input)
}

// Test: Selecting a history record makes it current and re-runs tests
func TestController_SelectHistory(t *testing.T) {
	c, _ := newController(t, nil)
	ctx := context.Background()

	_, err := c.Generate(ctx, application.Request{Description: "email address"})
	require.NoError(t, err)
	_, err = c.Generate(ctx, application.Request{Description: "phone number"})
	require.NoError(t, err)

	rec, result, err := c.SelectHistory(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "email address", rec.Input)
	assert.Equal(t, rec.Regex, result.Regex)
	assert.NotEmpty(t, result.Tests)
	_, active := c.History()
	assert.Equal(t, 1, active)

	_, _, err = c.SelectHistory(ctx, 5)
	assert.Error(t, err)
}

// Test: Deleting the selected record clears the selection
func TestController_DeleteHistory(t *testing.T) {
	c, _ := newController(t, nil)
	ctx := context.Background()
	for _, d := range []string{"email", "phone", "url", "date"} {
		_, err := c.Generate(ctx, application.Request{Description: d})
		require.NoError(t, err)
	}

	_, _, err := c.SelectHistory(ctx, 3)
	require.NoError(t, err)

	c.DeleteHistory(1)
	records, active := c.History()
	assert.Len(t, records, 3)
	assert.Equal(t, 2, active)

	c.DeleteHistory(2)
	_, active = c.History()
	assert.Equal(t, -1, active)

	c.DeleteHistory(42)
	records, _ = c.History()
	assert.Len(t, records, 2)
}

// Test: Reset clears the current pattern and selection but keeps history
func TestController_Reset(t *testing.T) {
	c, _ := newController(t, nil)
	ctx := context.Background()
	_, err := c.Generate(ctx, application.Request{Description: "email"})
	require.NoError(t, err)
	_, _, err = c.SelectHistory(ctx, 0)
	require.NoError(t, err)

	c.Reset()

	_, ok := c.Current()
	assert.False(t, ok)
	records, active := c.History()
	assert.Len(t, records, 1)
	assert.Equal(t, -1, active)
	assert.True(t, logContains(c, "T-Rex reset"))
}

// Test: Theme changes persist and are restored
func TestController_Theme(t *testing.T) {
	c, kv := newController(t, nil)

	assert.Equal(t, ui.DefaultTheme, c.LoadTheme(""))

	require.NoError(t, c.SetTheme("midnight"))
	saved, ok, err := kv.Get(storage.ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "midnight", saved)

	log := activity.New()
	restored := NewController(application.NewGenerator(nil, log, application.Options{}), kv, log)
	assert.Equal(t, "midnight", restored.LoadTheme("daylight"))
	assert.Equal(t, "midnight", ui.CurrentTheme())

	assert.Error(t, c.SetTheme("neon"))
	assert.Equal(t, "midnight", c.Theme())
}

// Test: Unknown stored theme falls back to the default
func TestController_LoadTheme_Unknown(t *testing.T) {
	c, kv := newController(t, nil)
	require.NoError(t, kv.Set(storage.ThemeKey, "neon"))

	assert.Equal(t, ui.DefaultTheme, c.LoadTheme("midnight"))
	assert.True(t, logContains(c, "Load theme error"))
}

// Test: Without a stored theme the configured one is used
func TestController_LoadTheme_Fallback(t *testing.T) {
	c, _ := newController(t, nil)

	assert.Equal(t, "jurassic", c.LoadTheme("Jurassic"))
	assert.Equal(t, "jurassic", c.Theme())
}

// Test: Exported log contains the session entries
func TestController_ExportLog(t *testing.T) {
	c, _ := newController(t, nil)
	_, err := c.Generate(context.Background(), application.Request{Description: "email"})
	require.NoError(t, err)

	path, err := c.ExportLog(t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Pattern hunt started")
	assert.Contains(t, path, "regex-generator-log-")
}
