package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/20uf/rexpress/internal/activity"
	"github.com/20uf/rexpress/internal/history"
	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/pattern/domain"
	"github.com/20uf/rexpress/internal/storage"
	"github.com/20uf/rexpress/internal/ui"
)

// ErrBusy is returned when a generation is requested while another is running.
var ErrBusy = errors.New("a pattern hunt is already in progress")

// Controller owns the session state and is the only place it changes.
type Controller struct {
	gen     *application.Generator
	history *history.Store
	log     *activity.Log
	kv      storage.Store

	inflight *semaphore.Weighted
	newID    func() string

	mu      sync.Mutex
	current *application.Resolution
	theme   string
}

// NewController wires the session. The history is loaded from kv.
func NewController(gen *application.Generator, kv storage.Store, log *activity.Log) *Controller {
	return &Controller{
		gen:      gen,
		history:  history.Open(kv, log),
		log:      log,
		kv:       kv,
		inflight: semaphore.NewWeighted(1),
		newID:    uuid.NewString,
		theme:    ui.DefaultTheme,
	}
}

// Generate runs a full hunt: pattern, tests, history record, explanation.
func (c *Controller) Generate(ctx context.Context, req application.Request) (*application.Result, error) {
	if !c.inflight.TryAcquire(1) {
		c.log.Record("Hunt rejected", ErrBusy.Error())
		return nil, ErrBusy
	}
	defer c.inflight.Release(1)

	req = application.Request{
		Description: strings.TrimSpace(req.Description),
		Sample:      strings.TrimSpace(req.Sample),
	}
	c.log.Record("Request", "id="+c.newID())

	res, err := c.gen.Resolve(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			c.log.Record("Input required", err.Error())
		}
		return nil, err
	}

	tests, testSource := c.gen.Test(ctx, res)

	c.mu.Lock()
	c.current = res
	c.history.Add(req.Input(), res.Regex, res.Description)
	c.mu.Unlock()

	explanation, explanationSource := c.gen.Explain(ctx, res)

	c.log.Record("Hunt complete", fmt.Sprintf("%s (%s)", res.Regex, res.Source))
	return &application.Result{
		Resolution:        *res,
		Tests:             tests,
		TestSource:        testSource,
		ExplanationHTML:   explanation,
		ExplanationSource: explanationSource,
	}, nil
}

// Probe checks whether the AI collaborator answers.
func (c *Controller) Probe(ctx context.Context) (string, error) {
	return c.gen.Probe(ctx)
}

// Current returns the pattern on display, if any.
func (c *Controller) Current() (*application.Resolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// Reset clears the current pattern and the history selection.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.current = nil
	c.history.Reset()
	c.mu.Unlock()
	c.log.Record("T-Rex reset", "Hunting ground cleared, ready for new prey!")
}

// History returns the records, most recent first, and the active index (-1 for none).
func (c *Controller) History() ([]history.Record, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	active, ok := c.history.Active()
	if !ok {
		active = -1
	}
	return c.history.Records(), active
}

// HistoryRecord returns the record at index.
func (c *Controller) HistoryRecord(index int) (history.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Get(index)
}

// SelectHistory makes the record at index current and re-runs its tests.
func (c *Controller) SelectHistory(ctx context.Context, index int) (history.Record, *application.Result, error) {
	c.mu.Lock()
	rec, err := c.history.Select(index)
	c.mu.Unlock()
	if err != nil {
		return history.Record{}, nil, err
	}

	res, err := c.gen.Load(rec.Regex, rec.Description)
	if err != nil {
		c.log.Record("History item invalid", err.Error())
		return rec, nil, err
	}

	tests, source := c.gen.Test(ctx, res)

	c.mu.Lock()
	c.current = res
	c.mu.Unlock()

	return rec, &application.Result{
		Resolution: *res,
		Tests:      tests,
		TestSource: source,
	}, nil
}

// DeleteHistory removes the record at index. Out-of-range indexes are ignored.
func (c *Controller) DeleteHistory(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history.Delete(index)
}

// Theme returns the active theme name.
func (c *Controller) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// LoadTheme restores the persisted theme. Without a stored choice it uses
// fallback when that names a theme, else the default.
func (c *Controller) LoadTheme(fallback string) string {
	name := ui.DefaultTheme
	if ui.IsTheme(fallback) {
		name = strings.ToLower(fallback)
	}

	saved, ok, err := c.kv.Get(storage.ThemeKey)
	switch {
	case err != nil:
		c.log.Record("Load theme error", err.Error())
	case ok && ui.IsTheme(saved):
		name = saved
	case ok:
		c.log.Record("Load theme error", fmt.Sprintf("unknown theme %q", saved))
		name = ui.DefaultTheme
	}

	if err := ui.SetTheme(name); err != nil {
		c.log.Record("Load theme error", err.Error())
		return c.Theme()
	}

	c.mu.Lock()
	c.theme = ui.CurrentTheme()
	c.mu.Unlock()
	c.log.Record("Theme loaded", fmt.Sprintf("Loaded %s theme", name))
	return name
}

// SetTheme switches and persists the theme.
func (c *Controller) SetTheme(name string) error {
	if err := ui.SetTheme(name); err != nil {
		c.log.Record("Theme error", err.Error())
		return err
	}
	name = ui.CurrentTheme()

	c.mu.Lock()
	c.theme = name
	c.mu.Unlock()

	if err := c.kv.Set(storage.ThemeKey, name); err != nil {
		c.log.Record("Theme error", err.Error())
	}
	c.log.Record("Theme changed", fmt.Sprintf("Switched to %s theme", name))
	return nil
}

// ExportLog writes the activity log into dir and returns the file path.
func (c *Controller) ExportLog(dir string) (string, error) {
	return c.log.Export(dir)
}

// Log returns the session activity log.
func (c *Controller) Log() *activity.Log {
	return c.log
}
