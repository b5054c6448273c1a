package cmd

import (
	"fmt"

	"github.com/20uf/rexpress/internal/activity"
	"github.com/20uf/rexpress/internal/app"
	"github.com/20uf/rexpress/internal/config"
	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/pattern/domain"
	"github.com/20uf/rexpress/internal/pattern/infra"
	"github.com/20uf/rexpress/internal/storage"
	"github.com/20uf/rexpress/internal/ui"
	"github.com/20uf/rexpress/internal/verbose"
)

// session bridges the CLI layer and the controller for one command run.
type session struct {
	cfg  *config.Config
	kv   storage.Store
	gen  *application.Generator
	ctrl *app.Controller
	ai   bool
}

// openSession loads config, opens storage and wires the controller.
func openSession() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	verbose.Log("config: %s", cfg.Path())

	engine, err := domain.ParseEngine(cfg.Regex.Engine)
	if err != nil {
		return nil, err
	}

	log := activity.New()
	log.OnRecord(func(e activity.Entry) {
		verbose.Activity(e.String())
	})

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		// History and theme live in memory for this run only.
		err = fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		log.Record("Storage error", err.Error())
		ui.PrintWarning(err.Error() + "; history will not be saved this session")
		kv = storage.NewMemoryStore()
	} else {
		verbose.Log("storage: %s", cfg.Storage.Backend)
	}

	var ai application.Collaborator
	collab, err := infra.NewOpenAICollaborator(infra.OpenAIConfig{
		APIKey:            cfg.AI.APIKey,
		BaseURL:           cfg.AI.BaseURL,
		Model:             cfg.AI.Model,
		Timeout:           cfg.AI.Timeout,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
	})
	if err != nil {
		log.Record("AI status", err.Error())
	} else {
		ai = collab
		log.Record("AI status", "Using model "+collab.Model())
	}

	gen := application.NewGenerator(ai, log, application.Options{
		Engine:    engine,
		ProbeWait: cfg.AI.ProbeWait,
	})
	ctrl := app.NewController(gen, kv, log)
	ctrl.LoadTheme(cfg.UI.Theme)

	return &session{cfg: cfg, kv: kv, gen: gen, ctrl: ctrl, ai: ai != nil}, nil
}

// Close exports the activity log when requested and releases storage.
func (s *session) Close() {
	if flagExportLog != "" {
		if path, err := s.ctrl.ExportLog(flagExportLog); err != nil {
			ui.PrintError(err.Error())
		} else {
			ui.PrintSuccess("Activity log saved: " + path)
		}
	}
	if err := s.kv.Close(); err != nil {
		verbose.Log("storage close: %v", err)
	}
}
