// Package app assembles the command service from configuration. Both the
// HTTP server and the operator CLI start from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ashureev/heartx/internal/config"
	"github.com/ashureev/heartx/internal/discovery"
	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/executor"
	"github.com/ashureev/heartx/internal/history"
	"github.com/ashureev/heartx/internal/service"
	"github.com/ashureev/heartx/internal/store"
	"github.com/ashureev/heartx/internal/tools"
	"github.com/ashureev/heartx/internal/translator"
)

const discoveryMaxLines = 4096

// App holds the long-lived components built from a Config.
type App struct {
	Config     *config.Config
	Store      *store.SQLiteStore
	Tools      domain.ToolCatalog
	Translator *translator.Translator
	Executor   *executor.Executor
	Recorder   *history.Recorder
	Discoverer *discovery.Discoverer
	Service    *service.Service

	logger *slog.Logger
}

// New loads the tool catalog, opens the history database and wires the
// service. The caller must Close the returned App.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	catalog, err := tools.Load(cfg.ToolsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load tools: %w", err)
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	provider, err := translator.NewProvider(translator.ProviderConfig{
		Provider:      cfg.LLM.Provider,
		OpenAIKey:     cfg.LLM.OpenAIKey,
		OpenAIBaseURL: cfg.LLM.OpenAIBaseURL,
		AnthropicKey:  cfg.LLM.AnthropicKey,
		Model:         cfg.LLM.Model,
	}, &http.Client{Timeout: cfg.LLM.Timeout})
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("configure translator: %w", err)
	}

	tr := translator.New(provider, catalog.Names(), cfg.LLM.Timeout, logger)
	if name := tr.ProviderName(); name != "" {
		logger.Info("Language model translation enabled", "provider", name)
	} else {
		logger.Info("No language model credential, using keyword rules")
	}

	exe := executor.New(executor.Config{
		Shell:    cfg.Exec.Shell,
		Timeout:  cfg.Exec.Timeout,
		MaxLines: cfg.Exec.MaxLines,
	}, nil, logger)
	rec := history.NewRecorder(repo, cfg.History.QueueSize, logger)

	// A /24 sweep yields two lines per live host, far past the response cap.
	sweeper := executor.New(executor.Config{
		Shell:    cfg.Exec.Shell,
		Timeout:  cfg.Exec.Timeout,
		MaxLines: discoveryMaxLines,
	}, nil, logger)
	disc := discovery.New(sweeper, cfg.Discovery.Subnet, logger)

	svc := service.New(service.Deps{
		Translator:   tr,
		Executor:     exe,
		History:      repo,
		Recorder:     rec,
		Discoverer:   disc,
		Tools:        catalog,
		HistoryLimit: cfg.History.DefaultLimit,
		Logger:       logger,
	})

	return &App{
		Config:     cfg,
		Store:      repo,
		Tools:      catalog,
		Translator: tr,
		Executor:   exe,
		Recorder:   rec,
		Discoverer: disc,
		Service:    svc,
		logger:     logger,
	}, nil
}

// Close drains the history recorder within ctx, then closes the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Recorder.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close recorder: %w", err))
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
