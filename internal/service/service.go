// Package service wires translation, execution and history into the
// operations the HTTP layer and the CLI expose.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/executor"
	"github.com/ashureev/heartx/internal/translator"
)

const (
	// DefaultMode is used when a request does not name one.
	DefaultMode = "matrix"
	// DefaultHistoryLimit is the number of records History returns by default.
	DefaultHistoryLimit = 50
)

// Translator resolves natural language to a command.
type Translator interface {
	Translate(ctx context.Context, input, mode string) translator.Translation
}

// Executor runs a command once.
type Executor interface {
	Execute(ctx context.Context, command string) executor.Result
}

// HistoryReader lists persisted records.
type HistoryReader interface {
	ListCommands(ctx context.Context, limit int) ([]domain.CommandRecord, error)
}

// Recorder accepts records for best-effort background persistence.
type Recorder interface {
	Submit(record domain.CommandRecord) bool
}

// Discoverer sweeps the local network.
type Discoverer interface {
	Discover(ctx context.Context) ([]domain.Host, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Translator   Translator
	Executor     Executor
	History      HistoryReader
	Recorder     Recorder
	Discoverer   Discoverer
	Tools        domain.ToolCatalog
	HistoryLimit int
	Logger       *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Response is the result of one Translate call.
type Response struct {
	ID        string            `json:"id"`
	Input     string            `json:"input"`
	Command   string            `json:"command"`
	Output    []string          `json:"output"`
	Type      domain.ResultType `json:"type"`
	Timestamp string            `json:"timestamp"`
}

// Service is the command dispatch service. Construct it with New.
type Service struct {
	translator   Translator
	executor     Executor
	history      HistoryReader
	recorder     Recorder
	discoverer   Discoverer
	tools        domain.ToolCatalog
	historyLimit int
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a Service from deps.
func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.HistoryLimit <= 0 {
		deps.HistoryLimit = DefaultHistoryLimit
	}
	return &Service{
		translator:   deps.Translator,
		executor:     deps.Executor,
		history:      deps.History,
		recorder:     deps.Recorder,
		discoverer:   deps.Discoverer,
		tools:        deps.Tools,
		historyLimit: deps.HistoryLimit,
		logger:       deps.Logger,
		now:          deps.Now,
	}
}

// Translate resolves input, runs the command and hands the record to the
// recorder. It returns as soon as the command finishes; persistence happens
// later, or not at all if the recorder drops the record.
func (s *Service) Translate(ctx context.Context, input, mode string) Response {
	if mode == "" {
		mode = DefaultMode
	}
	id := domain.NewCommandID(s.now())

	tr := s.translator.Translate(ctx, input, mode)
	s.logger.Info("Translated input",
		"id", id,
		"mode", mode,
		"source", tr.Source,
		"command", tr.Command)

	res := s.executor.Execute(ctx, tr.Command)

	finished := s.now()
	record := domain.CommandRecord{
		ID:        id,
		Timestamp: finished.Format(domain.HistoryTimeLayout),
		Input:     input,
		Command:   tr.Command,
		Output:    res.Output,
		Type:      res.Type,
		Mode:      mode,
	}
	if s.recorder != nil && !s.recorder.Submit(record) {
		s.logger.Warn("Command history not recorded", "id", id)
	}

	return Response{
		ID:        id,
		Input:     input,
		Command:   tr.Command,
		Output:    res.Output,
		Type:      res.Type,
		Timestamp: finished.Format(domain.ClockLayout),
	}
}

// History returns up to limit records, newest first. A non-positive limit
// selects the default.
func (s *Service) History(ctx context.Context, limit int) ([]domain.CommandRecord, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.history.ListCommands(ctx, limit)
}

// Tools returns the tool catalog.
func (s *Service) Tools() domain.ToolCatalog {
	return s.tools
}

// DiscoverNetwork sweeps the local network for hosts.
func (s *Service) DiscoverNetwork(ctx context.Context) ([]domain.Host, error) {
	return s.discoverer.Discover(ctx)
}
