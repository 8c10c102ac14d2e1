// Package translator turns natural-language requests into shell commands.
//
// A language-model provider is tried first when one is configured. Any
// provider failure is logged and the keyword rules decide instead, so the
// caller always receives a command: either a real one or a '#' sentinel.
package translator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ashureev/heartx/internal/metrics"
)

// Source says which path produced a Translation.
type Source string

const (
	SourceLLM        Source = "llm"
	SourceRules      Source = "rules"
	SourceUnresolved Source = "unresolved"
)

// DefaultProviderTimeout bounds one language-model call.
const DefaultProviderTimeout = 20 * time.Second

// ErrEmptyCompletion is returned by providers whose response held no text.
var ErrEmptyCompletion = errors.New("provider returned no command")

// Translation is the resolved command plus where it came from.
type Translation struct {
	Command  string
	Source   Source
	Provider string
}

// Request is one completion call: a system instruction and one user turn.
type Request struct {
	System string
	Input  string
}

// Provider generates a command with a language model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Translator resolves input to commands. A nil provider selects the rule
// path for every request.
type Translator struct {
	provider  Provider
	toolNames []string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Translator. toolNames are advertised to the provider.
func New(provider Provider, toolNames []string, timeout time.Duration, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Translator{
		provider:  provider,
		toolNames: toolNames,
		timeout:   timeout,
		logger:    logger,
	}
}

// ProviderName returns the configured provider, or "" when rules only.
func (t *Translator) ProviderName() string {
	if t.provider == nil {
		return ""
	}
	return t.provider.Name()
}

// Translate resolves input for the given mode. It never fails.
func (t *Translator) Translate(ctx context.Context, input, mode string) Translation {
	if t.provider != nil {
		command, err := t.complete(ctx, input, mode)
		if err == nil {
			metrics.Translations.WithLabelValues(string(SourceLLM)).Inc()
			return Translation{Command: command, Source: SourceLLM, Provider: t.provider.Name()}
		}
		metrics.ProviderFailures.WithLabelValues(t.provider.Name()).Inc()
		t.logger.Warn("Provider translation failed, falling back to rules",
			"provider", t.provider.Name(),
			"error", err)
	}

	tr := TranslateRules(input)
	metrics.Translations.WithLabelValues(string(tr.Source)).Inc()
	return tr
}

func (t *Translator) complete(ctx context.Context, input, mode string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	text, err := t.provider.Complete(ctx, Request{
		System: SystemPrompt(t.toolNames, mode),
		Input:  input,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
