// Package ai wraps text-completion providers behind a model-fallback gateway
// and recovers structured payloads from their free-form output.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrProviderUnavailable means no credential is configured or no candidate model could be opened.
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	// ErrGenerationFailed means a model was opened but the completion call failed or came back empty.
	ErrGenerationFailed = errors.New("ai generation failed")
)

// Generator produces a single completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider opens a Generator bound to one model identifier.
// Open must fail when the model cannot serve requests.
type Provider interface {
	Open(ctx context.Context, model string) (Generator, error)
}

// Handle is a resolved model that can run one or more prompts.
type Handle struct {
	Model string
	gen   Generator
}

// Generate runs prompt on the resolved model. Failures are wrapped in ErrGenerationFailed.
func (h *Handle) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := h.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrGenerationFailed, h.Model, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: empty response", ErrGenerationFailed, h.Model)
	}
	return text, nil
}

// Gateway resolves the first usable model from an ordered candidate list.
type Gateway struct {
	provider Provider
	timeout  time.Duration
	log      zerolog.Logger
}

// NewGateway creates a Gateway. A nil provider makes every call fail with ErrProviderUnavailable.
// timeout bounds each generation call; zero leaves it to the caller's context.
func NewGateway(provider Provider, timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		timeout:  timeout,
		log:      log.With().Str("component", "ai_gateway").Logger(),
	}
}

// Available reports whether a provider is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.provider != nil
}

// Acquire tries candidates in order and returns the first model that opens.
// Attempts are sequential; there is no retry of a failed candidate.
func (g *Gateway) Acquire(ctx context.Context, candidates []string) (*Handle, error) {
	if !g.Available() {
		return nil, fmt.Errorf("%w: no API credential configured", ErrProviderUnavailable)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate models", ErrProviderUnavailable)
	}

	var lastErr error
	for _, model := range candidates {
		gen, err := g.provider.Open(ctx, model)
		if err != nil {
			g.log.Warn().Err(err).Str("model", model).Msg("Candidate model failed to open")
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		g.log.Debug().Str("model", model).Msg("Candidate model opened")
		return &Handle{Model: model, gen: gen}, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, lastErr)
}

// Complete resolves a model and runs exactly one generation on it.
// A generation failure is returned as-is; the next candidate is not tried.
func (g *Gateway) Complete(ctx context.Context, prompt string, candidates []string) (string, string, error) {
	h, err := g.Acquire(ctx, candidates)
	if err != nil {
		return "", "", err
	}

	genCtx, cancel := g.withTimeout(ctx)
	defer cancel()

	text, err := h.Generate(genCtx, prompt)
	if err != nil {
		return "", h.Model, err
	}
	return text, h.Model, nil
}

// withTimeout derives a context bounded by the gateway's generation timeout.
func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}
