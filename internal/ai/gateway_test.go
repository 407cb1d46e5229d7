package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

// stubProvider opens models listed in ok and records every attempt.
type stubProvider struct {
	ok       map[string]stubGenerator
	attempts []string
}

func (p *stubProvider) Open(_ context.Context, model string) (Generator, error) {
	p.attempts = append(p.attempts, model)
	gen, found := p.ok[model]
	if !found {
		return nil, errors.New("model not found: " + model)
	}
	return gen, nil
}

func TestGateway_FirstWorkingCandidateWins(t *testing.T) {
	p := &stubProvider{ok: map[string]stubGenerator{
		"b": {text: "from b"},
		"c": {text: "from c"},
	}}
	g := NewGateway(p, 0, zerolog.Nop())

	text, model, err := g.Complete(context.Background(), "hi", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "from b" || model != "b" {
		t.Fatalf("Complete() = (%q, %q), want (from b, b)", text, model)
	}
	if len(p.attempts) != 2 {
		t.Fatalf("attempts = %v, want [a b]", p.attempts)
	}
}

func TestGateway_AllCandidatesFail(t *testing.T) {
	p := &stubProvider{}
	g := NewGateway(p, 0, zerolog.Nop())

	_, _, err := g.Complete(context.Background(), "hi", []string{"a", "b"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if len(p.attempts) != 2 {
		t.Fatalf("attempts = %v, want both candidates", p.attempts)
	}
}

func TestGateway_NoProvider(t *testing.T) {
	g := NewGateway(nil, 0, zerolog.Nop())
	if g.Available() {
		t.Fatal("gateway without provider reports available")
	}
	if _, err := g.Acquire(context.Background(), QuizModels); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestGateway_GenerationFailureIsNotRetried(t *testing.T) {
	p := &stubProvider{ok: map[string]stubGenerator{
		"a": {err: errors.New("deadline exceeded")},
		"b": {text: "never used"},
	}}
	g := NewGateway(p, 0, zerolog.Nop())

	_, model, err := g.Complete(context.Background(), "hi", []string{"a", "b"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if model != "a" {
		t.Fatalf("model = %q, want a", model)
	}
	if len(p.attempts) != 1 {
		t.Fatalf("attempts = %v, want only a", p.attempts)
	}
}

func TestGateway_EmptyResponseIsGenerationFailure(t *testing.T) {
	p := &stubProvider{ok: map[string]stubGenerator{"a": {text: "  \n"}}}
	g := NewGateway(p, 0, zerolog.Nop())

	if _, _, err := g.Complete(context.Background(), "hi", []string{"a"}); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGateway_HandleRunsSeveralPrompts(t *testing.T) {
	p := &stubProvider{ok: map[string]stubGenerator{"a": {text: "ok"}}}
	g := NewGateway(p, 0, zerolog.Nop())

	h, err := g.Acquire(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := h.Generate(context.Background(), "prompt"); err != nil {
			t.Fatalf("Generate() #%d error = %v", i, err)
		}
	}
	if len(p.attempts) != 1 {
		t.Fatalf("model opened %d times, want 1", len(p.attempts))
	}
}
