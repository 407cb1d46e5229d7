package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainProvider opens models on an OpenAI-compatible endpoint through langchaingo.
// Gemini's OpenAI-compatible endpoint accepts the candidate ids unchanged.
type LangChainProvider struct {
	token   string
	baseURL string
	pinned  string
}

// NewLangChainProvider creates a provider. When pinned is non-empty every
// candidate resolves to that model.
func NewLangChainProvider(token, baseURL, pinned string) *LangChainProvider {
	return &LangChainProvider{token: token, baseURL: baseURL, pinned: pinned}
}

// Open builds a client for model. langchaingo validates the options locally.
func (p *LangChainProvider) Open(_ context.Context, model string) (Generator, error) {
	if p.pinned != "" {
		model = p.pinned
	}

	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(p.token),
	}
	if p.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(p.baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("open openai-compatible model %s: %w", model, err)
	}
	return &langChainGenerator{llm: llm}, nil
}

type langChainGenerator struct {
	llm llms.Model
}

func (g *langChainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.7))
}
