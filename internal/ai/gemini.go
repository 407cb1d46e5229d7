package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider opens Gemini models through the generative-ai-go client.
type GeminiProvider struct {
	client      *genai.Client
	temperature float32
}

// NewGeminiProvider creates a client for apiKey. Close releases it.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, temperature: 0.7}, nil
}

// Open binds a model and probes its metadata so unknown or retired
// identifiers fail here rather than on the generation call.
func (p *GeminiProvider) Open(ctx context.Context, model string) (Generator, error) {
	m := p.client.GenerativeModel(model)
	m.SetTemperature(p.temperature)
	if _, err := m.Info(ctx); err != nil {
		return nil, fmt.Errorf("probe gemini model %s: %w", model, err)
	}
	return &geminiGenerator{model: m}, nil
}

// Close releases the underlying client connection.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

type geminiGenerator struct {
	model *genai.GenerativeModel
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
