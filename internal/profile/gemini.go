package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"countryfinance/internal/config"
)

// TextGenerator issues a single prompt-completion request against a
// generative model and returns the raw text reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var _ TextGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator implements TextGenerator using the Gemini API.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewGeminiGenerator creates a Gemini-backed text generator from config.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize genai client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     time.Duration(cfg.TimeoutSec) * time.Second,
	}, nil
}

// Generate sends the prompt and returns the concatenated candidate text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var reply strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					reply.WriteString(part.Text)
				}
			}
			if reply.Len() > 0 {
				break
			}
		}
	}

	if reply.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return reply.String(), nil
}
