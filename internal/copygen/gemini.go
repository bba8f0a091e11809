package copygen

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/hanifgold/sitecms/internal/logging"
)

// GeminiGenerator generates copy with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    logging.Logger
}

// NewGemini creates a generator backed by Gemini.
func NewGemini(ctx context.Context, apiKey, model string, log logging.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, log: log}, nil
}

// Generate produces copy for the topic, degrading to a fixed message on
// API failure or an empty completion.
func (g *GeminiGenerator) Generate(ctx context.Context, kind Kind, topic, extra string) string {
	prompt := buildPrompt(kind, topic, extra)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.log.Error(ctx, "gemini request failed", "kind", string(kind), "error", err)
		return MsgFailed
	}
	text := result.Text()
	if text == "" {
		return MsgEmpty
	}
	return text
}
