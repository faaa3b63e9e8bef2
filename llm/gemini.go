package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/midc-land-bank/ragserver/config"
)

// GeminiProvider generates answers with Google Gemini. The deployment
// default is gemini-2.5-flash.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. Without an API key the
// client falls back to Application Default Credentials.
func NewGeminiProvider(ctx context.Context, cfg *config.LLMConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: cfg.Model}, nil
}

// GenerateCompletion sends the prompt as a single user turn and
// concatenates the text parts of the first candidate.
func (p *GeminiProvider) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	content := genai.NewContentFromText(prompt, genai.RoleUser)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates from gemini")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}
	if result.Len() == 0 {
		return "", fmt.Errorf("gemini response contains no text parts")
	}
	return result.String(), nil
}

// ProviderType identifies this provider in logs and metrics.
func (p *GeminiProvider) ProviderType() string {
	return "gemini"
}
