// Package llm wraps the answer-generation models behind a single
// completion interface.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/midc-land-bank/ragserver/config"
)

// Provider generates a natural-language completion for a prompt.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
	ProviderType() string
}

// NewProvider creates an LLM provider from configuration.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
