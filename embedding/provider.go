// Package embedding turns query and document text into vectors via an
// external embedding endpoint.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/midc-land-bank/ragserver/config"
)

// Provider generates embedding vectors for text.
type Provider interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	GetDimensions() int
}

// NewProvider creates an embedding provider from configuration.
func NewProvider(cfg *config.EmbeddingConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
