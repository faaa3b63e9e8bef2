// Package vectordb stores plot documents and serves nearest-neighbor
// search over their embeddings.
package vectordb

import (
	"context"
	"fmt"
	"strings"

	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/schema"
)

// VectorStoreProvider is the storage interface the retriever and the
// ingestion path depend on.
type VectorStoreProvider interface {
	// AddDocs upserts documents; every document must carry a vector.
	AddDocs(ctx context.Context, docs []schema.Document) error
	// SearchDocs returns the documents nearest to the query vector,
	// filtered by the score threshold in opts.
	SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error)
	// ListDocs returns up to limit stored documents without vectors.
	ListDocs(ctx context.Context, limit int) ([]schema.Document, error)
	// DeleteDocs removes documents by ID.
	DeleteDocs(ctx context.Context, ids []string) error
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int64, error)
	Close() error
}

// NewProvider creates a vector store provider from configuration.
func NewProvider(ctx context.Context, cfg *config.VectorDBConfig, dimensions int) (VectorStoreProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "milvus":
		return NewMilvusProvider(ctx, cfg, dimensions)
	default:
		return nil, fmt.Errorf("unsupported vectordb provider: %s", cfg.Provider)
	}
}
