package retriever

import (
	"context"
	"fmt"

	"github.com/midc-land-bank/ragserver/embedding"
	"github.com/midc-land-bank/ragserver/schema"
	"github.com/midc-land-bank/ragserver/vectordb"
)

// VectorRetriever embeds the query and searches the vector store.
type VectorRetriever struct {
	Embed     embedding.Provider
	Store     vectordb.VectorStoreProvider
	TopK      int
	Threshold float64
}

func (r *VectorRetriever) Type() string { return "vector" }

// Search embeds the query text and returns documents scoring at or
// above the configured threshold.
func (r *VectorRetriever) Search(ctx context.Context, query string, topK int) ([]schema.SearchResult, error) {
	if topK <= 0 {
		if r.TopK > 0 {
			topK = r.TopK
		} else {
			topK = 10
		}
	}
	vec, err := r.Embed.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	opts := &schema.SearchOptions{TopK: topK, Threshold: r.Threshold}
	return r.Store.SearchDocs(ctx, vec, opts)
}
