// Package retriever turns a rewritten query into scored plot documents.
package retriever

import (
	"context"

	"github.com/midc-land-bank/ragserver/schema"
)

// Retriever searches for documents relevant to a query.
type Retriever interface {
	Type() string
	Search(ctx context.Context, query string, topK int) ([]schema.SearchResult, error)
}
