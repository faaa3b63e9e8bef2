package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/midc-land-bank/ragserver/schema"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  []string
}

func (s *stubEmbedder) GetEmbedding(_ context.Context, text string) ([]float32, error) {
	s.calls = append(s.calls, text)
	return s.vector, s.err
}

func (s *stubEmbedder) GetDimensions() int { return len(s.vector) }

type stubStore struct {
	results  []schema.SearchResult
	lastOpts *schema.SearchOptions
}

func (s *stubStore) AddDocs(context.Context, []schema.Document) error { return nil }

func (s *stubStore) SearchDocs(_ context.Context, _ []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	s.lastOpts = opts
	return s.results, nil
}

func (s *stubStore) ListDocs(context.Context, int) ([]schema.Document, error) { return nil, nil }
func (s *stubStore) DeleteDocs(context.Context, []string) error               { return nil }
func (s *stubStore) Count(context.Context) (int64, error)                     { return 0, nil }
func (s *stubStore) Close() error                                             { return nil }

func TestVectorRetrieverSearch(t *testing.T) {
	store := &stubStore{results: []schema.SearchResult{
		{Document: schema.Document{ID: "plot-1"}, Score: 0.8},
	}}
	embed := &stubEmbedder{vector: []float32{0.1, 0.2}}
	r := &VectorRetriever{Embed: embed, Store: store, TopK: 10, Threshold: 0.3}

	results, err := r.Search(context.Background(), "plots in pune RO PUNE-I", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "plot-1" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if len(embed.calls) != 1 || embed.calls[0] != "plots in pune RO PUNE-I" {
		t.Errorf("embedder called with %v", embed.calls)
	}
	if store.lastOpts.TopK != 5 {
		t.Errorf("TopK = %d, want 5", store.lastOpts.TopK)
	}
	if store.lastOpts.Threshold != 0.3 {
		t.Errorf("Threshold = %v, want 0.3", store.lastOpts.Threshold)
	}
}

func TestVectorRetrieverTopKFallback(t *testing.T) {
	store := &stubStore{}
	r := &VectorRetriever{Embed: &stubEmbedder{vector: []float32{1}}, Store: store, TopK: 7}

	if _, err := r.Search(context.Background(), "plots", 0); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if store.lastOpts.TopK != 7 {
		t.Errorf("TopK = %d, want configured fallback 7", store.lastOpts.TopK)
	}

	r.TopK = 0
	if _, err := r.Search(context.Background(), "plots", 0); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if store.lastOpts.TopK != 10 {
		t.Errorf("TopK = %d, want default 10", store.lastOpts.TopK)
	}
}

func TestVectorRetrieverEmbedError(t *testing.T) {
	r := &VectorRetriever{
		Embed: &stubEmbedder{err: errors.New("embedding service down")},
		Store: &stubStore{},
	}
	if _, err := r.Search(context.Background(), "plots", 3); err == nil {
		t.Fatal("expected error when embedding fails")
	}
}
