package ragserver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/midc-land-bank/ragserver/cache"
	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/dataset"
	"github.com/midc-land-bank/ragserver/memory"
	"github.com/midc-land-bank/ragserver/post"
	"github.com/midc-land-bank/ragserver/query"
	"github.com/midc-land-bank/ragserver/schema"
)

type mockLLM struct {
	answer  string
	prompts []string
	err     error
}

func (m *mockLLM) GenerateCompletion(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ProviderType() string { return "mock" }

type mockRetriever struct {
	results []schema.SearchResult
	queries []string
}

func (m *mockRetriever) Type() string { return "mock" }

func (m *mockRetriever) Search(_ context.Context, q string, _ int) ([]schema.SearchResult, error) {
	m.queries = append(m.queries, q)
	return m.results, nil
}

type mockEmbedder struct {
	dims  int
	calls int
}

func (m *mockEmbedder) GetEmbedding(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	vec := make([]float32, m.dims)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec, nil
}

func (m *mockEmbedder) GetDimensions() int { return m.dims }

type mockVectorStore struct {
	docs    []schema.Document
	deleted []string
}

func (m *mockVectorStore) AddDocs(_ context.Context, docs []schema.Document) error {
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockVectorStore) SearchDocs(_ context.Context, _ []float32, _ *schema.SearchOptions) ([]schema.SearchResult, error) {
	return nil, nil
}

func (m *mockVectorStore) ListDocs(_ context.Context, _ int) ([]schema.Document, error) {
	out := make([]schema.Document, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *mockVectorStore) DeleteDocs(_ context.Context, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	remaining := m.docs[:0]
	for _, doc := range m.docs {
		keep := true
		for _, id := range ids {
			if doc.ID == id {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, doc)
		}
	}
	m.docs = remaining
	return nil
}

func (m *mockVectorStore) Count(_ context.Context) (int64, error) { return int64(len(m.docs)), nil }
func (m *mockVectorStore) Close() error                           { return nil }

func makeSearchResults(n int) []schema.SearchResult {
	results := make([]schema.SearchResult, n)
	for i := range results {
		results[i] = schema.SearchResult{
			Document: schema.Document{
				ID:      fmt.Sprintf("doc-%d", i),
				Content: fmt.Sprintf("Regional Office: RO PUNE-I | Industrial Area: Talegaon | Plot No: T-%d | Area: 2500.00 sq. meter | Category: Industrial", i),
			},
			Score: 0.9 - float64(i)*0.05,
		}
	}
	return results
}

func newTestClient(t *testing.T, ret *mockRetriever, gen *mockLLM) *Client {
	t.Helper()
	rewriter, err := query.New()
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "plots.db")

	return &Client{
		cfg:          cfg,
		rewriter:     rewriter,
		embedder:     &mockEmbedder{dims: 768},
		store:        &mockVectorStore{},
		retriever:    ret,
		llm:          gen,
		memory:       memory.NewInMemoryConversationStore(cfg.Memory.MaxRounds),
		sessions:     NewSessionManager(),
		rewriteCache: cache.NewLRU[query.Result](16, time.Minute),
		budget:       &post.BudgetCompressor{MaxTokens: cfg.RAG.MaxContextTokens, Count: post.WordCounter},
	}
}

func TestChatGreetingShortcut(t *testing.T) {
	ret := &mockRetriever{}
	gen := &mockLLM{answer: "should not be called"}
	c := newTestClient(t, ret, gen)

	result, err := c.Chat(context.Background(), "", "hello")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !result.IsGreeting {
		t.Error("IsGreeting = false")
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", result.Confidence)
	}
	if result.SessionID == "" {
		t.Error("greeting should still get a session ID")
	}
	if len(ret.queries) != 0 || len(gen.prompts) != 0 {
		t.Error("greeting must not retrieve or generate")
	}
}

func TestChatAnswersWithRetrievedContext(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(5)}
	gen := &mockLLM{answer: "There are several industrial plots available in Bhusaval."}
	c := newTestClient(t, ret, gen)

	result, err := c.Chat(context.Background(), "s1", "plots in bhusawal")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result.Answer != gen.answer {
		t.Errorf("Answer = %q", result.Answer)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9 for 5 sources", result.Confidence)
	}
	if len(ret.queries) != 1 {
		t.Fatalf("retriever called %d times", len(ret.queries))
	}
	// The retriever sees the rewritten query with office context.
	if !strings.Contains(ret.queries[0], "RO Jalgaon") {
		t.Errorf("retriever query %q missing regional office context", ret.queries[0])
	}
	if !strings.Contains(result.RewrittenQuery, "bhusaval") {
		t.Errorf("RewrittenQuery = %q, spelling not corrected", result.RewrittenQuery)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("llm called %d times", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Document 1 (Relevance Score: 0.900):") {
		t.Error("prompt missing rendered context")
	}
	if !strings.Contains(gen.prompts[0], "plots in bhusawal") {
		t.Error("prompt should carry the user's original question")
	}
}

func TestChatUsesConversationHistory(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(2)}
	gen := &mockLLM{answer: "first answer"}
	c := newTestClient(t, ret, gen)

	if _, err := c.Chat(context.Background(), "s1", "plots available in pune"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	gen.answer = "second answer"
	if _, err := c.Chat(context.Background(), "s1", "i want only industrial plots"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	second := gen.prompts[1]
	if !strings.Contains(second, "Previous conversation:") {
		t.Error("second prompt missing history header")
	}
	if !strings.Contains(second, "User: plots available in pune") {
		t.Error("second prompt missing first question")
	}
	if !strings.Contains(second, "Assistant: first answer") {
		t.Error("second prompt missing first answer")
	}
}

func TestChatCompressesLongHistory(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(1)}
	longAnswer := strings.Repeat("industrial estate expansion detail ", 40) + "TRAILINGWORD"
	gen := &mockLLM{answer: longAnswer}
	c := newTestClient(t, ret, gen)
	c.budget.MaxTokens = 30

	if _, err := c.Chat(context.Background(), "s1", "plots in pune"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	gen.answer = "short"
	if _, err := c.Chat(context.Background(), "s1", "industrial plots"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	second := gen.prompts[1]
	if !strings.Contains(second, "Previous conversation:") {
		t.Fatal("second prompt missing history header")
	}
	if strings.Contains(second, "TRAILINGWORD") {
		t.Error("history tail survived the token budget")
	}
}

func TestChatRegionalLanguageInstruction(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(1)}
	gen := &mockLLM{answer: "उत्तर"}
	c := newTestClient(t, ret, gen)

	if _, err := c.Chat(context.Background(), "s1", "पुणे मध्ये प्लॉट"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "Respond in Marathi") {
		t.Error("prompt missing Marathi instruction for Devanagari question")
	}

	gen.prompts = nil
	if _, err := c.Chat(context.Background(), "s1", "plots available in pune"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if strings.Contains(gen.prompts[0], "Respond in Marathi") {
		t.Error("English question must not force a Marathi answer")
	}
}

func TestChatConfidenceFromSourceCount(t *testing.T) {
	gen := &mockLLM{answer: "ok"}
	for _, tt := range []struct {
		sources int
		want    float64
	}{
		{0, 0.3}, {1, 0.5}, {3, 0.7}, {5, 0.9},
	} {
		ret := &mockRetriever{results: makeSearchResults(tt.sources)}
		c := newTestClient(t, ret, gen)
		result, err := c.Chat(context.Background(), "s1", "plots in pune")
		if err != nil {
			t.Fatalf("Chat: %v", err)
		}
		if result.Confidence != tt.want {
			t.Errorf("confidence with %d sources = %v, want %v", tt.sources, result.Confidence, tt.want)
		}
	}
}

func TestSearchRewritesQuery(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(3)}
	c := newTestClient(t, ret, &mockLLM{answer: "ok"})

	results, err := c.Search(context.Background(), "swasta plots pune madhe", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if !strings.Contains(ret.queries[0], "MIDC Industrial Area") {
		t.Errorf("search query %q not augmented", ret.queries[0])
	}
}

func TestIngestIndexesDataset(t *testing.T) {
	ctx := context.Background()
	ret := &mockRetriever{}
	c := newTestClient(t, ret, &mockLLM{answer: "ok"})

	ds, err := dataset.Open(c.cfg.Dataset.Path)
	if err != nil {
		t.Fatalf("dataset.Open: %v", err)
	}
	plots := []dataset.Plot{
		{SrNo: "1", RegionalOffice: "RO PUNE-I", IndustrialArea: "Talegaon", PlotNo: "T-1", AreaSqMeter: 2000, PropertyType: "Industrial"},
		{SrNo: "2", RegionalOffice: "RO Jalgaon", IndustrialArea: "Bhusaval", PlotNo: "B-2", AreaSqMeter: 4500, PropertyType: "Commercial"},
	}
	if err := ds.Save(ctx, plots); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ds.Close()

	count, err := c.Ingest(ctx)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 2 {
		t.Errorf("Ingest = %d, want 2", count)
	}

	store := c.store.(*mockVectorStore)
	if len(store.docs) != 2 {
		t.Fatalf("store has %d docs", len(store.docs))
	}
	if !strings.Contains(store.docs[0].Content, "Regional Office: RO PUNE-I") {
		t.Errorf("document content = %q", store.docs[0].Content)
	}
	if len(store.docs[0].Vector) != 768 {
		t.Errorf("vector dim = %d", len(store.docs[0].Vector))
	}

	// Re-ingest replaces the snapshot.
	count, err = c.Ingest(ctx)
	if err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if count != 2 || len(store.docs) != 2 {
		t.Errorf("after re-ingest: count=%d docs=%d", count, len(store.docs))
	}
	if len(store.deleted) != 2 {
		t.Errorf("stale docs deleted = %d, want 2", len(store.deleted))
	}
}

func TestClearMemoryAndSummary(t *testing.T) {
	ctx := context.Background()
	ret := &mockRetriever{results: makeSearchResults(1)}
	gen := &mockLLM{answer: "answer"}
	c := newTestClient(t, ret, gen)

	if _, err := c.Chat(ctx, "s1", "plots in pune"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	summary, err := c.MemorySummary(ctx, "s1")
	if err != nil {
		t.Fatalf("MemorySummary: %v", err)
	}
	if !strings.Contains(summary, "User: plots in pune") {
		t.Errorf("summary = %q", summary)
	}

	if err := c.ClearMemory(ctx, "s1"); err != nil {
		t.Fatalf("ClearMemory: %v", err)
	}
	summary, err = c.MemorySummary(ctx, "s1")
	if err != nil {
		t.Fatalf("MemorySummary: %v", err)
	}
	if summary != "No conversation history" {
		t.Errorf("summary after clear = %q", summary)
	}
	// Clearing ends the session too.
	if c.sessions.Count() != 0 {
		t.Errorf("sessions after clear = %d, want 0", c.sessions.Count())
	}
}

func TestStats(t *testing.T) {
	ret := &mockRetriever{results: makeSearchResults(1)}
	c := newTestClient(t, ret, &mockLLM{answer: "ok"})

	if _, err := c.Chat(context.Background(), "s1", "plots in pune"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["active_sessions"] != 1 {
		t.Errorf("active_sessions = %v", stats["active_sessions"])
	}
	if stats["memory_sessions"] != 1 {
		t.Errorf("memory_sessions = %v", stats["memory_sessions"])
	}
}

func TestSampleQuestionsCopy(t *testing.T) {
	c := newTestClient(t, &mockRetriever{}, &mockLLM{})
	qs := c.SampleQuestions()
	if len(qs) != 10 {
		t.Fatalf("got %d sample questions", len(qs))
	}
	qs[0] = "mutated"
	if c.SampleQuestions()[0] == "mutated" {
		t.Error("SampleQuestions returned shared slice")
	}
}
