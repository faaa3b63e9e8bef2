// Package ragserver wires the MIDC land-bank chat pipeline: query
// rewriting, vector retrieval, and conversational answer generation.
package ragserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/midc-land-bank/ragserver/cache"
	"github.com/midc-land-bank/ragserver/common/logger"
	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/dataset"
	"github.com/midc-land-bank/ragserver/embedding"
	"github.com/midc-land-bank/ragserver/llm"
	"github.com/midc-land-bank/ragserver/memory"
	"github.com/midc-land-bank/ragserver/metrics"
	"github.com/midc-land-bank/ragserver/post"
	"github.com/midc-land-bank/ragserver/query"
	"github.com/midc-land-bank/ragserver/retriever"
	"github.com/midc-land-bank/ragserver/schema"
	"github.com/midc-land-bank/ragserver/vectordb"
)

const maxListDocs = 1000

// Client runs the land-bank chat pipeline end to end.
type Client struct {
	cfg          *config.Config
	rewriter     *query.Rewriter
	embedder     embedding.Provider
	store        vectordb.VectorStoreProvider
	retriever    retriever.Retriever
	llm          llm.Provider
	memory       memory.ConversationStore
	sessions     *SessionManager
	rewriteCache cache.Cache[query.Result]
	budget       *post.BudgetCompressor
}

// ChatResult is the answer to one chat request.
type ChatResult struct {
	SessionID      string                `json:"session_id"`
	Answer         string                `json:"answer"`
	Confidence     float64               `json:"confidence"`
	Sources        []schema.SearchResult `json:"sources,omitempty"`
	RewrittenQuery string                `json:"rewritten_query,omitempty"`
	IsGreeting     bool                  `json:"is_greeting"`
}

// NewClient builds a client from configuration, connecting to the
// embedding endpoint, vector store, and LLM.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	rewriter, err := query.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build query rewriter: %w", err)
	}

	embedder, err := embedding.NewProvider(&cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	store, err := vectordb.NewProvider(ctx, &cfg.VectorDB, embedder.GetDimensions())
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store provider: %w", err)
	}

	llmProvider, err := llm.NewProvider(ctx, &cfg.LLM)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create llm provider: %w", err)
	}

	c := &Client{
		cfg:      cfg,
		rewriter: rewriter,
		embedder: embedder,
		store:    store,
		retriever: &retriever.VectorRetriever{
			Embed:     embedder,
			Store:     store,
			TopK:      cfg.RAG.TopK,
			Threshold: cfg.RAG.Threshold,
		},
		llm:      llmProvider,
		memory:   memory.NewInMemoryConversationStore(cfg.Memory.MaxRounds),
		sessions: NewSessionManager(),
		budget: &post.BudgetCompressor{
			MaxTokens: cfg.RAG.MaxContextTokens,
			Count:     post.NewTokenCounter(),
		},
	}
	if cfg.Cache.Enabled {
		c.rewriteCache = cache.NewLRU[query.Result](cfg.Cache.Capacity, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}
	return c, nil
}

// Chat answers a question with retrieved plot context and the
// session's recent history.
func (c *Client) Chat(ctx context.Context, sessionID, question string) (*ChatResult, error) {
	start := time.Now()
	session := c.sessions.Ensure(sessionID)

	record := &metrics.ChatMetrics{
		QueryID:   uuid.NewString(),
		SessionID: session.ID,
		Timestamp: start,
		Query:     question,
	}
	defer func() {
		record.TotalLatencyMs = time.Since(start).Milliseconds()
		record.Log()
	}()

	if isGreeting(question) {
		metrics.IncGreeting()
		record.Greeting = true
		record.Success = true
		record.Confidence = 0.9
		return &ChatResult{
			SessionID:  session.ID,
			Answer:     greetingAnswer,
			Confidence: 0.9,
			IsGreeting: true,
		}, nil
	}

	rewritten := c.rewrite(question, record)
	regional := c.rewriter.PreferRegionalLanguage(question)
	metrics.IncRegionalLanguage(regional)
	record.RegionalLanguage = regional

	retrieveStart := time.Now()
	results, err := c.retriever.Search(ctx, rewritten.Query, c.cfg.RAG.TopK)
	if err != nil {
		record.ErrorMsg = err.Error()
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	metrics.ObserveRetriever(c.retriever.Type(), retrieveStart, len(results))
	results = c.budget.FitResults(results)
	record.RetrievedCount = len(results)

	history, err := c.memory.GetLastNRounds(ctx, session.ID, c.cfg.RAG.HistoryRounds)
	if err != nil {
		record.ErrorMsg = err.Error()
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	// History shares the prompt with retrieved context, so it gets the
	// same token budget.
	historyText := c.budget.FitText(renderHistory(history))
	prompt := buildPrompt(question, renderContext(results), historyText, regional)

	genStart := time.Now()
	answer, err := c.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		record.ErrorMsg = err.Error()
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}
	record.GenerationLatencyMs = time.Since(genStart).Milliseconds()

	if err := c.memory.SaveRound(ctx, session.ID, memory.ConversationRound{
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}); err != nil {
		logger.Warnf("failed to save conversation round: %v", err)
	}

	confidence := answerConfidence(len(results))
	record.Confidence = confidence
	record.Success = true

	return &ChatResult{
		SessionID:      session.ID,
		Answer:         answer,
		Confidence:     confidence,
		Sources:        results,
		RewrittenQuery: rewritten.Query,
	}, nil
}

// rewrite runs the query pipeline, serving repeated questions from the
// rewrite cache.
func (c *Client) rewrite(question string, record *metrics.ChatMetrics) query.Result {
	key := strings.ToLower(strings.TrimSpace(question))
	if c.rewriteCache != nil {
		if cached, ok := c.rewriteCache.Get(key); ok {
			metrics.IncRewriteCache(true)
			record.CacheHit = true
			record.RewrittenQuery = cached.Query
			record.ImprovementCount = len(cached.Improvements)
			record.TransliterationDetected = cached.TransliterationDetected
			return cached
		}
		metrics.IncRewriteCache(false)
	}

	rewriteStart := time.Now()
	result := c.rewriter.RewriteDetailed(question)
	metrics.ObserveRewrite(rewriteStart, len(result.Improvements))

	record.RewriteLatencyMs = time.Since(rewriteStart).Milliseconds()
	record.RewrittenQuery = result.Query
	record.ImprovementCount = len(result.Improvements)
	record.TransliterationDetected = result.TransliterationDetected

	if c.rewriteCache != nil {
		c.rewriteCache.Set(key, result, 0)
	}
	return result
}

// Search rewrites the query and returns matching plot documents
// without generating an answer.
func (c *Client) Search(ctx context.Context, rawQuery string, topK int) ([]schema.SearchResult, error) {
	if topK <= 0 {
		topK = c.cfg.RAG.TopK
	}
	rewritten := c.rewriter.Rewrite(rawQuery)
	start := time.Now()
	results, err := c.retriever.Search(ctx, rewritten, topK)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	metrics.ObserveRetriever(c.retriever.Type(), start, len(results))
	return results, nil
}

// Ingest loads the scraped plot dataset, replaces the indexed
// documents, and returns how many plots were indexed.
func (c *Client) Ingest(ctx context.Context) (int, error) {
	store, err := dataset.Open(c.cfg.Dataset.Path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	plots, err := store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(plots) == 0 {
		return 0, fmt.Errorf("no plots in dataset %s, run the scraper first", c.cfg.Dataset.Path)
	}

	// Drop the previous snapshot so removed plots disappear from answers.
	existing, err := c.store.ListDocs(ctx, maxListDocs)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing documents: %w", err)
	}
	if len(existing) > 0 {
		ids := make([]string, len(existing))
		for i, doc := range existing {
			ids[i] = doc.ID
		}
		if err := c.store.DeleteDocs(ctx, ids); err != nil {
			return 0, fmt.Errorf("failed to delete stale documents: %w", err)
		}
	}

	docs := make([]schema.Document, 0, len(plots))
	for _, plot := range plots {
		doc := dataset.RenderDocument(plot)
		vector, err := c.embedder.GetEmbedding(ctx, doc.Content)
		if err != nil {
			return 0, fmt.Errorf("failed to embed plot %s/%s: %w", plot.IndustrialArea, plot.PlotNo, err)
		}
		doc.Vector = vector
		docs = append(docs, doc)
	}
	if err := c.store.AddDocs(ctx, docs); err != nil {
		return 0, err
	}
	logger.Infof("ingested %d plots into %s", len(docs), c.cfg.VectorDB.Collection)
	return len(docs), nil
}

// ClearMemory drops a session's conversation history and forgets the
// session itself.
func (c *Client) ClearMemory(ctx context.Context, sessionID string) error {
	if err := c.memory.Clear(ctx, sessionID); err != nil {
		return err
	}
	c.sessions.Delete(sessionID)
	return nil
}

// MemorySummary renders a session's stored history as plain text.
func (c *Client) MemorySummary(ctx context.Context, sessionID string) (string, error) {
	rounds, err := c.memory.GetLastNRounds(ctx, sessionID, 0)
	if err != nil {
		return "", err
	}
	if len(rounds) == 0 {
		return "No conversation history", nil
	}
	var b strings.Builder
	for _, round := range rounds {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", round.Question, round.Answer)
	}
	return b.String(), nil
}

// SampleQuestions returns suggested starter questions.
func (c *Client) SampleQuestions() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}

// Stats reports document and session counts.
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	docCount, err := c.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	sessionCount, err := c.memory.SessionCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	return map[string]any{
		"documents":       docCount,
		"active_sessions": c.sessions.Count(),
		"memory_sessions": sessionCount,
		"collection":      c.cfg.VectorDB.Collection,
	}, nil
}

// Close releases the vector store connection.
func (c *Client) Close() error {
	return c.store.Close()
}
