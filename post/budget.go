// Package post trims retrieved documents so the rendered context fits
// the model's token budget.
package post

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/midc-land-bank/ragserver/common/logger"
	"github.com/midc-land-bank/ragserver/schema"
)

// TokenCounter returns the token count of a text.
type TokenCounter func(text string) int

// NewTokenCounter returns a cl100k_base counter, falling back to a
// whitespace word count when the encoding cannot be loaded.
func NewTokenCounter() TokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warnf("failed to load cl100k_base encoding, counting words instead: %v", err)
		return WordCounter
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}
}

// WordCounter counts whitespace-separated words.
func WordCounter(text string) int {
	return len(strings.Fields(text))
}

// BudgetCompressor keeps retrieved documents, in score order, until the
// token budget is spent. The document that crosses the budget has its
// content truncated to the remainder.
type BudgetCompressor struct {
	MaxTokens int
	Count     TokenCounter
}

// FitResults returns the prefix of results that fits the budget.
func (b *BudgetCompressor) FitResults(results []schema.SearchResult) []schema.SearchResult {
	if b.MaxTokens <= 0 || len(results) == 0 {
		return results
	}
	count := b.Count
	if count == nil {
		count = WordCounter
	}

	fitted := make([]schema.SearchResult, 0, len(results))
	remaining := b.MaxTokens
	for _, result := range results {
		tokens := count(result.Document.Content)
		if tokens <= remaining {
			fitted = append(fitted, result)
			remaining -= tokens
			continue
		}
		if remaining > 0 {
			result.Document.Content = truncateToTokens(result.Document.Content, remaining, count)
			if result.Document.Content != "" {
				fitted = append(fitted, result)
			}
		}
		break
	}
	if len(fitted) < len(results) {
		logger.Debugf("context budget kept %d of %d documents", len(fitted), len(results))
	}
	return fitted
}

// FitText compresses a free-form prompt section (such as rendered
// conversation history) to the token budget, keeping the beginning.
func (b *BudgetCompressor) FitText(text string) string {
	if b.MaxTokens <= 0 {
		return text
	}
	count := b.Count
	if count == nil {
		count = WordCounter
	}
	tokens := count(text)
	if tokens <= b.MaxTokens {
		return text
	}
	return CompressText(text, float64(b.MaxTokens)/float64(tokens))
}

// truncateToTokens keeps the longest word prefix whose token count does
// not exceed budget.
func truncateToTokens(text string, budget int, count TokenCounter) string {
	words := strings.Fields(text)
	lo, hi := 0, len(words)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if count(strings.Join(words[:mid], " ")) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return ""
	}
	return strings.Join(words[:lo], " ")
}
