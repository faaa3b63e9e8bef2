package query

import (
	"regexp"

	"github.com/midc-land-bank/ragserver/common/logger"
)

// Rewriter runs the canonicalization pipeline. It carries no per-call
// state: the tables and the derived indexes are read-only after New,
// so one Rewriter serves arbitrary concurrency.
type Rewriter struct {
	tables *Tables
	// synonymIndex resolves an exact token to its canonical root.
	// When a token appears under multiple roots the first root in
	// table order wins.
	synonymIndex map[string]string
	roPattern    *regexp.Regexp
}

// Result captures the intermediate and final stages of one rewrite,
// for logging and metrics.
type Result struct {
	Original   string
	Normalized string
	Corrected  string
	// Query is the final rewritten query handed to retrieval.
	Query        string
	Concepts     Concepts
	Improvements []string
	// TransliterationDetected reports whether normalization replaced
	// at least one romanized Marathi token.
	TransliterationDetected bool
}

// New loads the tables and builds a Rewriter. Table authoring errors
// (duplicate or non-lower-cased keys) surface here.
func New() (*Rewriter, error) {
	tables, err := Load()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string)
	for pair := tables.Synonyms.Oldest(); pair != nil; pair = pair.Next() {
		for _, syn := range pair.Value {
			if _, taken := idx[syn]; !taken {
				idx[syn] = pair.Key
			}
		}
	}
	return &Rewriter{
		tables:       tables,
		synonymIndex: idx,
		roPattern:    regexp.MustCompile(`ro\s+(\w+)`),
	}, nil
}

// Rewrite runs the full pipeline and returns the rewritten query text.
func (r *Rewriter) Rewrite(raw string) string {
	return r.RewriteDetailed(raw).Query
}

// RewriteDetailed runs the full pipeline and returns every stage's
// output. The stages run in strict sequence with no backtracking:
// concepts are extracted from the raw query, normalization and
// spelling correction transform the text, and augmentation appends
// canonical context derived from both.
func (r *Rewriter) RewriteDetailed(raw string) Result {
	concepts := r.ExtractConcepts(raw)
	normalized, translit := r.Normalize(raw)
	corrected := r.CorrectSpelling(normalized)
	final, improvements := r.Augment(corrected, concepts)

	if final != raw {
		logger.Debugf("query rewritten: %q -> %q", raw, final)
	}
	return Result{
		Original:                raw,
		Normalized:              normalized,
		Corrected:               corrected,
		Query:                   final,
		Concepts:                concepts,
		Improvements:            improvements,
		TransliterationDetected: translit,
	}
}
