package query

import (
	"strings"

	"github.com/midc-land-bank/ragserver/common/logger"
)

// CorrectSpelling replaces known misspellings of place names with
// their canonical spelling. Matching is done against the lower-cased
// text; replacement runs on the original-case text, so a variant that
// appears only in a different case is detected but left unreplaced.
//
// Each variant gets a single left-to-right pass in table order, and
// the passes are cumulative: a later variant can match text introduced
// by an earlier replacement. That cascade is pinned by a regression
// test; do not reorder the table without updating it.
func (r *Rewriter) CorrectSpelling(text string) string {
	corrected := text
	for pair := r.tables.Spellings.Oldest(); pair != nil; pair = pair.Next() {
		canonical := pair.Key
		for _, variant := range pair.Value {
			if variant == canonical {
				continue
			}
			if strings.Contains(strings.ToLower(corrected), variant) {
				corrected = strings.ReplaceAll(corrected, variant, canonical)
				logger.Debugf("corrected spelling: %q -> %q", variant, canonical)
			}
		}
	}
	return corrected
}
