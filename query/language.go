package query

import "strings"

// PreferRegionalLanguage decides whether the answer should be phrased
// in Marathi. It inspects the raw query, not the rewritten one. Rules,
// first true wins:
//
//  1. Any Devanagari character present.
//  2. Two or more distinct transliteration-table tokens appear as
//     whole tokens of the query. Token-level matching keeps short
//     glossary keys ("la", "le") from firing inside ordinary English
//     words like "available".
//  3. Two or more of the secondary marker substrings appear.
func (r *Rewriter) PreferRegionalLanguage(raw string) bool {
	if containsDevanagari(raw) {
		return true
	}

	lower := strings.ToLower(raw)

	distinct := make(map[string]struct{})
	for _, token := range strings.Fields(lower) {
		if _, ok := r.tables.Transliterations.Get(token); ok {
			distinct[token] = struct{}{}
		}
	}
	if len(distinct) >= 2 {
		return true
	}

	markers := 0
	for _, marker := range regionalMarkers {
		if strings.Contains(lower, marker) {
			markers++
		}
	}
	return markers >= 2
}

// containsDevanagari reports whether any rune falls in the Devanagari
// Unicode block (U+0900 to U+097F).
func containsDevanagari(s string) bool {
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
