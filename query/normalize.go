package query

import "strings"

// Normalize rewrites each whitespace-delimited token to its canonical
// English form and reports whether any romanized Marathi token was
// replaced. Resolution order per token: transliteration gloss, then
// synonym root, then mixed-language form, else the token is kept.
//
// Only exact token matches rewrite here; substring matching would
// corrupt unrelated words mid-token. Tokens are rejoined with single
// spaces, so runs of whitespace in the input collapse.
//
// Normalize is pure: the transliteration signal is a return value,
// never state on the Rewriter, so concurrent calls cannot observe
// each other's queries.
func (r *Rewriter) Normalize(raw string) (string, bool) {
	tokens := strings.Fields(raw)
	out := make([]string, 0, len(tokens))
	translit := false

	for _, token := range tokens {
		lower := strings.ToLower(token)

		if gloss, ok := r.tables.Transliterations.Get(lower); ok {
			out = append(out, gloss)
			translit = true
			continue
		}
		if root, ok := r.synonymIndex[lower]; ok {
			out = append(out, root)
			continue
		}
		if canonical, ok := r.tables.MixedLanguage.Get(lower); ok {
			out = append(out, canonical)
			continue
		}
		out = append(out, token)
	}

	return strings.Join(out, " "), translit
}
