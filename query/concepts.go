package query

import "strings"

// Concepts summarizes what a raw query is about. Each slice is
// ordered by table authoring order and holds each entry at most once.
type Concepts struct {
	Locations     []string
	PropertyTypes []string
	PriceRelated  []string
	Availability  []string
	Intents       []string
}

// Empty reports whether no concept of any kind was detected.
func (c Concepts) Empty() bool {
	return len(c.Locations) == 0 && len(c.PropertyTypes) == 0 &&
		len(c.PriceRelated) == 0 && len(c.Availability) == 0 && len(c.Intents) == 0
}

// ExtractConcepts detects which canonical roots and intents a raw
// query touches. Detection is substring-based on purpose: it is
// recall-oriented (a partial-word hit is an accepted imprecision),
// unlike normalization, which only rewrites exact tokens.
func (r *Rewriter) ExtractConcepts(raw string) Concepts {
	lower := strings.ToLower(raw)
	return Concepts{
		Locations:     r.matchRoots(lower, locationRoots),
		PropertyTypes: r.matchRoots(lower, propertyRoots),
		PriceRelated:  r.matchRoots(lower, priceRoots),
		Availability:  r.matchRoots(lower, availabilityRoots),
		Intents:       r.detectIntents(lower),
	}
}

// matchRoots records each root whose synonym set has at least one
// substring hit in the query. A root is recorded at most once; the
// first matching synonym settles it.
func (r *Rewriter) matchRoots(lower string, roots []string) []string {
	var found []string
	for _, root := range roots {
		synonyms, ok := r.tables.Synonyms.Get(root)
		if !ok {
			continue
		}
		for _, syn := range synonyms {
			if strings.Contains(lower, syn) {
				found = append(found, root)
				break
			}
		}
	}
	return found
}

// detectIntents records each intent label with at least one trigger
// substring present in the query.
func (r *Rewriter) detectIntents(lower string) []string {
	var intents []string
	for pair := r.tables.Intents.Oldest(); pair != nil; pair = pair.Next() {
		for _, trigger := range pair.Value {
			if strings.Contains(lower, trigger) {
				intents = append(intents, pair.Key)
				break
			}
		}
	}
	return intents
}
