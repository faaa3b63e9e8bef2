// Package query rewrites free-form land-bank search phrases (English,
// Marathi transliteration, or Devanagari, possibly misspelled) into
// canonicalized, expanded queries better suited for vector retrieval.
//
// The pipeline is strictly linear: concept extraction, cross-lingual
// normalization, spelling correction, then augmentation. A separate
// classifier decides whether the eventual answer should be phrased in
// Marathi. All stages are pure functions over the static tables below,
// so a Rewriter is safe to share across concurrent requests.
package query

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a single key/value pair in an authored lookup table.
// Tables are authored as ordered slices so iteration order is the
// authoring order, which the pipeline's output depends on.
type Entry[V any] struct {
	Key   string
	Value V
}

// buildTable materializes an authored table into an insertion-ordered
// map. Keys must be non-empty, lower-cased, and unique within the
// table; violations are load-time errors so data-authoring mistakes
// surface at startup instead of silently shadowing earlier entries.
func buildTable[V any](name string, entries []Entry[V]) (*orderedmap.OrderedMap[string, V], error) {
	om := orderedmap.New[string, V](orderedmap.WithCapacity[string, V](len(entries)))
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("table %s: empty key", name)
		}
		if e.Key != strings.ToLower(e.Key) {
			return nil, fmt.Errorf("table %s: key %q is not lower-cased", name, e.Key)
		}
		if _, present := om.Get(e.Key); present {
			return nil, fmt.Errorf("table %s: duplicate key %q", name, e.Key)
		}
		om.Set(e.Key, e.Value)
	}
	return om, nil
}

// Tables holds every lookup table the pipeline consults. All tables
// are read-only after Load.
type Tables struct {
	// Regions maps a city name (English or Devanagari) to its regional
	// office identifiers; a city may fall under multiple offices.
	Regions *orderedmap.OrderedMap[string, []string]
	// Areas maps an industrial-area name to exactly one regional office.
	Areas *orderedmap.OrderedMap[string, string]
	// PropertyTypes maps property terms to one of the canonical
	// categories Residential, Commercial, or Industrial.
	PropertyTypes *orderedmap.OrderedMap[string, string]
	// Transliterations maps romanized Marathi tokens to English glosses.
	Transliterations *orderedmap.OrderedMap[string, string]
	// MixedLanguage maps English-ish surface forms to a designated
	// canonical form, consulted after transliterations and synonyms.
	MixedLanguage *orderedmap.OrderedMap[string, string]
	// Synonyms maps a canonical root to its surface-form synonyms.
	// Concept detection tests membership as substrings; normalization
	// resolves exact tokens back to the root.
	Synonyms *orderedmap.OrderedMap[string, []string]
	// Intents maps an intent label to its trigger substrings.
	Intents *orderedmap.OrderedMap[string, []string]
	// Spellings maps a canonical place spelling to known misspellings.
	Spellings *orderedmap.OrderedMap[string, []string]
}

// Load validates and materializes the authored table data.
func Load() (*Tables, error) {
	regions, err := buildTable("regions", regionEntries)
	if err != nil {
		return nil, err
	}
	areas, err := buildTable("areas", areaEntries)
	if err != nil {
		return nil, err
	}
	propertyTypes, err := buildTable("property_types", propertyTypeEntries)
	if err != nil {
		return nil, err
	}
	transliterations, err := buildTable("transliterations", transliterationEntries)
	if err != nil {
		return nil, err
	}
	mixed, err := buildTable("mixed_language", mixedLanguageEntries)
	if err != nil {
		return nil, err
	}
	synonyms, err := buildTable("synonyms", synonymEntries)
	if err != nil {
		return nil, err
	}
	intents, err := buildTable("intents", intentEntries)
	if err != nil {
		return nil, err
	}
	spellings, err := buildTable("spellings", spellingEntries)
	if err != nil {
		return nil, err
	}
	return &Tables{
		Regions:          regions,
		Areas:            areas,
		PropertyTypes:    propertyTypes,
		Transliterations: transliterations,
		MixedLanguage:    mixed,
		Synonyms:         synonyms,
		Intents:          intents,
		Spellings:        spellings,
	}, nil
}
