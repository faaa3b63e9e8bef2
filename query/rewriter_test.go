package query

import (
	"strings"
	"testing"
)

func newTestRewriter(t *testing.T) *Rewriter {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return r
}

func TestRewriteAppendsOfficeContext(t *testing.T) {
	r := newTestRewriter(t)

	tests := []struct {
		name     string
		query    string
		contains []string
	}{
		{
			name:  "misspelled bhusawal resolves to jalgaon office",
			query: "plots in bhusawal",
			contains: []string{
				"RO Jalgaon",
				"Industrial",
				"MIDC Industrial Area",
			},
		},
		{
			name:  "pune maps to both pune offices",
			query: "commercial plots in pune",
			contains: []string{
				"RO PUNE-I",
				"RO PUNE-II",
				"Commercial",
				"MIDC Industrial Area",
			},
		},
		{
			name:  "industrial area name resolves to its office",
			query: "plots in rajiv gandhi infotech park",
			contains: []string{
				"RO PUNE-II",
				"Industrial",
			},
		},
		{
			name:  "explicit ro mention resolves by office name",
			query: "plots in ro jalgaon",
			contains: []string{
				"RO Jalgaon",
			},
		},
		{
			name:  "devanagari city name",
			query: "प्लॉट पुणे",
			contains: []string{
				"RO PUNE-I",
				"RO PUNE-II",
				"Industrial",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rewrite(tt.query)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Rewrite(%q) = %q, missing %q", tt.query, got, want)
				}
			}
		})
	}
}

func TestRewriteCheapestIntent(t *testing.T) {
	r := newTestRewriter(t)

	res := r.RewriteDetailed("cheapest industrial plots")

	wantPhrases := []string{"minimum lowest affordable", "Industrial"}
	for _, want := range wantPhrases {
		found := false
		for _, imp := range res.Improvements {
			if imp == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("improvements = %v, missing %q", res.Improvements, want)
		}
	}
	// "cheap" is detected as a price root inside "cheapest".
	if !strings.Contains(res.Query, "low cost affordable budget") {
		t.Errorf("Rewrite = %q, missing price phrase", res.Query)
	}
}

func TestRewriteNoMatchesIsIdentity(t *testing.T) {
	r := newTestRewriter(t)

	queries := []string{
		"weather forecast tomorrow",
		"xyzzy",
		"",
	}
	for _, q := range queries {
		if got := r.Rewrite(q); got != q {
			t.Errorf("Rewrite(%q) = %q, want input unchanged", q, got)
		}
	}
}

func TestRewriteDeduplicatesImprovements(t *testing.T) {
	r := newTestRewriter(t)

	// "bhusaval" appears in both the region and area tables with the
	// same office; "plots" and "industrial" both map to Industrial.
	res := r.RewriteDetailed("industrial plots in bhusaval")

	counts := make(map[string]int)
	for _, imp := range res.Improvements {
		counts[imp]++
	}
	for phrase, n := range counts {
		if n > 1 {
			t.Errorf("improvement %q appended %d times, want once", phrase, n)
		}
	}
	if counts["RO Jalgaon"] != 1 {
		t.Errorf("improvements = %v, want exactly one RO Jalgaon", res.Improvements)
	}
	if counts["Industrial"] != 1 {
		t.Errorf("improvements = %v, want exactly one Industrial", res.Improvements)
	}
}

func TestRewriteImprovementOrderIsStable(t *testing.T) {
	r := newTestRewriter(t)

	// Offices come first (table order), then property type, then the
	// domain anchor last.
	res := r.RewriteDetailed("commercial plots in pune")

	want := []string{"RO PUNE-I", "RO PUNE-II"}
	if len(res.Improvements) < 2 || res.Improvements[0] != want[0] || res.Improvements[1] != want[1] {
		t.Fatalf("improvements = %v, want prefix %v", res.Improvements, want)
	}
	if last := res.Improvements[len(res.Improvements)-1]; last != "MIDC Industrial Area" {
		t.Errorf("last improvement = %q, want domain anchor", last)
	}
}

func TestRewriteNotIdempotent(t *testing.T) {
	r := newTestRewriter(t)

	// Re-running the rewriter on its own output appends more context;
	// only the first pass is the contract.
	first := r.Rewrite("plots in pune")
	second := r.Rewrite(first)
	if second == first {
		t.Errorf("second pass unchanged; augmentation is expected to re-append on %q", first)
	}
}

func TestExtractConcepts(t *testing.T) {
	r := newTestRewriter(t)

	c := r.ExtractConcepts("cheapest industrial plots available in pune")

	if len(c.Locations) != 1 || c.Locations[0] != "pune" {
		t.Errorf("Locations = %v, want [pune]", c.Locations)
	}
	wantProps := map[string]bool{"plots": true, "industrial": true}
	for _, p := range c.PropertyTypes {
		if !wantProps[p] {
			t.Errorf("unexpected property type %q", p)
		}
		delete(wantProps, p)
	}
	if len(wantProps) != 0 {
		t.Errorf("PropertyTypes = %v, missing %v", c.PropertyTypes, wantProps)
	}
	if len(c.PriceRelated) != 1 || c.PriceRelated[0] != "cheap" {
		t.Errorf("PriceRelated = %v, want [cheap]", c.PriceRelated)
	}
	if len(c.Availability) == 0 || c.Availability[0] != "available" {
		t.Errorf("Availability = %v, want available first", c.Availability)
	}

	hasIntent := func(label string) bool {
		for _, in := range c.Intents {
			if in == label {
				return true
			}
		}
		return false
	}
	for _, label := range []string{"availability", "location_search", "property_type", "cheapest"} {
		if !hasIntent(label) {
			t.Errorf("Intents = %v, missing %q", c.Intents, label)
		}
	}
}
