package query

import "testing"

func TestNormalize(t *testing.T) {
	r := newTestRewriter(t)

	tests := []struct {
		name         string
		query        string
		want         string
		wantTranslit bool
	}{
		{
			name:         "transliteration tokens glossed",
			query:        "pune madhe plots aahet ka",
			want:         "pune in plots are what",
			wantTranslit: true,
		},
		{
			// "aahet" is both a transliteration key and a synonym of
			// "available"; the transliteration gloss wins.
			name:         "transliteration beats synonym root",
			query:        "plots aahet",
			want:         "plots are",
			wantTranslit: true,
		},
		{
			name:         "synonym surface forms resolve to roots",
			query:        "bhusawal bombay punya",
			want:         "bhusaval mumbai pune",
			wantTranslit: false,
		},
		{
			// "rate" resolves through the price synonym group before
			// the mixed-language table sees it.
			name:         "synonym beats mixed language",
			query:        "rate card",
			want:         "price card",
			wantTranslit: false,
		},
		{
			name:         "mixed language fallback",
			query:        "kimi please",
			want:         "price please",
			wantTranslit: false,
		},
		{
			name:         "devanagari tokens resolve to roots",
			query:        "पुणे प्लॉट",
			want:         "pune plots",
			wantTranslit: false,
		},
		{
			name:         "unmatched tokens kept verbatim",
			query:        "Weather Forecast tomorrow",
			want:         "Weather Forecast tomorrow",
			wantTranslit: false,
		},
		{
			name:         "no partial-token rewriting",
			query:        "karate class",
			want:         "karate class",
			wantTranslit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, translit := r.Normalize(tt.query)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.query, got, tt.want)
			}
			if translit != tt.wantTranslit {
				t.Errorf("Normalize(%q) translit = %v, want %v", tt.query, translit, tt.wantTranslit)
			}
		})
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	r := newTestRewriter(t)

	got, _ := r.Normalize("plots   in\tpune")
	if got != "plots in pune" {
		t.Errorf("Normalize = %q, want single-spaced output", got)
	}
}
