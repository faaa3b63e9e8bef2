package query

import "strings"

// improvementList accumulates appended context phrases: insertion
// order is preserved and each phrase appears at most once. The dedup
// key is the full phrase string, so a city mapping and an area mapping
// that resolve to the same office contribute it once.
type improvementList struct {
	seen  map[string]struct{}
	items []string
}

func newImprovementList() *improvementList {
	return &improvementList{seen: make(map[string]struct{})}
}

func (l *improvementList) add(phrase string) {
	if _, dup := l.seen[phrase]; dup {
		return
	}
	l.seen[phrase] = struct{}{}
	l.items = append(l.items, phrase)
}

// Augment appends canonical context to the corrected query: regional
// offices for every place name found in the text, property-type
// labels, price/availability/intent phrases, and the MIDC domain
// anchor. It returns the final query and the appended phrases.
func (r *Rewriter) Augment(corrected string, concepts Concepts) (string, []string) {
	improvements := newImprovementList()
	lower := strings.ToLower(corrected)

	// Location resolution on the corrected text.
	for pair := r.tables.Regions.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(lower, pair.Key) {
			for _, office := range pair.Value {
				improvements.add(office)
			}
		}
	}
	for pair := r.tables.Areas.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(lower, pair.Key) {
			improvements.add(pair.Value)
		}
	}
	// Explicit "ro <word>" mentions resolve against office identifiers.
	for _, match := range r.roPattern.FindAllStringSubmatch(lower, -1) {
		word := match[1]
		for pair := r.tables.Regions.Oldest(); pair != nil; pair = pair.Next() {
			for _, office := range pair.Value {
				if strings.Contains(strings.ToLower(office), word) {
					improvements.add(office)
				}
			}
		}
	}

	// Property-type labels from the concept record.
	for _, propType := range concepts.PropertyTypes {
		if label, ok := r.tables.PropertyTypes.Get(propType); ok {
			improvements.add(label)
		}
	}

	// Price context.
	for _, priceTerm := range concepts.PriceRelated {
		switch priceTerm {
		case "cheap":
			improvements.add("low cost affordable budget")
		case "expensive":
			improvements.add("high cost premium")
		default:
			improvements.add("price rate cost")
		}
	}

	// Availability context.
	if len(concepts.Availability) > 0 {
		improvements.add("available plots land")
	}

	// Intent context. Only these three intents carry extra phrasing.
	for _, intent := range concepts.Intents {
		switch intent {
		case "cheapest":
			improvements.add("minimum lowest affordable")
		case "largest":
			improvements.add("maximum biggest")
		case "comparison":
			improvements.add("compare different options")
		}
	}

	// Domain anchor whenever the query touched the land-bank domain.
	if len(concepts.Locations) > 0 || len(concepts.PropertyTypes) > 0 ||
		len(concepts.PriceRelated) > 0 || len(concepts.Availability) > 0 {
		improvements.add("MIDC Industrial Area")
	}

	if len(improvements.items) == 0 {
		return corrected, nil
	}
	return corrected + " " + strings.Join(improvements.items, " "), improvements.items
}
