package ragserver

import "strings"

var greetingWords = []string{"hey", "hello", "hi", "good morning", "good afternoon", "good evening"}

var casualQuestions = []string{"how are you", "how are you doing", "what's up", "how do you do"}

const greetingAnswer = "Hi there! I'm your friendly MIDC Land Bank AI Assistant. I'm here to help you find information about land plots, industrial areas, and property details. What can I help you discover today?"

// sampleQuestions are suggested starters surfaced to clients.
var sampleQuestions = []string{
	"What are the available industrial plots in Pune?",
	"Show me all plots in MIDC Aurangabad",
	"What is the largest plot available in the database?",
	"How many plots are there in each regional office?",
	"What are the different property types available?",
	"Show me plots with area more than 5000 sq meters",
	"What industrial areas are available in Mumbai region?",
	"How many commercial plots are available?",
	"What is the smallest plot size available?",
	"Show me all plots in MIDC Nagpur",
}

// isGreeting reports whether the query is a bare greeting or casual
// question rather than a land-bank question. "hi, plots in pune" is
// not a greeting: more than punctuation follows the greeting word.
func isGreeting(query string) bool {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return false
	}

	for _, greeting := range greetingWords {
		if !strings.Contains(lower, greeting) {
			continue
		}
		_, after, _ := strings.Cut(lower, greeting)
		after = strings.TrimSpace(after)
		after = strings.NewReplacer(",", "", ".", "", "!", "").Replace(after)
		after = strings.TrimSpace(after)
		if len(after) < 3 {
			return true
		}
		break
	}

	for _, casual := range casualQuestions {
		if strings.Contains(lower, casual) {
			return true
		}
	}
	return false
}
