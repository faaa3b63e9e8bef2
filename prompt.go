package ragserver

import (
	"fmt"
	"strings"

	"github.com/midc-land-bank/ragserver/memory"
	"github.com/midc-land-bank/ragserver/schema"
)

const consultantTemplate = `You are a friendly and helpful real estate consultant for MIDC (Maharashtra Industrial Development Corporation) Land Bank.
You speak in a natural, conversational way - like you're talking to a friend who's looking for property information.

Context Information from MIDC Land Bank Database:
%s

User Question: %s

%s

IMPORTANT INSTRUCTIONS:
- **CONTEXT AWARENESS**: If the user's current question is incomplete or refers to a previous question (like "i want only industrial plots" after asking about a location), use the chat history to understand the full context and provide a complete answer.
- **CRITICAL LANGUAGE DETECTION**:
  * If the user's question contains ANY Devanagari script characters (like पुणे, भुसावळ, औद्योगिक, etc.), you MUST respond in Marathi.
  * If the user's question is in English, respond in English.
  * This is MANDATORY - always match the user's language exactly.
- **NATURAL CONVERSATIONAL STYLE**:
  * Provide detailed, helpful answers with context and explanations.
  * Include specific details like rates, units, and locations (e.g., "₹4840 प्रति चौ.मी." or "₹4840 per sq. meter").
  * Explain the significance of the information (e.g., "this is cheaper than other areas").
  * Offer comparisons between different options when relevant.
  * Use friendly, conversational language with greetings and closing remarks.
  * If the exact information is not found, suggest alternative options from the available data.
- Write in complete, flowing sentences that sound like natural speech.

**FINAL INSTRUCTION**: Look at the user's question carefully. If it contains Devanagari script (Marathi) or Marathi transliteration tokens, respond in Marathi. If it's in English, respond in English. ALWAYS use chat history to understand context - if the current question is incomplete, combine it with previous questions to provide a complete answer.%s`

const marathiInstruction = "\n\nThe user's question uses Marathi or Marathi transliteration. Respond in Marathi."

// buildPrompt assembles the consultant prompt from retrieved context,
// the user question, and recent history. regional forces a Marathi
// answer when the language classifier fired.
func buildPrompt(question, contextText, historyText string, regional bool) string {
	extra := ""
	if regional {
		extra = marathiInstruction
	}
	return fmt.Sprintf(consultantTemplate, contextText, question, historyText, extra)
}

// renderContext formats retrieved documents with their relevance
// scores, one block per document.
func renderContext(results []schema.SearchResult) string {
	var b strings.Builder
	for i, result := range results {
		fmt.Fprintf(&b, "Document %d (Relevance Score: %.3f):\n%s\n\n", i+1, result.Score, result.Document.Content)
	}
	return b.String()
}

// renderHistory formats prior rounds for the prompt. Empty history
// renders to an empty string so the template stays clean.
func renderHistory(rounds []memory.ConversationRound) string {
	if len(rounds) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, round := range rounds {
		fmt.Fprintf(&b, "User: %s\n", round.Question)
		fmt.Fprintf(&b, "Assistant: %s\n", round.Answer)
	}
	b.WriteString("\nIMPORTANT: If the current question is incomplete or refers to previous context, combine it with the chat history above.\n")
	return b.String()
}

// answerConfidence maps retrieved-document count to a confidence tier.
func answerConfidence(retrieved int) float64 {
	switch {
	case retrieved >= 5:
		return 0.9
	case retrieved >= 3:
		return 0.7
	case retrieved >= 1:
		return 0.5
	default:
		return 0.3
	}
}
