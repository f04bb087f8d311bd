// Package reflection critiques an answer against its query and context.
// The checks are cheap heuristics (length, keyword overlap, context tie-in)
// rather than a second model call.
package reflection

import (
	"fmt"
	"strings"
)

// minAnswerLength below which an answer is flagged as too short.
const minAnswerLength = 100

// Reflect scores the answer for relevance and context usage and returns a
// human-readable critique.
func Reflect(answer, query, context string) string {
	if len(answer) < minAnswerLength {
		return "Reflection: answer is short; add more examples next time."
	}

	answerLower := strings.ToLower(answer)

	relevance := "Low relevance: the query's main points were missed."
	words := strings.Fields(strings.ToLower(query))
	if len(words) > 3 {
		words = words[:3]
	}
	for _, w := range words {
		if strings.Contains(answerLower, w) {
			relevance = "High relevance"
			break
		}
	}

	contextUse := "Suggestion: reference past learning next time."
	if len(context) > 0 &&
		(strings.Contains(answerLower, "past") || strings.Contains(answerLower, "earlier")) {
		contextUse = "Good use of past context"
	}

	return fmt.Sprintf("%s | %s | Overall: step-by-step guide delivered for %q.",
		relevance, contextUse, preview(query, 30))
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
