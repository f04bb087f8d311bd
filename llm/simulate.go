package llm

import (
	"context"
	"fmt"
)

// Simulator is the offline generation fallback: a deterministic canned
// response that echoes the context and question. Used when no provider is
// configured so the rest of the pipeline stays exercisable.
type Simulator struct{}

// NewSimulator creates the offline client.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Generate produces a deterministic simulated answer.
func (s *Simulator) Generate(ctx context.Context, system string, messages []Message) (Result, error) {
	var userMsg string
	for _, m := range messages {
		if m.Role == "user" {
			userMsg = m.Content
		}
	}

	text := fmt.Sprintf(
		"[SIMULATED RESPONSE]\nBased on context: %s\n\nQuestion: %s\n"+
			"Step 1: Understand (tie to past if relevant)\nStep 2: Plan\nStep 3: Answer with example.\n",
		truncate(system, 500), userMsg)

	return Result{Kind: TextResult, Text: text, Model: "simulator"}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
