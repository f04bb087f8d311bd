// Package planner produces a step plan for a query. The planning step is
// deliberately a deterministic stub: it classifies the query and renders a
// fixed plan, keeping the chat pipeline shape without an extra model call.
package planner

import (
	"fmt"
	"strings"
)

// Planner renders step plans.
type Planner struct{}

// New creates a planner.
func New() *Planner {
	return &Planner{}
}

// Plan classifies the query and returns a rendered plan string.
func (p *Planner) Plan(query string) string {
	q := strings.ToLower(query)

	var steps []string
	switch {
	case strings.Contains(q, "explain"):
		steps = []string{
			"Step 1: Identify the AI/programming topic in the query.",
			"Step 2: Recall key concepts from memory and retrieved context.",
			"Step 3: Build a step-by-step explanation with a code example.",
			"Step 4: Add a reflection note for better learning.",
		}
	case strings.Contains(q, "code"), strings.Contains(q, "run"):
		steps = []string{
			"Step 1: Analyze the requirements.",
			"Step 2: Write pseudocode.",
			"Step 3: Generate and test the actual code.",
			"Step 4: Explain the output.",
		}
	default:
		steps = []string{
			"Step 1: Categorize the query (concept or tool).",
			"Step 2: Fetch relevant context.",
			"Step 3: Generate a personalized response.",
			"Step 4: Suggest a follow-up.",
		}
	}

	return fmt.Sprintf("Planning Steps:\n%s\n\nExecution: plan followed for %q.",
		strings.Join(steps, "\n"), preview(query, 50))
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
