// Package tools implements the tool-selection and tool-execution step.
// Both tools are simulated stubs; the dispatch shape is real so a live
// search or code-execution backend can slot in behind the same interface.
package tools

import (
	"context"
	"fmt"
	"strings"
)

// Tool names returned by Choose.
const (
	ToolWebSearch  = "web_search"
	ToolCodeRunner = "code_runner"
	ToolNone       = "none"
)

// Tool executes one capability for a query.
type Tool interface {
	Name() string
	Execute(ctx context.Context, query string) (string, error)
}

// Choose selects a tool name for the query by keyword.
func Choose(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "search"), strings.Contains(q, "latest"):
		return ToolWebSearch
	case strings.Contains(q, "code"), strings.Contains(q, "run"):
		return ToolCodeRunner
	default:
		return ToolNone
	}
}

// Registry maps tool names to implementations.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry with the standard simulated tools.
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.Register(&WebSearch{})
	r.Register(&CodeRunner{})
	return r
}

// Register adds a tool.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Execute runs the named tool. ToolNone or an unknown name returns an empty
// result without error.
func (r *Registry) Execute(ctx context.Context, name, query string) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		return "", nil
	}
	return tool.Execute(ctx, query)
}

// WebSearch is a simulated search tool.
type WebSearch struct{}

func (w *WebSearch) Name() string { return ToolWebSearch }

// Execute returns canned search results for the query.
func (w *WebSearch) Execute(ctx context.Context, query string) (string, error) {
	var results []string
	if strings.Contains(query, "AI") || strings.Contains(strings.ToLower(query), "programming") {
		results = []string{
			"Top Result 1: 'RAG in AI', Towards Data Science: retrieval-augmented generation boosts LLM accuracy by 20-30%.",
			"Top Result 2: StackOverflow thread on embeddings: use sentence-transformer models for quick setup.",
			"Top Result 3: provider blog on fine-tuning techniques for recent models.",
		}
	} else {
		results = []string{
			fmt.Sprintf("Simulated search for %q: found 5 relevant articles on programming best practices.", query),
		}
	}
	return fmt.Sprintf("Web Search Results for %q:\n%s", query, strings.Join(results, "\n")), nil
}

// CodeRunner is a simulated code execution tool.
type CodeRunner struct{}

func (c *CodeRunner) Name() string { return ToolCodeRunner }

// Execute pretends to run code mentioned in the query.
func (c *CodeRunner) Execute(ctx context.Context, query string) (string, error) {
	return "[Code Runner] Simulated: code executed successfully.", nil
}
