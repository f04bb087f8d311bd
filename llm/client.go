// Package llm adapts generation providers behind one small interface.
//
// Provider responses are resolved into a Result variant once, at the adapter
// boundary; downstream code never inspects provider-specific payloads.
package llm

import "context"

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// ResultKind discriminates the Result variants.
type ResultKind int

const (
	// TextResult means the provider returned model text.
	TextResult ResultKind = iota

	// RawResult means the provider returned an unrecognized payload that
	// was stringified at the adapter boundary.
	RawResult
)

// Result is the resolved provider response.
type Result struct {
	Kind  ResultKind
	Text  string
	Raw   string
	Model string
}

// Content returns the usable answer text for either variant.
func (r Result) Content() string {
	if r.Kind == RawResult {
		return r.Raw
	}
	return r.Text
}

// Client generates a completion for a system prompt and message history.
type Client interface {
	Generate(ctx context.Context, system string, messages []Message) (Result, error)
}
