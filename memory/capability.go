package memory

import (
	"context"
	"log"
	"sync"
)

// Capability wraps an Embedder with a process-wide availability flag.
//
// The underlying model may be absent entirely (nil embedder, e.g. the onnx
// build tag is off) or may fail to load. Either way the outcome is probed
// once, on first use, and cached for the life of the process: callers get a
// cheap Available() check instead of paying a failed model load per request.
type Capability struct {
	embedder Embedder

	once      sync.Once
	available bool
}

// NewCapability wraps embedder. A nil embedder is a valid, permanently
// unavailable capability.
func NewCapability(embedder Embedder) *Capability {
	return &Capability{embedder: embedder}
}

// Available reports whether embeddings can be computed. The first call
// probes the embedder with the empty string; subsequent calls return the
// cached result.
func (c *Capability) Available() bool {
	c.once.Do(func() {
		if c.embedder == nil {
			log.Printf("[MEMORY] No embedder configured, semantic retrieval disabled")
			return
		}
		if _, err := c.embedder.Embed(context.Background(), ""); err != nil {
			log.Printf("[MEMORY] Embedder probe failed, semantic retrieval disabled: %v", err)
			return
		}
		c.available = true
	})
	return c.available
}

// Embed computes the embedding of text. Empty text embeds the empty string
// rather than failing. Returns ErrEmbeddingUnavailable when the capability
// is absent.
func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.Available() {
		return nil, ErrEmbeddingUnavailable
	}
	return c.embedder.Embed(ctx, text)
}

// Dimensions returns the embedding size, or 0 when unavailable.
func (c *Capability) Dimensions() int {
	if !c.Available() {
		return 0
	}
	return c.embedder.Dimensions()
}
