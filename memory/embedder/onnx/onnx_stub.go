//go:build !onnx

package onnx

import (
	"context"
	"fmt"

	"github.com/DevSars24/ai-mentor/memory"
)

// Config configures the ONNX embedder. Unused without the onnx build tag.
type Config struct {
	ModelPath     string
	TokenizerPath string
	LibraryPath   string
	Dimensions    int
}

// Embedder is unavailable without the onnx build tag.
type Embedder struct{}

// New reports the capability as missing. The retrieval core treats this as
// a permanent condition and serves recent-only context.
func New(cfg Config) (*Embedder, error) {
	return nil, fmt.Errorf("%w: built without onnx support", memory.ErrEmbeddingUnavailable)
}

// Embed always fails in this build.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, memory.ErrEmbeddingUnavailable
}

// Dimensions reports zero in this build.
func (e *Embedder) Dimensions() int { return 0 }

// Close is a no-op in this build.
func (e *Embedder) Close() error { return nil }
