// Package mock provides a deterministic embedder for tests and local runs
// without model files. Vectors are derived from a hash of the input text, so
// identical texts always embed identically, but there is no real semantic
// similarity between different texts.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Embedder generates hash-seeded unit vectors.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder. dims <= 0 defaults to 384 to match
// all-MiniLM-L6-v2.
func New(dims int) *Embedder {
	if dims <= 0 {
		dims = 384
	}
	return &Embedder{dimensions: dims}
}

// Embed creates a deterministic embedding from the text hash.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))

	// LCG seeded by the text hash, mapped into [-1, 1].
	seed := h.Sum64()
	vec := make([]float32, m.dimensions)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return normalize(vec), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
