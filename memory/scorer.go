package memory

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Candidate is a history record selected for scoring, tagged with its
// position in the chronological snapshot for deterministic tie-breaks.
type Candidate struct {
	Pos    int
	Record InteractionRecord
}

// Sampler draws uniform random samples without replacement from the most
// recent window of history. It carries its own seeded source so retrieval
// runs are reproducible under a fixed seed.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler seeded with seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample selects up to size candidates from the last window records.
// The returned candidates are in chronological order regardless of draw
// order, so downstream stable sorts break score ties oldest-first.
func (s *Sampler) Sample(records []InteractionRecord, window, size int) []Candidate {
	start := 0
	if len(records) > window {
		start = len(records) - window
	}
	pool := records[start:]

	if size > len(pool) {
		size = len(pool)
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()

	picked := perm[:size]
	sort.Ints(picked)

	out := make([]Candidate, 0, size)
	for _, i := range picked {
		out = append(out, Candidate{Pos: start + i, Record: pool[i]})
	}
	return out
}

// Scorer computes per-candidate similarity against a query vector and
// returns the ranked chunks that clear the relevance threshold.
type Scorer struct {
	embedder *Capability
	cfg      Config
}

// NewScorer creates a scorer over the given embedding capability.
func NewScorer(embedder *Capability, cfg Config) *Scorer {
	return &Scorer{embedder: embedder, cfg: cfg.withDefaults()}
}

// Score embeds each candidate as the elementwise average of its query vector
// and its truncated-answer vector, filters by cosine similarity strictly
// above the threshold, and returns the top-K by score (descending, ties in
// chronological order).
//
// A candidate whose embedding fails is logged and skipped; the call returns
// whatever subset succeeded.
func (s *Scorer) Score(ctx context.Context, queryVec []float32, candidates []Candidate, topK int) []ScoredChunk {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	type scored struct {
		ok    bool
		score float64
		text  string
	}
	results := make([]scored, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.EmbedWorkers)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			answer := truncate(cand.Record.Answer, s.cfg.AnswerTruncate)

			chunkVec, err := s.chunkVector(gctx, cand.Record.Query, answer)
			if err != nil {
				log.Printf("[MEMORY] Skipping candidate %d (%q): %v",
					cand.Pos, truncate(cand.Record.Query, 30), err)
				return nil
			}

			results[i] = scored{
				ok:    true,
				score: cosineSimilarity(queryVec, chunkVec),
				text:  fmt.Sprintf("Q: %s\nA: %s", cand.Record.Query, answer),
			}
			return nil
		})
	}
	// Goroutines only ever return nil; errors are contained per candidate.
	_ = g.Wait()

	chunks := make([]ScoredChunk, 0, len(results))
	for _, r := range results {
		if r.ok && r.score > s.cfg.Threshold {
			chunks = append(chunks, ScoredChunk{Score: r.score, Text: r.text})
		}
	}

	// Candidates arrive in chronological order, so a stable sort keeps
	// equal scores oldest-first.
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})

	if len(chunks) > topK {
		chunks = chunks[:topK]
	}
	return chunks
}

// chunkVector embeds the question and the (already truncated) answer
// separately and averages them. The average captures both "what was asked"
// and "what was answered" in one comparable vector.
func (s *Scorer) chunkVector(ctx context.Context, query, answer string) ([]float32, error) {
	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query text: %w", err)
	}
	av, err := s.embedder.Embed(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("embed answer text: %w", err)
	}
	if len(qv) != len(av) {
		return nil, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(qv), len(av))
	}
	out := make([]float32, len(qv))
	for i := range qv {
		out[i] = (qv[i] + av[i]) / 2
	}
	return out, nil
}

// cosineSimilarity returns dot(a,b) / (|a|*|b|), in [-1, 1].
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// truncate caps s at maxLen bytes.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
