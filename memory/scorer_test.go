package memory_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/DevSars24/ai-mentor/memory"
)

func TestSampler_SameSeedSameSample(t *testing.T) {
	records := makeRecords(300)

	a := memory.NewSampler(7).Sample(records, 500, 100)
	b := memory.NewSampler(7).Sample(records, 500, 100)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed drew different samples")
	}
}

func TestSampler_ChronologicalOrderAndWindow(t *testing.T) {
	records := makeRecords(600)

	sample := memory.NewSampler(1).Sample(records, 500, 100)
	if len(sample) != 100 {
		t.Fatalf("Expected 100 candidates, got %d", len(sample))
	}
	prev := -1
	for _, cand := range sample {
		if cand.Pos <= prev {
			t.Fatalf("Candidates out of chronological order: %d after %d", cand.Pos, prev)
		}
		if cand.Pos < 100 {
			t.Errorf("Candidate %d is outside the 500-record window", cand.Pos)
		}
		prev = cand.Pos
	}
}

func TestSampler_SmallHistoryTakesAll(t *testing.T) {
	records := makeRecords(30)

	sample := memory.NewSampler(1).Sample(records, 500, 100)
	if len(sample) != 30 {
		t.Errorf("Expected the whole history as candidates, got %d", len(sample))
	}
}

func TestScorer_ThresholdIsStrict(t *testing.T) {
	emb := newFakeEmbedder()
	emb.set("q", []float32{1, 0, 0})
	emb.set("exact match", []float32{1, 0, 0})
	emb.set("same", []float32{1, 0, 0})

	cfg := memory.DefaultConfig()
	cfg.Threshold = 1.0 // identical vectors score exactly 1.0
	scorer := memory.NewScorer(memory.NewCapability(emb), cfg)

	candidates := []memory.Candidate{{
		Pos:    0,
		Record: memory.InteractionRecord{Query: "exact match", Answer: "same"},
	}}
	chunks := scorer.Score(context.Background(), []float32{1, 0, 0}, candidates, 3)
	if len(chunks) != 0 {
		t.Errorf("Score equal to the threshold must be excluded, got %d chunks", len(chunks))
	}
}

func TestScorer_RanksDescendingAndCaps(t *testing.T) {
	emb := newFakeEmbedder()
	// Chunk vectors at decreasing similarity to the query vector (1,0,0).
	vecs := [][]float32{
		{1, 0.1, 0},
		{1, 0, 0},
		{1, 0.7, 0},
		{1, 0.4, 0},
	}
	candidates := make([]memory.Candidate, 0, len(vecs))
	for i, v := range vecs {
		q := string(rune('a' + i))
		emb.set(q, v)
		emb.set(q+" answer", v)
		candidates = append(candidates, memory.Candidate{
			Pos:    i,
			Record: memory.InteractionRecord{Query: q, Answer: q + " answer"},
		})
	}

	scorer := memory.NewScorer(memory.NewCapability(emb), memory.DefaultConfig())
	chunks := scorer.Score(context.Background(), []float32{1, 0, 0}, candidates, 3)

	if len(chunks) != 3 {
		t.Fatalf("Expected top-3 chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Score > chunks[i-1].Score {
			t.Errorf("Chunks not in descending score order: %v", chunks)
		}
	}
	// Best match is the exact-direction vector, worst surviving is (1,0.4,0).
	if chunks[0].Text != "Q: b\nA: b answer" {
		t.Errorf("Expected the closest candidate first, got %q", chunks[0].Text)
	}
	if chunks[2].Text != "Q: d\nA: d answer" {
		t.Errorf("Expected (1,0.4,0) candidate last, got %q", chunks[2].Text)
	}
}

func TestScorer_TiesKeepChronologicalOrder(t *testing.T) {
	emb := newFakeEmbedder()
	for _, q := range []string{"first", "second", "third"} {
		emb.set(q, []float32{1, 0, 0})
		emb.set(q+" answer", []float32{1, 0, 0})
	}
	candidates := []memory.Candidate{
		{Pos: 0, Record: memory.InteractionRecord{Query: "first", Answer: "first answer"}},
		{Pos: 1, Record: memory.InteractionRecord{Query: "second", Answer: "second answer"}},
		{Pos: 2, Record: memory.InteractionRecord{Query: "third", Answer: "third answer"}},
	}

	scorer := memory.NewScorer(memory.NewCapability(emb), memory.DefaultConfig())
	chunks := scorer.Score(context.Background(), []float32{1, 0, 0}, candidates, 3)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	want := []string{"Q: first\nA: first answer", "Q: second\nA: second answer", "Q: third\nA: third answer"}
	for i, chunk := range chunks {
		if chunk.Text != want[i] {
			t.Errorf("Tie-break broke chronological order at %d: got %q, want %q", i, chunk.Text, want[i])
		}
	}
}

func TestScorer_SkipsFailingCandidate(t *testing.T) {
	emb := newFakeEmbedder()
	emb.set("good", []float32{1, 0, 0})
	emb.set("good answer", []float32{1, 0, 0})
	emb.failOn = "bad"

	candidates := []memory.Candidate{
		{Pos: 0, Record: memory.InteractionRecord{Query: "bad", Answer: "bad answer"}},
		{Pos: 1, Record: memory.InteractionRecord{Query: "good", Answer: "good answer"}},
	}

	scorer := memory.NewScorer(memory.NewCapability(emb), memory.DefaultConfig())
	chunks := scorer.Score(context.Background(), []float32{1, 0, 0}, candidates, 3)

	if len(chunks) != 1 {
		t.Fatalf("Expected the surviving candidate only, got %d chunks", len(chunks))
	}
	if chunks[0].Text != "Q: good\nA: good answer" {
		t.Errorf("Wrong surviving chunk: %q", chunks[0].Text)
	}
}

func TestScorer_TruncatesAnswerBeforeEmbedding(t *testing.T) {
	emb := newFakeEmbedder()
	long := ""
	for len(long) < 300 {
		long += "abcdefghij"
	}
	emb.set("q", []float32{1, 0, 0})
	emb.set(long[:200], []float32{1, 0, 0})
	// The full answer is deliberately NOT in the table: if the scorer
	// embedded it untruncated it would get the orthogonal default vector
	// and be filtered out.

	candidates := []memory.Candidate{
		{Pos: 0, Record: memory.InteractionRecord{Query: "q", Answer: long}},
	}
	scorer := memory.NewScorer(memory.NewCapability(emb), memory.DefaultConfig())
	chunks := scorer.Score(context.Background(), []float32{1, 0, 0}, candidates, 3)

	if len(chunks) != 1 {
		t.Fatalf("Expected the truncated candidate to score, got %d chunks", len(chunks))
	}
	if chunks[0].Text != "Q: q\nA: "+long[:200] {
		t.Errorf("Chunk text should carry the truncated answer, got %q", chunks[0].Text)
	}
}

func TestCapability_ProbesOnce(t *testing.T) {
	probe := &countingEmbedder{}
	capability := memory.NewCapability(probe)

	if !capability.Available() {
		t.Fatal("Expected a working embedder to be available")
	}
	capability.Available()
	if _, err := capability.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if probe.probes != 1 {
		t.Errorf("Expected exactly one availability probe, got %d", probe.probes)
	}
}

func TestCapability_NilEmbedder(t *testing.T) {
	capability := memory.NewCapability(nil)

	if capability.Available() {
		t.Error("Nil embedder must be unavailable")
	}
	if _, err := capability.Embed(context.Background(), "text"); err != memory.ErrEmbeddingUnavailable {
		t.Errorf("Expected ErrEmbeddingUnavailable, got %v", err)
	}
	if capability.Dimensions() != 0 {
		t.Errorf("Expected 0 dimensions when unavailable, got %d", capability.Dimensions())
	}
}

// countingEmbedder counts empty-string probes.
type countingEmbedder struct {
	probes int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		c.probes++
	}
	return []float32{1, 0, 0}, nil
}

func (c *countingEmbedder) Dimensions() int { return 3 }
