package memory

import (
	"context"
	"errors"
	"time"
)

// InteractionRecord is one completed chat turn. Records are immutable once
// written and ordered by insertion (chronological).
type InteractionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// ScoredChunk is a candidate chunk that passed the similarity threshold.
// Transient: produced and discarded within one retrieval call.
type ScoredChunk struct {
	// Score is the cosine similarity against the query vector, in [-1, 1].
	Score float64

	// Text is the prompt-ready "Q: ...\nA: ..." rendering of the chunk.
	Text string
}

// TopicCount is one profile interest with its observed frequency.
// Slices of TopicCount preserve insertion order, which is the deterministic
// tie-break when ranking topics by count.
type TopicCount struct {
	Name  string
	Count int
}

// Profile is the read-only user view consumed by the assembler.
type Profile struct {
	Style  string
	Topics []TopicCount
}

// Embedder converts text to a fixed-dimension vector. Two vectors are only
// comparable if produced by the same model version.
// Implementations: mock (testing), onnx (local, build-tagged), openai (API).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	// Embedding the empty string must succeed.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// HistoryStore is the external history collaborator. Load returns a
// read-only chronological snapshot; the retrieval core never mutates it.
type HistoryStore interface {
	Load(ctx context.Context) ([]InteractionRecord, error)
}

// ErrEmbeddingUnavailable reports that the embedding model could not be
// loaded. It is detected once per process and triggers the recent-only
// fallback path, never a per-call retry.
var ErrEmbeddingUnavailable = errors.New("embedding model unavailable")

// Config holds the retrieval tunables. The defaults mirror the behavior the
// system was tuned with; every value is overridable rather than baked in.
type Config struct {
	// TopK is the number of ranked chunks returned.
	TopK int

	// MaxHistory is the length of the recent-chats tail.
	MaxHistory int

	// SampleWindow restricts candidates to the most recent N records.
	SampleWindow int

	// SampleSize is the number of candidates drawn from the window.
	// Sampling bounds per-request embedding cost on large histories at the
	// expense of recall: a relevant record may be skipped by chance.
	SampleSize int

	// Threshold is the strict low-relevance cutoff. Chunks scoring at or
	// below it are discarded.
	Threshold float64

	// AnswerTruncate caps the answer characters embedded per chunk.
	AnswerTruncate int

	// MaxContextChars caps the "From past learning" segment.
	MaxContextChars int

	// EmbedWorkers bounds concurrent candidate embedding.
	EmbedWorkers int
}

// DefaultConfig returns the standard retrieval parameters.
func DefaultConfig() Config {
	return Config{
		TopK:            3,
		MaxHistory:      5,
		SampleWindow:    500,
		SampleSize:      100,
		Threshold:       0.2,
		AnswerTruncate:  200,
		MaxContextChars: 1000,
		EmbedWorkers:    4,
	}
}

// withDefaults fills zero fields so a partially-populated Config is usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = d.MaxHistory
	}
	if c.SampleWindow <= 0 {
		c.SampleWindow = d.SampleWindow
	}
	if c.SampleSize <= 0 {
		c.SampleSize = d.SampleSize
	}
	if c.Threshold == 0 {
		c.Threshold = d.Threshold
	}
	if c.AnswerTruncate <= 0 {
		c.AnswerTruncate = d.AnswerTruncate
	}
	if c.MaxContextChars <= 0 {
		c.MaxContextChars = d.MaxContextChars
	}
	if c.EmbedWorkers <= 0 {
		c.EmbedWorkers = d.EmbedWorkers
	}
	return c
}
