package memory

import (
	"context"
	"log"
)

// Retriever is the public entry point of the retrieval core. It coordinates
// sampling, scoring, assembly, and every degradation path.
//
// Each call is synchronous and stateless beyond the shared history store;
// concurrent calls are independent. A caller-imposed deadline on ctx simply
// short-circuits to the fallback string.
type Retriever struct {
	history  HistoryStore
	embedder *Capability
	sampler  *Sampler
	scorer   *Scorer
	asm      *Assembler
	cfg      Config
}

// NewRetriever creates a retriever over the given collaborators.
func NewRetriever(history HistoryStore, embedder *Capability, sampler *Sampler, cfg Config) *Retriever {
	cfg = cfg.withDefaults()
	return &Retriever{
		history:  history,
		embedder: embedder,
		sampler:  sampler,
		scorer:   NewScorer(embedder, cfg),
		asm:      NewAssembler(cfg),
		cfg:      cfg,
	}
}

// RetrieveContext runs the retrieval pipeline with the configured TopK and
// MaxHistory.
func (r *Retriever) RetrieveContext(ctx context.Context, query string) string {
	return r.RetrieveContextN(ctx, query, r.cfg.TopK, r.cfg.MaxHistory)
}

// RetrieveContextN runs the retrieval pipeline:
//
//	START -> EMPTY_HISTORY -> DONE
//	      -> NO_EMBEDDING -> RECENT_ONLY -> DONE
//	      -> SAMPLE -> SCORE -> RANK -> ASSEMBLE -> DONE
//	      -> ERROR -> FALLBACK -> DONE
//
// It never returns an error: every failure degrades to a non-empty context
// string so the calling chat turn can proceed.
func (r *Retriever) RetrieveContextN(ctx context.Context, query string, topK, maxHistory int) (out string) {
	// Last line of defense. A panic anywhere in the pipeline must not
	// abort the chat turn.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[MEMORY] Retrieval panicked: %v", rec)
			out = FallbackContext
		}
	}()

	records, err := r.history.Load(ctx)
	if err != nil {
		log.Printf("[MEMORY] History read failed: %v", err)
		return FallbackContext
	}
	if len(records) == 0 {
		return NoHistoryPlaceholder
	}

	if !r.embedder.Available() {
		log.Printf("[MEMORY] Embedding unavailable, returning %d most recent records", topK)
		return r.asm.RecentOnly(records, topK)
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("[MEMORY] Query embedding failed: %v", err)
		return FallbackContext
	}

	candidates := r.sampler.Sample(records, r.cfg.SampleWindow, r.cfg.SampleSize)
	chunks := r.scorer.Score(ctx, queryVec, candidates, topK)
	log.Printf("[MEMORY] Scored %d candidates, %d above threshold", len(candidates), len(chunks))

	return r.asm.Assemble(chunks, records, query, maxHistory)
}

// BuildConversationContext weaves the retrieved context and the user profile
// into the final prompt fragment.
func (r *Retriever) BuildConversationContext(query, ragContext string, profile Profile) string {
	return r.asm.ConversationContext(query, ragContext, profile)
}
