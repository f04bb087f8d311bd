// Package memory implements semantic retrieval over past chat interactions.
//
// The retrieval core turns an unbounded, growing history of question/answer
// pairs into a small, relevant, size-bounded text block that can be injected
// into a prompt. It is deliberately not a vector database: candidates are a
// uniform random sample of the most recent history window, scored by cosine
// similarity against the query embedding in a single linear pass.
//
// Architecture:
//   - Capability: process-wide embedding availability flag, probed once
//   - Sampler: seeded, uniform-without-replacement candidate sampling
//   - Scorer: chunk embedding (avg of Q and A vectors), cosine scoring, top-K
//   - Assembler: prompt-ready context block with hard size cap
//   - Retriever: orchestrates the pipeline and owns all degradation paths
//
// Degradation is the primary design decision: an empty history, a missing
// embedding model, or any unexpected failure all yield a usable (possibly
// placeholder) context string. Retrieval never fails the calling chat turn.
package memory
