package memory

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// NoHistoryPlaceholder is returned when there is no history at all.
	// It is distinct from FallbackContext so callers can tell "nothing to
	// retrieve" apart from "retrieval broke".
	NoHistoryPlaceholder = "No relevant history yet."

	// FallbackContext is returned when retrieval fails unexpectedly.
	FallbackContext = "No past context available, starting fresh."

	// TruncationMarker is appended when the past-learning block is capped.
	TruncationMarker = "\n... (summarized for focus)"

	pastLearningHeader = "From past learning:\n"
	recentChatsHeader  = "Recent chats:\n"
	chunkSeparator     = "\n---\n"
)

// Assembler renders ranked chunks, the recent-history tail, and profile data
// into one bounded prompt-ready string.
type Assembler struct {
	cfg Config
}

// NewAssembler creates an assembler with the given config.
func NewAssembler(cfg Config) *Assembler {
	return &Assembler{cfg: cfg.withDefaults()}
}

// Assemble combines the past-learning block and the recent-chats block.
func (a *Assembler) Assemble(chunks []ScoredChunk, records []InteractionRecord, query string, maxHistory int) string {
	return a.PastLearning(chunks) + "\n" + a.RecentChats(records, query, maxHistory)
}

// PastLearning renders the ranked chunks in order, joined by a separator.
// The block is hard-capped at MaxContextChars with a visible marker so the
// prompt fragment has a predictable upper bound regardless of chunk sizes.
func (a *Assembler) PastLearning(chunks []ScoredChunk) string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	block := pastLearningHeader + strings.Join(texts, chunkSeparator)
	if len(block) > a.cfg.MaxContextChars {
		block = block[:a.cfg.MaxContextChars] + TruncationMarker
	}
	return block
}

// RecentChats renders short previews of the last max records in
// chronological order. A record whose query exactly equals the current
// query is excluded to avoid trivial self-reference; it can still surface
// in the ranked block if it scores above threshold.
func (a *Assembler) RecentChats(records []InteractionRecord, query string, max int) string {
	if max <= 0 {
		max = a.cfg.MaxHistory
	}
	start := 0
	if len(records) > max {
		start = len(records) - max
	}

	var lines []string
	for _, rec := range records[start:] {
		if rec.Query == query {
			continue
		}
		lines = append(lines, fmt.Sprintf("Q: %s... A: %s...",
			truncate(rec.Query, 50), truncate(rec.Answer, 100)))
	}
	return recentChatsHeader + strings.Join(lines, "\n")
}

// RecentOnly formats the most recent topK records as plain "Past:" chunks.
// Used when no embedding capability exists and similarity filtering is
// impossible.
func (a *Assembler) RecentOnly(records []InteractionRecord, topK int) string {
	if topK <= 0 {
		topK = a.cfg.TopK
	}
	start := 0
	if len(records) > topK {
		start = len(records) - topK
	}

	chunks := make([]string, 0, topK)
	for _, rec := range records[start:] {
		chunks = append(chunks, fmt.Sprintf("Past: Q: %s\nA: %s...",
			rec.Query, truncate(rec.Answer, a.cfg.AnswerTruncate)))
	}
	return strings.Join(chunks, "\n")
}

// ConversationContext weaves the retrieved context, the user's interests,
// and the style directive into the final prompt fragment. The result is
// never empty and safe to interpolate into a larger prompt template.
func (a *Assembler) ConversationContext(query, ragContext string, profile Profile) string {
	topics := strings.Join(TopTopics(profile, 3), ", ")
	style := profile.Style
	if style == "" {
		style = "friendly"
	}
	stylePrompt := fmt.Sprintf("Respond in a %s tone, tying into user's interests: %s.", style, topics)

	return fmt.Sprintf(`Conversation Context:
- User Interests: %s
- Learned from Past: %s
- Style Guide: %s

Current Query: %s
Use this to answer thoughtfully, building on what we've discussed before. ALWAYS reference 1-2 past points explicitly.
`, topics, ragContext, stylePrompt, query)
}

// TopTopics returns the n most frequent topics, highest count first.
// Ties keep the profile's insertion order, so the output is deterministic.
func TopTopics(profile Profile, n int) []string {
	topics := make([]TopicCount, len(profile.Topics))
	copy(topics, profile.Topics)
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Count > topics[j].Count
	})
	if len(topics) > n {
		topics = topics[:n]
	}
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.Name)
	}
	return names
}
