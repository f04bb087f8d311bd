package memory_test

import (
	"strings"
	"testing"

	"github.com/DevSars24/ai-mentor/memory"
)

func TestAssembler_PastLearningCapsWithMarker(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())

	chunks := []memory.ScoredChunk{
		{Score: 0.9, Text: "Q: a\nA: " + strings.Repeat("x", 700)},
		{Score: 0.8, Text: "Q: b\nA: " + strings.Repeat("y", 700)},
	}
	block := asm.PastLearning(chunks)

	limit := memory.DefaultConfig().MaxContextChars + len(memory.TruncationMarker)
	if len(block) > limit {
		t.Errorf("Block is %d chars, want <= %d", len(block), limit)
	}
	if !strings.HasSuffix(block, memory.TruncationMarker) {
		t.Errorf("Capped block must end with the marker, got %q", block[len(block)-40:])
	}
}

func TestAssembler_PastLearningSmallBlockUntouched(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())

	block := asm.PastLearning([]memory.ScoredChunk{
		{Score: 0.9, Text: "Q: a\nA: short"},
		{Score: 0.8, Text: "Q: b\nA: also short"},
	})

	want := "From past learning:\nQ: a\nA: short\n---\nQ: b\nA: also short"
	if block != want {
		t.Errorf("Got %q, want %q", block, want)
	}
}

func TestAssembler_RecentChatsExcludesCurrentQuery(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())
	records := makeRecords(4)
	records[2].Query = "current question"

	got := asm.RecentChats(records, "current question", 5)

	if strings.Contains(got, "current question") {
		t.Errorf("Current query must be excluded from recent chats, got %q", got)
	}
	for _, q := range []string{"question 0", "question 1", "question 3"} {
		if !strings.Contains(got, q) {
			t.Errorf("Expected %q in recent chats, got %q", q, got)
		}
	}
}

func TestAssembler_RecentChatsPreviews(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())
	records := []memory.InteractionRecord{{
		Query:  strings.Repeat("q", 80),
		Answer: strings.Repeat("a", 150),
	}}

	got := asm.RecentChats(records, "other", 5)

	wantLine := "Q: " + strings.Repeat("q", 50) + "... A: " + strings.Repeat("a", 100) + "..."
	if got != "Recent chats:\n"+wantLine {
		t.Errorf("Got %q, want %q", got, "Recent chats:\n"+wantLine)
	}
}

func TestAssembler_RecentChatsTakesTail(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())
	records := makeRecords(10)

	got := asm.RecentChats(records, "other", 5)

	if strings.Contains(got, "question 4...") || strings.Contains(got, "question 4 ") {
		t.Errorf("Record outside the tail leaked in: %q", got)
	}
	for i := 5; i < 10; i++ {
		if !strings.Contains(got, "question "+string(rune('0'+i))) {
			t.Errorf("Expected question %d in the tail", i)
		}
	}
}

func TestAssembler_RecentOnly(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())
	records := makeRecords(10)

	got := asm.RecentOnly(records, 3)

	if n := strings.Count(got, "Past: Q: "); n != 3 {
		t.Fatalf("Expected 3 chunks, got %d", n)
	}
	if !strings.Contains(got, "Past: Q: question 9\nA: answer 9...") {
		t.Errorf("Expected the newest record as a chunk, got %q", got)
	}
}

func TestTopTopics_CountThenInsertionOrder(t *testing.T) {
	profile := memory.Profile{
		Topics: []memory.TopicCount{
			{Name: "python", Count: 2},
			{Name: "graphs", Count: 5},
			{Name: "sorting", Count: 2},
			{Name: "recursion", Count: 1},
		},
	}

	got := memory.TopTopics(profile, 3)

	want := []string{"graphs", "python", "sorting"}
	if len(got) != len(want) {
		t.Fatalf("Got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Got %v, want %v", got, want)
			break
		}
	}
}

func TestAssembler_ConversationContextDefaultsStyle(t *testing.T) {
	asm := memory.NewAssembler(memory.DefaultConfig())

	got := asm.ConversationContext("q", "ctx", memory.Profile{})
	if !strings.Contains(got, "Respond in a friendly tone") {
		t.Errorf("Expected the default style, got %q", got)
	}
}
