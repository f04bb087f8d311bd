// Package engine runs one chat turn end to end: personalization, planning,
// memory retrieval, tool dispatch, generation, reflection, and recording.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DevSars24/ai-mentor/finetune"
	"github.com/DevSars24/ai-mentor/history"
	"github.com/DevSars24/ai-mentor/llm"
	"github.com/DevSars24/ai-mentor/memory"
	"github.com/DevSars24/ai-mentor/planner"
	"github.com/DevSars24/ai-mentor/profile"
	"github.com/DevSars24/ai-mentor/reflection"
	"github.com/DevSars24/ai-mentor/tools"
)

// Engine orchestrates chat turns. The generation client and history store
// are required; everything else is optional and skipped when absent.
type Engine struct {
	client    llm.Client
	history   history.Store
	profiles  *profile.Store
	retriever *memory.Retriever
	planner   *planner.Planner
	tools     *tools.Registry
	graph     *profile.TopicGraph
	finetune  *finetune.Logger

	systemPrompt string
}

// Option configures the engine.
type Option func(*Engine)

// WithMemory enables semantic context retrieval.
func WithMemory(r *memory.Retriever) Option {
	return func(e *Engine) { e.retriever = r }
}

// WithProfiles enables per-user personalization.
func WithProfiles(s *profile.Store) Option {
	return func(e *Engine) { e.profiles = s }
}

// WithPlanner enables the planning step.
func WithPlanner(p *planner.Planner) Option {
	return func(e *Engine) { e.planner = p }
}

// WithTools enables tool selection and execution.
func WithTools(r *tools.Registry) Option {
	return func(e *Engine) { e.tools = r }
}

// WithTopicGraph enables learning-graph updates.
func WithTopicGraph(g *profile.TopicGraph) Option {
	return func(e *Engine) { e.graph = g }
}

// WithFineTune enables training-data logging.
func WithFineTune(l *finetune.Logger) Option {
	return func(e *Engine) { e.finetune = l }
}

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) { e.systemPrompt = prompt }
}

// NewEngine creates an engine over the generation client and history store.
func NewEngine(client llm.Client, store history.Store, opts ...Option) *Engine {
	e := &Engine{
		client:       client,
		history:      store,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input is one user request.
type Input struct {
	UserID string
	Query  string
}

// OutputType indicates the kind of output from a chat turn.
type OutputType int

const (
	// OutputComplete indicates the turn finished with an answer.
	OutputComplete OutputType = iota

	// OutputError indicates the turn could not produce an answer.
	OutputError
)

// Meta carries turn diagnostics alongside the answer.
type Meta struct {
	TurnID    string   `json:"turn_id"`
	Summary   string   `json:"summary"`
	ToolUsed  string   `json:"tool_used"`
	RAGUsed   bool     `json:"rag_used"`
	NextSteps []string `json:"next_steps"`
}

// Output is the result of one chat turn.
type Output struct {
	Type       OutputType
	Answer     string
	Reflection string
	Plan       string
	Meta       Meta
	Error      error
}

// Run executes one chat turn. Every enrichment step degrades independently:
// a failed profile update, retrieval, tool, or recording step is logged and
// the turn proceeds without it.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	query := strings.TrimSpace(input.Query)
	userID := input.UserID
	if userID == "" {
		userID = profile.DefaultUserID
	}
	turnID := uuid.New().String()
	log.Printf("[ENGINE] Turn %s: query=%q user=%s", turnID, preview(query, 50), userID)

	// Personalization.
	var userProfile memory.Profile
	if e.profiles != nil {
		if err := e.profiles.Update(userID, query); err != nil {
			log.Printf("[ENGINE] Profile update failed: %v", err)
		}
		userProfile = e.profiles.Get(userID).View()
	} else {
		userProfile = memory.Profile{Style: profile.DefaultStyle}
	}

	// Planning.
	plan := "[Plan unavailable]"
	if e.planner != nil {
		plan = e.planner.Plan(query)
	}

	// Semantic memory retrieval. RetrieveContext never returns an error:
	// it degrades internally and the turn always proceeds.
	var ragContext, fullContext string
	if e.retriever != nil {
		ragContext = e.retriever.RetrieveContext(ctx, query)
		fullContext = e.retriever.BuildConversationContext(query, ragContext, userProfile)
	} else {
		fullContext = fmt.Sprintf("Current Query: %s", query)
	}

	// Tool step.
	toolName := tools.ToolNone
	toolResult := ""
	if e.tools != nil {
		toolName = tools.Choose(query)
		result, err := e.tools.Execute(ctx, toolName, query)
		if err != nil {
			log.Printf("[ENGINE] Tool %s failed: %v", toolName, err)
		} else {
			toolResult = result
		}
	}

	// Generation.
	system := e.systemPrompt + "\n\n" + fullContext
	if toolResult != "" {
		system += "\n\n[Tool Output]: " + toolResult
	}
	messages := []llm.Message{{Role: "user", Content: query}}

	result, err := e.client.Generate(ctx, system, messages)
	if err != nil {
		log.Printf("[ENGINE] Generation failed, using simulator: %v", err)
		result, err = llm.NewSimulator().Generate(ctx, system, messages)
		if err != nil {
			return &Output{Type: OutputError, Error: fmt.Errorf("generate answer: %w", err)}, nil
		}
	}
	answer := result.Content()

	// Reflection.
	critique := reflection.Reflect(answer, query, fullContext)

	// Record the completed turn. Failures here must not lose the answer.
	if err := e.history.Append(ctx, memory.InteractionRecord{
		ID:        turnID,
		UserID:    userID,
		Query:     query,
		Answer:    answer,
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("[ENGINE] History append failed: %v", err)
	}
	if e.graph != nil {
		if err := e.graph.Observe(query); err != nil {
			log.Printf("[ENGINE] Topic graph update failed: %v", err)
		}
	}
	if e.finetune != nil {
		if err := e.finetune.Log(fullContext, answer); err != nil {
			log.Printf("[ENGINE] Fine-tune logging failed: %v", err)
		}
	}

	log.Printf("[ENGINE] Turn %s completed in %s", turnID, time.Since(start).Round(time.Millisecond))

	return &Output{
		Type:       OutputComplete,
		Answer:     answer,
		Reflection: critique,
		Plan:       plan,
		Meta: Meta{
			TurnID:   turnID,
			Summary:  preview(firstLine(answer), 200),
			ToolUsed: toolName,
			RAGUsed:  len(ragContext) > 0,
			NextSteps: []string{
				"Ask a follow-up for deeper context",
				"Share code to run",
				"Explore related topics",
			},
		},
	}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// DefaultSystemPrompt frames the mentor persona.
const DefaultSystemPrompt = `You are an AI mentor for students learning AI & programming.
Always explain step-by-step, clearly, and with runnable examples.
Use memory and adapt to user interests.`
