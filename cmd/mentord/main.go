// Command mentord serves the AI mentor chat backend.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/DevSars24/ai-mentor/config"
	"github.com/DevSars24/ai-mentor/engine"
	"github.com/DevSars24/ai-mentor/finetune"
	"github.com/DevSars24/ai-mentor/history"
	"github.com/DevSars24/ai-mentor/llm"
	"github.com/DevSars24/ai-mentor/memory"
	mockembed "github.com/DevSars24/ai-mentor/memory/embedder/mock"
	onnxembed "github.com/DevSars24/ai-mentor/memory/embedder/onnx"
	openaiembed "github.com/DevSars24/ai-mentor/memory/embedder/openai"
	"github.com/DevSars24/ai-mentor/planner"
	"github.com/DevSars24/ai-mentor/profile"
	"github.com/DevSars24/ai-mentor/server"
	"github.com/DevSars24/ai-mentor/tools"
)

func main() {
	// Optional; the defaults work with no .env at all.
	if err := godotenv.Load(); err != nil {
		log.Printf("[MAIN] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Configuration error: %v", err)
	}

	historyStore, err := history.NewFileStore(cfg.HistoryPath, cfg.MaxRecords)
	if err != nil {
		log.Fatalf("[MAIN] History store error: %v", err)
	}
	profileStore, err := profile.NewStore(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("[MAIN] Profile store error: %v", err)
	}
	topicGraph, err := profile.NewTopicGraph(cfg.GraphPath)
	if err != nil {
		log.Fatalf("[MAIN] Topic graph error: %v", err)
	}
	tuneLogger, err := finetune.NewLogger(cfg.FineTunePath)
	if err != nil {
		log.Fatalf("[MAIN] Fine-tune logger error: %v", err)
	}

	capability := memory.NewCapability(buildEmbedder(cfg))

	memCfg := memory.DefaultConfig()
	memCfg.TopK = cfg.TopK
	memCfg.MaxHistory = cfg.MaxHistory
	memCfg.SampleWindow = cfg.SampleWindow
	memCfg.SampleSize = cfg.SampleSize
	memCfg.Threshold = cfg.Threshold

	retriever := memory.NewRetriever(historyStore, capability,
		memory.NewSampler(cfg.SampleSeed), memCfg)

	client, err := llm.New(llm.FactoryConfig{
		Provider: llm.Provider(cfg.Provider),
		APIKey:   providerKey(cfg),
		BaseURL:  cfg.OpenAIBaseURL,
		Model:    cfg.Model,
	})
	if err != nil {
		log.Fatalf("[MAIN] LLM client error: %v", err)
	}

	eng := engine.NewEngine(client, historyStore,
		engine.WithMemory(retriever),
		engine.WithProfiles(profileStore),
		engine.WithPlanner(planner.New()),
		engine.WithTools(tools.NewRegistry()),
		engine.WithTopicGraph(topicGraph),
		engine.WithFineTune(tuneLogger),
	)

	if err := server.New(eng).Start(cfg.Addr); err != nil {
		log.Fatalf("[MAIN] Server stopped: %v", err)
	}
}

// buildEmbedder returns the configured embedder, or nil when none is
// usable. A nil embedder puts retrieval in recent-only mode rather than
// preventing startup.
func buildEmbedder(cfg config.Config) memory.Embedder {
	switch cfg.Embedder {
	case "openai":
		emb, err := openaiembed.New(openaiembed.Config{
			APIKey:     cfg.OpenAIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.EmbedModel,
			Dimensions: cfg.EmbedDims,
		})
		if err != nil {
			log.Printf("[MAIN] OpenAI embedder unavailable: %v", err)
			return nil
		}
		return emb
	case "onnx":
		emb, err := onnxembed.New(onnxembed.Config{
			ModelPath:     cfg.ONNXModelPath,
			TokenizerPath: cfg.ONNXTokenizer,
			LibraryPath:   cfg.ONNXLibrary,
			Dimensions:    cfg.EmbedDims,
		})
		if err != nil {
			log.Printf("[MAIN] ONNX embedder unavailable: %v", err)
			return nil
		}
		return emb
	default:
		return mockembed.New(cfg.EmbedDims)
	}
}

func providerKey(cfg config.Config) string {
	if llm.Provider(cfg.Provider) == llm.ProviderAnthropic {
		return cfg.AnthropicKey
	}
	return cfg.OpenAIKey
}
