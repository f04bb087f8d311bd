// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is the full service configuration. Every field has a working
// default so the service starts with no environment at all, in simulated
// mode with the deterministic embedder.
type Config struct {
	// Server.
	Addr string `env:"MENTOR_ADDR" envDefault:":8000"`

	// Generation provider: "openai", "anthropic", or "simulate".
	// An empty or keyless provider falls back to the simulator.
	Provider      string `env:"MENTOR_PROVIDER" envDefault:""`
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	AnthropicKey  string `env:"ANTHROPIC_API_KEY"`
	Model         string `env:"MENTOR_MODEL"`

	// Embedder: "mock", "openai", or "onnx".
	Embedder      string `env:"MENTOR_EMBEDDER" envDefault:"mock"`
	EmbedModel    string `env:"MENTOR_EMBED_MODEL"`
	EmbedDims     int    `env:"MENTOR_EMBED_DIMS" envDefault:"384"`
	ONNXModelPath string `env:"MENTOR_ONNX_MODEL"`
	ONNXTokenizer string `env:"MENTOR_ONNX_TOKENIZER"`
	ONNXLibrary   string `env:"ORT_SHARED_LIB"`

	// Storage paths.
	HistoryPath  string `env:"MENTOR_HISTORY_PATH" envDefault:"data/memory.jsonl"`
	ProfilePath  string `env:"MENTOR_PROFILE_PATH" envDefault:"data/profiles.json"`
	GraphPath    string `env:"MENTOR_GRAPH_PATH" envDefault:"data/learning_graph.json"`
	FineTunePath string `env:"MENTOR_FINETUNE_PATH" envDefault:"data/finetune_data.jsonl"`

	// Retrieval tunables.
	TopK         int     `env:"MENTOR_TOP_K" envDefault:"3"`
	MaxHistory   int     `env:"MENTOR_MAX_HISTORY" envDefault:"5"`
	SampleWindow int     `env:"MENTOR_SAMPLE_WINDOW" envDefault:"500"`
	SampleSize   int     `env:"MENTOR_SAMPLE_SIZE" envDefault:"100"`
	Threshold    float64 `env:"MENTOR_THRESHOLD" envDefault:"0.2"`
	SampleSeed   int64   `env:"MENTOR_SAMPLE_SEED" envDefault:"0"`

	// History retention.
	MaxRecords int `env:"MENTOR_MAX_RECORDS" envDefault:"1000"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
