// Package openai embeds text through an OpenAI-compatible embeddings API.
// Works with any provider exposing the /v1/embeddings shape (OpenAI, ollama,
// siliconflow, dashscope, etc.).
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Config configures the API embedder.
type Config struct {
	APIKey  string
	BaseURL string

	// Model is the embedding model name, e.g. "text-embedding-3-small".
	Model string

	// Dimensions is the requested vector size.
	Dimensions int
}

// Embedder calls an embeddings endpoint.
type Embedder struct {
	client     *openai.Client
	model      string
	dimensions int
}

// New creates an API-backed embedder.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("embeddings API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 1536
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates the vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.model),
		Dimensions: e.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// Dimensions returns the vector dimension.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}
