package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint
// (OpenAI, Gemini's OpenAI surface, OpenRouter, ollama, ...).
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a chat client. baseURL is optional.
func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate performs one chat completion.
func (c *OpenAIClient) Generate(ctx context.Context, system string, messages []Message) (Result, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: oaMsgs,
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		// No choices is unusual but not an error worth failing the turn
		// over: surface whatever the provider sent.
		return Result{Kind: RawResult, Raw: fmt.Sprintf("%+v", resp), Model: resp.Model}, nil
	}

	return Result{
		Kind:  TextResult,
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
	}, nil
}
