// Package llm wraps the OpenAI-compatible chat and embeddings API used by
// every generation phase. The default endpoint is xAI's Grok API; base URL
// and models are configurable.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// Chat sends a system+user prompt pair and returns the text reply.
	Chat(ctx context.Context, system, user string) (string, error)
	// ChatJSON sends a prompt expecting a JSON reply and strips any
	// markdown code fences from the response.
	ChatJSON(ctx context.Context, system, user string) (string, error)
	// Embed returns the embedding vector for one input text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GrokClient implements Client against an OpenAI-compatible endpoint.
type GrokClient struct {
	client *openai.Client
	config *Config
}

// NewClient creates a client from configuration. The API key is required;
// calls are made synchronously with no retry and no client-side timeout
// beyond the caller's context.
func NewClient(config *Config, apiKey string) (*GrokClient, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	cc := openai.DefaultConfig(apiKey)
	cc.BaseURL = config.BaseURL

	return &GrokClient{
		client: openai.NewClientWithConfig(cc),
		config: config,
	}, nil
}

// Chat sends a system+user prompt pair and returns the reply text.
func (c *GrokClient) Chat(ctx context.Context, system, user string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", &APICallError{Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &APICallError{Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends a prompt expecting JSON and cleans code-fence wrappers.
func (c *GrokClient) ChatJSON(ctx context.Context, system, user string) (string, error) {
	text, err := c.Chat(ctx, system, user)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Embed returns the embedding vector for one input text.
func (c *GrokClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.config.EmbeddingModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, &APICallError{Message: "embedding request failed", Cause: err}
	}
	if len(resp.Data) == 0 {
		return nil, &APICallError{Message: "no embedding in response"}
	}
	return resp.Data[0].Embedding, nil
}
