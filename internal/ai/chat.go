// Package ai wraps the external AI services: the OpenAI-compatible chat
// completion endpoint (Groq by default) and the Replicate image API. Both
// are thin proxies; nothing here inspects or stores the exchanged content.
package ai

import (
	"context"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/kadarb/studyflash/internal/logger"
)

// ErrNoAPIKey is returned when the chat endpoint is called without a
// configured credential. Callers turn this into a user-facing setup hint.
var ErrNoAPIKey = errors.New("no API key configured")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatConfig holds the chat-completion client configuration.
type ChatConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// DefaultChatConfig returns defaults matching the Groq OpenAI-compatible API.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.3-70b-versatile",
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

// ChatClient proxies chat completions to an OpenAI-compatible endpoint.
type ChatClient struct {
	client *openai.Client
	config ChatConfig
	log    *logger.Logger
}

// NewChatClient creates a chat client. A missing API key is not an error
// here; Complete reports it per call so the server can start without one.
func NewChatClient(cfg ChatConfig) *ChatClient {
	def := DefaultChatConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &ChatClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		log:    logger.Default().WithPrefix("ai"),
	}
}

// Complete sends the conversation and returns the assistant reply.
func (c *ChatClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	turns := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		turns[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    turns,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		c.log.Error("chat completion failed: %v", err)
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	c.log.Debug("chat completion: model=%s turns=%d took=%s", resp.Model, len(turns), time.Since(start))
	return resp.Choices[0].Message.Content, nil
}
