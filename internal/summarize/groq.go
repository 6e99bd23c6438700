package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mokhberai/mokhber/internal/model"
)

// GroqProvider implements the Summarizer interface for Groq-hosted models.
// Groq exposes an OpenAI-compatible Chat Completions API.
type GroqProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	tokens  int
}

// NewGroqProvider creates a new Groq provider.
func NewGroqProvider(cfg model.LLMConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	mdl := cfg.Model
	if mdl == "" {
		mdl = "llama3-70b-8192"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL
	client := openai.NewClientWithConfig(clientConfig)

	return &GroqProvider{
		client:  client,
		model:   mdl,
		timeout: timeout,
		tokens:  cfg.MaxTokens,
	}, nil
}

// Name returns the provider name.
func (p *GroqProvider) Name() string {
	return "groq"
}

// Summarize generates structured summary fields via the Chat Completions API.
func (p *GroqProvider) Summarize(ctx context.Context, req Request) (model.Fields, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: p.tokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("Groq API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Groq")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	return parseFields(raw)
}
