package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider drives OpenRouter's OpenAI-compatible API. It is the
// one-key route to vendors without a dedicated provider here, Google and
// Meta models included.
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider creates an OpenRouter provider with the given
// default model, e.g. "anthropic/claude-sonnet-4-5".
func NewOpenRouterProvider(apiKey string, model string) *OpenRouterProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return chatComplete(ctx, p.client, p.model, req)
}
