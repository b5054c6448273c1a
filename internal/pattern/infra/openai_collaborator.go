package infra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/20uf/rexpress/internal/pattern/application"
	"github.com/20uf/rexpress/internal/pattern/domain"
	"github.com/20uf/rexpress/internal/verbose"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const defaultModel = "gpt-4o-mini"

// OpenAIConfig configures the chat collaborator.
type OpenAIConfig struct {
	APIKey            string
	BaseURL           string // OpenAI-compatible endpoint, e.g. http://localhost:11434/v1
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// OpenAICollaborator implements application.Collaborator on the
// OpenAI Chat Completions API.
type OpenAICollaborator struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAICollaborator creates the collaborator.
// It returns domain.ErrCollaboratorUnavailable when no API key is configured.
func NewOpenAICollaborator(cfg OpenAIConfig) (*OpenAICollaborator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key (set OPENAI_API_KEY or [ai] api_key)", domain.ErrCollaboratorUnavailable)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &OpenAICollaborator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		limiter: limiter,
	}, nil
}

// Model returns the chat model in use.
func (o *OpenAICollaborator) Model() string {
	return o.model
}

// Chat sends the conversation and returns the first choice's content.
func (o *OpenAICollaborator) Chat(ctx context.Context, messages []application.Message) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: toOpenAIMessages(messages),
	}

	verbose.Log("chat completion: model=%s messages=%d", o.model, len(messages))
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion failed (HTTP %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	verbose.Log("chat completion finished: %s", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []application.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == application.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}
