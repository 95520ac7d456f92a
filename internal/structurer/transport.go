package structurer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// ChatRequest is one structuring call to the external model.
type ChatRequest struct {
	System      string
	Messages    []string // alternating user/assistant turns, starting with user
	Temperature float64
	MaxTokens   int
	RequestID   string
}

// ChatTransport sends a chat request and returns the model's text response.
// The production implementation talks to the OpenAI API; tests inject fakes.
type ChatTransport interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
	Name() string
}

// transientError marks a failure as retryable (network, rate limit, 5xx).
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// IsTransient reports whether err is a retryable transport failure.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// OpenAIConfig configures the production transport.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string        // optional override for OpenAI-compatible endpoints
	Model   string        // default gpt-4o-mini
	Timeout time.Duration // per-request timeout, default 120s
}

// OpenAITransport implements ChatTransport using the OpenAI chat
// completions API with a JSON-object response format.
type OpenAITransport struct {
	client openai.Client
	model  string
}

// NewOpenAITransport builds the production transport.
func NewOpenAITransport(cfg OpenAIConfig) *OpenAITransport {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAITransport{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Name returns the transport identifier.
func (t *OpenAITransport) Name() string { return "openai" }

// Complete sends the request and returns the first choice's content.
// Retryable API failures are wrapped as transient.
func (t *OpenAITransport) Complete(ctx context.Context, req ChatRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for i, m := range req.Messages {
		if i%2 == 0 {
			messages = append(messages, openai.UserMessage(m))
		} else {
			messages = append(messages, openai.AssistantMessage(m))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(t.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", Transient(fmt.Errorf("empty response from model"))
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyAPIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return Transient(err)
		case apiErr.StatusCode >= 500:
			return Transient(err)
		default:
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	// Connection-level failures carry no status code.
	return Transient(err)
}
