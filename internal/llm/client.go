package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	DefaultBaseBackoff = 2 * time.Second
	MaxBackoff         = 32 * time.Second
)

var (
	ErrAPIKeyNotSet   = errors.New("LLM API key not set")
	ErrEmptyResponse  = errors.New("no completion choices returned")
	ErrRetriesExhaust = errors.New("max retries exceeded")
)

type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	JSON        bool
}

type CompletionResponse struct {
	Content    string
	Model      string
	TokensUsed int
}

// Completer is the chat completion surface the analyzers depend on.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

type OpenAIClient struct {
	client      openai.Client
	model       string
	timeout     time.Duration
	maxRetries  int
	baseBackoff time.Duration
}

// Make sure we conform to Completer interface
var _ Completer = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if cfg.LLM.APIKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.LLM.APIKey),
		// retries are handled here so they share the per-call budget
		option.WithMaxRetries(0),
	}
	if cfg.LLM.APIURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.APIURL))
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       cfg.LLM.DefaultModel,
		timeout:     cfg.LLMTimeout(),
		maxRetries:  cfg.LLM.MaxRetries,
		baseBackoff: DefaultBaseBackoff,
	}, nil
}

// WithBackoff overrides the base retry backoff.
func (c *OpenAIClient) WithBackoff(d time.Duration) *OpenAIClient {
	c.baseBackoff = d
	return c
}

// Complete issues one chat completion. Rate limits, server errors and
// timeouts are retried with exponential backoff; each attempt gets the
// configured timeout.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff << (attempt - 1)
			if backoff > MaxBackoff {
				backoff = MaxBackoff
			}
			zap.S().Named("llm").Debugw("retrying completion", "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-ctx.Done():
				return CompletionResponse{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.complete(ctx, model, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || !isRetryable(err) {
			return CompletionResponse{}, err
		}
	}
	return CompletionResponse{}, fmt.Errorf("%w: %v", ErrRetriesExhaust, lastErr)
}

func (c *OpenAIClient) complete(ctx context.Context, model string, req CompletionRequest) (CompletionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{
				Type: "json_object",
			},
		}
	}

	completion, err := c.client.Chat.Completions.New(callCtx, params)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("LLM API call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return CompletionResponse{}, ErrEmptyResponse
	}
	return CompletionResponse{
		Content:    completion.Choices[0].Message.Content,
		Model:      string(completion.Model),
		TokensUsed: int(completion.Usage.TotalTokens),
	}, nil
}

func isRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
