package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/blogifyhq/blogify/internal/config"
)

// Failure taxonomy for the completion upstream. Only the first two are
// recoverable: the caller substitutes a fallback reply instead of failing the
// request. The rest propagate.
var (
	ErrServiceOverloaded    = errors.New("ai service overloaded")
	ErrRateLimited          = errors.New("ai rate limit exceeded")
	ErrAuthenticationFailed = errors.New("ai api key authentication failed")
	ErrUpstream             = errors.New("ai upstream failure")
)

// Gateway sends assembled prompts to Gemini and maps transport/quota
// failures to the typed errors above.
type Gateway struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGateway creates a Gemini-backed gateway.
func NewGateway(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Gateway, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gateway{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Complete executes one prompt against the model and returns the reply text.
// The call is bounded by the configured timeout; a hung upstream would
// otherwise stall the whole request.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		mapped := classifyUpstreamError(err)
		g.logger.Warn("gemini completion failed", zap.Error(err))
		return "", mapped
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return text, nil
}

// classifyUpstreamError folds the upstream status code into the failure
// taxonomy. 503 and 429 are the transient kinds; 401 is an operator-facing
// configuration defect and is never retried.
func classifyUpstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %s", ErrServiceOverloaded, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrAuthenticationFailed, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
