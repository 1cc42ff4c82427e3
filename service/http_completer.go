package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/logging"
	"github.com/ludo-technologies/srcscan/internal/version"
)

// DefaultCompletionEndpoint is the OpenAI-compatible chat completions URL
const DefaultCompletionEndpoint = "https://api.openai.com/v1/chat/completions"

const (
	completionMaxTokens   = 4000
	completionTemperature = 0.7
	completionMaxRetries  = 2
	completionRetryDelay  = 500 * time.Millisecond
)

// HTTPCompleter implements domain.TextCompleter over an OpenAI-compatible
// chat completions API
type HTTPCompleter struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPCompleter creates a completer for the given endpoint and model
func NewHTTPCompleter(endpoint, model, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPCompleter {
	if endpoint == "" {
		endpoint = DefaultCompletionEndpoint
	}
	return &HTTPCompleter{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.OrDiscard(logger),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the first choice
func (c *HTTPCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", domain.NewInternalError("failed to encode completion request", err)
	}

	var lastErr error
	for attempt := 0; attempt <= completionMaxRetries; attempt++ {
		if attempt > 0 {
			delay := completionRetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return "", domain.NewExternalServiceError("completion cancelled", ctx.Err())
			case <-time.After(delay):
			}
			c.logger.Debug("retrying completion request", "attempt", attempt+1, "endpoint", c.endpoint)
		}

		text, retry, err := c.do(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return "", domain.NewExternalServiceError("text completion failed", lastErr)
}

// do performs one request; retry reports whether the failure is transient
func (c *HTTPCompleter) do(ctx context.Context, body []byte) (text string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "srcscan/"+version.Version)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("server returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", false, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
		}
		return "", false, fmt.Errorf("invalid completion response: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", false, fmt.Errorf("completion API error: %s", msg)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}
