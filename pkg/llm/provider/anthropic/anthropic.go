// Package anthropic implements pkg/llm/provider's Completer against the
// Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/standuphq/standup/pkg/llm"
)

const (
	// DefaultModel is the model used when the config names none.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultBaseURL is the default Anthropic API URL.
	DefaultBaseURL = "https://api.anthropic.com"

	// apiVersion is the pinned Messages API revision.
	apiVersion = "2023-06-01"
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("anthropic API key is not set")

// Completer wraps the Anthropic Messages API.
type Completer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds configuration for the Anthropic completer.
type Config struct {
	// BaseURL is the API URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is the Anthropic API key. Required.
	APIKey string
}

// New creates a completer for the Anthropic Messages API.
func New(cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Completer{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			// LLM responses can be slow
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// Name returns "anthropic".
func (c *Completer) Name() string {
	return "anthropic"
}

// Complete sends one Messages API call and returns the assistant's reply.
// Exactly one outbound call per invocation; failures are not retried.
func (c *Completer) Complete(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	wireReq := anthropicRequest{
		Model:       req.Model,
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stop:        req.Stop,
	}
	for _, msg := range req.Messages {
		wireReq.Messages = append(wireReq.Messages, anthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	jsonBody, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var wireResp anthropicResponse
	if err := json.Unmarshal(body, &wireResp); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if wireResp.Error != nil {
			return nil, fmt.Errorf("anthropic returned status %d: %s: %s", resp.StatusCode, wireResp.Error.Type, wireResp.Error.Message)
		}
		return nil, fmt.Errorf("anthropic returned status %d: %s", resp.StatusCode, string(body))
	}

	var text string
	for _, block := range wireResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("anthropic returned no text content (stop_reason %q)", wireResp.StopReason)
	}

	var usage *llm.Usage
	if wireResp.Usage != nil {
		usage = &llm.Usage{
			PromptTokens:     wireResp.Usage.InputTokens,
			CompletionTokens: wireResp.Usage.OutputTokens,
			TotalTokens:      wireResp.Usage.InputTokens + wireResp.Usage.OutputTokens,
		}
	}

	return &llm.ChatResponse{
		Model:      wireResp.Model,
		CreatedAt:  time.Now(),
		Message:    llm.NewAssistantMessage(text),
		StopReason: wireResp.StopReason,
		Usage:      usage,
	}, nil
}
