package provider

import (
	"context"

	"github.com/standuphq/standup/pkg/llm"
)

// Completer defines the interface for chat completion backends.
// Implementations make exactly one provider call per invocation: no retries,
// no caching. A provider failure propagates to the caller unchanged.
type Completer interface {
	// Name returns the canonical provider name (e.g., "anthropic")
	Name() string

	// Complete sends the request to the provider and returns the assistant's
	// response. Blocks until the provider answers or ctx is done.
	Complete(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
}
