package llm

// ChatRequest represents a provider-agnostic chat completion request.
// This is the internal representation handed to a provider client, which
// renders it into its own wire format.
type ChatRequest struct {
	// Model name (e.g., "claude-sonnet-4-20250514")
	Model string `json:"model"`

	// Conversation messages
	Messages []Message `json:"messages"`

	// System instruction (providers handle this separately from messages)
	System string `json:"system,omitempty"`

	// Maximum tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`

	// Generation parameters
	Temperature *float64 `json:"temperature,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}
