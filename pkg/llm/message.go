package llm

// Message roles. Providers that distinguish more roles map onto these two
// plus the request-level system instruction.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a provider-facing conversation.
// Multi-speaker transcripts are flattened into this two-role stream by
// prefixing each message with a speaker label, so content here is plain text.
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // Text content
}

// NewUserMessage creates a user-role message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage creates an assistant-role message.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}
