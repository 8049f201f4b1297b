package orchestrator

import (
	"context"
	"fmt"

	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/llm"
	"github.com/standuphq/standup/pkg/llm/provider"
	"github.com/standuphq/standup/pkg/persona"
)

// Invoker wraps one completion call per agent turn. It projects the shared
// multi-speaker history into the flat alternating-role stream chat backends
// expect, by prefixing every message with a speaker label.
type Invoker struct {
	completer provider.Completer
	personas  *persona.Registry
	model     string
	maxTokens int
}

// NewInvoker creates an invoker over the given completion backend.
func NewInvoker(completer provider.Completer, personas *persona.Registry, model string, maxTokens int) *Invoker {
	return &Invoker{
		completer: completer,
		personas:  personas,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Respond produces the next turn's text for the given identity. Exactly one
// call to the completion backend; a backend failure wraps ErrInvocation and
// aborts the turn.
func (inv *Invoker) Respond(ctx context.Context, id persona.Identity, history *conversation.History) (string, error) {
	system, err := inv.personas.Lookup(id)
	if err != nil {
		return "", err
	}

	req := &llm.ChatRequest{
		Model:     inv.model,
		System:    system,
		MaxTokens: inv.maxTokens,
		Messages:  ProjectMessages(id, history),
	}

	resp, err := inv.completer.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvocation, id, err)
	}

	return resp.Message.Content, nil
}

// ProjectMessages renders the history into the provider-facing message
// sequence. Each turn carries a "[<speaker>]: " label so the transcript can
// be reconstructed from the two-role stream.
//
// Chat backends require the last message to be user-role. When the true last
// turn is agent-authored, a synthetic user message asking id to continue is
// appended. That message exists only for the single outbound call and is
// never stored in the shared history.
func ProjectMessages(id persona.Identity, history *conversation.History) []llm.Message {
	turns := history.Turns()
	messages := make([]llm.Message, 0, len(turns)+1)
	for _, turn := range turns {
		label := fmt.Sprintf("[%s]: ", turn.Origin)
		if turn.Origin.Human() {
			messages = append(messages, llm.NewUserMessage(label+turn.Content))
			continue
		}
		messages = append(messages, llm.NewAssistantMessage(label+turn.Content))
	}

	if len(messages) > 0 && messages[len(messages)-1].Role == llm.RoleAssistant {
		messages = append(messages, llm.NewUserMessage(fmt.Sprintf("[System]: Please continue as %s.", id)))
	}

	return messages
}
