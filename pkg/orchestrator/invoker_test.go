package orchestrator_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/llm"
	"github.com/standuphq/standup/pkg/orchestrator"
	"github.com/standuphq/standup/pkg/persona"
)

var _ = Describe("ProjectMessages", func() {
	var h *conversation.History

	BeforeEach(func() {
		h = conversation.New()
	})

	It("labels every message with its speaker", func() {
		h.Append(conversation.OriginHuman, "build a calculator")
		h.Append(conversation.Origin(persona.BusinessAnalyst), "here is the plan")

		messages := orchestrator.ProjectMessages(persona.SoftwareEngineer, h)
		Expect(messages[0].Content).To(Equal("[User]: build a calculator"))
		Expect(messages[0].Role).To(Equal(llm.RoleUser))
		Expect(messages[1].Content).To(Equal("[BusinessAnalyst]: here is the plan"))
		Expect(messages[1].Role).To(Equal(llm.RoleAssistant))
	})

	It("appends a synthetic user message when the last turn is agent-authored", func() {
		h.Append(conversation.OriginHuman, "build a calculator")
		h.Append(conversation.Origin(persona.BusinessAnalyst), "here is the plan")

		messages := orchestrator.ProjectMessages(persona.SoftwareEngineer, h)
		last := messages[len(messages)-1]
		Expect(last.Role).To(Equal(llm.RoleUser))
		Expect(last.Content).To(Equal("[System]: Please continue as SoftwareEngineer."))
	})

	It("adds nothing when the last turn is human-authored", func() {
		h.Append(conversation.OriginHuman, "build a calculator")

		messages := orchestrator.ProjectMessages(persona.BusinessAnalyst, h)
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].Role).To(Equal(llm.RoleUser))
	})
})

var _ = Describe("Invoker", func() {
	It("sends the persona's system prompt and keeps the synthetic message out of history", func() {
		completer := &fakeCompleter{script: []string{"the plan"}}
		inv := orchestrator.NewInvoker(completer, persona.NewRegistry(), "claude-sonnet-4-20250514", 4096)

		h := conversation.New()
		h.Append(conversation.OriginHuman, "build a calculator")
		h.Append(conversation.Origin(persona.BusinessAnalyst), "draft plan")

		text, err := inv.Respond(context.Background(), persona.SoftwareEngineer, h)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("the plan"))

		Expect(completer.requests).To(HaveLen(1))
		req := completer.requests[0]
		Expect(req.System).To(ContainSubstring("Software Engineer"))
		Expect(req.Model).To(Equal("claude-sonnet-4-20250514"))
		Expect(req.MaxTokens).To(Equal(4096))

		// Outbound sequence ends with the synthetic user-role message.
		last := req.Messages[len(req.Messages)-1]
		Expect(last.Role).To(Equal(llm.RoleUser))
		Expect(last.Content).To(ContainSubstring("Please continue as"))

		// The shared history is untouched by the projection.
		Expect(h.Len()).To(Equal(2))
		_, found := h.LatestMatching(func(t conversation.Turn) bool {
			return t.Content == last.Content
		})
		Expect(found).To(BeFalse())
	})

	It("fails with the persona error for an unknown identity", func() {
		completer := &fakeCompleter{}
		inv := orchestrator.NewInvoker(completer, persona.NewRegistry(), "m", 16)

		h := conversation.New()
		h.Append(conversation.OriginHuman, "hi")

		_, err := inv.Respond(context.Background(), persona.Identity("ScrumMaster"), h)
		Expect(err).To(MatchError(persona.ErrUnknownIdentity))
		Expect(completer.requests).To(BeEmpty())
	})
})
