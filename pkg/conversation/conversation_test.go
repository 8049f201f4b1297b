package conversation_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/standuphq/standup/pkg/conversation"
)

var _ = Describe("History", func() {
	var h *conversation.History

	BeforeEach(func() {
		h = conversation.New()
	})

	Describe("Append", func() {
		It("assigns monotonically increasing sequence indexes", func() {
			first := h.Append(conversation.OriginHuman, "build me a calculator")
			second := h.Append(conversation.Origin("BusinessAnalyst"), "here is the plan")

			Expect(first.Seq).To(Equal(0))
			Expect(second.Seq).To(Equal(1))
			Expect(h.Len()).To(Equal(2))
		})

		It("preserves origin and content verbatim", func() {
			h.Append(conversation.Origin("ProductOwner"), "  READY FOR USER APPROVAL  ")

			turn, ok := h.Latest()
			Expect(ok).To(BeTrue())
			Expect(turn.Origin).To(Equal(conversation.Origin("ProductOwner")))
			Expect(turn.Content).To(Equal("  READY FOR USER APPROVAL  "))
		})
	})

	Describe("LatestMatching", func() {
		It("returns the most recent matching turn, not the first", func() {
			h.Append(conversation.OriginHuman, "first human")
			h.Append(conversation.Origin("SoftwareEngineer"), "code")
			h.Append(conversation.OriginHuman, "second human")

			turn, ok := h.LatestMatching(func(t conversation.Turn) bool {
				return t.Origin.Human()
			})
			Expect(ok).To(BeTrue())
			Expect(turn.Content).To(Equal("second human"))
			Expect(turn.Seq).To(Equal(2))
		})

		It("reports not found on an empty history", func() {
			_, ok := h.LatestMatching(func(conversation.Turn) bool { return true })
			Expect(ok).To(BeFalse())
		})

		It("reports not found when nothing matches", func() {
			h.Append(conversation.OriginHuman, "hello")

			_, ok := h.LatestMatching(func(t conversation.Turn) bool {
				return strings.Contains(t.Content, "absent")
			})
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Turns", func() {
		It("returns a copy that does not alias the log", func() {
			h.Append(conversation.OriginHuman, "original")

			turns := h.Turns()
			turns[0].Content = "mutated"

			latest, _ := h.Latest()
			Expect(latest.Content).To(Equal("original"))
		})
	})
})
