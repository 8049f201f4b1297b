package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/standuphq/standup/pkg/artifact"
	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/orchestrator"
	"github.com/standuphq/standup/pkg/persona"
)

const readyWithCode = "Looks complete. READY FOR USER APPROVAL"

// appWithFence is a Software Engineer turn carrying the deliverable.
const appWithFence = "Here is the app:\n```html\n<html><body>app</body></html>\n```"

var _ = Describe("Session", func() {
	var (
		completer *fakeCompleter
		prompter  *scriptedPrompter
		publisher *recordingPublisher
		cfg       orchestrator.Config
	)

	BeforeEach(func() {
		completer = &fakeCompleter{}
		prompter = &scriptedPrompter{}
		publisher = &recordingPublisher{}
		cfg = orchestrator.Config{
			Model:        "claude-sonnet-4-20250514",
			MaxTokens:    4096,
			MaxRounds:    6,
			ArtifactPath: filepath.Join(GinkgoT().TempDir(), "index.html"),
			Branch:       "main",
		}
	})

	newSession := func(hooks orchestrator.Hooks) *orchestrator.Session {
		return orchestrator.NewSession(completer, persona.NewRegistry(), prompter, publisher, cfg, hooks, nil)
	}

	Describe("rotation", func() {
		It("cycles BusinessAnalyst, SoftwareEngineer, ProductOwner without a readiness signal", func() {
			var speakers []conversation.Origin
			hooks := orchestrator.Hooks{
				TurnRecorded: func(t conversation.Turn) {
					if !t.Origin.Human() {
						speakers = append(speakers, t.Origin)
					}
				},
			}

			_, err := newSession(hooks).Run(context.Background(), "build a calculator")
			Expect(err).To(MatchError(orchestrator.ErrRoundCapExceeded))

			Expect(speakers).To(Equal([]conversation.Origin{
				"BusinessAnalyst", "SoftwareEngineer", "ProductOwner",
				"BusinessAnalyst", "SoftwareEngineer", "ProductOwner",
			}))
		})

		It("never consults the approval gate without the readiness substring", func() {
			_, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).To(MatchError(orchestrator.ErrRoundCapExceeded))
			Expect(prompter.calls).To(BeZero())
		})

		It("performs no extraction or publish at the round cap", func() {
			_, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).To(MatchError(orchestrator.ErrRoundCapExceeded))

			Expect(publisher.paths).To(BeEmpty())
			_, statErr := os.Stat(cfg.ArtifactPath)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})

	Describe("approval gate", func() {
		BeforeEach(func() {
			completer.script = []string{"plan", appWithFence, readyWithCode}
		})

		It("publishes the extracted artifact when the human approves", func() {
			prompter.inputs = []string{"  Approved  "}
			publisher.result = artifact.PublishResult{Status: artifact.PublishSuccess}

			outcome, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.HasArtifact).To(BeTrue())
			Expect(outcome.Publish.OK()).To(BeTrue())
			Expect(publisher.paths).To(Equal([]string{cfg.ArtifactPath}))
			Expect(publisher.branches).To(Equal([]string{"main"}))

			data, readErr := os.ReadFile(cfg.ArtifactPath)
			Expect(readErr).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("<html><body>app</body></html>"))
		})

		It("routes feedback back to the ProductOwner, not the BusinessAnalyst", func() {
			completer.script = append(completer.script, readyWithCode)
			prompter.inputs = []string{"make the buttons bigger", "approved"}
			publisher.result = artifact.PublishResult{Status: artifact.PublishSuccess}

			var afterFeedback []persona.Identity
			sawFeedback := false
			hooks := orchestrator.Hooks{
				TurnStarted: func(id persona.Identity) {
					if sawFeedback {
						afterFeedback = append(afterFeedback, id)
					}
				},
				TurnRecorded: func(t conversation.Turn) {
					if t.Origin.Human() && t.Content == "make the buttons bigger" {
						sawFeedback = true
					}
				},
			}

			_, err := newSession(hooks).Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())
			Expect(afterFeedback).NotTo(BeEmpty())
			Expect(afterFeedback[0]).To(Equal(persona.ProductOwner))
		})

		It("records the human decision in history", func() {
			prompter.inputs = []string{"approved"}
			publisher.result = artifact.PublishResult{Status: artifact.PublishSuccess}

			session := newSession(orchestrator.Hooks{})
			_, err := session.Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())

			latest, ok := session.History().LatestMatching(func(t conversation.Turn) bool {
				return t.Origin.Human()
			})
			Expect(ok).To(BeTrue())
			Expect(latest.Content).To(Equal("approved"))
		})

		It("skips publishing when no html fence exists anywhere", func() {
			completer.script = []string{"plan", "code without a fence", readyWithCode}
			prompter.inputs = []string{"approved"}

			outcome, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.HasArtifact).To(BeFalse())
			Expect(publisher.paths).To(BeEmpty())
			_, statErr := os.Stat(cfg.ArtifactPath)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})

		It("still completes when the publish fails", func() {
			prompter.inputs = []string{"approved"}
			publisher.result = artifact.PublishResult{
				Status:  artifact.PublishFailed,
				Message: "git push failed: remote rejected",
			}

			outcome, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.HasArtifact).To(BeTrue())
			Expect(outcome.Publish.OK()).To(BeFalse())
			// The artifact stays on disk for manual recovery.
			_, statErr := os.Stat(cfg.ArtifactPath)
			Expect(statErr).NotTo(HaveOccurred())
		})

		It("treats a no-op publish as success", func() {
			prompter.inputs = []string{"approved"}
			publisher.result = artifact.PublishResult{Status: artifact.PublishNoOp}

			outcome, err := newSession(orchestrator.Hooks{}).Run(context.Background(), "build a calculator")
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Publish.OK()).To(BeTrue())
		})
	})

	Describe("invocation failures", func() {
		It("aborts the session but preserves history", func() {
			completer.err = context.DeadlineExceeded
			session := newSession(orchestrator.Hooks{})

			_, err := session.Run(context.Background(), "build a calculator")
			Expect(err).To(MatchError(orchestrator.ErrInvocation))

			// The user request is still inspectable.
			Expect(session.History().Len()).To(Equal(1))
			Expect(publisher.paths).To(BeEmpty())
		})
	})
})
