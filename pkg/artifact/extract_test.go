package artifact_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/standuphq/standup/pkg/artifact"
	"github.com/standuphq/standup/pkg/conversation"
)

var _ = Describe("Extract", func() {
	var h *conversation.History

	BeforeEach(func() {
		h = conversation.New()
	})

	It("returns the body of a fenced html block", func() {
		h.Append(conversation.Origin("SoftwareEngineer"),
			"Here you go:\n```html\n<html><body>calculator</body></html>\n```\nLet me know.")

		content, err := artifact.Extract(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal("<html><body>calculator</body></html>"))
	})

	It("returns the block from the most recent turn when several exist", func() {
		h.Append(conversation.Origin("SoftwareEngineer"), "```html\n<p>draft one</p>\n```")
		h.Append(conversation.Origin("ProductOwner"), "needs a fix")
		h.Append(conversation.Origin("SoftwareEngineer"), "```html\n<p>draft two</p>\n```")

		content, err := artifact.Extract(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal("<p>draft two</p>"))
	})

	It("matches the fence tag case-insensitively", func() {
		h.Append(conversation.Origin("SoftwareEngineer"), "```HTML\n<p>upper</p>\n```")

		content, err := artifact.Extract(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal("<p>upper</p>"))
	})

	It("spans multi-line bodies", func() {
		h.Append(conversation.Origin("SoftwareEngineer"),
			"```html\n<html>\n<head><title>t</title></head>\n<body></body>\n</html>\n```")

		content, err := artifact.Extract(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(ContainSubstring("<title>t</title>"))
	})

	It("reports ErrNoArtifact when no html fence exists", func() {
		h.Append(conversation.Origin("SoftwareEngineer"), "```js\nconsole.log(1)\n```")

		_, err := artifact.Extract(h)
		Expect(err).To(MatchError(artifact.ErrNoArtifact))
	})
})

var _ = Describe("Save", func() {
	It("overwrites the artifact file verbatim", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "index.html")

		Expect(artifact.Save(path, "<p>one</p>")).To(Succeed())
		Expect(artifact.Save(path, "<p>two</p>")).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("<p>two</p>"))
	})
})

var _ = Describe("PublishResult", func() {
	It("treats no-op publishes as successful", func() {
		Expect(artifact.PublishResult{Status: artifact.PublishNoOp}.OK()).To(BeTrue())
		Expect(artifact.PublishResult{Status: artifact.PublishSuccess}.OK()).To(BeTrue())
		Expect(artifact.PublishResult{Status: artifact.PublishFailed}.OK()).To(BeFalse())
	})
})

var _ = Describe("RecoverySteps", func() {
	It("names the artifact and branch in the manual commands", func() {
		steps := artifact.RecoverySteps("index.html", "main")
		Expect(steps).To(HaveLen(3))
		Expect(steps[0]).To(Equal("git add index.html"))
		Expect(steps[2]).To(Equal("git push origin main"))
	})
})
