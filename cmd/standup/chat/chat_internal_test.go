package chatcmder

import (
	"bufio"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/standuphq/standup/pkg/llm"
)

type stubCompleter struct {
	requests []*llm.ChatRequest
}

func (s *stubCompleter) Name() string {
	return "stub"
}

func (s *stubCompleter) Complete(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	s.requests = append(s.requests, req)
	return &llm.ChatResponse{Message: llm.NewAssistantMessage("ok")}, nil
}

var _ = Describe("chat loop", func() {
	var (
		stub  *stubCompleter
		cmder *chatCommander
	)

	BeforeEach(func() {
		stub = &stubCompleter{}
		cmder = &chatCommander{
			model:     "test-model",
			maxTokens: 128,
			completer: stub,
			logger:    zap.NewNop(),
		}
	})

	It("exits on /exit without sending anything", func() {
		err := cmder.loop(context.Background(), bufio.NewReader(strings.NewReader("/exit\n")))

		Expect(err).ToNot(HaveOccurred())
		Expect(stub.requests).To(BeEmpty())
	})

	It("sends a final line that arrives without a trailing newline", func() {
		err := cmder.loop(context.Background(), bufio.NewReader(strings.NewReader("hello there")))

		Expect(err).ToNot(HaveOccurred())
		Expect(stub.requests).To(HaveLen(1))
		Expect(stub.requests[0].Messages[0].Content).To(Equal("hello there"))
	})

	It("accepts a pasted message far longer than one read buffer", func() {
		long := strings.Repeat("a", 128*1024)

		err := cmder.loop(context.Background(), bufio.NewReader(strings.NewReader(long+"\n/exit\n")))

		Expect(err).ToNot(HaveOccurred())
		Expect(stub.requests).To(HaveLen(1))
		Expect(stub.requests[0].Messages[0].Content).To(HaveLen(128 * 1024))
	})

	It("skips blank lines", func() {
		err := cmder.loop(context.Background(), bufio.NewReader(strings.NewReader("\n\n/exit\n")))

		Expect(err).ToNot(HaveOccurred())
		Expect(stub.requests).To(BeEmpty())
	})

	It("carries the whole conversation forward on each send", func() {
		err := cmder.loop(context.Background(), bufio.NewReader(strings.NewReader("first\nsecond\n/exit\n")))

		Expect(err).ToNot(HaveOccurred())
		Expect(stub.requests).To(HaveLen(2))
		Expect(stub.requests[1].Messages).To(HaveLen(3))
		Expect(stub.requests[1].Messages[2].Content).To(Equal("second"))
	})
})
