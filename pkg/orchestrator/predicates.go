package orchestrator

import (
	"strings"

	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/persona"
)

// readinessSignal is the magic phrase the Product Owner persona is
// instructed to emit when the deliverable is ready for sign-off.
const readinessSignal = "READY FOR USER APPROVAL"

// approvalWord is the exact human reply that releases the artifact.
const approvalWord = "APPROVED"

// ProductOwnerReady reports whether the most recent Product Owner turn
// signals readiness for human approval.
//
// This is a case-insensitive substring test on free-form model output, so
// incidental mentions of the phrase are accepted false positives. The
// matching strategy lives only here; swapping it (structured tag, tool-call
// signal) must not touch the scheduler.
func ProductOwnerReady(h *conversation.History) bool {
	turn, ok := h.LatestMatching(func(t conversation.Turn) bool {
		return t.Origin == conversation.Origin(persona.ProductOwner)
	})
	if !ok {
		return false
	}
	return strings.Contains(strings.ToUpper(turn.Content), readinessSignal)
}

// HumanApproved reports whether the most recent human turn is exactly the
// approval word, ignoring case and surrounding whitespace. Any other human
// input counts as feedback, not approval.
func HumanApproved(h *conversation.History) bool {
	turn, ok := h.LatestMatching(func(t conversation.Turn) bool {
		return t.Origin.Human()
	})
	if !ok {
		return false
	}
	return strings.ToUpper(strings.TrimSpace(turn.Content)) == approvalWord
}
