package orchestrator

import "github.com/standuphq/standup/pkg/persona"

// Phase says whether the next input comes from a scheduled agent or from the
// human approval prompt.
type Phase int

const (
	// PhaseRotating means the scheduler picks the next agent in rotation.
	PhaseRotating Phase = iota

	// PhaseAwaitingApproval means rotation is frozen until the human
	// approves or sends feedback.
	PhaseAwaitingApproval
)

// String implements fmt.Stringer for log fields.
func (p Phase) String() string {
	switch p {
	case PhaseRotating:
		return "rotating"
	case PhaseAwaitingApproval:
		return "awaiting-approval"
	}
	return "unknown"
}

// State tracks rotation progress for one session. Created at session start,
// mutated only by the scheduler and the approval gate, discarded when the
// session ends.
type State struct {
	// AgentIndex is the rotation position of the next agent to speak.
	AgentIndex int

	// Round counts completed agent turns and bounds total rotations.
	Round int

	// Phase governs the next input source.
	Phase Phase
}

// NewState returns the session-start state: rotation at the first agent,
// zero completed rounds.
func NewState() *State {
	return &State{}
}

// Advance moves rotation one position forward and counts the completed turn.
// n is the rotation length.
func (s *State) Advance(n int) {
	s.AgentIndex = (s.AgentIndex + 1) % n
	s.Round++
}

// AwaitApproval freezes rotation at the current position and hands control
// to the approval gate. AgentIndex is deliberately left unchanged so that a
// declined approval resumes at the same speaker.
func (s *State) AwaitApproval() {
	s.Phase = PhaseAwaitingApproval
}

// ResumeAtProductOwner re-enters rotation at the Product Owner position so
// the human's feedback is reacted to by the Product Owner first, not by the
// Business Analyst.
func (s *State) ResumeAtProductOwner() {
	s.Phase = PhaseRotating
	s.AgentIndex = len(persona.Rotation()) - 1
}
