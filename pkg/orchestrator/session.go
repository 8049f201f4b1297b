// Package orchestrator drives the round-robin collaboration of the three
// role agents over one shared conversation history, gates release behind
// explicit human approval, and hands the approved deliverable to the
// artifact pipeline.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/standuphq/standup/pkg/artifact"
	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/llm/provider"
	"github.com/standuphq/standup/pkg/persona"
)

// DefaultMaxRounds is the safety cap on completed agent turns.
const DefaultMaxRounds = 20

// ApprovalPrompt is the label shown when the gate asks for the human's
// decision.
const ApprovalPrompt = "Type 'APPROVED' to publish, or provide feedback: "

// Prompter is the session's suspension point for human input. The run
// command wires an interactive reader; tests supply scripted inputs.
type Prompter interface {
	// Prompt blocks until the human provides one line of text.
	Prompt(ctx context.Context, label string) (string, error)
}

// Hooks lets the caller observe the session without owning the loop.
// Either field may be nil.
type Hooks struct {
	// TurnStarted fires before an agent invocation begins.
	TurnStarted func(id persona.Identity)

	// TurnRecorded fires after any turn (agent or human) is appended.
	TurnRecorded func(turn conversation.Turn)
}

// Config holds the tunable parameters of one session.
type Config struct {
	Model        string
	MaxTokens    int
	MaxRounds    int
	ArtifactPath string
	Branch       string
}

// Outcome describes how a completed session ended. Sessions that abort
// (invocation failure, round cap) return an error instead.
type Outcome struct {
	// SessionID tags logs and the publish commit.
	SessionID string

	// Rounds is the number of completed agent turns.
	Rounds int

	// HasArtifact is false when approval arrived but no fenced html block
	// existed anywhere in the history. Publishing is skipped in that case.
	HasArtifact bool

	// ArtifactPath is where the artifact was written when HasArtifact.
	ArtifactPath string

	// Publish is the publish result when HasArtifact.
	Publish artifact.PublishResult
}

// Session owns one orchestration run: the history, the rotation state, and
// the approval gate. Single logical thread of control; exactly one agent
// invocation or human-input wait is outstanding at any time.
type Session struct {
	id        string
	invoker   *Invoker
	prompter  Prompter
	publisher artifact.Publisher
	cfg       Config
	hooks     Hooks
	history   *conversation.History
	logger    *zap.Logger
}

// NewSession assembles a session. Zero config fields fall back to defaults;
// the model name must be set by the caller (the config layer owns that
// default).
func NewSession(completer provider.Completer, personas *persona.Registry, prompter Prompter, publisher artifact.Publisher, cfg Config, hooks Hooks, logger *zap.Logger) *Session {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if cfg.ArtifactPath == "" {
		cfg.ArtifactPath = artifact.DefaultPath
	}
	if cfg.Branch == "" {
		cfg.Branch = artifact.DefaultBranch
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		id:        uuid.NewString(),
		invoker:   NewInvoker(completer, personas, cfg.Model, cfg.MaxTokens),
		prompter:  prompter,
		publisher: publisher,
		cfg:       cfg,
		hooks:     hooks,
		history:   conversation.New(),
		logger:    logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// History exposes the conversation log for diagnostics. It remains readable
// after Run returns, including after an aborted session.
func (s *Session) History() *conversation.History {
	return s.history
}

// Run executes the orchestration loop for one user request and blocks until
// the session completes, aborts, or hits the round cap.
func (s *Session) Run(ctx context.Context, request string) (*Outcome, error) {
	rotation := persona.Rotation()
	state := NewState()

	s.record(conversation.OriginHuman, request)
	s.logger.Info("session started",
		zap.String("session_id", s.id),
		zap.String("model", s.cfg.Model),
		zap.Int("max_rounds", s.cfg.MaxRounds),
	)

	for state.Round < s.cfg.MaxRounds {
		if state.Phase == PhaseAwaitingApproval {
			input, err := s.prompter.Prompt(ctx, ApprovalPrompt)
			if err != nil {
				return nil, fmt.Errorf("reading approval input: %w", err)
			}
			s.record(conversation.OriginHuman, input)

			if HumanApproved(s.history) {
				s.logger.Info("approval received", zap.String("session_id", s.id))
				return s.finish(ctx, state)
			}

			// Feedback re-enters rotation at the Product Owner, who
			// reacts to the human's notes before anyone else speaks.
			state.ResumeAtProductOwner()
		}

		id := rotation[state.AgentIndex%len(rotation)]
		if s.hooks.TurnStarted != nil {
			s.hooks.TurnStarted(id)
		}

		text, err := s.invoker.Respond(ctx, id, s.history)
		if err != nil {
			s.logger.Error("agent turn failed",
				zap.String("session_id", s.id),
				zap.String("agent", string(id)),
				zap.Error(err),
			)
			return nil, err
		}
		s.record(conversation.Origin(id), text)

		if id == persona.ProductOwner && ProductOwnerReady(s.history) {
			s.logger.Info("product owner signaled readiness",
				zap.String("session_id", s.id),
				zap.Int("round", state.Round),
			)
			state.AwaitApproval()
			continue
		}

		state.Advance(len(rotation))
	}

	s.logger.Warn("round cap exceeded",
		zap.String("session_id", s.id),
		zap.Int("rounds", state.Round),
	)
	return nil, fmt.Errorf("%w (cap %d)", ErrRoundCapExceeded, s.cfg.MaxRounds)
}

// finish runs the post-approval pipeline: extract, persist, publish.
// A publish failure is recovered locally; the session still completes.
func (s *Session) finish(ctx context.Context, state *State) (*Outcome, error) {
	outcome := &Outcome{
		SessionID: s.id,
		Rounds:    state.Round,
	}

	content, err := artifact.Extract(s.history)
	if err != nil {
		// ErrNoArtifact is an incomplete completion, not a failure.
		s.logger.Warn("no artifact found at approval", zap.String("session_id", s.id))
		return outcome, nil
	}

	if err := artifact.Save(s.cfg.ArtifactPath, content); err != nil {
		return nil, err
	}
	outcome.HasArtifact = true
	outcome.ArtifactPath = s.cfg.ArtifactPath

	commitMessage := fmt.Sprintf("Auto-publish approved app [standup session %s]", shortID(s.id))
	outcome.Publish = s.publisher.Publish(ctx, s.cfg.ArtifactPath, s.cfg.Branch, commitMessage)
	if !outcome.Publish.OK() {
		s.logger.Error("publish failed",
			zap.String("session_id", s.id),
			zap.String("branch", s.cfg.Branch),
			zap.String("detail", outcome.Publish.Message),
		)
	}

	return outcome, nil
}

func (s *Session) record(origin conversation.Origin, content string) {
	turn := s.history.Append(origin, content)
	if s.hooks.TurnRecorded != nil {
		s.hooks.TurnRecorded(turn)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
