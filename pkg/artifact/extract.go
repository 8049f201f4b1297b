// Package artifact extracts the approved HTML deliverable from a session's
// conversation history, persists it, and publishes it to a git remote.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/standuphq/standup/pkg/conversation"
)

// DefaultPath is the artifact file written on approval.
const DefaultPath = "index.html"

// ErrNoArtifact is returned when no fenced html block exists anywhere in the
// history. This is an incomplete-completion outcome, not a failure.
var ErrNoArtifact = errors.New("no fenced html block found in history")

// htmlFence matches a triple-backtick block tagged html, case-insensitively,
// across lines. The first capture group is the block body.
var htmlFence = regexp.MustCompile("(?is)```html\\s*(.*?)```")

// Extract scans the history backward and returns the body of the most recent
// fenced html block. Later turns win over earlier ones; within a turn the
// first block wins.
func Extract(h *conversation.History) (string, error) {
	turn, ok := h.LatestMatching(func(t conversation.Turn) bool {
		return htmlFence.MatchString(t.Content)
	})
	if !ok {
		return "", ErrNoArtifact
	}

	match := htmlFence.FindStringSubmatch(turn.Content)
	return strings.TrimSpace(match[1]), nil
}

// Save writes content verbatim to path, overwriting any prior artifact.
func Save(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return nil
}
