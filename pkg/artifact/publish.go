package artifact

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultBranch is the publish target when the config names none.
const DefaultBranch = "main"

// PublishStatus classifies the result of a publish attempt.
type PublishStatus int

const (
	// PublishSuccess means the artifact was committed and pushed.
	PublishSuccess PublishStatus = iota

	// PublishNoOp means nothing changed since the last publish. Treated
	// as success.
	PublishNoOp

	// PublishFailed means a git step failed. The artifact file remains on
	// disk and the session still completes.
	PublishFailed
)

// PublishResult carries the publish outcome and, on failure, the git error
// text for the user's manual recovery.
type PublishResult struct {
	Status  PublishStatus
	Message string
}

// OK reports whether the publish counts as successful (including no-ops).
func (r PublishResult) OK() bool {
	return r.Status != PublishFailed
}

// Publisher hands a persisted artifact to a version-control remote.
type Publisher interface {
	Publish(ctx context.Context, path, branch, commitMessage string) PublishResult
}

// GitPublisher publishes by staging, committing, and pushing with the native
// git CLI in dir (empty means the process working directory).
type GitPublisher struct {
	dir string
}

// NewGitPublisher creates a publisher operating in dir.
func NewGitPublisher(dir string) *GitPublisher {
	return &GitPublisher{dir: dir}
}

// Publish runs git add / commit / push for the artifact. A commit that finds
// nothing to commit is a no-op, not a failure.
func (p *GitPublisher) Publish(ctx context.Context, path, branch, commitMessage string) PublishResult {
	if _, err := p.run(ctx, "add", path); err != nil {
		return PublishResult{Status: PublishFailed, Message: err.Error()}
	}

	out, err := p.run(ctx, "commit", "-m", commitMessage)
	if err != nil {
		// git commit exits non-zero when there is nothing new to commit
		if strings.Contains(out, "nothing to commit") || strings.Contains(err.Error(), "nothing to commit") {
			return PublishResult{Status: PublishNoOp, Message: fmt.Sprintf("%s unchanged since last publish", path)}
		}
		return PublishResult{Status: PublishFailed, Message: err.Error()}
	}

	if _, err := p.run(ctx, "push", "origin", branch); err != nil {
		return PublishResult{Status: PublishFailed, Message: err.Error()}
	}

	return PublishResult{Status: PublishSuccess}
}

// RecoverySteps returns the manual git commands equivalent to Publish, shown
// to the user when a publish attempt fails.
func RecoverySteps(path, branch string) []string {
	return []string{
		fmt.Sprintf("git add %s", path),
		fmt.Sprintf("git commit -m 'update %s'", path),
		fmt.Sprintf("git push origin %s", branch),
	}
}

func (p *GitPublisher) run(ctx context.Context, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, "git", args...)
	cmd.Dir = p.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		combined := strings.TrimSpace(stdout.String() + "\n" + stderr.String())
		if combined == "" {
			combined = err.Error()
		}
		return stdout.String(), fmt.Errorf("git %s failed: %s", strings.Join(args, " "), combined)
	}

	return stdout.String(), nil
}
