package orchestrator

import "errors"

var (
	// ErrInvocation wraps completion failures for the current turn. The
	// session aborts without retrying; history up to the failed turn is
	// preserved for inspection.
	ErrInvocation = errors.New("agent invocation failed")

	// ErrRoundCapExceeded is returned when rotation exhausts its round cap
	// without the Product Owner signaling readiness. No artifact is
	// extracted or published.
	ErrRoundCapExceeded = errors.New("maximum rounds reached without approval")
)
