// Package conversation provides the shared, append-only conversation log for
// one orchestration session. Every component reads the same History; only the
// session loop appends to it. Turns are never edited or reordered after
// append, so a finished session can be replayed exactly as it happened.
package conversation

// Origin identifies who authored a turn. It is either OriginHuman or the
// string name of an agent identity.
type Origin string

// OriginHuman marks turns typed by the human user.
const OriginHuman Origin = "User"

// Human returns true when the turn came from the human user rather than an
// agent completion.
func (o Origin) Human() bool {
	return o == OriginHuman
}

// Turn is one recorded utterance. Immutable once appended; Seq is the only
// meaningful ordering.
type Turn struct {
	Origin  Origin `json:"origin"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// History is an ordered sequence of turns owned by a single session.
// The zero value is ready to use.
type History struct {
	turns []Turn
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Append records a turn at the end of the log and assigns its sequence
// index. It never fails.
func (h *History) Append(origin Origin, content string) Turn {
	turn := Turn{
		Origin:  origin,
		Content: content,
		Seq:     len(h.turns),
	}
	h.turns = append(h.turns, turn)
	return turn
}

// LatestMatching scans from the most recent turn backward and returns the
// first turn satisfying pred. The second return is false when no turn
// matches.
func (h *History) LatestMatching(pred func(Turn) bool) (Turn, bool) {
	for i := len(h.turns) - 1; i >= 0; i-- {
		if pred(h.turns[i]) {
			return h.turns[i], true
		}
	}
	return Turn{}, false
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns a copy of the log in chronological order. Callers cannot
// mutate the history through the returned slice.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Latest returns the most recent turn. The second return is false on an
// empty history.
func (h *History) Latest() (Turn, bool) {
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}
