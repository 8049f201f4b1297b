// Package cliui provides reusable terminal UI helpers (spinners, step indicators,
// markdown rendering) for standup CLI commands.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	// SpeakerStyle renders agent names in transcript output.
	SpeakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	// PromptStyle renders prompts asking the human for input.
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// KeyStyle and ValueStyle render config key/value listings.
	KeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// DimStyle renders secondary metadata.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner animates a step indicator on a background goroutine. Start it
// when a blocking operation begins and Stop it when the result is known;
// Stop replaces the animation with a ✓ or ✗ checkmark and elapsed time.
type Spinner struct {
	w     io.Writer
	msg   string
	start time.Time
	done  chan struct{}
	mu    sync.Mutex
}

// StartSpinner begins animating msg on w and returns the running spinner.
func StartSpinner(w io.Writer, msg string) *Spinner {
	s := &Spinner{
		w:     w,
		msg:   msg,
		start: time.Now(),
		done:  make(chan struct{}),
	}
	go s.animate()
	return s
}

func (s *Spinner) animate() {
	frame := 0
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r  %s %s",
			spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
			s.msg,
		)
		s.mu.Unlock()

		select {
		case <-s.done:
			return
		case <-ticker.C:
			frame++
		}
	}
}

// Stop ends the animation, clearing the spinner line and printing the
// final mark for err with the elapsed time. Stop must be called at most
// once.
func (s *Spinner) Stop(err error) {
	close(s.done)
	elapsed := time.Since(s.start)

	s.mu.Lock()
	fmt.Fprintf(s.w, "\r  %s %s %s\n",
		Mark(err),
		s.msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)
	s.mu.Unlock()
}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	s := StartSpinner(w, msg)
	err := fn()
	s.Stop(err)
	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Speaker renders an agent's transcript label, e.g. "[ProductOwner]".
func Speaker(name string) string {
	return SpeakerStyle.Render("[" + name + "]")
}

// RenderMarkdown renders markdown content for terminal display using glamour.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return rendered, nil
}
