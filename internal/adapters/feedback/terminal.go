// Package feedback emits the per-outcome signals of a submission: a
// terminal cue for the operator and counters for monitoring.
package feedback

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/checkin/internal/ports/secondary"
)

// TerminalSignaler rings the bell a different number of times per outcome
// and prints a coloured status tag.
type TerminalSignaler struct {
	w io.Writer
}

// NewTerminalSignaler creates a signaler writing to w.
func NewTerminalSignaler(w io.Writer) *TerminalSignaler {
	return &TerminalSignaler{w: w}
}

// Signal implements secondary.OutcomeSignaler.
func (s *TerminalSignaler) Signal(ctx context.Context, outcome secondary.Outcome) {
	var (
		bells int
		tag   string
	)
	switch outcome {
	case secondary.OutcomeSuccess:
		bells, tag = 1, color.New(color.FgGreen, color.Bold).Sprint("[SAVED]")
	case secondary.OutcomeUnverified:
		bells, tag = 2, color.New(color.FgYellow, color.Bold).Sprint("[UNVERIFIED]")
	case secondary.OutcomeWriteFailure:
		bells, tag = 3, color.New(color.FgRed, color.Bold).Sprint("[NOT SAVED]")
	default:
		return
	}
	fmt.Fprintf(s.w, "%s%s\n", strings.Repeat("\a", bells), tag)
}

// Multi fans a signal out to several signalers in order.
type Multi []secondary.OutcomeSignaler

// Signal implements secondary.OutcomeSignaler.
func (m Multi) Signal(ctx context.Context, outcome secondary.Outcome) {
	for _, s := range m {
		s.Signal(ctx, outcome)
	}
}
