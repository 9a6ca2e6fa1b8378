package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/checkin/internal/ports/secondary"
)

// TerminalNotifier prints submission notices.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminalNotifier creates a notifier writing to out.
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

// Notify implements secondary.Notifier.
func (n *TerminalNotifier) Notify(ctx context.Context, notice secondary.Notice) {
	var title string
	switch notice.Level {
	case secondary.NoticeSuccess:
		title = color.New(color.FgGreen, color.Bold).Sprint("✓ " + notice.Title)
	case secondary.NoticeWarning:
		title = color.New(color.FgYellow, color.Bold).Sprint("! " + notice.Title)
	default:
		title = color.New(color.FgRed, color.Bold).Sprint("✗ " + notice.Title)
	}
	fmt.Fprintln(n.out, title)
	if notice.Message != "" {
		fmt.Fprintf(n.out, "  %s\n", notice.Message)
	}
}
