package secondary

import (
	"context"
	"io"
)

// Outcome is the terminal result of one submission attempt.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeWriteFailure Outcome = "write_failure"
	OutcomeUnverified   Outcome = "unverified"
)

// OutcomeSignaler emits a distinct tactile/audible/metric signal per outcome.
type OutcomeSignaler interface {
	Signal(ctx context.Context, outcome Outcome)
}

// NoticeLevel grades a user-facing notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message shown to the user after a submission.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// ReportArchive stores generated reports and exports.
type ReportArchive interface {
	// Put stores body under key and returns where it ended up.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
