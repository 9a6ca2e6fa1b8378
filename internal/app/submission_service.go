package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
	"github.com/example/checkin/internal/core/wizard"
	"github.com/example/checkin/internal/ctxutil"
	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// ErrSubmitInProgress is returned when Submit is called while an earlier
// call has not resolved. No write is issued for the duplicate call.
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// ErrNotAtReview is returned when the wizard has not reached review.
var ErrNotAtReview = errors.New("the check-in can only be submitted from the review step")

// SubmissionErrorKind distinguishes the failure outcomes of a submission.
type SubmissionErrorKind int

const (
	// WriteFailed means the backend rejected the insert. Nothing was stored.
	WriteFailed SubmissionErrorKind = iota + 1
	// Unverified means the insert reported success but the row could not be
	// read back. The row may or may not exist.
	Unverified
	// Unexpected covers failures before the backend was contacted.
	Unexpected
)

func (k SubmissionErrorKind) String() string {
	switch k {
	case WriteFailed:
		return "write failed"
	case Unverified:
		return "unverified"
	default:
		return "unexpected"
	}
}

// SubmissionError is returned by Submit for every non-success outcome.
type SubmissionError struct {
	Kind      SubmissionErrorKind
	CheckInID string // set for Unverified
	Err       error
}

func (e *SubmissionError) Error() string {
	if e.CheckInID != "" {
		return fmt.Sprintf("submission %s (check-in %s): %v", e.Kind, e.CheckInID, e.Err)
	}
	return fmt.Sprintf("submission %s: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// SubmissionServiceImpl implements the SubmissionService interface.
type SubmissionServiceImpl struct {
	checkInRepo secondary.CheckInRepository
	signaler    secondary.OutcomeSignaler
	notifier    secondary.Notifier
	logger      *slog.Logger
	now         func() time.Time

	inFlight atomic.Bool
}

// NewSubmissionService creates a new SubmissionService with injected dependencies.
func NewSubmissionService(
	checkInRepo secondary.CheckInRepository,
	signaler secondary.OutcomeSignaler,
	notifier secondary.Notifier,
	logger *slog.Logger,
	now func() time.Time,
) *SubmissionServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &SubmissionServiceImpl{
		checkInRepo: checkInRepo,
		signaler:    signaler,
		notifier:    notifier,
		logger:      logger,
		now:         now,
	}
}

// Submit writes the wizard's form as a new check-in, then reads it back.
// On verified success the wizard is reset before the outcome is signaled
// and the user notified.
func (s *SubmissionServiceImpl) Submit(ctx context.Context, w *wizard.Controller) (*primary.SubmitResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	logger := s.logger.With("session", ctxutil.SessionFromContext(ctx))

	if w.Current() != step.Review {
		return nil, ErrNotAtReview
	}
	if err := w.Validate(); err != nil {
		logger.WarnContext(ctx, "refused incomplete check-in", "error", err)
		return nil, err
	}

	state := w.State()
	if state.FinishedAt == nil {
		finished := s.now()
		state.FinishedAt = &finished
	}

	record, err := buildCheckInRecord(state)
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode check-in", "error", err)
		return nil, &SubmissionError{Kind: Unexpected, Err: err}
	}

	id, err := s.checkInRepo.Create(ctx, record)
	if err != nil {
		logger.ErrorContext(ctx, "check-in write failed", "company", record.CompanyID, "error", err)
		s.signaler.Signal(ctx, secondary.OutcomeWriteFailure)
		s.notifier.Notify(ctx, secondary.Notice{
			Level:   secondary.NoticeError,
			Title:   "Submission failed",
			Message: fmt.Sprintf("The check-in was not saved: %v", err),
		})
		return nil, &SubmissionError{Kind: WriteFailed, Err: err}
	}

	created, err := s.checkInRepo.GetByID(ctx, id)
	if err == nil && created == nil {
		err = fmt.Errorf("check-in %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		logger.WarnContext(ctx, "check-in written but not verified", "check_in", id, "error", err)
		s.signaler.Signal(ctx, secondary.OutcomeUnverified)
		s.notifier.Notify(ctx, secondary.Notice{
			Level: secondary.NoticeWarning,
			Title: "Submission not confirmed",
			Message: fmt.Sprintf("Check-in %s was sent but could not be read back. "+
				"Look it up in history before submitting again.", id),
		})
		return nil, &SubmissionError{Kind: Unverified, CheckInID: id, Err: err}
	}

	// Reset first so nothing reading the wizard after the notice sees the old form.
	w.Reset()

	logger.InfoContext(ctx, "check-in submitted", "check_in", created.ID, "company", created.CompanyID)
	s.signaler.Signal(ctx, secondary.OutcomeSuccess)
	s.notifier.Notify(ctx, secondary.Notice{
		Level:   secondary.NoticeSuccess,
		Title:   "Check-in submitted",
		Message: fmt.Sprintf("Saved check-in %s for %s.", created.ID, created.CompanyName),
	})

	return &primary.SubmitResult{
		CheckInID:   created.ID,
		CompanyName: created.CompanyName,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// buildCheckInRecord maps the form one-to-one onto the check_ins columns.
// List fields are JSON-encoded; the processor answers become booleans.
func buildCheckInRecord(s form.State) (*secondary.CheckInRecord, error) {
	rec := &secondary.CheckInRecord{
		EmployeeName:      s.EmployeeName,
		StartedAt:         s.StartedAt.Format(time.RFC3339),
		TotalTime:         s.TotalTime,
		CompanyID:         s.CompanyID,
		CompanyName:       s.CompanyName,
		Address:           s.Address,
		ContactPerson:     s.ContactPerson,
		Email:             s.Email,
		Phone:             s.Phone,
		HasISeriesPCs:     s.HasPCs == form.Yes,
		HasISeriesLaptops: s.HasLaptops == form.Yes,
	}
	if s.FinishedAt != nil {
		rec.FinishedAt = s.FinishedAt.Format(time.RFC3339)
	}

	columns := []struct {
		dst   *string
		name  string
		value any
	}{
		{&rec.Categories, "categories", s.Categories},
		{&rec.ValueScrap, "value_scrap", s.ValueScrap},
		{&rec.ChargeMaterials, "charge_materials", s.ChargeMaterials},
		{&rec.ValueScrapTotals, "value_scrap_totals", s.ValueScrapTotals},
		{&rec.ChargeMaterialsTotals, "charge_materials_totals", s.ChargeMaterialsTotals},
		{&rec.ISeriesPCs, "i_series_pcs", s.PCs},
		{&rec.ISeriesLaptops, "i_series_laptops", s.Laptops},
	}
	for _, c := range columns {
		encoded, err := encodeList(c.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", c.name, err)
		}
		*c.dst = encoded
	}

	if s.SuspectedValueNote.Valid {
		rec.SuspectedValueNote = &s.SuspectedValueNote.Text
	}
	if s.OtherNotes.Valid {
		rec.OtherNotes = &s.OtherNotes.Text
	}

	return rec, nil
}

// encodeList encodes a list column. A nil slice is stored as "[]", never "null".
func encodeList(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}
