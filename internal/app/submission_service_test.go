package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
	"github.com/example/checkin/internal/core/wizard"
	"github.com/example/checkin/internal/logging"
	"github.com/example/checkin/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCheckInRepository implements secondary.CheckInRepository for testing.
type mockCheckInRepository struct {
	mu        sync.Mutex
	checkIns  map[string]*secondary.CheckInRecord
	created   int
	createErr error
	getErr    error
	getNil    bool
	listErr   error
	deleteErr error

	// createEntered/createRelease make Create block until released.
	createEntered chan struct{}
	createRelease chan struct{}
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{checkIns: make(map[string]*secondary.CheckInRecord)}
}

func (m *mockCheckInRepository) Create(ctx context.Context, rec *secondary.CheckInRecord) (string, error) {
	if m.createEntered != nil {
		m.createEntered <- struct{}{}
		<-m.createRelease
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
	if m.createErr != nil {
		return "", m.createErr
	}
	stored := *rec
	stored.ID = "CI-001"
	stored.CreatedAt = "2026-05-01 08:30:00"
	m.checkIns[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockCheckInRepository) GetByID(ctx context.Context, id string) (*secondary.CheckInRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.getNil {
		return nil, nil
	}
	if rec, ok := m.checkIns[id]; ok {
		return rec, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockCheckInRepository) List(ctx context.Context, filters secondary.CheckInFilters) ([]*secondary.CheckInRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.CheckInRecord
	for _, r := range m.checkIns {
		if filters.CompanyID != "" && r.CompanyID != filters.CompanyID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockCheckInRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.checkIns[id]; !ok {
		return secondary.ErrNotFound
	}
	delete(m.checkIns, id)
	return nil
}

// recordingSignaler implements secondary.OutcomeSignaler for testing.
type recordingSignaler struct {
	outcomes []secondary.Outcome
}

func (s *recordingSignaler) Signal(ctx context.Context, o secondary.Outcome) {
	s.outcomes = append(s.outcomes, o)
}

// recordingNotifier implements secondary.Notifier and captures what the
// wizard looked like at the moment the notice was shown.
type recordingNotifier struct {
	wizard   *wizard.Controller
	notices  []secondary.Notice
	seenStep step.Step
	seenForm form.State
}

func (n *recordingNotifier) Notify(ctx context.Context, notice secondary.Notice) {
	n.notices = append(n.notices, notice)
	if n.wizard != nil {
		n.seenStep = n.wizard.Current()
		n.seenForm = n.wizard.State()
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

var fixedNow = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// reviewReadyWizard drives a wizard through every step to review using the
// reference scenario.
func reviewReadyWizard(t *testing.T) *wizard.Controller {
	t.Helper()

	w := filledWizard()
	for w.Current() != step.Review {
		if err := w.GoNext(); err != nil {
			t.Fatalf("GoNext from %s failed: %v", w.Current(), err)
		}
	}
	return w
}

// filledWizard answers every step of the reference scenario without leaving
// basic-info.
func filledWizard() *wizard.Controller {
	w := wizard.New(fixedClock, catalog.Counts{
		Employees: 1, Companies: 1, Categories: 1,
		ValueScrapMaterials: 2, Processors: 1,
	})
	w.Update(form.Patch{EmployeeName: form.Ptr("J. Doe"), TotalTime: form.Ptr("2.0")})
	w.Update(form.SelectCompany(catalog.Company{
		ID: "c-acme", Name: "Acme Corp", Address: "1 Main St",
		ContactPerson: "A. Smith", Email: "a@acme.com", Phone: "555-0100",
	}))
	w.Update(form.Patch{
		HasCategories: form.Ptr(form.Yes),
		Categories:    form.Ptr([]form.CategoryEntry{{Category: "Laptops", Quantity: "4"}}),
	})
	w.Update(form.Patch{ValueScrap: form.Ptr([]form.MaterialEntry{
		{MaterialID: "m-cu", MaterialName: "Copper", Quantity: "10", Unit: "Lbs."},
		{MaterialID: "m-al", MaterialName: "Aluminum", Quantity: "5", Unit: "Lbs."},
	})})
	w.Update(form.Patch{HasPCs: form.Ptr(form.No), HasLaptops: form.Ptr(form.No)})
	w.Update(form.Patch{HasSuspectedValue: form.Ptr(form.No), HasOtherNotes: form.Ptr(form.No)})
	return w
}

func newTestSubmissionService(repo *mockCheckInRepository, notifier *recordingNotifier) (*SubmissionServiceImpl, *recordingSignaler) {
	signaler := &recordingSignaler{}
	return NewSubmissionService(repo, signaler, notifier, logging.Discard(), fixedClock), signaler
}

// ============================================================================
// Submit Tests
// ============================================================================

func TestSubmit_Success(t *testing.T) {
	repo := newMockCheckInRepository()
	w := reviewReadyWizard(t)
	notifier := &recordingNotifier{wizard: w}
	service, signaler := newTestSubmissionService(repo, notifier)

	result, err := service.Submit(context.Background(), w)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.CheckInID != "CI-001" {
		t.Errorf("expected ID 'CI-001', got %q", result.CheckInID)
	}
	if result.CompanyName != "Acme Corp" {
		t.Errorf("expected company 'Acme Corp', got %q", result.CompanyName)
	}
	if len(signaler.outcomes) != 1 || signaler.outcomes[0] != secondary.OutcomeSuccess {
		t.Errorf("expected one success signal, got %v", signaler.outcomes)
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Level != secondary.NoticeSuccess {
		t.Errorf("expected one success notice, got %+v", notifier.notices)
	}
}

func TestSubmit_PayloadMapping(t *testing.T) {
	repo := newMockCheckInRepository()
	w := reviewReadyWizard(t)
	service, _ := newTestSubmissionService(repo, &recordingNotifier{})

	if _, err := service.Submit(context.Background(), w); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	rec := repo.checkIns["CI-001"]
	if rec.HasISeriesPCs || rec.HasISeriesLaptops {
		t.Errorf("expected both processor flags false, got %v %v", rec.HasISeriesPCs, rec.HasISeriesLaptops)
	}
	if rec.ValueScrapTotals != `[{"measurement":"Lbs.","total":15}]` {
		t.Errorf("unexpected value scrap totals %s", rec.ValueScrapTotals)
	}
	if rec.ChargeMaterials != "[]" || rec.ISeriesPCs != "[]" {
		t.Errorf("expected empty lists encoded as [], got %q %q", rec.ChargeMaterials, rec.ISeriesPCs)
	}
	if rec.Email != "a@acme.com" || rec.ContactPerson != "A. Smith" {
		t.Errorf("contact fields not copied: %+v", rec)
	}
	if rec.SuspectedValueNote != nil || rec.OtherNotes != nil {
		t.Error("expected NULL notes for No answers")
	}
	if rec.FinishedAt == "" || rec.StartedAt == "" {
		t.Error("expected both timestamps set")
	}

	var categories []form.CategoryEntry
	if err := json.Unmarshal([]byte(rec.Categories), &categories); err != nil {
		t.Fatalf("categories column is not JSON: %v", err)
	}
	if len(categories) != 1 || categories[0].Category != "Laptops" {
		t.Errorf("unexpected categories %+v", categories)
	}
}

func TestSubmit_ResetBeforeNotify(t *testing.T) {
	repo := newMockCheckInRepository()
	w := reviewReadyWizard(t)
	notifier := &recordingNotifier{wizard: w}
	service, _ := newTestSubmissionService(repo, notifier)

	if _, err := service.Submit(context.Background(), w); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if notifier.seenStep != step.BasicInfo {
		t.Errorf("notice shown while wizard on %s, want basic-info", notifier.seenStep)
	}
	if notifier.seenForm.EmployeeName != "" || len(notifier.seenForm.Categories) != 0 {
		t.Errorf("notice shown before form was reset: %+v", notifier.seenForm)
	}
}

func TestSubmit_WriteFailure(t *testing.T) {
	repo := newMockCheckInRepository()
	repo.createErr = errors.New("connection refused")
	w := reviewReadyWizard(t)
	notifier := &recordingNotifier{}
	service, signaler := newTestSubmissionService(repo, notifier)

	_, err := service.Submit(context.Background(), w)

	var subErr *SubmissionError
	if !errors.As(err, &subErr) || subErr.Kind != WriteFailed {
		t.Fatalf("expected WriteFailed, got %v", err)
	}
	if len(signaler.outcomes) != 1 || signaler.outcomes[0] != secondary.OutcomeWriteFailure {
		t.Errorf("expected write failure signal, got %v", signaler.outcomes)
	}
	if w.Current() != step.Review || w.State().EmployeeName != "J. Doe" {
		t.Error("wizard must keep its data after a failed write")
	}
}

func TestSubmit_UnverifiedDoesNotReset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mockCheckInRepository)
	}{
		{"read-back error", func(m *mockCheckInRepository) { m.getErr = errors.New("timeout") }},
		{"read-back empty", func(m *mockCheckInRepository) { m.getNil = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockCheckInRepository()
			tt.setup(repo)
			w := reviewReadyWizard(t)
			notifier := &recordingNotifier{}
			service, signaler := newTestSubmissionService(repo, notifier)

			_, err := service.Submit(context.Background(), w)

			var subErr *SubmissionError
			if !errors.As(err, &subErr) || subErr.Kind != Unverified {
				t.Fatalf("expected Unverified, got %v", err)
			}
			if subErr.CheckInID != "CI-001" {
				t.Errorf("expected unverified ID 'CI-001', got %q", subErr.CheckInID)
			}
			if len(signaler.outcomes) != 1 || signaler.outcomes[0] != secondary.OutcomeUnverified {
				t.Errorf("expected unverified signal, got %v", signaler.outcomes)
			}
			if len(notifier.notices) != 1 || notifier.notices[0].Level != secondary.NoticeWarning {
				t.Errorf("expected one warning notice, got %+v", notifier.notices)
			}
			if w.Current() != step.Review || w.State().CompanyName != "Acme Corp" {
				t.Error("unverified submission must not reset the wizard")
			}
		})
	}
}

func TestSubmit_DuplicateCallIssuesNoSecondWrite(t *testing.T) {
	repo := newMockCheckInRepository()
	repo.createEntered = make(chan struct{})
	repo.createRelease = make(chan struct{})
	w := reviewReadyWizard(t)
	service, _ := newTestSubmissionService(repo, &recordingNotifier{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := service.Submit(ctx, w)
		done <- err
	}()

	<-repo.createEntered

	if _, err := service.Submit(ctx, w); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("expected ErrSubmitInProgress, got %v", err)
	}

	close(repo.createRelease)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	if repo.created != 1 {
		t.Errorf("expected exactly 1 write, got %d", repo.created)
	}
}

func TestSubmit_GuardReleasedAfterFailure(t *testing.T) {
	repo := newMockCheckInRepository()
	repo.createErr = errors.New("boom")
	w := reviewReadyWizard(t)
	service, _ := newTestSubmissionService(repo, &recordingNotifier{})

	_, _ = service.Submit(context.Background(), w)
	repo.createErr = nil

	if _, err := service.Submit(context.Background(), w); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestSubmit_NotAtReview(t *testing.T) {
	repo := newMockCheckInRepository()
	service, _ := newTestSubmissionService(repo, &recordingNotifier{})
	w := wizard.New(fixedClock, catalog.Counts{})

	if _, err := service.Submit(context.Background(), w); !errors.Is(err, ErrNotAtReview) {
		t.Errorf("expected ErrNotAtReview, got %v", err)
	}
	if repo.created != 0 {
		t.Error("expected no write")
	}
}

func TestSubmit_DefaultsFinishedAt(t *testing.T) {
	repo := newMockCheckInRepository()
	service, _ := newTestSubmissionService(repo, &recordingNotifier{})
	w := filledWizard()
	if err := w.GoToStep(step.Review); err != nil {
		t.Fatalf("GoToStep failed: %v", err)
	}
	if w.State().FinishedAt != nil {
		t.Fatal("precondition: a jump to review leaves FinishedAt unset")
	}

	if _, err := service.Submit(context.Background(), w); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := repo.checkIns["CI-001"]
	if rec == nil {
		t.Fatal("expected the check-in to be written")
	}
	if want := fixedNow.Format(time.RFC3339); rec.FinishedAt != want {
		t.Errorf("FinishedAt = %q, want %q", rec.FinishedAt, want)
	}
}

func TestSubmit_IncompleteFormRefused(t *testing.T) {
	repo := newMockCheckInRepository()
	notifier := &recordingNotifier{}
	service, signaler := newTestSubmissionService(repo, notifier)
	w := wizard.New(fixedClock, catalog.Counts{Companies: 1})
	if err := w.GoToStep(step.Review); err != nil {
		t.Fatalf("GoToStep failed: %v", err)
	}

	_, err := service.Submit(context.Background(), w)

	var blocked *wizard.StepBlockedError
	if !errors.As(err, &blocked) || blocked.Step != step.BasicInfo {
		t.Fatalf("expected StepBlockedError at basic-info, got %v", err)
	}
	if repo.created != 0 {
		t.Error("expected no write")
	}
	if len(signaler.outcomes) != 0 || len(notifier.notices) != 0 {
		t.Errorf("expected no outcome signaled, got %v %+v", signaler.outcomes, notifier.notices)
	}
	if w.Current() != step.Review {
		t.Errorf("wizard moved to %s", w.Current())
	}

	if _, err := service.Submit(context.Background(), reviewReadyWizard(t)); err != nil {
		t.Errorf("guard not released after refusal: %v", err)
	}
}

func TestBuildCheckInRecord_DefaultsAndNotes(t *testing.T) {
	s := form.New(fixedNow)
	s.HasPCs = form.Yes
	s.SuspectedValueNote = form.Text("gold pins")
	s.HasOtherNotes = form.Yes // answered yes, note never entered

	rec, err := buildCheckInRecord(s)
	if err != nil {
		t.Fatalf("buildCheckInRecord failed: %v", err)
	}
	if !rec.HasISeriesPCs || rec.HasISeriesLaptops {
		t.Errorf("expected PCs=true laptops=false, got %v %v", rec.HasISeriesPCs, rec.HasISeriesLaptops)
	}
	if rec.SuspectedValueNote == nil || *rec.SuspectedValueNote != "gold pins" {
		t.Errorf("expected suspected note, got %v", rec.SuspectedValueNote)
	}
	if rec.OtherNotes != nil {
		t.Errorf("expected NULL other notes, got %q", *rec.OtherNotes)
	}
	if rec.StartedAt != "2026-05-01T08:00:00Z" {
		t.Errorf("unexpected started_at %q", rec.StartedAt)
	}
}
