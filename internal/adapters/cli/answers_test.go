package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/step"
	"github.com/example/checkin/internal/core/wizard"
)

const referenceAnswers = `{
	"employee": "J. Doe",
	"company": "Acme Corp",
	"totalTime": "2.0",
	"hasCategories": "yes",
	"categories": [{"category": "Laptops", "quantity": "4"}],
	"valueScrap": [
		{"material": "Copper", "quantity": "10"},
		{"material": "m-al", "quantity": "5"}
	],
	"hasPCs": "no",
	"hasLaptops": "no",
	"hasSuspectedValue": "no",
	"hasOtherNotes": "no"
}`

func TestReplay_ReferenceScenario(t *testing.T) {
	a, err := ReadAnswerFile(strings.NewReader(referenceAnswers))
	if err != nil {
		t.Fatalf("ReadAnswerFile failed: %v", err)
	}
	cats := testCatalogs()
	w := wizard.New(testClock, cats.Counts())

	if err := Replay(w, cats, a); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if w.Current() != step.Review {
		t.Fatalf("expected review, got %s", w.Current())
	}
	s := w.State()
	if s.CompanyID != "c-acme" || s.Phone != "555-0100" {
		t.Errorf("company not resolved by name: %+v", s)
	}
	if s.ValueScrap[1].MaterialName != "Aluminum" || s.ValueScrap[1].Unit != "Lbs." {
		t.Errorf("material not resolved by ID: %+v", s.ValueScrap[1])
	}
	if len(s.ValueScrapTotals) != 1 || s.ValueScrapTotals[0].Total != 15 {
		t.Errorf("unexpected totals %+v", s.ValueScrapTotals)
	}
	if s.FinishedAt == nil {
		t.Error("expected FinishedAt stamped on reaching review")
	}
}

func TestReplay_StopsAtFirstIncompleteStep(t *testing.T) {
	a, err := ReadAnswerFile(strings.NewReader(`{"employee": "J. Doe", "company": "c-acme", "totalTime": "1"}`))
	if err != nil {
		t.Fatalf("ReadAnswerFile failed: %v", err)
	}
	cats := testCatalogs()
	w := wizard.New(testClock, cats.Counts())

	err = Replay(w, cats, a)

	var blocked *wizard.StepBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected StepBlockedError, got %v", err)
	}
	if blocked.Step != step.Categories || w.Current() != step.Categories {
		t.Errorf("expected to stop at categories, stopped at %s", w.Current())
	}
}

func TestReplay_UnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"company", `{"employee": "x", "company": "Nobody", "totalTime": "1"}`},
		{"material", `{"employee": "x", "company": "c-acme", "totalTime": "1", "hasCategories": "no",
			"valueScrap": [{"material": "Gold", "quantity": "1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ReadAnswerFile(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("ReadAnswerFile failed: %v", err)
			}
			cats := testCatalogs()
			if err := Replay(wizard.New(testClock, cats.Counts()), cats, a); err == nil {
				t.Error("expected unknown reference error")
			}
		})
	}
}

func TestReadAnswerFile_Rejects(t *testing.T) {
	for _, in := range []string{
		`{"employe": "typo"}`,
		`{"hasPCs": "maybe"}`,
		`not json`,
	} {
		if _, err := ReadAnswerFile(strings.NewReader(in)); err == nil {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestReadAnswerFile_NullNote(t *testing.T) {
	a, err := ReadAnswerFile(strings.NewReader(`{"hasOtherNotes": "yes", "otherNotes": null, "suspectedValueNote": "pins"}`))
	if err != nil {
		t.Fatalf("ReadAnswerFile failed: %v", err)
	}
	if a.HasOtherNotes != form.Yes || a.OtherNotes.Valid {
		t.Errorf("expected yes with null note, got %s %+v", a.HasOtherNotes, a.OtherNotes)
	}
	if !a.SuspectedValueNote.Valid || a.SuspectedValueNote.Text != "pins" {
		t.Errorf("unexpected suspected note %+v", a.SuspectedValueNote)
	}
}
