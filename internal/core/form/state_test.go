package form

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/catalog"
)

var t0 = time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	s := New(t0)

	if !s.StartedAt.Equal(t0) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, t0)
	}
	if s.FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", s.FinishedAt)
	}
	if s.Categories == nil || len(s.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil", s.Categories)
	}
	if s.ValueScrap == nil || s.ChargeMaterials == nil || s.PCs == nil || s.Laptops == nil {
		t.Error("expected every list to start empty and non-nil")
	}
	if s.HasCategories != Unanswered || s.HasPCs != Unanswered || s.HasOtherNotes != Unanswered {
		t.Error("expected every question to start unanswered")
	}
}

func TestApplyPatch(t *testing.T) {
	base := New(t0)
	base.EmployeeName = "J. Doe"
	base.TotalTime = "1.0"

	next := ApplyPatch(base, Patch{
		TotalTime:  Ptr("2.0"),
		Categories: Ptr([]CategoryEntry{{Category: "Laptops", Quantity: "4"}}),
	})

	if next.EmployeeName != "J. Doe" {
		t.Errorf("EmployeeName = %q, want preserved %q", next.EmployeeName, "J. Doe")
	}
	if next.TotalTime != "2.0" {
		t.Errorf("TotalTime = %q, want %q", next.TotalTime, "2.0")
	}
	if len(next.Categories) != 1 || next.Categories[0].Category != "Laptops" {
		t.Errorf("Categories = %+v", next.Categories)
	}
	if base.TotalTime != "1.0" || len(base.Categories) != 0 {
		t.Error("ApplyPatch mutated its input")
	}
}

func TestApplyPatch_LastWriteWins(t *testing.T) {
	s := ApplyPatch(New(t0), Patch{EmployeeName: Ptr("A")})
	s = ApplyPatch(s, Patch{EmployeeName: Ptr("B")})
	if s.EmployeeName != "B" {
		t.Errorf("EmployeeName = %q, want B", s.EmployeeName)
	}
}

func TestApplyPatch_EmptyPatchIsNoOp(t *testing.T) {
	finished := t0.Add(time.Hour)
	p := Patch{
		EmployeeName:       Ptr("J. Doe"),
		FinishedAt:         Ptr(&finished),
		HasSuspectedValue:  Ptr(Yes),
		SuspectedValueNote: Ptr(Text("gold pins")),
		ValueScrap:         Ptr([]MaterialEntry{{MaterialID: "m1", Quantity: "3", Unit: "Lbs."}}),
	}
	once := ApplyPatch(New(t0), p)
	twice := ApplyPatch(once, Patch{})

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("empty patch changed state:\n once  %+v\n twice %+v", once, twice)
	}
}

func TestApplyPatch_DoesNotAliasPatchLists(t *testing.T) {
	entries := []CategoryEntry{{Category: "Laptops", Quantity: "4"}}
	s := ApplyPatch(New(t0), Patch{Categories: &entries})

	entries[0].Quantity = "99"
	if s.Categories[0].Quantity != "4" {
		t.Errorf("state aliased patch list: quantity = %q", s.Categories[0].Quantity)
	}
}

func TestApplyPatch_ClearFinishedAt(t *testing.T) {
	finished := t0.Add(time.Minute)
	s := ApplyPatch(New(t0), Patch{FinishedAt: Ptr(&finished)})
	s = ApplyPatch(s, Patch{FinishedAt: Ptr[*time.Time](nil)})
	if s.FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", s.FinishedAt)
	}
}

func TestWithDerivedTotals(t *testing.T) {
	p := WithDerivedTotals(Patch{
		ValueScrap: Ptr([]MaterialEntry{
			{MaterialName: "Copper", Quantity: "10", Unit: "Lbs."},
			{MaterialName: "Aluminum", Quantity: "5", Unit: "Lbs."},
		}),
		ValueScrapTotals: Ptr([]aggregate.Total{{Unit: "stale", Total: 1}}),
	})

	want := []aggregate.Total{{Unit: "Lbs.", Total: 15}}
	if !reflect.DeepEqual(*p.ValueScrapTotals, want) {
		t.Errorf("ValueScrapTotals = %+v, want %+v", *p.ValueScrapTotals, want)
	}
	if p.ChargeMaterialsTotals != nil {
		t.Error("charge totals should be untouched when charge list is absent")
	}
}

func TestSelectCompany(t *testing.T) {
	company := catalog.Company{
		ID: "c1", Name: "Acme Corp", Address: "1 Main St",
		ContactPerson: "A. Smith", Email: "a@acme.com", Phone: "555-0100",
	}
	s := ApplyPatch(New(t0), SelectCompany(company))

	company.Address = "2 Other Rd"
	if s.Address != "1 Main St" {
		t.Errorf("Address = %q, want copy taken at selection", s.Address)
	}
	if s.CompanyID != "c1" || s.CompanyName != "Acme Corp" || s.ContactPerson != "A. Smith" ||
		s.Email != "a@acme.com" || s.Phone != "555-0100" {
		t.Errorf("company fields not copied: %+v", s)
	}
}

func TestCategoryTotal(t *testing.T) {
	s := New(t0)
	s.Categories = []CategoryEntry{{Category: "Laptops", Quantity: "4"}, {Category: "Servers", Quantity: "1.5"}}
	if got := s.CategoryTotal(); got != 5.5 {
		t.Errorf("CategoryTotal() = %v, want 5.5", got)
	}
}

func TestOptionalText_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   OptionalText
		want string
	}{
		{name: "null when not valid", in: OptionalText{}, want: "null"},
		{name: "string when valid", in: Text("pins"), want: `"pins"`},
		{name: "empty string stays a string", in: Text(""), want: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
			var back OptionalText
			if err := json.Unmarshal(got, &back); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if back != tt.in {
				t.Errorf("round trip = %+v, want %+v", back, tt.in)
			}
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in      string
		want    Answer
		wantErr bool
	}{
		{in: "yes", want: Yes},
		{in: "No", want: No},
		{in: "", want: Unanswered},
		{in: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAnswer(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAnswer(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
