package report

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/ports/primary"
)

func sampleCheckIn() *primary.CheckIn {
	return &primary.CheckIn{
		ID:            "CI-001",
		EmployeeName:  "J. Doe",
		StartedAt:     "2026-05-01T08:00:00Z",
		FinishedAt:    "2026-05-01T08:14:30Z",
		TotalTime:     "2.0",
		CompanyName:   "Acme Corp",
		Address:       "1 Main St",
		ContactPerson: "A. Smith",
		Email:         "a@acme.com",
		Phone:         "555-0100",
		Categories:    []form.CategoryEntry{{Category: "Laptops", Quantity: "4"}, {Category: "Desktops", Quantity: "2.5"}},
		ValueScrap: []form.MaterialEntry{
			{MaterialName: "Copper", Quantity: "10", Unit: "Lbs."},
			{MaterialName: "Aluminum", Quantity: "5", Unit: "Lbs."},
		},
		ChargeMaterials:       []form.MaterialEntry{},
		ValueScrapTotals:      []aggregate.Total{{Unit: "Lbs.", Total: 15}},
		ChargeMaterialsTotals: []aggregate.Total{},
		ISeriesPCs:            []form.ProcessorEntry{},
		ISeriesLaptops:        []form.ProcessorEntry{{Series: "i7", Generation: "10th", Quantity: "3"}},
		HasISeriesLaptops:     true,
		SuspectedValueNote:    form.Text("gold pins"),
	}
}

func render(t *testing.T, c *primary.CheckIn) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewTextRenderer(language.English).RenderCheckIn(&buf, c); err != nil {
		t.Fatalf("RenderCheckIn failed: %v", err)
	}
	return buf.String()
}

func TestTextRenderer_Sections(t *testing.T) {
	out := render(t, sampleCheckIn())

	for _, want := range []string{
		"WAREHOUSE CHECK-IN",
		"CI-001",
		"Acme Corp",
		"a@acme.com",
		"Copper",
		"I-SERIES LAPTOPS (yes)",
		"I-SERIES PCS (no)",
		"gold pins",
		"Time to complete:",
		"14m30s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextRenderer_CategoryTotal(t *testing.T) {
	out := render(t, sampleCheckIn())

	if !containsLine(out, "TOTAL", "6.5") {
		t.Errorf("expected category TOTAL 6.5:\n%s", out)
	}
}

func TestTextRenderer_PrintsStoredTotals(t *testing.T) {
	c := sampleCheckIn()
	c.ValueScrapTotals = []aggregate.Total{{Unit: "Lbs.", Total: 99}}

	out := render(t, c)

	if !containsLine(out, "TOTAL", "99", "Lbs.") {
		t.Errorf("expected stored total line:\n%s", out)
	}
}

func TestTextRenderer_EmptySectionsAndNullNotes(t *testing.T) {
	c := sampleCheckIn()
	c.Categories = []form.CategoryEntry{}
	c.SuspectedValueNote = form.OptionalText{}
	c.FinishedAt = ""

	out := render(t, c)

	if !strings.Contains(out, "CATEGORIES\n(none)") {
		t.Errorf("expected empty categories marker:\n%s", out)
	}
	if !containsLine(out, "Suspected", "value:", "-") {
		t.Errorf("expected dash for null note:\n%s", out)
	}
	if !containsLine(out, "Time", "to", "complete:", "-") {
		t.Errorf("expected dash for missing finish:\n%s", out)
	}
}

// containsLine reports whether some line holds every field, in order,
// separated only by whitespace.
func containsLine(out string, fields ...string) bool {
	for _, line := range strings.Split(out, "\n") {
		got := strings.Fields(line)
		if len(got) != len(fields) {
			continue
		}
		match := true
		for i := range fields {
			if got[i] != fields[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
