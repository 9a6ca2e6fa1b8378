// Package form contains the in-progress answer set of one check-in attempt.
// This is part of the Functional Core - no I/O, only pure functions.
package form

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/catalog"
)

// CategoryEntry is one (category, quantity) row.
type CategoryEntry struct {
	Category string `json:"category"`
	Quantity string `json:"quantity"`
}

// MaterialEntry is one value-scrap or charge-material row.
type MaterialEntry struct {
	MaterialID   string `json:"materialId"`
	MaterialName string `json:"materialName"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"measurement"`
}

// ProcessorEntry is one i-series processor row.
type ProcessorEntry struct {
	Series     string `json:"processorSeries"`
	Generation string `json:"processorGeneration"`
	Quantity   string `json:"quantity"`
}

// OptionalText is a nullable free-text value. It encodes to JSON null when not Valid.
type OptionalText struct {
	Text  string
	Valid bool
}

// Text returns a valid OptionalText holding s.
func Text(s string) OptionalText {
	return OptionalText{Text: s, Valid: true}
}

// MarshalJSON encodes the text or null.
func (t OptionalText) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Text)
}

// UnmarshalJSON decodes a string or null.
func (t *OptionalText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = OptionalText{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// State is every answer collected across the wizard's steps.
type State struct {
	StartedAt  time.Time
	FinishedAt *time.Time // set on entering review

	EmployeeName string
	TotalTime    string

	CompanyID     string
	CompanyName   string
	Address       string
	ContactPerson string
	Email         string
	Phone         string

	HasCategories Answer
	Categories    []CategoryEntry

	ValueScrap            []MaterialEntry
	ChargeMaterials       []MaterialEntry
	ValueScrapTotals      []aggregate.Total
	ChargeMaterialsTotals []aggregate.Total

	HasPCs     Answer
	PCs        []ProcessorEntry
	HasLaptops Answer
	Laptops    []ProcessorEntry

	HasSuspectedValue  Answer
	SuspectedValueNote OptionalText
	HasOtherNotes      Answer
	OtherNotes         OptionalText
}

// New returns a fresh state started at now, with every list empty.
func New(now time.Time) State {
	return State{
		StartedAt:             now,
		Categories:            []CategoryEntry{},
		ValueScrap:            []MaterialEntry{},
		ChargeMaterials:       []MaterialEntry{},
		ValueScrapTotals:      []aggregate.Total{},
		ChargeMaterialsTotals: []aggregate.Total{},
		PCs:                   []ProcessorEntry{},
		Laptops:               []ProcessorEntry{},
	}
}

// CategoryTotal is the running sum of every category quantity.
func (s State) CategoryTotal() float64 {
	quantities := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		quantities[i] = c.Quantity
	}
	return aggregate.Sum(quantities)
}

// Clone returns a deep copy so callers cannot alias the controller's lists.
func (s State) Clone() State {
	out := s
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		out.FinishedAt = &t
	}
	out.Categories = slices.Clone(s.Categories)
	out.ValueScrap = slices.Clone(s.ValueScrap)
	out.ChargeMaterials = slices.Clone(s.ChargeMaterials)
	out.ValueScrapTotals = slices.Clone(s.ValueScrapTotals)
	out.ChargeMaterialsTotals = slices.Clone(s.ChargeMaterialsTotals)
	out.PCs = slices.Clone(s.PCs)
	out.Laptops = slices.Clone(s.Laptops)
	return out
}

// MaterialFromCatalog builds an entry from a catalog material, carrying its unit.
func MaterialFromCatalog(m catalog.Material, quantity string) MaterialEntry {
	return MaterialEntry{
		MaterialID:   m.ID,
		MaterialName: m.Name,
		Quantity:     quantity,
		Unit:         m.Measurement,
	}
}

// TotalsFor runs the aggregation over material entries.
func TotalsFor(entries []MaterialEntry) []aggregate.Total {
	in := make([]aggregate.Entry, len(entries))
	for i, e := range entries {
		in[i] = aggregate.Entry{Quantity: e.Quantity, Unit: e.Unit}
	}
	return aggregate.ByUnit(in)
}
