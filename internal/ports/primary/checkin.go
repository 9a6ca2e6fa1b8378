// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"
	"io"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/core/wizard"
	"github.com/example/checkin/internal/ports/secondary"
)

// CatalogLoader loads the per-session reference snapshot.
type CatalogLoader interface {
	// Load fetches every catalog. A catalog that fails to load is left empty.
	Load(ctx context.Context) catalog.Catalogs
}

// SubmissionService defines the primary port for submitting a finished wizard.
type SubmissionService interface {
	// Submit writes the wizard's form and verifies it by reading it back.
	// On verified success the wizard is reset before the user is notified.
	Submit(ctx context.Context, w *wizard.Controller) (*SubmitResult, error)
}

// SubmitResult describes a verified submission.
type SubmitResult struct {
	CheckInID   string
	CompanyName string
	CreatedAt   string
}

// HistoryService defines the primary port for browsing submitted check-ins.
type HistoryService interface {
	ListCheckIns(ctx context.Context, filters CheckInFilters) ([]*CheckInSummary, error)
	GetCheckIn(ctx context.Context, id string) (*CheckIn, error)
	DeleteCheckIn(ctx context.Context, id string) error
}

// CheckInFilters contains filter options for listing check-ins.
type CheckInFilters struct {
	CompanyID string
	Limit     int
}

// CheckInSummary is one line of the history list.
type CheckInSummary struct {
	ID           string
	EmployeeName string
	CompanyName  string
	TotalTime    string
	CreatedAt    string
}

// CheckIn is a submitted check-in with its list columns decoded.
type CheckIn struct {
	ID                    string
	EmployeeName          string
	StartedAt             string
	FinishedAt            string
	TotalTime             string
	CompanyID             string
	CompanyName           string
	Address               string
	ContactPerson         string
	Email                 string
	Phone                 string
	Categories            []form.CategoryEntry
	ValueScrap            []form.MaterialEntry
	ChargeMaterials       []form.MaterialEntry
	ValueScrapTotals      []aggregate.Total
	ChargeMaterialsTotals []aggregate.Total
	HasISeriesPCs         bool
	HasISeriesLaptops     bool
	ISeriesPCs            []form.ProcessorEntry
	ISeriesLaptops        []form.ProcessorEntry
	SuspectedValueNote    form.OptionalText
	OtherNotes            form.OptionalText
	CreatedAt             string
}

// ReportService defines the primary port for printable reports and exports.
type ReportService interface {
	// PrintCheckIn renders the printable document for one check-in.
	PrintCheckIn(ctx context.Context, id string, w io.Writer) error

	// ExportTable writes a whole table in the given format.
	ExportTable(ctx context.Context, table secondary.Table, format ExportFormat, w io.Writer) error

	// Archive stores a rendered document and returns its location.
	Archive(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ExportFormat selects the flat-file encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)
