package primary

import (
	"context"

	"github.com/example/checkin/internal/ports/secondary"
)

// AdminService defines the primary port for editing reference tables.
type AdminService interface {
	// ListEntries lists a catalog table as display rows.
	ListEntries(ctx context.Context, table secondary.Table) (*CatalogListing, error)

	// AddEntry creates a row in a catalog table and returns its ID.
	AddEntry(ctx context.Context, req AddEntryRequest) (string, error)

	// UpdateCompany overwrites a company's contact fields.
	UpdateCompany(ctx context.Context, req UpdateCompanyRequest) error

	// RemoveEntry deletes a row from a catalog table.
	RemoveEntry(ctx context.Context, table secondary.Table, id string) error
}

// CatalogListing is a catalog table shaped for display.
type CatalogListing struct {
	Table   secondary.Table
	Columns []string
	Rows    [][]string
}

// AddEntryRequest contains parameters for adding a catalog row. Only the
// fields relevant to Table are read.
type AddEntryRequest struct {
	Table         secondary.Table
	Name          string
	Measurement   string // materials
	Series        string // processors
	Generation    string // processors
	Address       string // companies
	ContactPerson string
	Email         string
	Phone         string
}

// UpdateCompanyRequest contains parameters for editing a company.
type UpdateCompanyRequest struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Email         string
	Phone         string
}
