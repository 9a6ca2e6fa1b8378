// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// CheckInRepository defines the secondary port for check-in persistence.
type CheckInRepository interface {
	// Create inserts a new check-in and returns the backend-assigned ID.
	Create(ctx context.Context, record *CheckInRecord) (string, error)

	// GetByID retrieves a check-in by its ID.
	GetByID(ctx context.Context, id string) (*CheckInRecord, error)

	// List retrieves check-ins matching the given filters, newest first.
	List(ctx context.Context, filters CheckInFilters) ([]*CheckInRecord, error)

	// Delete removes a check-in.
	Delete(ctx context.Context, id string) error
}

// CheckInRecord is a check-in as stored in the backend. List-typed fields hold
// JSON text exactly as written.
type CheckInRecord struct {
	ID                    string
	EmployeeName          string
	StartedAt             string // RFC 3339
	FinishedAt            string // RFC 3339
	TotalTime             string
	CompanyID             string
	CompanyName           string
	Address               string
	ContactPerson         string
	Email                 string
	Phone                 string
	Categories            string
	ValueScrap            string
	ChargeMaterials       string
	ValueScrapTotals      string
	ChargeMaterialsTotals string
	HasISeriesPCs         bool
	HasISeriesLaptops     bool
	ISeriesPCs            string
	ISeriesLaptops        string
	SuspectedValueNote    *string
	OtherNotes            *string
	CreatedAt             string
}

// CheckInFilters contains filter options for listing check-ins.
type CheckInFilters struct {
	CompanyID string
	Limit     int
}

// Table names a backend table reachable from the admin panel.
type Table string

const (
	TableEmployees       Table = "employees"
	TableCompanies       Table = "companies"
	TableCategories      Table = "categories"
	TableValueScrap      Table = "value_scrap"
	TableChargeMaterials Table = "charge_materials"
	TableProcessors      Table = "processors"
	TableCheckIns        Table = "check_ins"
)

// CatalogTables lists the reference tables in display order.
func CatalogTables() []Table {
	return []Table{TableEmployees, TableCompanies, TableCategories, TableValueScrap, TableChargeMaterials, TableProcessors}
}

// ParseTable resolves a table name. "value_materials" is accepted as an
// alias of value_scrap.
func ParseTable(name string) (Table, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "value_materials" {
		return TableValueScrap, nil
	}
	for _, t := range append(CatalogTables(), TableCheckIns) {
		if string(t) == n {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table %q", name)
}

// CatalogRepository defines the secondary port for reference table persistence.
type CatalogRepository interface {
	ListEmployees(ctx context.Context) ([]*EmployeeRecord, error)
	ListCompanies(ctx context.Context) ([]*CompanyRecord, error)
	ListCategories(ctx context.Context) ([]*CategoryRecord, error)
	// ListMaterials lists value_scrap or charge_materials rows.
	ListMaterials(ctx context.Context, table Table) ([]*MaterialRecord, error)
	ListProcessors(ctx context.Context) ([]*ProcessorRecord, error)

	CreateEmployee(ctx context.Context, r *EmployeeRecord) error
	CreateCompany(ctx context.Context, r *CompanyRecord) error
	CreateCategory(ctx context.Context, r *CategoryRecord) error
	CreateMaterial(ctx context.Context, table Table, r *MaterialRecord) error
	CreateProcessor(ctx context.Context, r *ProcessorRecord) error

	// UpdateCompany overwrites every contact field of an existing company.
	UpdateCompany(ctx context.Context, r *CompanyRecord) error

	// Delete removes a row from any catalog table.
	Delete(ctx context.Context, table Table, id string) error
}

// EmployeeRecord is a row of employees.
type EmployeeRecord struct {
	ID   string
	Name string
}

// CompanyRecord is a row of companies.
type CompanyRecord struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Email         string
	Phone         string
}

// CategoryRecord is a row of categories.
type CategoryRecord struct {
	ID   string
	Name string
}

// MaterialRecord is a row of value_scrap or charge_materials.
type MaterialRecord struct {
	ID          string
	Name        string
	Measurement string
}

// ProcessorRecord is a row of processors.
type ProcessorRecord struct {
	ID         string
	Series     string
	Generation string
}

// TableDumper reads a whole table as text for flat-file export.
type TableDumper interface {
	Dump(ctx context.Context, table Table) (*TableDump, error)
}

// TableDump is a table's header and rows rendered as strings. NULL is "".
type TableDump struct {
	Table   Table
	Columns []string
	Rows    [][]string
}
