package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/checkin/internal/db"
	"github.com/example/checkin/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogRepository.
type CatalogRepository struct {
	db      *sql.DB
	dialect db.Dialect
	newID   func() string
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(database *sql.DB, dialect db.Dialect) *CatalogRepository {
	return &CatalogRepository{db: database, dialect: dialect, newID: uuid.NewString}
}

// ListEmployees lists employees by name.
func (r *CatalogRepository) ListEmployees(ctx context.Context) ([]*secondary.EmployeeRecord, error) {
	return listRows(ctx, r, "employees", "SELECT id, name FROM employees ORDER BY name, id",
		func(s rowScanner) (*secondary.EmployeeRecord, error) {
			rec := &secondary.EmployeeRecord{}
			return rec, s.Scan(&rec.ID, &rec.Name)
		})
}

// ListCompanies lists companies by name.
func (r *CatalogRepository) ListCompanies(ctx context.Context) ([]*secondary.CompanyRecord, error) {
	return listRows(ctx, r, "companies", "SELECT id, name, address, contact_person, email, phone FROM companies ORDER BY name, id",
		func(s rowScanner) (*secondary.CompanyRecord, error) {
			rec := &secondary.CompanyRecord{}
			return rec, s.Scan(&rec.ID, &rec.Name, &rec.Address, &rec.ContactPerson, &rec.Email, &rec.Phone)
		})
}

// ListCategories lists categories by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	return listRows(ctx, r, "categories", "SELECT id, name FROM categories ORDER BY name, id",
		func(s rowScanner) (*secondary.CategoryRecord, error) {
			rec := &secondary.CategoryRecord{}
			return rec, s.Scan(&rec.ID, &rec.Name)
		})
}

// ListMaterials lists value_scrap or charge_materials by name.
func (r *CatalogRepository) ListMaterials(ctx context.Context, table secondary.Table) ([]*secondary.MaterialRecord, error) {
	if err := materialTable(table); err != nil {
		return nil, err
	}
	return listRows(ctx, r, string(table), "SELECT id, name, measurement FROM "+string(table)+" ORDER BY name, id",
		func(s rowScanner) (*secondary.MaterialRecord, error) {
			rec := &secondary.MaterialRecord{}
			return rec, s.Scan(&rec.ID, &rec.Name, &rec.Measurement)
		})
}

// ListProcessors lists processors by series, then generation.
func (r *CatalogRepository) ListProcessors(ctx context.Context) ([]*secondary.ProcessorRecord, error) {
	return listRows(ctx, r, "processors", "SELECT id, processor_series, processor_generation FROM processors ORDER BY processor_series, processor_generation, id",
		func(s rowScanner) (*secondary.ProcessorRecord, error) {
			rec := &secondary.ProcessorRecord{}
			return rec, s.Scan(&rec.ID, &rec.Series, &rec.Generation)
		})
}

// CreateEmployee inserts an employee, assigning an ID when empty.
func (r *CatalogRepository) CreateEmployee(ctx context.Context, rec *secondary.EmployeeRecord) error {
	r.assignID(&rec.ID)
	return r.exec(ctx, "create employee", "INSERT INTO employees (id, name) VALUES (?, ?)", rec.ID, rec.Name)
}

// CreateCompany inserts a company, assigning an ID when empty.
func (r *CatalogRepository) CreateCompany(ctx context.Context, rec *secondary.CompanyRecord) error {
	r.assignID(&rec.ID)
	return r.exec(ctx, "create company",
		"INSERT INTO companies (id, name, address, contact_person, email, phone) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Name, rec.Address, rec.ContactPerson, rec.Email, rec.Phone)
}

// CreateCategory inserts a category, assigning an ID when empty.
func (r *CatalogRepository) CreateCategory(ctx context.Context, rec *secondary.CategoryRecord) error {
	r.assignID(&rec.ID)
	return r.exec(ctx, "create category", "INSERT INTO categories (id, name) VALUES (?, ?)", rec.ID, rec.Name)
}

// CreateMaterial inserts into value_scrap or charge_materials, assigning an ID when empty.
func (r *CatalogRepository) CreateMaterial(ctx context.Context, table secondary.Table, rec *secondary.MaterialRecord) error {
	if err := materialTable(table); err != nil {
		return err
	}
	r.assignID(&rec.ID)
	return r.exec(ctx, "create material",
		"INSERT INTO "+string(table)+" (id, name, measurement) VALUES (?, ?, ?)",
		rec.ID, rec.Name, rec.Measurement)
}

// CreateProcessor inserts a processor, assigning an ID when empty.
func (r *CatalogRepository) CreateProcessor(ctx context.Context, rec *secondary.ProcessorRecord) error {
	r.assignID(&rec.ID)
	return r.exec(ctx, "create processor",
		"INSERT INTO processors (id, processor_series, processor_generation) VALUES (?, ?, ?)",
		rec.ID, rec.Series, rec.Generation)
}

// UpdateCompany overwrites every contact field of a company.
func (r *CatalogRepository) UpdateCompany(ctx context.Context, rec *secondary.CompanyRecord) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE companies SET name = ?, address = ?, contact_person = ?, email = ?, phone = ? WHERE id = ?"),
		rec.Name, rec.Address, rec.ContactPerson, rec.Email, rec.Phone, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("company %s: %w", rec.ID, secondary.ErrNotFound)
	}

	return nil
}

// Delete removes a row from a catalog table.
func (r *CatalogRepository) Delete(ctx context.Context, table secondary.Table, id string) error {
	if !isCatalogTable(table) {
		return fmt.Errorf("%s is not a catalog table", table)
	}

	result, err := r.db.ExecContext(ctx, r.dialect.Rebind("DELETE FROM "+string(table)+" WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%s row %s: %w", table, id, secondary.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepository) assignID(id *string) {
	if *id == "" {
		*id = r.newID()
	}
}

func (r *CatalogRepository) exec(ctx context.Context, op, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}

// listRows runs query and decodes each row with scan. Tables have a single
// decode function each; a scan error aborts the list.
func listRows[T any](ctx context.Context, r *CatalogRepository, table, query string, scan func(rowScanner) (*T, error)) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return out, nil
}

func materialTable(table secondary.Table) error {
	if table != secondary.TableValueScrap && table != secondary.TableChargeMaterials {
		return fmt.Errorf("%s is not a material table", table)
	}
	return nil
}

func isCatalogTable(table secondary.Table) bool {
	for _, t := range secondary.CatalogTables() {
		if t == table {
			return true
		}
	}
	return false
}
