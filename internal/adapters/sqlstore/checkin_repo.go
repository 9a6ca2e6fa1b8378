// Package sqlstore contains database/sql implementations of repository
// interfaces. The same code serves sqlite3, pgx and mysql through db.Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/checkin/internal/db"
	"github.com/example/checkin/internal/ports/secondary"
)

const checkInColumns = "id, employee_name, started_at, finished_at, total_time, company_id, company_name, address, contact_person, email, phone, categories, value_scrap, charge_materials, value_scrap_totals, charge_materials_totals, has_i_series_pcs, has_i_series_laptops, i_series_pcs, i_series_laptops, suspected_value_note, other_notes, created_at"

// CheckInRepository implements secondary.CheckInRepository.
type CheckInRepository struct {
	db      *sql.DB
	dialect db.Dialect
	newID   func() string
}

// NewCheckInRepository creates a new check-in repository.
func NewCheckInRepository(database *sql.DB, dialect db.Dialect) *CheckInRepository {
	return &CheckInRepository{db: database, dialect: dialect, newID: uuid.NewString}
}

// Create inserts a check-in and returns its generated ID.
func (r *CheckInRepository) Create(ctx context.Context, rec *secondary.CheckInRecord) (string, error) {
	id := r.newID()

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO check_ins (id, employee_name, started_at, finished_at, total_time, company_id, company_name, address, contact_person, email, phone, categories, value_scrap, charge_materials, value_scrap_totals, charge_materials_totals, has_i_series_pcs, has_i_series_laptops, i_series_pcs, i_series_laptops, suspected_value_note, other_notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		id, rec.EmployeeName, rec.StartedAt, rec.FinishedAt, rec.TotalTime,
		rec.CompanyID, rec.CompanyName, rec.Address, rec.ContactPerson, rec.Email, rec.Phone,
		rec.Categories, rec.ValueScrap, rec.ChargeMaterials, rec.ValueScrapTotals, rec.ChargeMaterialsTotals,
		rec.HasISeriesPCs, rec.HasISeriesLaptops, rec.ISeriesPCs, rec.ISeriesLaptops,
		nullString(rec.SuspectedValueNote), nullString(rec.OtherNotes),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create check-in: %w", err)
	}

	return id, nil
}

// GetByID retrieves a check-in by its ID.
func (r *CheckInRepository) GetByID(ctx context.Context, id string) (*secondary.CheckInRecord, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind("SELECT "+checkInColumns+" FROM check_ins WHERE id = ?"), id)

	record, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check-in %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return record, nil
}

// List retrieves check-ins matching the given filters, newest first.
func (r *CheckInRepository) List(ctx context.Context, filters secondary.CheckInFilters) ([]*secondary.CheckInRecord, error) {
	query := "SELECT " + checkInColumns + " FROM check_ins WHERE 1=1"
	args := []any{}

	if filters.CompanyID != "" {
		query += " AND company_id = ?"
		args = append(args, filters.CompanyID)
	}

	query += " ORDER BY created_at DESC, id"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CheckInRecord
	for rows.Next() {
		record, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	return records, nil
}

// Delete removes a check-in.
func (r *CheckInRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind("DELETE FROM check_ins WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("check-in %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(s rowScanner) (*secondary.CheckInRecord, error) {
	var (
		suspected sql.NullString
		other     sql.NullString
		createdAt sql.NullString
	)

	rec := &secondary.CheckInRecord{}
	err := s.Scan(
		&rec.ID, &rec.EmployeeName, &rec.StartedAt, &rec.FinishedAt, &rec.TotalTime,
		&rec.CompanyID, &rec.CompanyName, &rec.Address, &rec.ContactPerson, &rec.Email, &rec.Phone,
		&rec.Categories, &rec.ValueScrap, &rec.ChargeMaterials, &rec.ValueScrapTotals, &rec.ChargeMaterialsTotals,
		&rec.HasISeriesPCs, &rec.HasISeriesLaptops, &rec.ISeriesPCs, &rec.ISeriesLaptops,
		&suspected, &other, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if suspected.Valid {
		rec.SuspectedValueNote = &suspected.String
	}
	if other.Valid {
		rec.OtherNotes = &other.String
	}
	rec.CreatedAt = createdAt.String

	return rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
