package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/checkin/internal/core/aggregate"
	"github.com/example/checkin/internal/core/form"
	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// DecodeError reports a stored column that does not hold the expected JSON.
type DecodeError struct {
	Table  secondary.Table
	Column string
	ID     string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: column %s is not valid: %v", e.Table, e.ID, e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	checkInRepo secondary.CheckInRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(checkInRepo secondary.CheckInRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		checkInRepo: checkInRepo,
	}
}

// ListCheckIns lists submitted check-ins, newest first.
func (s *HistoryServiceImpl) ListCheckIns(ctx context.Context, filters primary.CheckInFilters) ([]*primary.CheckInSummary, error) {
	records, err := s.checkInRepo.List(ctx, secondary.CheckInFilters{
		CompanyID: filters.CompanyID,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	summaries := make([]*primary.CheckInSummary, len(records))
	for i, r := range records {
		summaries[i] = &primary.CheckInSummary{
			ID:           r.ID,
			EmployeeName: r.EmployeeName,
			CompanyName:  r.CompanyName,
			TotalTime:    r.TotalTime,
			CreatedAt:    r.CreatedAt,
		}
	}
	return summaries, nil
}

// GetCheckIn retrieves one check-in with its list columns decoded.
func (s *HistoryServiceImpl) GetCheckIn(ctx context.Context, id string) (*primary.CheckIn, error) {
	record, err := s.checkInRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return decodeCheckIn(record)
}

// DeleteCheckIn deletes a check-in.
func (s *HistoryServiceImpl) DeleteCheckIn(ctx context.Context, id string) error {
	if err := s.checkInRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	return nil
}

// decodeCheckIn is the single decoder for check_ins rows. Any list column
// that fails to parse is a DecodeError; nothing is silently dropped.
func decodeCheckIn(r *secondary.CheckInRecord) (*primary.CheckIn, error) {
	c := &primary.CheckIn{
		ID:                r.ID,
		EmployeeName:      r.EmployeeName,
		StartedAt:         r.StartedAt,
		FinishedAt:        r.FinishedAt,
		TotalTime:         r.TotalTime,
		CompanyID:         r.CompanyID,
		CompanyName:       r.CompanyName,
		Address:           r.Address,
		ContactPerson:     r.ContactPerson,
		Email:             r.Email,
		Phone:             r.Phone,
		HasISeriesPCs:     r.HasISeriesPCs,
		HasISeriesLaptops: r.HasISeriesLaptops,
		CreatedAt:         r.CreatedAt,
	}
	if r.SuspectedValueNote != nil {
		c.SuspectedValueNote = form.Text(*r.SuspectedValueNote)
	}
	if r.OtherNotes != nil {
		c.OtherNotes = form.Text(*r.OtherNotes)
	}

	decode := func(column, raw string, dst any) error {
		if raw == "" {
			raw = "[]"
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return &DecodeError{Table: secondary.TableCheckIns, Column: column, ID: r.ID, Err: err}
		}
		return nil
	}

	var (
		categories   []form.CategoryEntry
		valueScrap   []form.MaterialEntry
		charge       []form.MaterialEntry
		scrapTotals  []aggregate.Total
		chargeTotals []aggregate.Total
		pcs          []form.ProcessorEntry
		laptops      []form.ProcessorEntry
	)
	for _, col := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"categories", r.Categories, &categories},
		{"value_scrap", r.ValueScrap, &valueScrap},
		{"charge_materials", r.ChargeMaterials, &charge},
		{"value_scrap_totals", r.ValueScrapTotals, &scrapTotals},
		{"charge_materials_totals", r.ChargeMaterialsTotals, &chargeTotals},
		{"i_series_pcs", r.ISeriesPCs, &pcs},
		{"i_series_laptops", r.ISeriesLaptops, &laptops},
	} {
		if err := decode(col.name, col.raw, col.dst); err != nil {
			return nil, err
		}
	}

	c.Categories = orEmpty(categories)
	c.ValueScrap = orEmpty(valueScrap)
	c.ChargeMaterials = orEmpty(charge)
	c.ValueScrapTotals = orEmpty(scrapTotals)
	c.ChargeMaterialsTotals = orEmpty(chargeTotals)
	c.ISeriesPCs = orEmpty(pcs)
	c.ISeriesLaptops = orEmpty(laptops)

	return c, nil
}
