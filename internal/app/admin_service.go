package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// AdminServiceImpl implements the AdminService interface.
type AdminServiceImpl struct {
	catalogRepo secondary.CatalogRepository
}

// NewAdminService creates a new AdminService with injected dependencies.
func NewAdminService(catalogRepo secondary.CatalogRepository) *AdminServiceImpl {
	return &AdminServiceImpl{
		catalogRepo: catalogRepo,
	}
}

// ListEntries lists a catalog table as display rows.
func (s *AdminServiceImpl) ListEntries(ctx context.Context, table secondary.Table) (*primary.CatalogListing, error) {
	listing := &primary.CatalogListing{Table: table, Rows: [][]string{}}

	switch table {
	case secondary.TableEmployees:
		rows, err := s.catalogRepo.ListEmployees(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		listing.Columns = []string{"ID", "NAME"}
		for _, r := range rows {
			listing.Rows = append(listing.Rows, []string{r.ID, r.Name})
		}
	case secondary.TableCompanies:
		rows, err := s.catalogRepo.ListCompanies(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}
		listing.Columns = []string{"ID", "NAME", "ADDRESS", "CONTACT", "EMAIL", "PHONE"}
		for _, r := range rows {
			listing.Rows = append(listing.Rows, []string{r.ID, r.Name, r.Address, r.ContactPerson, r.Email, r.Phone})
		}
	case secondary.TableCategories:
		rows, err := s.catalogRepo.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		listing.Columns = []string{"ID", "NAME"}
		for _, r := range rows {
			listing.Rows = append(listing.Rows, []string{r.ID, r.Name})
		}
	case secondary.TableValueScrap, secondary.TableChargeMaterials:
		rows, err := s.catalogRepo.ListMaterials(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", table, err)
		}
		listing.Columns = []string{"ID", "NAME", "MEASUREMENT"}
		for _, r := range rows {
			listing.Rows = append(listing.Rows, []string{r.ID, r.Name, r.Measurement})
		}
	case secondary.TableProcessors:
		rows, err := s.catalogRepo.ListProcessors(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list processors: %w", err)
		}
		listing.Columns = []string{"ID", "SERIES", "GENERATION"}
		for _, r := range rows {
			listing.Rows = append(listing.Rows, []string{r.ID, r.Series, r.Generation})
		}
	default:
		return nil, fmt.Errorf("%s is not a catalog table", table)
	}

	return listing, nil
}

// AddEntry validates and creates a catalog row, returning its ID.
func (s *AdminServiceImpl) AddEntry(ctx context.Context, req primary.AddEntryRequest) (string, error) {
	name := strings.TrimSpace(req.Name)

	switch req.Table {
	case secondary.TableEmployees:
		if name == "" {
			return "", fmt.Errorf("employee name is required")
		}
		rec := &secondary.EmployeeRecord{Name: name}
		if err := s.catalogRepo.CreateEmployee(ctx, rec); err != nil {
			return "", fmt.Errorf("failed to add employee: %w", err)
		}
		return rec.ID, nil

	case secondary.TableCompanies:
		if name == "" {
			return "", fmt.Errorf("company name is required")
		}
		rec := &secondary.CompanyRecord{
			Name:          name,
			Address:       strings.TrimSpace(req.Address),
			ContactPerson: strings.TrimSpace(req.ContactPerson),
			Email:         strings.TrimSpace(req.Email),
			Phone:         strings.TrimSpace(req.Phone),
		}
		if err := s.catalogRepo.CreateCompany(ctx, rec); err != nil {
			return "", fmt.Errorf("failed to add company: %w", err)
		}
		return rec.ID, nil

	case secondary.TableCategories:
		if name == "" {
			return "", fmt.Errorf("category name is required")
		}
		rec := &secondary.CategoryRecord{Name: name}
		if err := s.catalogRepo.CreateCategory(ctx, rec); err != nil {
			return "", fmt.Errorf("failed to add category: %w", err)
		}
		return rec.ID, nil

	case secondary.TableValueScrap, secondary.TableChargeMaterials:
		measurement := strings.TrimSpace(req.Measurement)
		if name == "" || measurement == "" {
			return "", fmt.Errorf("material name and measurement are required")
		}
		rec := &secondary.MaterialRecord{Name: name, Measurement: measurement}
		if err := s.catalogRepo.CreateMaterial(ctx, req.Table, rec); err != nil {
			return "", fmt.Errorf("failed to add material: %w", err)
		}
		return rec.ID, nil

	case secondary.TableProcessors:
		series := strings.TrimSpace(req.Series)
		generation := strings.TrimSpace(req.Generation)
		if series == "" || generation == "" {
			return "", fmt.Errorf("processor series and generation are required")
		}
		rec := &secondary.ProcessorRecord{Series: series, Generation: generation}
		if err := s.catalogRepo.CreateProcessor(ctx, rec); err != nil {
			return "", fmt.Errorf("failed to add processor: %w", err)
		}
		return rec.ID, nil
	}

	return "", fmt.Errorf("%s is not a catalog table", req.Table)
}

// UpdateCompany overwrites a company's contact fields. Check-ins already
// submitted keep the contact details copied at the time.
func (s *AdminServiceImpl) UpdateCompany(ctx context.Context, req primary.UpdateCompanyRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return fmt.Errorf("company ID is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("company name is required")
	}

	err := s.catalogRepo.UpdateCompany(ctx, &secondary.CompanyRecord{
		ID:            req.ID,
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

// RemoveEntry deletes a catalog row.
func (s *AdminServiceImpl) RemoveEntry(ctx context.Context, table secondary.Table, id string) error {
	if err := s.catalogRepo.Delete(ctx, table, id); err != nil {
		return fmt.Errorf("failed to remove %s entry: %w", table, err)
	}
	return nil
}
