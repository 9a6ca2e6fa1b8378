package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/ports/secondary"
)

// CatalogCache loads the reference lists a wizard session is recorded against.
type CatalogCache struct {
	repo   secondary.CatalogRepository
	logger *slog.Logger
}

// NewCatalogCache creates a new CatalogCache with injected dependencies.
func NewCatalogCache(repo secondary.CatalogRepository, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		repo:   repo,
		logger: logger,
	}
}

// Load fetches all six catalogs concurrently and waits for every fetch.
// A failing fetch is logged and leaves its list empty; the others still load.
func (c *CatalogCache) Load(ctx context.Context) catalog.Catalogs {
	var (
		out catalog.Catalogs
		g   errgroup.Group
	)

	fetch := func(table secondary.Table, load func() error) {
		g.Go(func() error {
			if err := load(); err != nil {
				c.logger.WarnContext(ctx, "catalog unavailable, continuing without it",
					"table", string(table), "error", err)
			}
			// Never fail the group: one missing catalog must not cancel the rest.
			return nil
		})
	}

	fetch(secondary.TableEmployees, func() error {
		rows, err := c.repo.ListEmployees(ctx)
		if err != nil {
			return err
		}
		out.Employees = convert(rows, func(r *secondary.EmployeeRecord) catalog.Employee {
			return catalog.Employee{ID: r.ID, Name: r.Name}
		})
		return nil
	})
	fetch(secondary.TableCompanies, func() error {
		rows, err := c.repo.ListCompanies(ctx)
		if err != nil {
			return err
		}
		out.Companies = convert(rows, func(r *secondary.CompanyRecord) catalog.Company {
			return catalog.Company{
				ID:            r.ID,
				Name:          r.Name,
				Address:       r.Address,
				ContactPerson: r.ContactPerson,
				Email:         r.Email,
				Phone:         r.Phone,
			}
		})
		return nil
	})
	fetch(secondary.TableCategories, func() error {
		rows, err := c.repo.ListCategories(ctx)
		if err != nil {
			return err
		}
		out.Categories = convert(rows, func(r *secondary.CategoryRecord) catalog.Category {
			return catalog.Category{ID: r.ID, Name: r.Name}
		})
		return nil
	})
	fetch(secondary.TableValueScrap, func() error {
		rows, err := c.repo.ListMaterials(ctx, secondary.TableValueScrap)
		if err != nil {
			return err
		}
		out.ValueScrapMaterials = convert(rows, materialFromRecord)
		return nil
	})
	fetch(secondary.TableChargeMaterials, func() error {
		rows, err := c.repo.ListMaterials(ctx, secondary.TableChargeMaterials)
		if err != nil {
			return err
		}
		out.ChargeMaterials = convert(rows, materialFromRecord)
		return nil
	})
	fetch(secondary.TableProcessors, func() error {
		rows, err := c.repo.ListProcessors(ctx)
		if err != nil {
			return err
		}
		out.Processors = convert(rows, func(r *secondary.ProcessorRecord) catalog.Processor {
			return catalog.Processor{ID: r.ID, Series: r.Series, Generation: r.Generation}
		})
		return nil
	})

	_ = g.Wait()

	out.Employees = orEmpty(out.Employees)
	out.Companies = orEmpty(out.Companies)
	out.Categories = orEmpty(out.Categories)
	out.ValueScrapMaterials = orEmpty(out.ValueScrapMaterials)
	out.ChargeMaterials = orEmpty(out.ChargeMaterials)
	out.Processors = orEmpty(out.Processors)

	c.logger.DebugContext(ctx, "catalogs loaded", "counts", out.Counts())
	return out
}

func materialFromRecord(r *secondary.MaterialRecord) catalog.Material {
	return catalog.Material{ID: r.ID, Name: r.Name, Measurement: r.Measurement}
}

func convert[R, T any](rows []*R, f func(*R) T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, f(r))
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
