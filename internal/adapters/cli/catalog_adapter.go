package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// CatalogAdapter is a thin adapter that translates CLI operations to AdminService calls.
type CatalogAdapter struct {
	service primary.AdminService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.AdminService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
	}
}

// List prints every row of a catalog table.
func (a *CatalogAdapter) List(ctx context.Context, table secondary.Table) error {
	listing, err := a.service.ListEntries(ctx, table)
	if err != nil {
		return err
	}

	if len(listing.Rows) == 0 {
		fmt.Fprintf(a.out, "No %s configured.\n", table)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(listing.Columns, "\t"))
	dashes := make([]string, len(listing.Columns))
	for i, c := range listing.Columns {
		dashes[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))
	for _, row := range listing.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	return nil
}

// Add creates a catalog row.
func (a *CatalogAdapter) Add(ctx context.Context, req primary.AddEntryRequest) error {
	id, err := a.service.AddEntry(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Added %s entry %s\n", req.Table, id)
	return nil
}

// UpdateCompany edits a company's contact fields.
func (a *CatalogAdapter) UpdateCompany(ctx context.Context, req primary.UpdateCompanyRequest) error {
	if err := a.service.UpdateCompany(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Updated company %s\n", req.ID)
	return nil
}

// Remove deletes a catalog row.
func (a *CatalogAdapter) Remove(ctx context.Context, table secondary.Table, id string) error {
	if err := a.service.RemoveEntry(ctx, table, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed %s entry %s\n", table, id)
	return nil
}
