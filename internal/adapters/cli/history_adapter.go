// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/checkin/internal/ports/primary"
)

// HistoryAdapter is a thin adapter that translates CLI operations to HistoryService calls.
// It depends only on the HistoryService interface, enabling easy testing with mocks.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists submitted check-ins with optional company filter and limit.
func (a *HistoryAdapter) List(ctx context.Context, companyID string, limit int) ([]*primary.CheckInSummary, error) {
	checkIns, err := a.service.ListCheckIns(ctx, primary.CheckInFilters{
		CompanyID: companyID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	if len(checkIns) == 0 {
		fmt.Fprintln(a.out, "No check-ins found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Record one with:")
		fmt.Fprintln(a.out, "  checkin new")
		return checkIns, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBMITTED\tEMPLOYEE\tCOMPANY\tHOURS")
	fmt.Fprintln(w, "--\t---------\t--------\t-------\t-----")

	for _, c := range checkIns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.CreatedAt,
			c.EmployeeName,
			c.CompanyName,
			c.TotalTime,
		)
	}

	w.Flush()
	return checkIns, nil
}

// Show displays the details of one check-in.
func (a *HistoryAdapter) Show(ctx context.Context, id string) (*primary.CheckIn, error) {
	c, err := a.service.GetCheckIn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}

	fmt.Fprintf(a.out, "\nCheck-in: %s\n", c.ID)
	fmt.Fprintf(a.out, "Employee:  %s\n", c.EmployeeName)
	fmt.Fprintf(a.out, "Company:   %s (%s)\n", c.CompanyName, c.CompanyID)
	fmt.Fprintf(a.out, "Hours:     %s\n", c.TotalTime)
	fmt.Fprintf(a.out, "Started:   %s\n", c.StartedAt)
	fmt.Fprintf(a.out, "Finished:  %s\n", c.FinishedAt)
	fmt.Fprintf(a.out, "Submitted: %s\n", c.CreatedAt)
	fmt.Fprintf(a.out, "Categories: %d, value scrap: %d, charge materials: %d\n",
		len(c.Categories), len(c.ValueScrap), len(c.ChargeMaterials))
	for _, t := range c.ValueScrapTotals {
		fmt.Fprintf(a.out, "  value scrap total: %v %s\n", t.Total, t.Unit)
	}
	for _, t := range c.ChargeMaterialsTotals {
		fmt.Fprintf(a.out, "  charge total:      %v %s\n", t.Total, t.Unit)
	}
	fmt.Fprintf(a.out, "i-series PCs: %d rows, laptops: %d rows\n", len(c.ISeriesPCs), len(c.ISeriesLaptops))
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Print it with: checkin print %s\n", c.ID)

	return c, nil
}

// Delete removes a check-in.
func (a *HistoryAdapter) Delete(ctx context.Context, id string) error {
	if err := a.service.DeleteCheckIn(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted check-in %s\n", id)
	return nil
}
