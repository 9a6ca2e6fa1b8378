package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
	"github.com/example/checkin/internal/wire"
)

// CatalogCmd returns the catalog command
func CatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage reference tables",
		Long: `List and edit the reference tables the wizard offers as choices.

Tables: employees, companies, categories, value_scrap (alias value_materials),
charge_materials, processors.`,
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogAddCmd())
	cmd.AddCommand(catalogUpdateCompanyCmd())
	cmd.AddCommand(catalogRemoveCmd())

	return cmd
}

// parseCatalogTable resolves a catalog table name. check_ins is not a catalog.
func parseCatalogTable(name string) (secondary.Table, error) {
	table, err := secondary.ParseTable(name)
	if err != nil {
		return "", err
	}
	if table == secondary.TableCheckIns {
		return "", fmt.Errorf("%s is not a catalog table; use checkin history", table)
	}
	return table, nil
}

func catalogTableNames() string {
	names := make([]string, 0, len(secondary.CatalogTables()))
	for _, t := range secondary.CatalogTables() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [table]",
		Short: "List a reference table",
		Long: fmt.Sprintf(`List every row of a reference table.

Tables: %s

Examples:
  checkin catalog list companies
  checkin catalog list value_materials`, catalogTableNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := parseCatalogTable(args[0])
			if err != nil {
				return err
			}
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				return c.CatalogAdapter().List(ctx, table)
			})
		},
	}
}

func catalogAddCmd() *cobra.Command {
	var req primary.AddEntryRequest

	cmd := &cobra.Command{
		Use:   "add [table] [name]",
		Short: "Add a row to a reference table",
		Long: `Add a row to a reference table. Processors take --series and
--generation instead of a name.

Examples:
  checkin catalog add employees "J. Doe"
  checkin catalog add companies "Acme Corp" --address "1 Main St" --contact "A. Smith" --email a@acme.com --phone 555-0100
  checkin catalog add value_scrap Copper --measurement Lbs.
  checkin catalog add processors --series i7 --generation 10th`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := parseCatalogTable(args[0])
			if err != nil {
				return err
			}
			req.Table = table
			if len(args) == 2 {
				req.Name = args[1]
			}
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				return c.CatalogAdapter().Add(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Measurement, "measurement", "", "Unit of measure (materials)")
	cmd.Flags().StringVar(&req.Series, "series", "", "Processor series, e.g. i5 (processors)")
	cmd.Flags().StringVar(&req.Generation, "generation", "", "Processor generation, e.g. 8th (processors)")
	cmd.Flags().StringVar(&req.Address, "address", "", "Street address (companies)")
	cmd.Flags().StringVar(&req.ContactPerson, "contact", "", "Contact person (companies)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Contact email (companies)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact phone (companies)")

	return cmd
}

func catalogUpdateCompanyCmd() *cobra.Command {
	var req primary.UpdateCompanyRequest

	cmd := &cobra.Command{
		Use:   "update-company [company-id]",
		Short: "Edit a company's contact details",
		Long: `Overwrite a company's name and contact fields.

Check-ins already submitted keep the contact details copied at the time.

Examples:
  checkin catalog update-company CO-001 --name "Acme Corp" --phone 555-0101`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ID = args[0]
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				return c.CatalogAdapter().UpdateCompany(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Company name (required)")
	cmd.Flags().StringVar(&req.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&req.ContactPerson, "contact", "", "Contact person")
	cmd.Flags().StringVar(&req.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact phone")
	cmd.MarkFlagRequired("name")

	return cmd
}

func catalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [table] [id]",
		Short: "Remove a row from a reference table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := parseCatalogTable(args[0])
			if err != nil {
				return err
			}
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				return c.CatalogAdapter().Remove(ctx, table, args[1])
			})
		},
	}
}
