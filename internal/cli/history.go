package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/checkin/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse submitted check-ins",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyRemoveCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var (
		companyID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List check-ins, newest first",
		Long: `List submitted check-ins, newest first.

Examples:
  checkin history list
  checkin history list --company CO-001 --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				_, err := c.HistoryAdapter().List(ctx, companyID, limit)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&companyID, "company", "c", "", "Only check-ins from this company ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of check-ins (0 = all)")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [check-in-id]",
		Short: "Show check-in details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				_, err := c.HistoryAdapter().Show(ctx, args[0])
				return err
			})
		},
	}
}

func historyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [check-in-id]",
		Short: "Delete a check-in",
		Long: `Delete a submitted check-in.

WARNING: This is a destructive operation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				return c.HistoryAdapter().Delete(ctx, args[0])
			})
		},
	}
}
