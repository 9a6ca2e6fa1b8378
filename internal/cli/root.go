// Package cli defines the checkin cobra commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/checkin/internal/version"
	"github.com/example/checkin/internal/wire"
)

// RootCmd returns the checkin root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "checkin",
		Short:   "Warehouse receiving check-in",
		Version: version.String(),
		Long: `checkin records what arrived at the warehouse from a customer: who
received it, which company it came from, item categories, scrap and charge
materials, i-series processors and free-text notes.

A check-in is collected step by step by a wizard, written to the configured
backend and read back before it counts as saved.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config-dir", "", "Directory containing .checkin/config.json (default: current directory)")

	// Bootstrap
	rootCmd.AddCommand(InitCmd())

	// Wizard
	rootCmd.AddCommand(NewCmd())
	rootCmd.AddCommand(SubmitCmd())

	// Records and reference data
	rootCmd.AddCommand(HistoryCmd())
	rootCmd.AddCommand(CatalogCmd())

	// Documents
	rootCmd.AddCommand(PrintCmd())
	rootCmd.AddCommand(ExportCmd())

	return rootCmd
}

// withContainer builds the application for one command run and closes it
// afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *wire.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dir, _ := cmd.Flags().GetString("config-dir")

	c, err := wire.New(ctx, wire.Options{
		Dir:    dir,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c)
}
