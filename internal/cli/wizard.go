package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/checkin/internal/adapters/cli"
	"github.com/example/checkin/internal/app"
	"github.com/example/checkin/internal/wire"
)

// NewCmd returns the interactive wizard command
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Record a check-in interactively",
		Long: `Walk through the check-in wizard one step at a time.

At every step: press enter to continue, b to go back, q to quit.
On the review screen: s submits, e <step> edits a section.

Examples:
  checkin new`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				ctx, session := app.StartSession(ctx, c.CatalogCache, time.Now)
				c.Logger.Info("wizard started", "session", session.ID)

				prompter := cliadapter.NewWizardPrompter(cmd.InOrStdin(), c.Out, session.Catalogs, session.Wizard, c.SubmissionService)
				_, err := prompter.Run(ctx)
				if errors.Is(err, cliadapter.ErrAbandoned) {
					c.Logger.Info("wizard abandoned", "session", session.ID)
					fmt.Fprintln(c.Out, "Check-in discarded.")
					return nil
				}
				return err
			})
		},
	}
}

// SubmitCmd returns the non-interactive submit command
func SubmitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a check-in from an answer file",
		Long: `Replay a JSON answer file through the wizard and submit it.

Every step must validate in order, exactly as in the interactive wizard.
Companies and materials may be given by catalog ID or by name.

Examples:
  checkin submit --file answers.json
  cat answers.json | checkin submit --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open answer file: %w", err)
				}
				defer f.Close()
				in = f
			}
			answers, err := cliadapter.ReadAnswerFile(in)
			if err != nil {
				return err
			}

			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				ctx, session := app.StartSession(ctx, c.CatalogCache, time.Now)

				if err := cliadapter.Replay(session.Wizard, session.Catalogs, answers); err != nil {
					return fmt.Errorf("answer file incomplete: %w", err)
				}

				result, err := c.SubmissionService.Submit(ctx, session.Wizard)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.Out, "Check-in ID: %s\n", result.CheckInID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Answer file (JSON), or - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}
