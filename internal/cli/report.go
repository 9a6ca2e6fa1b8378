package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
	"github.com/example/checkin/internal/wire"
)

// archiveKey names an archived document: <dir>/<name>-<UTC timestamp>.<ext>.
func archiveKey(dir, name, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%s-%s.%s", dir, name, now.UTC().Format("20060102T150405Z"), ext)
}

// PrintCmd returns the print command
func PrintCmd() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "print [check-in-id]",
		Short: "Print the check-in document",
		Long: `Render the printable document of one check-in to stdout.

Material totals are the ones stored with the check-in.
With --archive the document is also stored under reports/ in the
configured archive.

Examples:
  checkin print 3f1c...
  checkin print 3f1c... --archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				reports, err := c.ReportService(ctx, "", archive)
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				if err := reports.PrintCheckIn(ctx, id, &buf); err != nil {
					return err
				}
				if _, err := c.Out.Write(buf.Bytes()); err != nil {
					return err
				}

				if archive {
					return archiveOutput(ctx, c, reports, archiveKey("reports", id, "txt", time.Now()), "text/plain; charset=utf-8", &buf)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Also store the document in the configured archive")

	return cmd
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	var (
		format  string
		charset string
		output  string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "export [table]",
		Short: "Export a table as CSV or XLSX",
		Long: `Export every row of a table, reference or check_ins, as a flat file.

Examples:
  checkin export check_ins --format xlsx -o checkins.xlsx
  checkin export companies --format csv --charset windows-1252
  checkin export check_ins --format csv --archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := secondary.ParseTable(args[0])
			if err != nil {
				return err
			}
			exportFormat := primary.ExportFormat(format)
			contentType, err := exportContentType(exportFormat)
			if err != nil {
				return err
			}
			if output == "" && exportFormat == primary.FormatXLSX && !archive {
				return fmt.Errorf("xlsx output needs --output or --archive")
			}

			return withContainer(cmd, func(ctx context.Context, c *wire.Container) error {
				reports, err := c.ReportService(ctx, charset, archive)
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				if err := reports.ExportTable(ctx, table, exportFormat, &buf); err != nil {
					return err
				}

				switch {
				case output != "":
					if err := writeFile(output, buf.Bytes()); err != nil {
						return err
					}
					fmt.Fprintf(c.Out, "✓ Wrote %s\n", output)
				case exportFormat == primary.FormatCSV:
					if _, err := c.Out.Write(buf.Bytes()); err != nil {
						return err
					}
				}

				if archive {
					return archiveOutput(ctx, c, reports, archiveKey("exports", string(table), format, time.Now()), contentType, &buf)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&charset, "charset", "", "CSV character set: utf-8 (default) or windows-1252")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&archive, "archive", false, "Also store the export in the configured archive")

	return cmd
}

func exportContentType(f primary.ExportFormat) (string, error) {
	switch f {
	case primary.FormatCSV:
		return "text/csv", nil
	case primary.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv or xlsx)", f)
	}
}

func archiveOutput(ctx context.Context, c *wire.Container, reports primary.ReportService, key, contentType string, body io.Reader) error {
	location, err := reports.Archive(ctx, key, contentType, body)
	if err != nil {
		return err
	}
	c.Logger.Info("archived", "key", key, "location", location)
	fmt.Fprintf(c.ErrOut, "✓ Archived to %s\n", location)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
