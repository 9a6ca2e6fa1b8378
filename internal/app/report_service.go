package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// ErrNoArchive is returned by Archive when no report archive is configured.
var ErrNoArchive = errors.New("no report archive configured")

// DocumentRenderer renders the printable document of one check-in.
type DocumentRenderer interface {
	RenderCheckIn(w io.Writer, c *primary.CheckIn) error
}

// TableEncoder writes a table dump in one flat-file format.
type TableEncoder interface {
	EncodeTable(w io.Writer, dump *secondary.TableDump) error
}

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	checkInRepo secondary.CheckInRepository
	dumper      secondary.TableDumper
	renderer    DocumentRenderer
	encoders    map[primary.ExportFormat]TableEncoder
	archive     secondary.ReportArchive
}

// NewReportService creates a new ReportService with injected dependencies.
// archive may be nil.
func NewReportService(
	checkInRepo secondary.CheckInRepository,
	dumper secondary.TableDumper,
	renderer DocumentRenderer,
	encoders map[primary.ExportFormat]TableEncoder,
	archive secondary.ReportArchive,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		checkInRepo: checkInRepo,
		dumper:      dumper,
		renderer:    renderer,
		encoders:    encoders,
		archive:     archive,
	}
}

// PrintCheckIn renders one stored check-in. Totals come from the stored row.
func (s *ReportServiceImpl) PrintCheckIn(ctx context.Context, id string, w io.Writer) error {
	record, err := s.checkInRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get check-in: %w", err)
	}

	checkIn, err := decodeCheckIn(record)
	if err != nil {
		return err
	}

	if err := s.renderer.RenderCheckIn(w, checkIn); err != nil {
		return fmt.Errorf("failed to render check-in %s: %w", id, err)
	}
	return nil
}

// ExportTable writes every row of table in format.
func (s *ReportServiceImpl) ExportTable(ctx context.Context, table secondary.Table, format primary.ExportFormat, w io.Writer) error {
	encoder, ok := s.encoders[format]
	if !ok {
		return fmt.Errorf("unsupported export format %q", format)
	}

	dump, err := s.dumper.Dump(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", table, err)
	}

	if err := encoder.EncodeTable(w, dump); err != nil {
		return fmt.Errorf("failed to encode %s as %s: %w", table, format, err)
	}
	return nil
}

// Archive stores a rendered document and returns its location.
func (s *ReportServiceImpl) Archive(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.archive == nil {
		return "", ErrNoArchive
	}
	location, err := s.archive.Put(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return location, nil
}
