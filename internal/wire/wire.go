// Package wire assembles the checkin application from configuration.
// A Container owns the database handle; callers Close it when done.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"

	"github.com/example/checkin/internal/adapters/archive"
	cliadapter "github.com/example/checkin/internal/adapters/cli"
	"github.com/example/checkin/internal/adapters/feedback"
	"github.com/example/checkin/internal/adapters/report"
	"github.com/example/checkin/internal/adapters/sqlstore"
	"github.com/example/checkin/internal/app"
	"github.com/example/checkin/internal/config"
	"github.com/example/checkin/internal/db"
	"github.com/example/checkin/internal/logging"
	"github.com/example/checkin/internal/ports/primary"
	"github.com/example/checkin/internal/ports/secondary"
)

// Container holds the constructed services for one command invocation.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
	Out    io.Writer
	ErrOut io.Writer

	CatalogCache      *app.CatalogCache
	SubmissionService primary.SubmissionService
	HistoryService    primary.HistoryService
	AdminService      primary.AdminService

	checkInRepo *sqlstore.CheckInRepository
	dumper      *sqlstore.TableDumper
	archive     secondary.ReportArchive
	locale      language.Tag
}

// Options controls construction.
type Options struct {
	Dir    string // directory holding .checkin/config.json; "" means cwd
	Out    io.Writer
	ErrOut io.Writer
	Now    func() time.Time
}

// New resolves configuration and builds every service. The archive is
// built lazily on first use since S3 needs credentials resolved.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		opts.Dir = cwd
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	cfg, err := config.Resolve(opts.Dir, os.Getenv)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(opts.ErrOut, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	locale := language.AmericanEnglish
	if cfg.Locale != "" {
		locale, err = language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
	}

	database, dialect, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Create repository adapters (secondary ports)
	checkInRepo := sqlstore.NewCheckInRepository(database, dialect)
	catalogRepo := sqlstore.NewCatalogRepository(database, dialect)

	signaler := feedback.Multi{
		feedback.NewTerminalSignaler(opts.Out),
		feedback.NewMetricsSignaler(cfg.Metrics.TextfilePath, logger),
	}
	notifier := cliadapter.NewTerminalNotifier(opts.Out)

	// Create services (primary ports implementation)
	return &Container{
		Config:            cfg,
		Logger:            logger,
		DB:                database,
		Out:               opts.Out,
		ErrOut:            opts.ErrOut,
		CatalogCache:      app.NewCatalogCache(catalogRepo, logger),
		SubmissionService: app.NewSubmissionService(checkInRepo, signaler, notifier, logger, opts.Now),
		HistoryService:    app.NewHistoryService(checkInRepo),
		AdminService:      app.NewAdminService(catalogRepo),
		checkInRepo:       checkInRepo,
		dumper:            sqlstore.NewTableDumper(database),
		locale:            locale,
	}, nil
}

// Close releases the database handle.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// ReportService builds the report service. charset selects the CSV
// encoding; withArchive resolves the configured archive.
func (c *Container) ReportService(ctx context.Context, charset string, withArchive bool) (primary.ReportService, error) {
	csvEncoder, err := report.NewCSVEncoder(charset)
	if err != nil {
		return nil, err
	}
	encoders := map[primary.ExportFormat]app.TableEncoder{
		primary.FormatCSV:  csvEncoder,
		primary.FormatXLSX: report.XLSXEncoder{},
	}

	var store secondary.ReportArchive
	if withArchive {
		store, err = c.Archive(ctx)
		if err != nil {
			return nil, err
		}
	}

	return app.NewReportService(c.checkInRepo, c.dumper, report.NewTextRenderer(c.locale), encoders, store), nil
}

// Archive returns the configured report archive.
func (c *Container) Archive(ctx context.Context) (secondary.ReportArchive, error) {
	if c.archive != nil {
		return c.archive, nil
	}

	switch c.Config.Archive.Kind {
	case config.ArchiveS3:
		a, err := archive.NewS3Archive(ctx, archive.S3Config{
			Bucket:    c.Config.Archive.Bucket,
			Region:    c.Config.Archive.Region,
			Endpoint:  c.Config.Archive.Endpoint,
			Prefix:    c.Config.Archive.Prefix,
			PathStyle: c.Config.Archive.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		c.archive = a
	default:
		dir, err := c.Config.ArchiveDir()
		if err != nil {
			return nil, err
		}
		a, err := archive.NewFSArchive(dir)
		if err != nil {
			return nil, err
		}
		c.archive = a
	}

	c.Logger.Debug("archive ready", "kind", c.Config.Archive.Kind)
	return c.archive, nil
}

// HistoryAdapter returns a history adapter writing to the container's output.
func (c *Container) HistoryAdapter() *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(c.HistoryService, c.Out)
}

// CatalogAdapter returns a catalog adapter writing to the container's output.
func (c *Container) CatalogAdapter() *cliadapter.CatalogAdapter {
	return cliadapter.NewCatalogAdapter(c.AdminService, c.Out)
}
