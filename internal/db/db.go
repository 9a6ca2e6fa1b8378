// Package db opens the relational backend and owns the local sqlite schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql" // register mysql as a database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "github.com/mattn/go-sqlite3"    // register sqlite3 as a database/sql driver

	"github.com/example/checkin/internal/config"
)

// Dialect adapts query text to a driver's placeholder style.
type Dialect struct {
	Driver string
}

// Rebind rewrites '?' placeholders to '$n' for the pgx driver. Other drivers
// take the query unchanged. Placeholders inside quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d.Driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Open connects to the configured backend. For sqlite the database file and
// its directory are created and the schema is applied. Remote backends are
// expected to already carry the schema.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, Dialect, error) {
	dialect := Dialect{Driver: cfg.Backend.Driver}

	var dsn string
	switch cfg.Backend.Driver {
	case config.DriverSQLite:
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, dialect, err
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, dialect, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = path
	default:
		dsn = cfg.Backend.DSN
	}

	database, err := sql.Open(cfg.Backend.Driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, dialect, fmt.Errorf("failed to reach %s backend: %w", cfg.Backend.Driver, err)
	}

	if cfg.Backend.Driver == config.DriverSQLite {
		if _, err := database.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			database.Close()
			return nil, dialect, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if err := InitSchema(ctx, database); err != nil {
			database.Close()
			return nil, dialect, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return database, dialect, nil
}
