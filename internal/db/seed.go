package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/checkin/internal/config"
)

// SeedCatalogs populates the reference tables with a small demo catalog.
// Existing rows with the same IDs are left alone.
func SeedCatalogs(ctx context.Context, database *sql.DB, dialect Dialect) error {
	insert := func(table, query string, args ...any) error {
		if _, err := database.ExecContext(ctx, dialect.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
		return nil
	}
	ignore := "INSERT OR IGNORE INTO"
	switch dialect.Driver {
	case config.DriverPostgres:
		ignore = "INSERT INTO"
	case config.DriverMySQL:
		ignore = "INSERT IGNORE INTO"
	}
	suffix := ""
	if dialect.Driver == config.DriverPostgres {
		suffix = " ON CONFLICT (id) DO NOTHING"
	}

	employees := []struct{ id, name string }{
		{"EMP-001", "J. Doe"},
		{"EMP-002", "M. Rivera"},
	}
	for _, e := range employees {
		if err := insert("employees", ignore+" employees (id, name) VALUES (?, ?)"+suffix, e.id, e.name); err != nil {
			return err
		}
	}

	companies := []struct{ id, name, address, contact, email, phone string }{
		{"CO-001", "Acme Corp", "1 Main St", "A. Smith", "a@acme.com", "555-0100"},
		{"CO-002", "Globex Recycling", "77 Harbor Rd", "H. Simpson", "ops@globex.example", "555-0199"},
	}
	for _, c := range companies {
		if err := insert("companies",
			ignore+" companies (id, name, address, contact_person, email, phone) VALUES (?, ?, ?, ?, ?, ?)"+suffix,
			c.id, c.name, c.address, c.contact, c.email, c.phone,
		); err != nil {
			return err
		}
	}

	categories := []struct{ id, name string }{
		{"CAT-001", "Desktops"},
		{"CAT-002", "Laptops"},
		{"CAT-003", "Servers"},
	}
	for _, c := range categories {
		if err := insert("categories", ignore+" categories (id, name) VALUES (?, ?)"+suffix, c.id, c.name); err != nil {
			return err
		}
	}

	valueScrap := []struct{ id, name, unit string }{
		{"VS-001", "Aluminum", "Lbs."},
		{"VS-002", "Copper", "Lbs."},
		{"VS-003", "Gold Pins", "Pcs."},
	}
	for _, m := range valueScrap {
		if err := insert("value_scrap", ignore+" value_scrap (id, name, measurement) VALUES (?, ?, ?)"+suffix, m.id, m.name, m.unit); err != nil {
			return err
		}
	}

	charge := []struct{ id, name, unit string }{
		{"CM-001", "CRT Monitors", "Pcs."},
		{"CM-002", "Batteries", "Lbs."},
	}
	for _, m := range charge {
		if err := insert("charge_materials", ignore+" charge_materials (id, name, measurement) VALUES (?, ?, ?)"+suffix, m.id, m.name, m.unit); err != nil {
			return err
		}
	}

	processors := []struct{ id, series, gen string }{
		{"CPU-001", "i5", "8th"},
		{"CPU-002", "i5", "10th"},
		{"CPU-003", "i7", "8th"},
		{"CPU-004", "i7", "10th"},
	}
	for _, p := range processors {
		if err := insert("processors",
			ignore+" processors (id, processor_series, processor_generation) VALUES (?, ?, ?)"+suffix,
			p.id, p.series, p.gen,
		); err != nil {
			return err
		}
	}

	return nil
}
