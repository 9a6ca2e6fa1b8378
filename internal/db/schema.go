package db

import (
	"context"
	"database/sql"
)

// SchemaSQL is the schema of the local sqlite backend.
//
// This is the SINGLE SOURCE OF TRUTH for the table layout. Repository tests
// load it through GetSchemaSQL() so a column referenced by a repository but
// missing here fails immediately with "no such column".
//
// Hosted backends (pgx, mysql) own their schema; it must expose the same
// tables and columns.
const SchemaSQL = `
-- Reference tables (catalogs)
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- value_scrap is the canonical name; some clients called it value_materials.
CREATE TABLE IF NOT EXISTS value_scrap (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	measurement TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS charge_materials (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	measurement TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS processors (
	id TEXT PRIMARY KEY,
	processor_series TEXT NOT NULL,
	processor_generation TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Check-ins (one row per submitted wizard). List columns hold JSON text.
CREATE TABLE IF NOT EXISTS check_ins (
	id TEXT PRIMARY KEY,
	employee_name TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	total_time TEXT NOT NULL,
	company_id TEXT NOT NULL,
	company_name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	categories TEXT NOT NULL DEFAULT '[]',
	value_scrap TEXT NOT NULL DEFAULT '[]',
	charge_materials TEXT NOT NULL DEFAULT '[]',
	value_scrap_totals TEXT NOT NULL DEFAULT '[]',
	charge_materials_totals TEXT NOT NULL DEFAULT '[]',
	has_i_series_pcs BOOLEAN NOT NULL DEFAULT 0,
	has_i_series_laptops BOOLEAN NOT NULL DEFAULT 0,
	i_series_pcs TEXT NOT NULL DEFAULT '[]',
	i_series_laptops TEXT NOT NULL DEFAULT '[]',
	suspected_value_note TEXT,
	other_notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_check_ins_company ON check_ins(company_id);
CREATE INDEX IF NOT EXISTS idx_check_ins_created ON check_ins(created_at);
`

// InitSchema applies SchemaSQL. Every statement is idempotent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
