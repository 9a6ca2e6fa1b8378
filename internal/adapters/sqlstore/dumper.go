package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/checkin/internal/ports/secondary"
)

// TableDumper implements secondary.TableDumper for flat-file exports.
type TableDumper struct {
	db *sql.DB
}

// NewTableDumper creates a new TableDumper.
func NewTableDumper(database *sql.DB) *TableDumper {
	return &TableDumper{db: database}
}

// Dump reads every row of table as text, in id order. The table name is
// checked against the known tables before it is put in the query.
func (d *TableDumper) Dump(ctx context.Context, table secondary.Table) (*secondary.TableDump, error) {
	if _, err := secondary.ParseTable(string(table)); err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT * FROM "+string(table)+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to dump %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", table, err)
	}

	dump := &secondary.TableDump{Table: table, Columns: columns, Rows: [][]string{}}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = v.String
		}
		dump.Rows = append(dump.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to dump %s: %w", table, err)
	}

	return dump, nil
}
