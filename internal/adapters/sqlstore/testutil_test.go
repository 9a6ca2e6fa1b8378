// Package sqlstore_test contains integration tests for the database/sql
// repositories, run against in-memory sqlite.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlstore_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/checkin/internal/config"
	"github.com/example/checkin/internal/db"
	"github.com/example/checkin/internal/ports/secondary"
)

var sqliteDialect = db.Dialect{Driver: config.DriverSQLite}

// setupTestDB creates an in-memory database with the authoritative schema.
// Each pooled connection to ":memory:" is a separate database, so the pool
// is pinned to one connection.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func strPtr(s string) *string { return &s }

// sampleCheckIn returns a fully populated record for the given company.
func sampleCheckIn(companyID, companyName string) *secondary.CheckInRecord {
	return &secondary.CheckInRecord{
		EmployeeName:          "J. Doe",
		StartedAt:             "2026-03-02T09:00:00Z",
		FinishedAt:            "2026-03-02T09:14:00Z",
		TotalTime:             "14m",
		CompanyID:             companyID,
		CompanyName:           companyName,
		Address:               "1 Main St",
		ContactPerson:         "Pat",
		Email:                 "pat@example.com",
		Phone:                 "555-0100",
		Categories:            `[{"category":"Laptops","quantity":"4"}]`,
		ValueScrap:            `[{"materialId":"m1","materialName":"Copper","quantity":"10","measurement":"Lbs."}]`,
		ChargeMaterials:       `[]`,
		ValueScrapTotals:      `[{"measurement":"Lbs.","total":10}]`,
		ChargeMaterialsTotals: `[]`,
		HasISeriesPCs:         true,
		HasISeriesLaptops:     false,
		ISeriesPCs:            `[{"processorSeries":"i5","processorGeneration":"8th","quantity":"2"}]`,
		ISeriesLaptops:        `[]`,
		SuspectedValueNote:    strPtr("gold pins"),
		OtherNotes:            nil,
	}
}
