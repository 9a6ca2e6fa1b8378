package sqlstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/checkin/internal/adapters/sqlstore"
	"github.com/example/checkin/internal/ports/secondary"
)

func TestCheckInRepository_CreateAndGet(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlstore.NewCheckInRepository(testDB, sqliteDialect)
	ctx := context.Background()

	in := sampleCheckIn("CO-001", "Acme Corp")
	id, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("expected ID %q, got %q", id, got.ID)
	}
	if got.CompanyName != "Acme Corp" {
		t.Errorf("expected company 'Acme Corp', got %q", got.CompanyName)
	}
	if got.Categories != in.Categories {
		t.Errorf("categories JSON changed: %q", got.Categories)
	}
	if got.ValueScrapTotals != in.ValueScrapTotals {
		t.Errorf("totals JSON changed: %q", got.ValueScrapTotals)
	}
	if !got.HasISeriesPCs || got.HasISeriesLaptops {
		t.Errorf("expected PCs=true laptops=false, got %v %v", got.HasISeriesPCs, got.HasISeriesLaptops)
	}
	if got.SuspectedValueNote == nil || *got.SuspectedValueNote != "gold pins" {
		t.Errorf("expected suspected note 'gold pins', got %v", got.SuspectedValueNote)
	}
	if got.OtherNotes != nil {
		t.Errorf("expected NULL other notes, got %q", *got.OtherNotes)
	}
	if got.CreatedAt == "" {
		t.Error("expected created_at to be set by the backend")
	}
}

func TestCheckInRepository_GetByID_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlstore.NewCheckInRepository(testDB, sqliteDialect)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckInRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlstore.NewCheckInRepository(testDB, sqliteDialect)
	ctx := context.Background()

	for _, co := range []string{"CO-001", "CO-001", "CO-002"} {
		if _, err := repo.Create(ctx, sampleCheckIn(co, "Co "+co)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name    string
		filters secondary.CheckInFilters
		want    int
	}{
		{"all", secondary.CheckInFilters{}, 3},
		{"by company", secondary.CheckInFilters{CompanyID: "CO-001"}, 2},
		{"limit", secondary.CheckInFilters{Limit: 1}, 1},
		{"unknown company", secondary.CheckInFilters{CompanyID: "CO-404"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d check-ins, got %d", tt.want, len(got))
			}
		})
	}
}

func TestCheckInRepository_Delete(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlstore.NewCheckInRepository(testDB, sqliteDialect)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleCheckIn("CO-001", "Acme Corp"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
