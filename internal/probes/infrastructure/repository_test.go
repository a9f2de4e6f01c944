package infrastructure

import (
	"context"
	"reflect"
	"testing"
	"time"

	"sysprobe/internal/infrastructure/database"
	"sysprobe/internal/probes/domain"
	"sysprobe/internal/schema"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	testDB, err := database.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	// every connection to :memory: is a separate database
	testDB.SetMaxOpenConns(1)
	t.Cleanup(func() { testDB.Close() })

	if _, err := testDB.Exec(schema.DDL); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return NewRepository(testDB, testDB)
}

func TestRepository_SaveAndList(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	mem := domain.EmptyMapping()
	mem.Set("free", "1.00GB")
	mem.Set("active", "2.00GB")
	updated := time.UnixMilli(1700000000123)

	entries := []domain.Entry{
		{ProbeID: "kind=probe|name=mem", Name: "mem", Type: domain.TypeMemory, Value: mem, UpdatedAt: updated, Runs: 3, Failures: 1, LastError: "boom"},
		{ProbeID: "kind=probe|name=cpu", Name: "cpu", Type: domain.TypeCPU, Value: domain.Scalar(domain.NoData)},
		{ProbeID: "kind=probe|name=top", Name: "top", Type: domain.TypeProcesses, Value: domain.Table([][]string{{"1", "0.5", "launchd"}})},
	}
	for _, e := range entries {
		if err := repo.SaveEntry(ctx, e); err != nil {
			t.Fatalf("SaveEntry(%s) error = %v", e.Name, err)
		}
	}

	got, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].Name != "cpu" || got[1].Name != "mem" || got[2].Name != "top" {
		t.Errorf("entries not sorted by name: %v, %v, %v", got[0].Name, got[1].Name, got[2].Name)
	}
	if !got[0].UpdatedAt.IsZero() {
		t.Errorf("never updated entry has UpdatedAt %v", got[0].UpdatedAt)
	}

	m := got[1]
	if !m.UpdatedAt.Equal(updated) || m.Runs != 3 || m.Failures != 1 || m.LastError != "boom" {
		t.Errorf("mem = %+v", m)
	}
	if !reflect.DeepEqual(m.Value.Keys, []string{"free", "active"}) {
		t.Errorf("row order lost: %v", m.Value.Keys)
	}
	if !reflect.DeepEqual(got[2].Value.Table, [][]string{{"1", "0.5", "launchd"}}) {
		t.Errorf("table = %v", got[2].Value.Table)
	}
}

func TestRepository_SaveReplaces(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	repo.SaveEntry(ctx, domain.Entry{Name: "cpu", ProbeID: "a", Type: domain.TypeCPU, Value: domain.Scalar("1.00%"), Runs: 1})
	repo.SaveEntry(ctx, domain.Entry{Name: "cpu", ProbeID: "a", Type: domain.TypeCPU, Value: domain.Scalar("2.00%"), Runs: 2})

	got, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("only the latest entry is kept, got %d", len(got))
	}
	if got[0].Value.Scalar != "2.00%" || got[0].Runs != 2 {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	repo.SaveEntry(ctx, domain.Entry{Name: "a", Value: domain.Scalar("1")})
	repo.SaveEntry(ctx, domain.Entry{Name: "b", Value: domain.Scalar("2")})

	if err := repo.DeleteEntry(ctx, "a"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if err := repo.DeleteEntry(ctx, "missing"); err != nil {
		t.Errorf("deleting a missing entry error = %v", err)
	}

	got, _ := repo.ListEntries(ctx)
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("entries = %+v", got)
	}

	if err := repo.ClearEntries(ctx); err != nil {
		t.Fatalf("ClearEntries() error = %v", err)
	}
	got, _ = repo.ListEntries(ctx)
	if len(got) != 0 {
		t.Errorf("entries after clear = %+v", got)
	}
}
