package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"opsdesk-engine/internal/smartimport"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := Migrate(d.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d.Pool
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var v int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		t.Fatalf("user_version: %v", err)
	}
	if v != 1 {
		t.Errorf("user_version = %d, want 1", v)
	}
}

func TestUpsertFromCandidateInsertThenMerge(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id1, merged, err := UpsertFromCandidate(ctx, db, smartimport.Candidate{
		Name: "Bob Smith", Email: "bob@x.com",
	}, "manual")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if merged {
		t.Fatalf("first upsert reported merged")
	}

	id2, merged, err := UpsertFromCandidate(ctx, db, smartimport.Candidate{
		Name: "Robert Smith", Email: "BOB@X.COM",
		Phone: "(555) 111-2222", Company: "Acme Construction",
	}, "manual")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged || id2 != id1 {
		t.Fatalf("want merge into id %d, got id=%d merged=%v", id1, id2, merged)
	}

	got, err := ListClients(ctx, db, ListClientsOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d clients, want 1: %+v", len(got), got)
	}
	c := got[0]
	if c.Name != "Bob Smith" {
		t.Errorf("merge overwrote the name: %q", c.Name)
	}
	if c.Phone != "(555) 111-2222" || c.Company != "Acme Construction" {
		t.Errorf("blank fields not filled: %+v", c)
	}
}

func TestFindMatchByPhoneDigits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, _, err := UpsertFromCandidate(ctx, db, smartimport.Candidate{
		Name: "Ann Lee", Phone: "(555) 123-4567",
	}, "manual")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := FindMatch(ctx, db, smartimport.Candidate{Name: "A Lee", Phone: "555.123.4567"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != id {
		t.Errorf("FindMatch = %d, want %d", got, id)
	}
}

func TestFindMatchByNameCompanyCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, _, err := UpsertFromCandidate(ctx, db, smartimport.Candidate{
		Name: "Ann Lee", Company: "Lee Inc",
	}, "manual")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := FindMatch(ctx, db, smartimport.Candidate{Name: "ANN LEE", Company: "lee inc"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != id {
		t.Errorf("FindMatch = %d, want %d", got, id)
	}

	got, err = FindMatch(ctx, db, smartimport.Candidate{Name: "Ann Lee"})
	if err != nil {
		t.Fatalf("find without company: %v", err)
	}
	if got != 0 {
		t.Errorf("name alone should not match, got %d", got)
	}
}

func TestDeleteClient(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, _, err := UpsertFromCandidate(ctx, db, smartimport.Candidate{Name: "Del Me", Email: "del@me.co"}, "manual")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := DeleteClient(ctx, db, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteClient(ctx, db, id); err != sql.ErrNoRows {
		t.Errorf("second delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestCleanupStaleImports(t *testing.T) {
	db := openTestDB(t)

	// One stale contactless auto-import, one fresh, one manual.
	mustExec(t, db, `
INSERT INTO clients(name, company_name, email, phone, phone_digits, address, notes, source, created_at, updated_at)
VALUES('Stale Row', 'X Co', '', '', '', '', '', 'auto-import', datetime('now','-3 days'), datetime('now','-3 days')),
      ('Fresh Row', 'Y Co', '', '', '', '', '', 'auto-import', datetime('now'), datetime('now')),
      ('Kept Row',  'Z Co', '', '', '', '', '', 'manual', datetime('now','-3 days'), datetime('now','-3 days'));`)

	n, err := CleanupStaleImports(db, 48)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want 1", n)
	}
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec: %v", err)
	}
}
