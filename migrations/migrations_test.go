package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	for i := 0; i < 2; i++ {
		if err := Run(ctx, db); err != nil {
			t.Fatalf("Run() #%d error: %v", i+1, err)
		}
	}

	var tables []string
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('poll_state', 'notifications') ORDER BY name`)
	if err != nil {
		t.Fatalf("query tables: %v", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan: %v", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	if diff := cmp.Diff([]string{"notifications", "poll_state"}, tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestProviderStatus(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	p, err := NewProvider(db)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}

	before, err := p.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if len(before) == 0 {
		t.Fatal("Status() returned no migrations")
	}
	for _, s := range before {
		if s.State != goose.StatePending {
			t.Errorf("migration %d state = %s, want %s", s.Source.Version, s.State, goose.StatePending)
		}
	}

	if err := Run(ctx, db); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	v, err := p.GetDBVersion(ctx)
	if err != nil {
		t.Fatalf("GetDBVersion() error: %v", err)
	}
	if want := before[len(before)-1].Source.Version; v != want {
		t.Errorf("GetDBVersion() = %d, want %d", v, want)
	}
}
