package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// execRecorder captures the statements Migrate sends.
type execRecorder struct {
	sql []string
	err error
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	e.sql = append(e.sql, sql)
	return pgconn.CommandTag{}, e.err
}

func (e *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (e *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestMigrate_AppliesSchema(t *testing.T) {
	rec := &execRecorder{}
	if err := Migrate(context.Background(), rec); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if len(rec.sql) != 1 {
		t.Fatalf("got %d statements, want 1", len(rec.sql))
	}
	for _, table := range []string{"organization", "project", "country", "sector", "audit_log"} {
		if !strings.Contains(rec.sql[0], "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("schema missing table %s", table)
		}
	}
}

func TestMigrate_TextColumnsHaveNoLengthLimit(t *testing.T) {
	// Names are only checked for blankness, so a length cap in the schema
	// would turn long input into a database error.
	if strings.Contains(strings.ToUpper(schemaSQL), "VARCHAR") {
		t.Error("schema declares a length-limited VARCHAR column")
	}
}

func TestMigrate_WrapsError(t *testing.T) {
	rec := &execRecorder{err: errors.New("connection refused")}
	err := Migrate(context.Background(), rec)
	if err == nil || !strings.Contains(err.Error(), "apply schema") || !errors.Is(err, rec.err) {
		t.Errorf("Migrate() error = %v", err)
	}
}
