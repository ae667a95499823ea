// Package database holds the PostgreSQL queries and row types used by the
// store. Queries follow the sqlc layout: one method per statement on
// *Queries, which runs against either a pool or a transaction.
package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries runs the application's statements.
type Queries struct {
	db DBTX
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

//go:embed schema.sql
var schemaSQL string

// Migrate creates any missing tables and indexes. It is safe to run on
// every start.
func Migrate(ctx context.Context, db DBTX) error {
	// No arguments, so pgx uses the simple protocol and accepts the
	// multi-statement script.
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
