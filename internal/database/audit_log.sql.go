package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertAuditLog = `
INSERT INTO audit_log (id, entity_kind, entity_id, action, details)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, entity_kind, entity_id, action, details, created_at
`

type InsertAuditLogParams struct {
	ID         pgtype.UUID
	EntityKind string
	EntityID   int64
	Action     string
	Details    string
}

func (q *Queries) InsertAuditLog(ctx context.Context, arg InsertAuditLogParams) (AuditLog, error) {
	row := q.db.QueryRow(ctx, insertAuditLog,
		arg.ID,
		arg.EntityKind,
		arg.EntityID,
		arg.Action,
		arg.Details,
	)
	var i AuditLog
	err := row.Scan(
		&i.ID,
		&i.EntityKind,
		&i.EntityID,
		&i.Action,
		&i.Details,
		&i.CreatedAt,
	)
	return i, err
}

const listRecentAuditLog = `
SELECT id, entity_kind, entity_id, action, details, created_at
FROM audit_log
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (q *Queries) ListRecentAuditLog(ctx context.Context, limit int32) ([]AuditLog, error) {
	rows, err := q.db.Query(ctx, listRecentAuditLog, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AuditLog
	for rows.Next() {
		var i AuditLog
		if err := rows.Scan(
			&i.ID,
			&i.EntityKind,
			&i.EntityID,
			&i.Action,
			&i.Details,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
