package database

import "github.com/jackc/pgx/v5/pgtype"

type Organization struct {
	ID        int64
	Name      string
	Country   string
	CreatedAt pgtype.Timestamptz
}

type Project struct {
	ID               int64
	Name             string
	Sector           string
	CreatedAt        pgtype.Timestamptz
	OrganizationID   int64
	OrganizationName string
}

// MasterValue is a row of the country or sector table.
type MasterValue struct {
	ID   int64
	Name string
}

type AuditLog struct {
	ID         pgtype.UUID
	EntityKind string
	EntityID   int64
	Action     string
	Details    string
	CreatedAt  pgtype.Timestamptz
}

type GroupCount struct {
	Key   string
	Count int64
}
