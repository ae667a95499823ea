package core

// convert.go translates between database rows and core types.

import (
	db "github.com/JonMunkholm/minicrm/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// toPgUUID parses s into a valid pgtype.UUID.
func toPgUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

// pgUUIDString returns the canonical form of u, or "" when u is NULL.
func pgUUIDString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func mapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func toOrganization(r db.Organization) Organization {
	return Organization{ID: r.ID, Name: r.Name, Country: r.Country, CreatedAt: r.CreatedAt.Time}
}

func toProject(r db.Project) Project {
	return Project{
		ID:               r.ID,
		Name:             r.Name,
		Sector:           r.Sector,
		OrganizationID:   r.OrganizationID,
		OrganizationName: r.OrganizationName,
		CreatedAt:        r.CreatedAt.Time,
	}
}

func toMasterValue(r db.MasterValue) MasterValue {
	return MasterValue{ID: r.ID, Name: r.Name}
}

func toGroupCount(r db.GroupCount) GroupCount {
	return GroupCount{Key: r.Key, Count: int(r.Count)}
}

func toAuditEntry(r db.AuditLog) AuditEntry {
	entry := AuditEntry{
		EntityKind: EntityKind(r.EntityKind),
		EntityID:   r.EntityID,
		Action:     AuditAction(r.Action),
		Details:    r.Details,
		CreatedAt:  r.CreatedAt.Time,
	}
	entry.ID = pgUUIDString(r.ID)
	return entry
}
