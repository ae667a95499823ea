package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/minicrm/internal/logging"
	"github.com/google/uuid"
)

// EntityKind names the table an audit entry refers to.
type EntityKind string

const (
	EntityOrganization EntityKind = "organization"
	EntityProject      EntityKind = "project"
	EntityCountry      EntityKind = "country"
	EntitySector       EntityKind = "sector"
)

// Entity returns the audit entity kind of a master list.
func (k MasterKind) Entity() EntityKind {
	return EntityKind(k)
}

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionAdd        AuditAction = "add"
	ActionEdit       AuditAction = "edit"
	ActionDelete     AuditAction = "delete"
	ActionBulkUpload AuditAction = "bulk_upload"
)

// AuditLogLimit is how many entries the audit page shows.
const AuditLogLimit = 200

// AuditEntry is an immutable record of one change.
type AuditEntry struct {
	ID         string
	EntityKind EntityKind
	EntityID   int64
	Action     AuditAction
	Details    string
	CreatedAt  time.Time
}

// recordAudit appends an entry through st, which is normally the
// transaction that made the change.
func (s *Service) recordAudit(ctx context.Context, st Store, kind EntityKind, id int64, action AuditAction, details string) error {
	entry, err := st.AppendAudit(ctx, AuditEntry{
		ID:         uuid.NewString(),
		EntityKind: kind,
		EntityID:   id,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	meta := RequestMetaFrom(ctx)
	logging.FromContext(ctx).Debug("audit entry recorded",
		"audit_id", entry.ID,
		"entity", kind,
		"entity_id", id,
		"action", action,
		"ip", meta.IP,
		"user_agent", meta.UserAgent,
	)
	return nil
}

// RecentAudit returns up to limit entries, newest first.
func (s *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = AuditLogLimit
	}
	entries, err := s.store.RecentAudit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	return entries, nil
}
