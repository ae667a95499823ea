package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/minicrm/internal/logging"
)

// ListMasters returns a master list ordered by name.
func (s *Service) ListMasters(ctx context.Context, kind MasterKind) ([]MasterValue, error) {
	values, err := s.store.ListMasters(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s values: %w", kind, err)
	}
	return values, nil
}

// AddMaster adds name to a master list. Existing names return
// ErrAlreadyExists and write nothing.
func (s *Service) AddMaster(ctx context.Context, kind MasterKind, name string) (MasterValue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MasterValue{}, &ValidationError{Entity: kind.Entity(), Fields: []string{"name"}}
	}

	var value MasterValue
	err := s.store.WithTx(ctx, func(tx Store) error {
		exists, err := tx.MasterExists(ctx, kind, name)
		if err != nil {
			return fmt.Errorf("check %s: %w", kind, err)
		}
		if exists {
			return fmt.Errorf("%s %q: %w", kind, name, ErrAlreadyExists)
		}
		value, err = tx.CreateMaster(ctx, kind, name)
		if err != nil {
			return fmt.Errorf("create %s: %w", kind, err)
		}
		return s.recordAudit(ctx, tx, kind.Entity(), value.ID, ActionAdd, fmt.Sprintf("Added %s %q", kind, name))
	})
	if err != nil {
		return MasterValue{}, err
	}

	logging.FromContext(ctx).Info("master value added", "kind", kind, "id", value.ID)
	return value, nil
}

// DeleteMaster removes a value from a master list. Organizations and
// projects that copied the name are left alone.
func (s *Service) DeleteMaster(ctx context.Context, kind MasterKind, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		value, err := tx.DeleteMaster(ctx, kind, id)
		if err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, kind.Entity(), id, ActionDelete, fmt.Sprintf("Deleted %s %q", kind, value.Name))
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("master value deleted", "kind", kind, "id", id)
	return nil
}

// upsertMaster inserts name into the master list unless it is empty or
// already present. It reports whether a row was added. A concurrent insert
// of the same name between the check and the insert counts as present.
func upsertMaster(ctx context.Context, tx Store, kind MasterKind, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	exists, err := tx.MasterExists(ctx, kind, name)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", kind, err)
	}
	if exists {
		return false, nil
	}
	if _, err := tx.CreateMaster(ctx, kind, name); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", kind, err)
	}
	return true, nil
}
