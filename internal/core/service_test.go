package core

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/minicrm/internal/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewMemStore(), nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func mustAddOrganization(t *testing.T, svc *Service, name, country string) Organization {
	t.Helper()
	org, err := svc.AddOrganization(context.Background(), OrganizationInput{Name: name, Country: country})
	if err != nil {
		t.Fatalf("AddOrganization(%q) error = %v", name, err)
	}
	return org
}

func mustAddProject(t *testing.T, svc *Service, name, sector string, orgID int64) Project {
	t.Helper()
	p, err := svc.AddProject(context.Background(), ProjectInput{Name: name, Sector: sector, OrganizationID: orgID})
	if err != nil {
		t.Fatalf("AddProject(%q) error = %v", name, err)
	}
	return p
}

func auditEntries(t *testing.T, svc *Service) []AuditEntry {
	t.Helper()
	entries, err := svc.RecentAudit(context.Background(), AuditLogLimit)
	if err != nil {
		t.Fatalf("RecentAudit() error = %v", err)
	}
	return entries
}

func TestNewService(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Error("NewService(nil) expected error")
	}

	cfg := &config.Config{Upload: config.UploadConfig{MaxConcurrent: 3, MaxWaitTime: 0}}
	svc, err := NewService(NewMemStore(), cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if got := svc.UploadLimiterStatus().MaxConcurrent; got != 3 {
		t.Errorf("MaxConcurrent = %d, want 3", got)
	}
	if svc.importTimeout != DefaultImportTimeout {
		t.Errorf("importTimeout = %v, want %v", svc.importTimeout, DefaultImportTimeout)
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMemStore_WithTxRollsBack(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.CreateOrganization(ctx, OrganizationInput{Name: "Acme", Country: "France"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	n, err := store.CountOrganizations(ctx, OrganizationFilter{})
	if err != nil {
		t.Fatalf("CountOrganizations() error = %v", err)
	}
	if n != 0 {
		t.Errorf("after rollback count = %d, want 0", n)
	}
}
