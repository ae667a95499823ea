package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAddOrganization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	org, err := svc.AddOrganization(ctx, OrganizationInput{Name: "  Acme ", Country: "France"})
	if err != nil {
		t.Fatalf("AddOrganization() error = %v", err)
	}
	if org.ID == 0 || org.Name != "Acme" {
		t.Errorf("org = %+v, want trimmed name and an id", org)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.EntityKind != EntityOrganization || e.EntityID != org.ID || e.Action != ActionAdd {
		t.Errorf("audit entry = %+v", e)
	}
	if e.Details != `Added organization "Acme" (France)` {
		t.Errorf("Details = %q", e.Details)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Errorf("audit entry missing id or timestamp: %+v", e)
	}
}

func TestAddOrganization_ValidationWritesNothing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddOrganization(ctx, OrganizationInput{Name: "Acme"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("AddOrganization() error = %v, want *ValidationError", err)
	}

	page, _ := svc.ListOrganizations(ctx, OrganizationFilter{}, 1)
	if page.Total != 0 {
		t.Errorf("organizations = %d, want 0", page.Total)
	}
	if n := len(auditEntries(t, svc)); n != 0 {
		t.Errorf("audit entries = %d, want 0", n)
	}
}

func TestUpdateOrganization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	org := mustAddOrganization(t, svc, "Acme", "France")

	updated, err := svc.UpdateOrganization(ctx, org.ID, OrganizationInput{Name: "Acme SA", Country: "France"})
	if err != nil {
		t.Fatalf("UpdateOrganization() error = %v", err)
	}
	if updated.Name != "Acme SA" || updated.ID != org.ID {
		t.Errorf("updated = %+v", updated)
	}

	e := auditEntries(t, svc)[0]
	if e.Action != ActionEdit {
		t.Errorf("Action = %q, want edit", e.Action)
	}
	if e.Details != `Updated organization "Acme": name "Acme" -> "Acme SA"` {
		t.Errorf("Details = %q", e.Details)
	}

	if _, err := svc.UpdateOrganization(ctx, 999, OrganizationInput{Name: "X", Country: "Y"}); !isNotFound(err) {
		t.Errorf("UpdateOrganization(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteOrganization_Cascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acme := mustAddOrganization(t, svc, "Acme", "France")
	other := mustAddOrganization(t, svc, "Globex", "Germany")
	mustAddProject(t, svc, "Solar", "Energy", acme.ID)
	mustAddProject(t, svc, "Wind", "Energy", acme.ID)
	mustAddProject(t, svc, "Clinic", "Health", other.ID)

	n, err := svc.DeleteOrganization(ctx, acme.ID)
	if err != nil {
		t.Fatalf("DeleteOrganization() error = %v", err)
	}
	if n != 2 {
		t.Errorf("cascaded = %d, want 2", n)
	}

	projects, _ := svc.ListProjects(ctx, ProjectFilter{}, 1)
	if projects.Total != 1 || projects.Items[0].Name != "Clinic" {
		t.Errorf("remaining projects = %+v", projects.Items)
	}

	entries := auditEntries(t, svc)
	// 2 organizations + 3 projects added, 1 organization deleted.
	if len(entries) != 6 {
		t.Fatalf("audit entries = %d, want 6", len(entries))
	}
	if entries[0].Action != ActionDelete || !strings.Contains(entries[0].Details, "2 project(s)") {
		t.Errorf("delete entry = %+v", entries[0])
	}

	if _, err := svc.DeleteOrganization(ctx, acme.ID); !isNotFound(err) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestProjectMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acme := mustAddOrganization(t, svc, "Acme", "France")
	globex := mustAddOrganization(t, svc, "Globex", "Germany")

	p, err := svc.AddProject(ctx, ProjectInput{Name: "Solar", Sector: "Energy", OrganizationID: acme.ID})
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if p.OrganizationName != "Acme" {
		t.Errorf("OrganizationName = %q, want Acme", p.OrganizationName)
	}

	p, err = svc.UpdateProject(ctx, p.ID, ProjectInput{Name: "Solar 2", Sector: "Energy", OrganizationID: globex.ID})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if p.OrganizationName != "Globex" {
		t.Errorf("OrganizationName = %q, want Globex", p.OrganizationName)
	}
	want := `Updated project "Solar": name "Solar" -> "Solar 2", organization "Acme" -> "Globex"`
	if got := auditEntries(t, svc)[0].Details; got != want {
		t.Errorf("Details = %q, want %q", got, want)
	}

	if err := svc.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := svc.GetProject(ctx, p.ID); !isNotFound(err) {
		t.Errorf("GetProject after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteProject(ctx, p.ID); !isNotFound(err) {
		t.Errorf("DeleteProject(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestAddProject_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProject(ctx, ProjectInput{Name: "Solar", Sector: "Energy", OrganizationID: 77})
	if !isNotFound(err) {
		t.Errorf("AddProject(unknown org) error = %v, want ErrNotFound", err)
	}

	_, err = svc.AddProject(ctx, ProjectInput{Name: "Solar"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("AddProject(missing fields) error = %v, want *ValidationError", err)
	}

	if n := len(auditEntries(t, svc)); n != 0 {
		t.Errorf("audit entries = %d, want 0", n)
	}
}

func TestDescribeChanges(t *testing.T) {
	if got := describeChanges(change{"name", "a", "a"}); got != "no changes" {
		t.Errorf("describeChanges(same) = %q", got)
	}
	got := describeChanges(change{"name", "a", "b"}, change{"sector", "x", "y"})
	if got != `name "a" -> "b", sector "x" -> "y"` {
		t.Errorf("describeChanges() = %q", got)
	}
}

func TestRecentAudit_NewestFirstAndLimit(t *testing.T) {
	svc := newTestService(t)
	for _, name := range []string{"A", "B", "C"} {
		mustAddOrganization(t, svc, name, "France")
	}

	entries, err := svc.RecentAudit(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentAudit() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !strings.Contains(entries[0].Details, `"C"`) || !strings.Contains(entries[1].Details, `"B"`) {
		t.Errorf("order = %q, %q", entries[0].Details, entries[1].Details)
	}
}
