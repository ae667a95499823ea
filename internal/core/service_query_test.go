package core

import (
	"context"
	"fmt"
	"testing"
)

func TestListOrganizations_Pagination(t *testing.T) {
	svc := newTestService(t)
	for i := 1; i <= 23; i++ {
		mustAddOrganization(t, svc, fmt.Sprintf("Org %02d", i), "France")
	}
	ctx := context.Background()

	tests := []struct {
		page      int
		wantItems int
		wantFirst string
	}{
		{1, 10, "Org 01"},
		{2, 10, "Org 11"},
		{3, 3, "Org 21"},
		{4, 0, ""},
		{0, 10, "Org 01"},
		{1 << 62, 0, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := svc.ListOrganizations(ctx, OrganizationFilter{}, tt.page)
			if err != nil {
				t.Fatalf("ListOrganizations() error = %v", err)
			}
			if page.Total != 23 || page.TotalPages != 3 {
				t.Errorf("Total = %d, TotalPages = %d, want 23, 3", page.Total, page.TotalPages)
			}
			if len(page.Items) != tt.wantItems {
				t.Fatalf("got %d items, want %d", len(page.Items), tt.wantItems)
			}
			if tt.wantItems > 0 && page.Items[0].Name != tt.wantFirst {
				t.Errorf("first item = %q, want %q", page.Items[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestListProjects_HugePageIsEmpty(t *testing.T) {
	svc := newTestService(t)
	org := mustAddOrganization(t, svc, "Acme", "France")
	mustAddProject(t, svc, "Solar", "Energy", org.ID)

	page, err := svc.ListProjects(context.Background(), ProjectFilter{}, 1000000000000000000)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(page.Items) != 0 || page.Total != 1 {
		t.Errorf("got %d items of %d, want 0 of 1", len(page.Items), page.Total)
	}
}

func TestPaginate_OutOfBoundsOffset(t *testing.T) {
	items := []int{1, 2, 3}
	for _, offset := range []int{-1, 3, 1 << 62} {
		if got := paginate(items, 2, offset); got != nil {
			t.Errorf("paginate(offset=%d) = %v, want nil", offset, got)
		}
	}
	if got := paginate(items, 2, 1); len(got) != 2 || got[0] != 2 {
		t.Errorf("paginate(offset=1) = %v, want [2 3]", got)
	}
}

func TestListOrganizations_Filter(t *testing.T) {
	svc := newTestService(t)
	mustAddOrganization(t, svc, "Zeta", "Germany")
	mustAddOrganization(t, svc, "Alpha", "NIGER")
	mustAddOrganization(t, svc, "Beta", "France")
	mustAddOrganization(t, svc, "100% Pure", "France")
	ctx := context.Background()

	page, err := svc.ListOrganizations(ctx, OrganizationFilter{Country: "ger"}, 1)
	if err != nil {
		t.Fatalf("ListOrganizations() error = %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Total = %d, want 2", page.Total)
	}
	if page.Items[0].Name != "Alpha" || page.Items[1].Name != "Zeta" {
		t.Errorf("order = %q, %q, want Alpha, Zeta", page.Items[0].Name, page.Items[1].Name)
	}

	page, err = svc.ListOrganizations(ctx, OrganizationFilter{Name: "0%"}, 1)
	if err != nil {
		t.Fatalf("ListOrganizations() error = %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "100% Pure" {
		t.Errorf("literal %% filter matched %d rows", page.Total)
	}

	page, err = svc.ListOrganizations(ctx, OrganizationFilter{Name: "nomatch"}, 1)
	if err != nil {
		t.Fatalf("ListOrganizations() error = %v", err)
	}
	if page.Total != 0 || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Errorf("no-match page = %+v", page)
	}
}

func TestListProjects_NewestFirstWithOwner(t *testing.T) {
	svc := newTestService(t)
	acme := mustAddOrganization(t, svc, "Acme", "France")
	globex := mustAddOrganization(t, svc, "Globex", "Germany")
	mustAddProject(t, svc, "First", "Energy", acme.ID)
	mustAddProject(t, svc, "Second", "Health", globex.ID)
	mustAddProject(t, svc, "Third", "Energy", acme.ID)
	ctx := context.Background()

	page, err := svc.ListProjects(ctx, ProjectFilter{}, 1)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(page.Items))
	}
	if page.Items[0].Name != "Third" || page.Items[2].Name != "First" {
		t.Errorf("order = %q..%q, want Third..First", page.Items[0].Name, page.Items[2].Name)
	}
	if page.Items[1].OrganizationName != "Globex" {
		t.Errorf("OrganizationName = %q, want Globex", page.Items[1].OrganizationName)
	}

	page, err = svc.ListProjects(ctx, ProjectFilter{Organization: "ACM", Sector: "ener"}, 1)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if page.Total != 2 {
		t.Errorf("filtered Total = %d, want 2", page.Total)
	}
}

func TestGetOrganization_NotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.GetOrganization(context.Background(), 42); !isNotFound(err) {
		t.Errorf("GetOrganization() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetProject(context.Background(), 42); !isNotFound(err) {
		t.Errorf("GetProject() error = %v, want ErrNotFound", err)
	}
}
