package core

import (
	"context"
	"testing"
)

func TestAnalytics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acme := mustAddOrganization(t, svc, "Acme", "France")
	globex := mustAddOrganization(t, svc, "Globex", "Germany")
	mustAddOrganization(t, svc, "Initech", "france")
	mustAddProject(t, svc, "Solar", "Energy", acme.ID)
	mustAddProject(t, svc, "Wind", "Energy", globex.ID)
	mustAddProject(t, svc, "Clinic", "Health", acme.ID)
	mustAddProject(t, svc, "Grid", "energy", globex.ID)

	tests := []struct {
		name      string
		org       OrganizationFilter
		project   ProjectFilter
		wantOrgs  int
		wantProjs int
	}{
		{name: "no filters", wantOrgs: 3, wantProjs: 4},
		{name: "country filter ignores case", org: OrganizationFilter{Country: "FRA"}, wantOrgs: 2, wantProjs: 4},
		{name: "project sector", project: ProjectFilter{Sector: "energy"}, wantOrgs: 3, wantProjs: 3},
		{name: "project owner", project: ProjectFilter{Organization: "glob"}, wantOrgs: 3, wantProjs: 2},
		{name: "no match", org: OrganizationFilter{Name: "zzz"}, project: ProjectFilter{Name: "zzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Analytics(ctx, tt.org, tt.project)
			if err != nil {
				t.Fatalf("Analytics() error = %v", err)
			}
			if res.TotalOrganizations != tt.wantOrgs {
				t.Errorf("TotalOrganizations = %d, want %d", res.TotalOrganizations, tt.wantOrgs)
			}
			if res.TotalProjects != tt.wantProjs {
				t.Errorf("TotalProjects = %d, want %d", res.TotalProjects, tt.wantProjs)
			}

			// Grouped counts ignore filters and keep exact spellings.
			if got := res.SectorCount("Energy"); got != 2 {
				t.Errorf("SectorCount(Energy) = %d, want 2", got)
			}
			if got := res.SectorCount("energy"); got != 1 {
				t.Errorf("SectorCount(energy) = %d, want 1", got)
			}
			if got := res.CountryCount("France"); got != 2 {
				t.Errorf("CountryCount(France) = %d, want 2", got)
			}
			if got := res.CountryCount("Germany"); got != 2 {
				t.Errorf("CountryCount(Germany) = %d, want 2", got)
			}
			if got := res.CountryCount("france"); got != 0 {
				t.Errorf("CountryCount(france) = %d, want 0", got)
			}
		})
	}
}

func TestAnalytics_Empty(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Analytics(context.Background(), OrganizationFilter{}, ProjectFilter{})
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if res.TotalOrganizations != 0 || res.TotalProjects != 0 || len(res.SectorCounts) != 0 {
		t.Errorf("result = %+v, want zeroes", res)
	}
}
