package core

import (
	"context"
	"fmt"
)

// Analytics returns totals under the given filters and project counts
// grouped by sector and by owning organization's country. The grouped
// counts ignore the filters and group on the exact stored strings.
func (s *Service) Analytics(ctx context.Context, of OrganizationFilter, pf ProjectFilter) (AnalyticsResult, error) {
	var (
		res AnalyticsResult
		err error
	)

	if res.TotalOrganizations, err = s.store.CountOrganizations(ctx, of.Normalize()); err != nil {
		return AnalyticsResult{}, fmt.Errorf("count organizations: %w", err)
	}
	if res.TotalProjects, err = s.store.CountProjects(ctx, pf.Normalize()); err != nil {
		return AnalyticsResult{}, fmt.Errorf("count projects: %w", err)
	}
	if res.SectorCounts, err = s.store.ProjectCountsBySector(ctx); err != nil {
		return AnalyticsResult{}, fmt.Errorf("count projects by sector: %w", err)
	}
	if res.CountryCounts, err = s.store.ProjectCountsByCountry(ctx); err != nil {
		return AnalyticsResult{}, fmt.Errorf("count projects by country: %w", err)
	}
	return res, nil
}
