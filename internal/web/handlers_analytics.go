package web

import (
	"net/http"

	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// Analytics filter parameters are prefixed so both filters fit one form.
const (
	orgFilterPrefix     = "org_"
	projectFilterPrefix = "project_"
)

// handleAnalytics renders totals under the filters plus grouped counts.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	of := organizationFilterFrom(q, orgFilterPrefix)
	pf := projectFilterFrom(q, projectFilterPrefix)

	result, err := s.service.Analytics(r.Context(), of, pf)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.render(w, r, templates.AnalyticsPage(templates.AnalyticsView{
		Nav:           nav(r, "analytics"),
		OrgFilter:     of,
		ProjectFilter: pf,
		Result:        result,
	}))
}
