package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// handleAuditLog renders the latest audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.RecentAudit(r.Context(), core.AuditLogLimit)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.render(w, r, templates.AuditLogPage(templates.AuditView{
		Nav:     nav(r, "audit"),
		Entries: entries,
		Limit:   core.AuditLogLimit,
	}))
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status  string                   `json:"status"`
	Error   string                   `json:"error,omitempty"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
}

// handleHealth reports whether the store answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Uploads: s.service.UploadLimiterStatus()}
	status := http.StatusOK
	if err := s.service.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Error = core.MapError(err).Code
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
