package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/logging"
)

func (s *Server) handleOrganizationExport(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "organizations", s.service.ExportOrganizations)
}

func (s *Server) handleProjectExport(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "projects", s.service.ExportProjects)
}

// handleExport builds the workbook in memory first so a store error can
// still be reported as a normal error response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, prefix string, export func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := export(r.Context(), &buf); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", core.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(prefix, time.Now())+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("write export failed", "path", r.URL.Path, "error", err)
	}
}
