package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/logging"
	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the configured file size.
const multipartOverhead = 64 << 10

// maxUploadMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const maxUploadMemory = 8 << 20

type importFunc func(ctx context.Context, r io.Reader) (core.ImportResult, error)

// importTarget describes one bulk upload endpoint.
type importTarget struct {
	title   string
	form    string // upload form path
	back    string // list path shown after a successful import
	columns []string
	masters [2]string // singular, plural label of the upserted master list
}

var (
	organizationImport = importTarget{
		title:   "Bulk upload organizations",
		form:    "/organization/bulk_upload",
		back:    "/",
		columns: []string{"name", "country"},
		masters: [2]string{"new country", "new countries"},
	}
	projectImport = importTarget{
		title:   "Bulk upload projects",
		form:    "/project/bulk_upload",
		back:    "/projects",
		columns: []string{"name", "sector", "organization"},
		masters: [2]string{"new sector", "new sectors"},
	}
)

func (s *Server) handleOrganizationUploadForm(w http.ResponseWriter, r *http.Request) {
	s.renderUploadForm(w, r, "organizations", organizationImport)
}

func (s *Server) handleProjectUploadForm(w http.ResponseWriter, r *http.Request) {
	s.renderUploadForm(w, r, "projects", projectImport)
}

func (s *Server) handleOrganizationUpload(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, organizationImport, s.service.ImportOrganizations)
}

func (s *Server) handleProjectUpload(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, projectImport, s.service.ImportProjects)
}

func (s *Server) renderUploadForm(w http.ResponseWriter, r *http.Request, active string, t importTarget) {
	s.render(w, r, templates.UploadPage(templates.UploadView{
		Nav:     nav(r, active),
		Title:   t.title,
		Action:  t.form,
		Back:    t.back,
		Columns: t.columns,
		MaxSize: s.cfg.Upload.MaxFileSize,
	}))
}

// handleImport reads the "file" part of a multipart upload and runs it
// through run. Every failure redirects back to the upload form with a notice.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, t importTarget, run importFunc) {
	logger := logging.FromContext(r.Context())
	fail := func(err error) {
		logger.Warn("upload rejected", "path", r.URL.Path, "error", err, "code", core.MapError(err).Code)
		redirectWithNotice(w, r, t.form, levelError, noticeText(err), nil)
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		fail(uploadError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		fail(uploadError(err))
		return
	}
	defer file.Close()

	switch {
	case header.Size > maxSize:
		fail(core.ErrFileTooLarge)
		return
	case header.Size == 0:
		fail(core.ErrEmptyFile)
		return
	}

	logger.Info("upload received", "path", r.URL.Path, "filename", header.Filename, "size", header.Size)

	result, err := run(r.Context(), file)
	if err != nil {
		if core.IsUserFacing(err) {
			fail(err)
			return
		}
		s.respondServiceError(w, r, err)
		return
	}

	text := fmt.Sprintf("Import finished: %d of %d row(s) inserted, %d skipped, %s.",
		result.Inserted, result.TotalRows, result.Skipped,
		pluralize(result.MastersAdded, t.masters[0], t.masters[1]))
	redirectWithNotice(w, r, t.back, levelSuccess, text, nil)
}

// uploadError normalizes multipart parsing failures to core errors.
func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return core.ErrFileTooLarge
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return core.ErrNoFile
	default:
		return fmt.Errorf("parse upload: %w", err)
	}
}
