package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// handleProjects renders the filtered, paginated project list.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	filter := projectFilterFrom(r.URL.Query(), "")
	page, err := s.service.ListProjects(r.Context(), filter, parseIntParam(r, "page", 1))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.render(w, r, templates.ProjectsPage(templates.ProjectsView{
		Nav:    nav(r, "projects"),
		Filter: filter,
		Page:   page,
		Links: templates.PageLinks{
			Path:       "/projects",
			Query:      projectFilterValues(filter, ""),
			Number:     page.Number,
			TotalPages: page.TotalPages,
			Total:      page.Total,
		},
	}))
}

// handleProjectAddForm renders the add form; ?organization_id= preselects the owner.
func (s *Server) handleProjectAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderProjectForm(w, r, "Add project", "/project/add", projectInputFrom(r.URL.Query()))
}

func (s *Server) handleProjectAdd(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProjectForm(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	project, err := s.service.AddProject(r.Context(), in)
	if isValidation(err) {
		redirectWithNotice(w, r, "/project/add", levelError, noticeText(err), projectValues(in))
		return
	}
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	redirectWithNotice(w, r, "/projects", levelSuccess, fmt.Sprintf("Project %q added.", project.Name), nil)
}

func (s *Server) handleProjectEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	project, err := s.service.GetProject(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	in := core.ProjectInput{Name: project.Name, Sector: project.Sector, OrganizationID: project.OrganizationID}
	if q := r.URL.Query(); hasEcho(q, fieldName, fieldSector, fieldOrganizationID) {
		in = projectInputFrom(q)
	}
	s.renderProjectForm(w, r, "Edit project", editPath("project", id), in)
}

func (s *Server) handleProjectEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	in, err := decodeProjectForm(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	project, err := s.service.UpdateProject(r.Context(), id, in)
	if isValidation(err) {
		redirectWithNotice(w, r, editPath("project", id), levelError, noticeText(err), projectValues(in))
		return
	}
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	redirectWithNotice(w, r, "/projects", levelSuccess, fmt.Sprintf("Project %q updated.", project.Name), nil)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	if err := s.service.DeleteProject(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	redirectWithNotice(w, r, "/projects", levelSuccess, "Project deleted.", nil)
}

func (s *Server) renderProjectForm(w http.ResponseWriter, r *http.Request, title, action string, in core.ProjectInput) {
	ctx := r.Context()
	sectors, err := s.service.ListMasters(ctx, core.MasterSector)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	orgs, err := s.service.OrganizationOptions(ctx)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.render(w, r, templates.ProjectForm(templates.ProjectFormView{
		Nav:           nav(r, "projects"),
		Title:         title,
		Action:        action,
		Input:         in,
		Sectors:       sectors,
		Organizations: orgs,
	}))
}
