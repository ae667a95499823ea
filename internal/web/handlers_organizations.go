package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// handleOrganizations renders the filtered, paginated organization list.
func (s *Server) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	filter := organizationFilterFrom(r.URL.Query(), "")
	page, err := s.service.ListOrganizations(r.Context(), filter, parseIntParam(r, "page", 1))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.render(w, r, templates.OrganizationsPage(templates.OrganizationsView{
		Nav:    nav(r, "organizations"),
		Filter: filter,
		Page:   page,
		Links: templates.PageLinks{
			Path:       "/",
			Query:      organizationFilterValues(filter, ""),
			Number:     page.Number,
			TotalPages: page.TotalPages,
			Total:      page.Total,
		},
	}))
}

func (s *Server) handleOrganizationAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderOrganizationForm(w, r, "Add organization", "/organization/add", organizationInputFrom(r.URL.Query()))
}

func (s *Server) handleOrganizationAdd(w http.ResponseWriter, r *http.Request) {
	in, err := decodeOrganizationForm(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	org, err := s.service.AddOrganization(r.Context(), in)
	if isValidation(err) {
		redirectWithNotice(w, r, "/organization/add", levelError, noticeText(err), organizationValues(in))
		return
	}
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	redirectWithNotice(w, r, "/", levelSuccess, fmt.Sprintf("Organization %q added.", org.Name), nil)
}

func (s *Server) handleOrganizationEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	org, err := s.service.GetOrganization(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	in := core.OrganizationInput{Name: org.Name, Country: org.Country}
	if q := r.URL.Query(); hasEcho(q, fieldName, fieldCountry) {
		in = organizationInputFrom(q)
	}
	s.renderOrganizationForm(w, r, "Edit organization", editPath("organization", id), in)
}

func (s *Server) handleOrganizationEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	in, err := decodeOrganizationForm(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	org, err := s.service.UpdateOrganization(r.Context(), id, in)
	if isValidation(err) {
		redirectWithNotice(w, r, editPath("organization", id), levelError, noticeText(err), organizationValues(in))
		return
	}
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	redirectWithNotice(w, r, "/", levelSuccess, fmt.Sprintf("Organization %q updated.", org.Name), nil)
}

func (s *Server) handleOrganizationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	projects, err := s.service.DeleteOrganization(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	text := fmt.Sprintf("Organization deleted together with %s.", pluralize(projects, "project", "projects"))
	redirectWithNotice(w, r, "/", levelSuccess, text, nil)
}

func (s *Server) renderOrganizationForm(w http.ResponseWriter, r *http.Request, title, action string, in core.OrganizationInput) {
	countries, err := s.service.ListMasters(r.Context(), core.MasterCountry)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.render(w, r, templates.OrganizationForm(templates.OrganizationFormView{
		Nav:       nav(r, "organizations"),
		Title:     title,
		Action:    action,
		Input:     in,
		Countries: countries,
	}))
}

func editPath(entity string, id int64) string {
	return "/" + entity + "/" + strconv.FormatInt(id, 10) + "/edit"
}
