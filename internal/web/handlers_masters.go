package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMasters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countries, err := s.service.ListMasters(ctx, core.MasterCountry)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	sectors, err := s.service.ListMasters(ctx, core.MasterSector)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.render(w, r, templates.MastersPage(templates.MastersView{
		Nav:       nav(r, "masters"),
		Countries: countries,
		Sectors:   sectors,
	}))
}

func (s *Server) handleMasterAdd(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKind(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	mv, err := s.service.AddMaster(r.Context(), kind, r.PostForm.Get(fieldName))
	if isValidation(err) || errors.Is(err, core.ErrAlreadyExists) {
		redirectWithNotice(w, r, "/masters", levelError, noticeText(err), nil)
		return
	}
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	redirectWithNotice(w, r, "/masters", levelSuccess, fmt.Sprintf("%s %q added.", masterLabel(kind), mv.Name), nil)
}

func (s *Server) handleMasterDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKind(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	if err := s.service.DeleteMaster(r.Context(), kind, id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	redirectWithNotice(w, r, "/masters", levelSuccess, masterLabel(kind)+" deleted.", nil)
}

func masterKind(r *http.Request) (core.MasterKind, bool) {
	kind := core.MasterKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

func masterLabel(kind core.MasterKind) string {
	if kind == core.MasterSector {
		return "Sector"
	}
	return "Country"
}
