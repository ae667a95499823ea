package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/minicrm/internal/core"
)

// Form field names shared by the views, the decoders and the redirects
// that echo rejected input back to a form.
const (
	fieldName           = "name"
	fieldCountry        = "country"
	fieldSector         = "sector"
	fieldOrganization   = "organization"
	fieldOrganizationID = "organization_id"
)

// decodeOrganizationForm reads an organization from a POSTed form.
func decodeOrganizationForm(r *http.Request) (core.OrganizationInput, error) {
	if err := r.ParseForm(); err != nil {
		return core.OrganizationInput{}, err
	}
	return organizationInputFrom(r.PostForm), nil
}

func organizationInputFrom(v url.Values) core.OrganizationInput {
	return core.OrganizationInput{
		Name:    v.Get(fieldName),
		Country: v.Get(fieldCountry),
	}.Normalize()
}

func organizationValues(in core.OrganizationInput) url.Values {
	return url.Values{
		fieldName:    {in.Name},
		fieldCountry: {in.Country},
	}
}

// decodeProjectForm reads a project from a POSTed form. A missing or
// malformed organization id decodes as 0, which Validate rejects.
func decodeProjectForm(r *http.Request) (core.ProjectInput, error) {
	if err := r.ParseForm(); err != nil {
		return core.ProjectInput{}, err
	}
	return projectInputFrom(r.PostForm), nil
}

func projectInputFrom(v url.Values) core.ProjectInput {
	return core.ProjectInput{
		Name:           v.Get(fieldName),
		Sector:         v.Get(fieldSector),
		OrganizationID: parseOptionalID(v.Get(fieldOrganizationID)),
	}.Normalize()
}

func projectValues(in core.ProjectInput) url.Values {
	v := url.Values{
		fieldName:   {in.Name},
		fieldSector: {in.Sector},
	}
	if in.OrganizationID > 0 {
		v.Set(fieldOrganizationID, strconv.FormatInt(in.OrganizationID, 10))
	}
	return v
}

// hasEcho reports whether q carries form values from a rejected submit.
func hasEcho(q url.Values, fields ...string) bool {
	for _, f := range fields {
		if q.Has(f) {
			return true
		}
	}
	return false
}

func parseOptionalID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}

// organizationFilterFrom reads name/country filters, optionally prefixed
// (the analytics page uses "org_").
func organizationFilterFrom(q url.Values, prefix string) core.OrganizationFilter {
	return core.OrganizationFilter{
		Name:    q.Get(prefix + fieldName),
		Country: q.Get(prefix + fieldCountry),
	}.Normalize()
}

func organizationFilterValues(f core.OrganizationFilter, prefix string) url.Values {
	return url.Values{
		prefix + fieldName:    {f.Name},
		prefix + fieldCountry: {f.Country},
	}
}

// projectFilterFrom reads name/sector/organization filters.
func projectFilterFrom(q url.Values, prefix string) core.ProjectFilter {
	return core.ProjectFilter{
		Name:         q.Get(prefix + fieldName),
		Sector:       q.Get(prefix + fieldSector),
		Organization: q.Get(prefix + fieldOrganization),
	}.Normalize()
}

func projectFilterValues(f core.ProjectFilter, prefix string) url.Values {
	return url.Values{
		prefix + fieldName:         {f.Name},
		prefix + fieldSector:       {f.Sector},
		prefix + fieldOrganization: {f.Organization},
	}
}
