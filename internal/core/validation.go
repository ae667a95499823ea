package core

import "strings"

// OrganizationInput is the typed payload for creating or updating an
// organization.
type OrganizationInput struct {
	Name    string
	Country string
}

// Normalize trims surrounding whitespace from every field.
func (in OrganizationInput) Normalize() OrganizationInput {
	return OrganizationInput{
		Name:    strings.TrimSpace(in.Name),
		Country: strings.TrimSpace(in.Country),
	}
}

// Validate requires name and country.
func (in OrganizationInput) Validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: EntityOrganization, Fields: missing}
	}
	return nil
}

// ProjectInput is the typed payload for creating or updating a project.
type ProjectInput struct {
	Name           string
	Sector         string
	OrganizationID int64
}

// Normalize trims surrounding whitespace from every text field.
func (in ProjectInput) Normalize() ProjectInput {
	return ProjectInput{
		Name:           strings.TrimSpace(in.Name),
		Sector:         strings.TrimSpace(in.Sector),
		OrganizationID: in.OrganizationID,
	}
}

// Validate requires name, sector and an organization.
func (in ProjectInput) Validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Sector == "" {
		missing = append(missing, "sector")
	}
	if in.OrganizationID <= 0 {
		missing = append(missing, "organization")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: EntityProject, Fields: missing}
	}
	return nil
}

// Normalize trims every filter value.
func (f OrganizationFilter) Normalize() OrganizationFilter {
	return OrganizationFilter{
		Name:    strings.TrimSpace(f.Name),
		Country: strings.TrimSpace(f.Country),
	}
}

// IsEmpty reports whether no filter is set.
func (f OrganizationFilter) IsEmpty() bool {
	return f.Name == "" && f.Country == ""
}

// Normalize trims every filter value.
func (f ProjectFilter) Normalize() ProjectFilter {
	return ProjectFilter{
		Name:         strings.TrimSpace(f.Name),
		Sector:       strings.TrimSpace(f.Sector),
		Organization: strings.TrimSpace(f.Organization),
	}
}

// IsEmpty reports whether no filter is set.
func (f ProjectFilter) IsEmpty() bool {
	return f.Name == "" && f.Sector == "" && f.Organization == ""
}

// containsFold reports whether needle is a case-insensitive substring of
// haystack. An empty needle matches everything.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Matches applies the filter to an organization.
func (f OrganizationFilter) Matches(o Organization) bool {
	return containsFold(o.Name, f.Name) && containsFold(o.Country, f.Country)
}

// Matches applies the filter to a project.
func (f ProjectFilter) Matches(p Project) bool {
	return containsFold(p.Name, f.Name) &&
		containsFold(p.Sector, f.Sector) &&
		containsFold(p.OrganizationName, f.Organization)
}
