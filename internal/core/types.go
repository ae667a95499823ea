// Package core provides the business logic for MiniCRM.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"time"
)

// Organization is a tracked organization. Country is a copy of a country
// name, not a reference to the Country master list.
type Organization struct {
	ID        int64
	Name      string
	Country   string
	CreatedAt time.Time
}

// Project belongs to exactly one Organization. Sector is a copy of a
// sector name. OrganizationName is resolved when the project is read and
// is empty if the owner cannot be found.
type Project struct {
	ID               int64
	Name             string
	Sector           string
	OrganizationID   int64
	OrganizationName string
	CreatedAt        time.Time
}

// MasterKind selects one of the lookup lists.
type MasterKind string

const (
	MasterCountry MasterKind = "country"
	MasterSector  MasterKind = "sector"
)

// Valid reports whether k names a known master list.
func (k MasterKind) Valid() bool {
	return k == MasterCountry || k == MasterSector
}

// MasterValue is one entry of a master list.
type MasterValue struct {
	ID   int64
	Name string
}

// OrganizationFilter holds case-insensitive substring filters.
// Empty fields do not constrain the result.
type OrganizationFilter struct {
	Name    string
	Country string
}

// ProjectFilter holds case-insensitive substring filters.
// Organization matches against the owning organization's name.
type ProjectFilter struct {
	Name         string
	Sector       string
	Organization string
}

// GroupCount is one row of a grouped count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AnalyticsResult contains the figures shown on the analytics page.
type AnalyticsResult struct {
	TotalOrganizations int          `json:"total_organizations"`
	TotalProjects      int          `json:"total_projects"`
	SectorCounts       []GroupCount `json:"sector_counts"`
	CountryCounts      []GroupCount `json:"country_counts"`
}

// SectorCount returns the count for an exact sector name.
func (a AnalyticsResult) SectorCount(sector string) int {
	return lookupCount(a.SectorCounts, sector)
}

// CountryCount returns the count for an exact country name.
func (a AnalyticsResult) CountryCount(country string) int {
	return lookupCount(a.CountryCounts, country)
}

func lookupCount(groups []GroupCount, key string) int {
	for _, g := range groups {
		if g.Key == key {
			return g.Count
		}
	}
	return 0
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	ImportID     string
	Kind         EntityKind
	TotalRows    int
	Inserted     int
	Skipped      int
	MastersAdded int
	Duration     time.Duration
}
