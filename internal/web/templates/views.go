// Package templates holds the HTML views of MiniCRM.
//
// The components live in the *.templ files; the *_templ.go files next to
// them are generated and must not be edited by hand. Regenerate with:
//
//	go generate ./internal/web/templates
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/minicrm/internal/core"
)

// Notice is a one-shot message shown after a redirect.
type Notice struct {
	Level string // "success" or "error"
	Text  string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool { return n.Text == "" }

// NavParams configures the shared page chrome.
type NavParams struct {
	Active string
	Notice Notice
}

type navItem struct {
	key, label, path string
}

var navItems = []navItem{
	{"organizations", "Organizations", "/"},
	{"projects", "Projects", "/projects"},
	{"analytics", "Analytics", "/analytics"},
	{"masters", "Masters", "/masters"},
	{"audit", "Audit log", "/audit_log"},
}

// PageLinks describes one page of a filtered listing.
type PageLinks struct {
	Path       string
	Query      url.Values // current filters, without "page"
	Number     int
	TotalPages int
	Total      int
}

// URL returns the link to page n with the current filters.
func (l PageLinks) URL(n int) string {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = v
	}
	if n > 1 {
		q.Set("page", strconv.Itoa(n))
	}
	return link(l.Path, q)
}

// OrganizationsView is the organization listing.
type OrganizationsView struct {
	Nav    NavParams
	Filter core.OrganizationFilter
	Page   core.Page[core.Organization]
	Links  PageLinks
}

// OrganizationFormView drives both the add and the edit form.
type OrganizationFormView struct {
	Nav       NavParams
	Title     string
	Action    string
	Input     core.OrganizationInput
	Countries []core.MasterValue
}

// ProjectsView is the project listing.
type ProjectsView struct {
	Nav    NavParams
	Filter core.ProjectFilter
	Page   core.Page[core.Project]
	Links  PageLinks
}

// ProjectFormView drives both the add and the edit form.
type ProjectFormView struct {
	Nav           NavParams
	Title         string
	Action        string
	Input         core.ProjectInput
	Sectors       []core.MasterValue
	Organizations []core.Organization
}

// AnalyticsView holds totals and grouped counts.
type AnalyticsView struct {
	Nav           NavParams
	OrgFilter     core.OrganizationFilter
	ProjectFilter core.ProjectFilter
	Result        core.AnalyticsResult
}

// UploadView describes a bulk upload form.
type UploadView struct {
	Nav     NavParams
	Title   string
	Action  string
	Back    string
	Columns []string
	MaxSize int64
}

func (v UploadView) ColumnList() string { return strings.Join(v.Columns, ", ") }

func (v UploadView) MaxSizeMB() int64 { return v.MaxSize / (1024 * 1024) }

// MastersView lists both master lists.
type MastersView struct {
	Nav       NavParams
	Countries []core.MasterValue
	Sectors   []core.MasterValue
}

// AuditView is the most recent slice of the audit log.
type AuditView struct {
	Nav     NavParams
	Entries []core.AuditEntry
	Limit   int
}

// link builds path?query, dropping empty values.
func link(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// idPath returns e.g. /organization/7/edit.
func idPath(prefix string, id int64, action string) string {
	return prefix + "/" + strconv.FormatInt(id, 10) + "/" + action
}

func newProjectPath(orgID int64) string {
	return "/project/add?organization_id=" + strconv.FormatInt(orgID, 10)
}

func masterPath(kind core.MasterKind, action string) string {
	return "/masters/" + string(kind) + "/" + action
}

func masterDeletePath(kind core.MasterKind, id int64) string {
	return idPath("/masters/"+string(kind), id, "delete")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
