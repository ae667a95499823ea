package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/JonMunkholm/minicrm/internal/core"
)

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if got := parseIntParam(r, "page", 1); got != tt.want {
			t.Errorf("parseIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 projects"},
		{1, "1 project"},
		{12, "12 projects"},
	}
	for _, tt := range tests {
		if got := pluralize(tt.n, "project", "projects"); got != tt.want {
			t.Errorf("pluralize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
	if got := exportFilename("projects", now); got != "projects_20240131_154500.xlsx" {
		t.Errorf("exportFilename() = %q", got)
	}
}

func TestNoticeText(t *testing.T) {
	err := &core.ValidationError{Entity: core.EntityOrganization, Fields: []string{"name", "country"}}
	want := "Name and Country are required. Fill in every required field and submit again."
	if got := noticeText(err); got != want {
		t.Errorf("noticeText() = %q, want %q", got, want)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", core.ErrNotFound), http.StatusNotFound},
		{core.ErrAlreadyExists, http.StatusConflict},
		{&core.ValidationError{Fields: []string{"name"}}, http.StatusBadRequest},
		{core.ErrTooManyUploads, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUploadError(t *testing.T) {
	if err := uploadError(&http.MaxBytesError{Limit: 10}); !errors.Is(err, core.ErrFileTooLarge) {
		t.Errorf("MaxBytesError -> %v", err)
	}
	if err := uploadError(http.ErrMissingFile); !errors.Is(err, core.ErrNoFile) {
		t.Errorf("ErrMissingFile -> %v", err)
	}
	if err := uploadError(http.ErrNotMultipart); !errors.Is(err, core.ErrNoFile) {
		t.Errorf("ErrNotMultipart -> %v", err)
	}
	if core.IsUserFacing(uploadError(errors.New("short read"))) {
		t.Error("unexpected parse error mapped to a user message")
	}
}

func TestRedirectWithNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/organization/add", nil)
	redirectWithNotice(rec, r, "/organization/add", levelError, "Bad input", url.Values{
		"name":    {"Acme"},
		"country": {""},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc, _ := url.Parse(rec.Header().Get("Location"))
	q := loc.Query()
	if q.Get("name") != "Acme" || q.Has("country") {
		t.Errorf("query = %v, want name only", q)
	}
	if q.Get(noticeParam) != "Bad input" || q.Get(levelParam) != levelError {
		t.Errorf("notice = %v", q)
	}
}

func TestNoticeFromRequest(t *testing.T) {
	tests := []struct {
		query     string
		wantLevel string
		wantText  string
	}{
		{"", "", ""},
		{"notice=Saved", levelSuccess, "Saved"},
		{"notice=Oops&level=error", levelError, "Oops"},
		{"notice=Hi&level=weird", levelSuccess, "Hi"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		n := noticeFromRequest(r)
		if n.Level != tt.wantLevel || n.Text != tt.wantText {
			t.Errorf("noticeFromRequest(%q) = %+v", tt.query, n)
		}
	}
}

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{
		"org_name":             {" acme "},
		"org_country":          {"fr"},
		"project_sector":       {"energy"},
		"project_organization": {"glob"},
	}
	of := organizationFilterFrom(q, orgFilterPrefix)
	if of.Name != "acme" || of.Country != "fr" {
		t.Errorf("organization filter = %+v", of)
	}
	pf := projectFilterFrom(q, projectFilterPrefix)
	if pf.Name != "" || pf.Sector != "energy" || pf.Organization != "glob" {
		t.Errorf("project filter = %+v", pf)
	}
}

func TestParseOptionalID(t *testing.T) {
	tests := map[string]int64{"": 0, "12": 12, "x": 0, "-4": 0}
	for in, want := range tests {
		if got := parseOptionalID(in); got != want {
			t.Errorf("parseOptionalID(%q) = %d, want %d", in, got, want)
		}
	}
}
