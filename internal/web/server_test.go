package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/JonMunkholm/minicrm/internal/config"
	"github.com/JonMunkholm/minicrm/internal/core"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *core.Service) {
	t.Helper()
	svc, err := core.NewService(core.NewMemStore(), nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	srv := NewServer(svc, cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, svc
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	return serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(srv, req)
}

func postFile(srv *Server, path, filename, content string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, _ := mw.CreateFormFile("file", filename)
		part.Write([]byte(content))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return serve(srv, req)
}

// redirectTarget checks for a 303 and returns the parsed Location.
func redirectTarget(t *testing.T, rec *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body = %s", rec.Code, rec.Body.String())
	}
	u, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad Location %q: %v", rec.Header().Get("Location"), err)
	}
	return u
}

func addOrganization(t *testing.T, svc *core.Service, name, country string) core.Organization {
	t.Helper()
	org, err := svc.AddOrganization(context.Background(), core.OrganizationInput{Name: name, Country: country})
	if err != nil {
		t.Fatalf("AddOrganization() error = %v", err)
	}
	return org
}

func addProject(t *testing.T, svc *core.Service, name, sector string, orgID int64) core.Project {
	t.Helper()
	p, err := svc.AddProject(context.Background(), core.ProjectInput{Name: name, Sector: sector, OrganizationID: orgID})
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	return p
}

func TestOrganizationsPage(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	addOrganization(t, svc, "<b>Acme</b>", "France")
	addOrganization(t, svc, "Globex", "Germany")

	rec := get(srv, "/?country=fra")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "&lt;b&gt;Acme&lt;/b&gt;") {
		t.Error("organization name not escaped")
	}
	if strings.Contains(body, "<b>Acme</b>") {
		t.Error("raw markup leaked into the page")
	}
	if strings.Contains(body, "Globex") {
		t.Error("filter did not exclude Globex")
	}
}

func TestListPages_HugePageNumber(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	org := addOrganization(t, svc, "Acme", "France")
	addProject(t, svc, "Solar", "Energy", org.ID)

	for _, path := range []string{"/?page=1000000000000000000", "/projects?page=1000000000000000000"} {
		t.Run(path, func(t *testing.T) {
			rec := get(srv, path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "(1 total)") {
				t.Error("pager missing from out-of-range page")
			}
		})
	}
}

func TestOrganizationAdd(t *testing.T) {
	srv, svc := newTestServer(t, nil)

	rec := postForm(srv, "/organization/add", url.Values{"name": {"Acme"}, "country": {"France"}})
	loc := redirectTarget(t, rec)
	if loc.Path != "/" {
		t.Errorf("redirect path = %q, want /", loc.Path)
	}
	if got := loc.Query().Get(noticeParam); got != `Organization "Acme" added.` {
		t.Errorf("notice = %q", got)
	}
	if got := loc.Query().Get(levelParam); got != levelSuccess {
		t.Errorf("level = %q, want success", got)
	}

	page, _ := svc.ListOrganizations(context.Background(), core.OrganizationFilter{}, 1)
	if page.Total != 1 {
		t.Errorf("organizations = %d, want 1", page.Total)
	}

	// Following the redirect shows the banner.
	rec = get(srv, loc.String())
	if !strings.Contains(rec.Body.String(), `class="notice success"`) {
		t.Error("notice banner missing after redirect")
	}
}

func TestOrganizationAdd_ValidationEchoesInput(t *testing.T) {
	srv, svc := newTestServer(t, nil)

	rec := postForm(srv, "/organization/add", url.Values{"name": {"Acme"}, "country": {"  "}})
	loc := redirectTarget(t, rec)
	if loc.Path != "/organization/add" {
		t.Errorf("redirect path = %q", loc.Path)
	}
	q := loc.Query()
	if q.Get(levelParam) != levelError {
		t.Errorf("level = %q, want error", q.Get(levelParam))
	}
	if !strings.Contains(q.Get(noticeParam), "Country is required") {
		t.Errorf("notice = %q", q.Get(noticeParam))
	}
	if q.Get("name") != "Acme" {
		t.Errorf("echoed name = %q, want Acme", q.Get("name"))
	}

	page, _ := svc.ListOrganizations(context.Background(), core.OrganizationFilter{}, 1)
	if page.Total != 0 {
		t.Errorf("organizations = %d, want 0", page.Total)
	}

	rec = get(srv, loc.String())
	body := rec.Body.String()
	if !strings.Contains(body, `name="name" value="Acme"`) {
		t.Error("form does not echo the rejected name")
	}
	if !strings.Contains(body, `class="notice error"`) {
		t.Error("error banner missing")
	}
}

func TestOrganizationEdit(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	org := addOrganization(t, svc, "Acme", "France")
	path := editPath("organization", org.ID)

	rec := get(srv, path)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `value="Acme"`) {
		t.Fatalf("edit form status = %d", rec.Code)
	}

	rec = postForm(srv, path, url.Values{"name": {"Acme SA"}, "country": {"France"}})
	if loc := redirectTarget(t, rec); loc.Path != "/" {
		t.Errorf("redirect path = %q, want /", loc.Path)
	}
	got, _ := svc.GetOrganization(context.Background(), org.ID)
	if got.Name != "Acme SA" {
		t.Errorf("Name = %q, want Acme SA", got.Name)
	}
}

func TestUnknownRecords(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, "/organization/999/edit"},
		{http.MethodGet, "/organization/abc/edit"},
		{http.MethodPost, "/organization/999/delete"},
		{http.MethodGet, "/project/0/edit"},
		{http.MethodPost, "/project/42/delete"},
		{http.MethodPost, "/masters/country/7/delete"},
		{http.MethodPost, "/masters/planet/add"},
		{http.MethodGet, "/no/such/page"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(srv, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "NF001") {
				t.Error("error page does not show the support code")
			}
		})
	}
}

func TestNotFound_JSON(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/organization/5/edit", nil)
	req.Header.Set("Accept", "application/json")
	rec := serve(srv, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "NF001" {
		t.Errorf("Code = %q, want NF001", resp.Code)
	}
}

func TestOrganizationDelete_Cascade(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	org := addOrganization(t, svc, "Acme", "France")
	addProject(t, svc, "Solar", "Energy", org.ID)
	addProject(t, svc, "Wind", "Energy", org.ID)

	rec := postForm(srv, "/organization/"+strconv.FormatInt(org.ID, 10)+"/delete", nil)
	loc := redirectTarget(t, rec)
	if got := loc.Query().Get(noticeParam); got != "Organization deleted together with 2 projects." {
		t.Errorf("notice = %q", got)
	}

	projects, _ := svc.ListProjects(context.Background(), core.ProjectFilter{}, 1)
	if projects.Total != 0 {
		t.Errorf("projects = %d, want 0", projects.Total)
	}
}

func TestProjectAdd(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	org := addOrganization(t, svc, "Acme", "France")
	id := strconv.FormatInt(org.ID, 10)

	rec := get(srv, "/project/add?organization_id="+id)
	if !strings.Contains(rec.Body.String(), `value="`+id+`" selected`) {
		t.Error("owner not preselected")
	}

	rec = postForm(srv, "/project/add", url.Values{"name": {"Solar"}, "sector": {"Energy"}, "organization_id": {id}})
	if loc := redirectTarget(t, rec); loc.Path != "/projects" {
		t.Errorf("redirect path = %q, want /projects", loc.Path)
	}

	rec = get(srv, "/projects")
	body := rec.Body.String()
	if !strings.Contains(body, "Solar") || !strings.Contains(body, "Acme") {
		t.Error("project list misses the new project or its owner")
	}

	rec = postForm(srv, "/project/add", url.Values{"name": {"Ghost"}, "sector": {"Energy"}, "organization_id": {"9999"}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown owner status = %d, want 404", rec.Code)
	}
}

func TestBulkUpload(t *testing.T) {
	srv, svc := newTestServer(t, nil)

	rec := postFile(srv, "/organization/bulk_upload", "orgs.csv", "name,country\nAcme,France\n,Germany\n")
	loc := redirectTarget(t, rec)
	if loc.Path != "/" {
		t.Errorf("redirect path = %q, want /", loc.Path)
	}
	want := "Import finished: 1 of 2 row(s) inserted, 1 skipped, 2 new countries."
	if got := loc.Query().Get(noticeParam); got != want {
		t.Errorf("notice = %q, want %q", got, want)
	}

	countries, _ := svc.ListMasters(context.Background(), core.MasterCountry)
	if len(countries) != 2 {
		t.Errorf("countries = %d, want 2", len(countries))
	}
}

func TestBulkUpload_Rejected(t *testing.T) {
	cfg := defaultConfig()
	cfg.Upload.MaxFileSize = 64

	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{"no file", "", "", "No file was selected"},
		{"empty file", "orgs.csv", "", "The uploaded file is empty"},
		{"too large", "orgs.csv", "name,country\n" + strings.Repeat("Acme,France\n", 10), "File exceeds maximum size limit"},
		{"missing column", "orgs.csv", "name\nAcme\n", "country"},
		{"bad csv", "orgs.csv", "name,country\n\"Acme,France\n", "File is not a valid CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newTestServer(t, cfg)

			rec := postFile(srv, "/organization/bulk_upload", tt.filename, tt.content)
			loc := redirectTarget(t, rec)
			if loc.Path != "/organization/bulk_upload" {
				t.Errorf("redirect path = %q", loc.Path)
			}
			q := loc.Query()
			if q.Get(levelParam) != levelError {
				t.Errorf("level = %q, want error", q.Get(levelParam))
			}
			if !strings.Contains(q.Get(noticeParam), tt.want) {
				t.Errorf("notice = %q, want it to contain %q", q.Get(noticeParam), tt.want)
			}

			page, _ := svc.ListOrganizations(context.Background(), core.OrganizationFilter{}, 1)
			if page.Total != 0 {
				t.Errorf("organizations = %d, want 0", page.Total)
			}
		})
	}
}

func TestExport(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	addOrganization(t, svc, "Acme", "France")

	for _, prefix := range []string{"organization", "project"} {
		t.Run(prefix, func(t *testing.T) {
			rec := get(srv, "/"+prefix+"/export")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != core.XLSXContentType {
				t.Errorf("Content-Type = %q", got)
			}
			cd := rec.Header().Get("Content-Disposition")
			if !strings.HasPrefix(cd, `attachment; filename="`+prefix+`s_`) || !strings.HasSuffix(cd, `.xlsx"`) {
				t.Errorf("Content-Disposition = %q", cd)
			}
			// XLSX is a zip archive.
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
				t.Error("body is not a zip archive")
			}
		})
	}
}

func TestMasters(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	loc := redirectTarget(t, postForm(srv, "/masters/country/add", url.Values{"name": {"France"}}))
	if got := loc.Query().Get(noticeParam); got != `Country "France" added.` {
		t.Errorf("notice = %q", got)
	}

	loc = redirectTarget(t, postForm(srv, "/masters/country/add", url.Values{"name": {"France"}}))
	if loc.Query().Get(levelParam) != levelError || !strings.Contains(loc.Query().Get(noticeParam), "already exists") {
		t.Errorf("duplicate notice = %q", loc.Query().Get(noticeParam))
	}

	loc = redirectTarget(t, postForm(srv, "/masters/sector/add", url.Values{"name": {""}}))
	if loc.Query().Get(levelParam) != levelError {
		t.Errorf("empty name level = %q, want error", loc.Query().Get(levelParam))
	}

	rec := get(srv, "/masters")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "France") {
		t.Errorf("masters page status = %d", rec.Code)
	}
}

func TestAuditLogPage(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	addOrganization(t, svc, "Acme", "France")

	rec := get(srv, "/audit_log")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Added organization &#34;Acme&#34;") {
		t.Error("audit entry missing")
	}
}

func TestAnalytics_JSON(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	acme := addOrganization(t, svc, "Acme", "France")
	addOrganization(t, svc, "Globex", "Germany")
	addProject(t, svc, "Solar", "Energy", acme.ID)

	req := httptest.NewRequest(http.MethodGet, "/analytics?org_country=fra", nil)
	req.Header.Set("Accept", "application/json")
	rec := serve(srv, req)

	var res core.AnalyticsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.TotalOrganizations != 1 || res.TotalProjects != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.SectorCount("Energy") != 1 || res.CountryCount("France") != 1 {
		t.Errorf("grouped counts = %+v", res)
	}

	rec = get(srv, "/analytics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Energy") {
		t.Errorf("analytics page status = %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Uploads.MaxConcurrent == 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/")

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "script-src 'none'") {
		t.Errorf("CSP = %q", rec.Header().Get("Content-Security-Policy"))
	}
}

func TestAPIKeyRequiredForWrites(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret"}
	srv, _ := newTestServer(t, cfg)

	if rec := get(srv, "/"); rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rec.Code)
	}

	form := url.Values{"name": {"Acme"}, "country": {"France"}}
	if rec := postForm(srv, "/organization/add", form); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST without key status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/organization/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-API-Key", "secret")
	if rec := serve(srv, req); rec.Code != http.StatusSeeOther {
		t.Errorf("POST with key status = %d, want 303", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := defaultConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 2
	srv, _ := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec := get(srv, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	rec := get(srv, "/healthz")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After missing")
	}
}
