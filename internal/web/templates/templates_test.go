package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/a-h/templ"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestPageLinks_URL(t *testing.T) {
	l := PageLinks{Path: "/", Query: url.Values{"name": {"a&b"}, "country": {""}}}

	tests := []struct {
		page int
		want string
	}{
		{1, "/?name=a%26b"},
		{3, "/?name=a%26b&page=3"},
	}
	for _, tt := range tests {
		if got := l.URL(tt.page); got != tt.want {
			t.Errorf("URL(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestPager(t *testing.T) {
	tests := []struct {
		name     string
		links    PageLinks
		wantPrev bool
		wantNext bool
		wantText string
	}{
		{"empty", PageLinks{Path: "/", Number: 1}, false, false, "Page 1 of 1 (0 total)"},
		{"first of three", PageLinks{Path: "/", Number: 1, TotalPages: 3, Total: 25}, false, true, "Page 1 of 3 (25 total)"},
		{"middle", PageLinks{Path: "/", Number: 2, TotalPages: 3, Total: 25}, true, true, "Page 2 of 3"},
		{"last", PageLinks{Path: "/", Number: 3, TotalPages: 3, Total: 25}, true, false, "Page 3 of 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, Pager(tt.links))
			if got := strings.Contains(out, "Previous"); got != tt.wantPrev {
				t.Errorf("has previous = %v, want %v", got, tt.wantPrev)
			}
			if got := strings.Contains(out, "Next"); got != tt.wantNext {
				t.Errorf("has next = %v, want %v", got, tt.wantNext)
			}
			if !strings.Contains(out, tt.wantText) {
				t.Errorf("output %q missing %q", out, tt.wantText)
			}
		})
	}
}

func TestNoticeBanner(t *testing.T) {
	if out := renderString(t, NoticeBanner(Notice{})); out != "" {
		t.Errorf("empty notice rendered %q", out)
	}

	out := renderString(t, NoticeBanner(Notice{Level: "bogus", Text: "<script>x</script>"}))
	if !strings.Contains(out, `class="notice success"`) {
		t.Errorf("unknown level not mapped to success: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("notice text not escaped: %q", out)
	}
}

func TestLayout_MarksActiveSection(t *testing.T) {
	out := renderString(t, Layout(NavParams{Active: "projects"}, "Projects", nil))
	if !strings.Contains(out, `href="/projects" class="active"`) {
		t.Error("active nav item not marked")
	}
	if strings.Count(out, `class="active"`) != 1 {
		t.Error("more than one active nav item")
	}
}

func TestErrorPage(t *testing.T) {
	msg := core.UserMessage{Message: "Gone", Action: "Go back", Code: "NF001"}
	out := renderString(t, ErrorPage(404, msg))
	for _, want := range []string{"Not Found", "Gone", "Go back", "Code: NF001"} {
		if !strings.Contains(out, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}

func TestProjectsPage_EscapesAndLinksOwner(t *testing.T) {
	v := ProjectsView{
		Page: core.Page[core.Project]{
			Items: []core.Project{{ID: 7, Name: `"Solar" & <Wind>`, Sector: "Energy", OrganizationID: 3, OrganizationName: "Acme"}},
			Number: 1, TotalPages: 1, Total: 1,
		},
		Links: PageLinks{Path: "/projects", Number: 1, TotalPages: 1, Total: 1},
	}
	out := renderString(t, ProjectsPage(v))
	if !strings.Contains(out, "&#34;Solar&#34; &amp; &lt;Wind&gt;") {
		t.Error("project name not escaped")
	}
	if !strings.Contains(out, "/project/7/edit") || !strings.Contains(out, "/project/7/delete") {
		t.Error("row actions missing")
	}
}

func TestOrganizationsPage_FilterState(t *testing.T) {
	tests := []struct {
		name      string
		filter    core.OrganizationFilter
		wantClear bool
		wantEmpty string
	}{
		{"unfiltered", core.OrganizationFilter{}, false, "No organizations yet."},
		{"filtered", core.OrganizationFilter{Country: "fr"}, true, "No organizations match these filters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, OrganizationsPage(OrganizationsView{Filter: tt.filter, Links: PageLinks{Path: "/", Number: 1}}))
			if got := strings.Contains(out, ">Clear</a>"); got != tt.wantClear {
				t.Errorf("has clear link = %v, want %v", got, tt.wantClear)
			}
			if !strings.Contains(out, tt.wantEmpty) {
				t.Errorf("output missing %q", tt.wantEmpty)
			}
		})
	}
}

func TestProjectForm_SelectsOrganization(t *testing.T) {
	v := ProjectFormView{
		Title:         "Edit project",
		Action:        "/project/7/edit",
		Input:         core.ProjectInput{Name: "Solar", Sector: "Energy", OrganizationID: 3},
		Organizations: []core.Organization{{ID: 2, Name: "Globex"}, {ID: 3, Name: "Acme"}},
	}
	out := renderString(t, ProjectForm(v))
	if !strings.Contains(out, `<option value="3" selected>Acme</option>`) {
		t.Error("current organization not selected")
	}
	if strings.Contains(out, `<option value="2" selected>`) {
		t.Error("other organization selected")
	}
	if !strings.Contains(out, `action="/project/7/edit"`) {
		t.Error("form action missing")
	}
	if strings.Contains(out, "There are no organizations yet") {
		t.Error("empty hint shown with organizations present")
	}
}

func TestAuditLogPage_BulkEntryHasNoID(t *testing.T) {
	v := AuditView{
		Limit: 200,
		Entries: []core.AuditEntry{
			{EntityKind: core.EntityOrganization, EntityID: 0, Action: core.ActionBulkUpload, Details: "import"},
		},
	}
	out := renderString(t, AuditLogPage(v))
	if !strings.Contains(out, "<td>organization</td><td></td><td>bulk_upload</td>") {
		t.Errorf("bulk entry row rendered unexpectedly: %q", out)
	}
}

func TestLayout_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := Layout(NavParams{}, "x", nil).Render(ctx, &buf); err == nil {
		t.Error("Render() with cancelled context succeeded")
	}
}
