package core

import (
	"testing"
	"time"

	db "github.com/JonMunkholm/minicrm/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestPgUUIDRoundTrip(t *testing.T) {
	const id = "6f1c2b1e-8f5a-4c55-9d2e-3b7f9a0c1d42"

	u, err := toPgUUID(id)
	if err != nil {
		t.Fatalf("toPgUUID() error = %v", err)
	}
	if !u.Valid {
		t.Fatal("toPgUUID() returned invalid UUID")
	}
	if got := pgUUIDString(u); got != id {
		t.Errorf("pgUUIDString() = %q, want %q", got, id)
	}
}

func TestToPgUUID_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-uuid", "1234"} {
		if _, err := toPgUUID(in); err == nil {
			t.Errorf("toPgUUID(%q) expected error", in)
		}
	}
	if got := pgUUIDString(pgtype.UUID{}); got != "" {
		t.Errorf("pgUUIDString(NULL) = %q, want empty", got)
	}
}

func TestToAuditEntry(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id, _ := toPgUUID("6f1c2b1e-8f5a-4c55-9d2e-3b7f9a0c1d42")

	got := toAuditEntry(db.AuditLog{
		ID:         id,
		EntityKind: "project",
		EntityID:   7,
		Action:     "delete",
		Details:    `Deleted project "Solar"`,
		CreatedAt:  pgtype.Timestamptz{Time: created, Valid: true},
	})

	if got.ID != "6f1c2b1e-8f5a-4c55-9d2e-3b7f9a0c1d42" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.EntityKind != EntityProject || got.Action != ActionDelete || got.EntityID != 7 {
		t.Errorf("entry = %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestToProject_KeepsOrganizationName(t *testing.T) {
	got := toProject(db.Project{ID: 3, Name: "Solar", Sector: "Energy", OrganizationID: 9, OrganizationName: "Acme"})
	if got.OrganizationName != "Acme" || got.OrganizationID != 9 {
		t.Errorf("project = %+v", got)
	}
}

func TestMapSlice(t *testing.T) {
	got := mapSlice([]db.GroupCount{{Key: "Energy", Count: 2}, {Key: "Health", Count: 1}}, toGroupCount)
	want := []GroupCount{{Key: "Energy", Count: 2}, {Key: "Health", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"acme", "acme"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\dir`, `c:\\dir`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
