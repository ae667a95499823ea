package core

import (
	"context"
)

// Store is the persistent entity store. Implementations return ErrNotFound
// for unknown ids and ErrAlreadyExists for duplicate master values.
//
// WithTx runs fn against a transactional view of the store. If fn returns
// an error nothing it wrote is kept.
type Store interface {
	ListOrganizations(ctx context.Context, f OrganizationFilter, limit, offset int) ([]Organization, error)
	CountOrganizations(ctx context.Context, f OrganizationFilter) (int, error)
	AllOrganizations(ctx context.Context) ([]Organization, error)
	GetOrganization(ctx context.Context, id int64) (Organization, error)
	FindOrganizationByName(ctx context.Context, name string) (Organization, error)
	CreateOrganization(ctx context.Context, in OrganizationInput) (Organization, error)
	UpdateOrganization(ctx context.Context, id int64, in OrganizationInput) (Organization, error)
	// DeleteOrganization removes the organization and its projects and
	// returns how many projects went with it.
	DeleteOrganization(ctx context.Context, id int64) (int, error)

	ListProjects(ctx context.Context, f ProjectFilter, limit, offset int) ([]Project, error)
	CountProjects(ctx context.Context, f ProjectFilter) (int, error)
	AllProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	CreateProject(ctx context.Context, in ProjectInput) (Project, error)
	UpdateProject(ctx context.Context, id int64, in ProjectInput) (Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ListMasters(ctx context.Context, kind MasterKind) ([]MasterValue, error)
	MasterExists(ctx context.Context, kind MasterKind, name string) (bool, error)
	CreateMaster(ctx context.Context, kind MasterKind, name string) (MasterValue, error)
	DeleteMaster(ctx context.Context, kind MasterKind, id int64) (MasterValue, error)

	ProjectCountsBySector(ctx context.Context) ([]GroupCount, error)
	ProjectCountsByCountry(ctx context.Context) ([]GroupCount, error)

	AppendAudit(ctx context.Context, entry AuditEntry) (AuditEntry, error)
	RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error)

	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close()
}
