package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	db "github.com/JonMunkholm/minicrm/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the store translates.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PGStore is the PostgreSQL implementation of Store.
type PGStore struct {
	pool *pgxpool.Pool
	tx   pgx.Tx // set on transactional views
	q    *db.Queries
}

// NewPGStore returns a store backed by pool. Close closes the pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, q: db.New(pool)}
}

// Migrate applies the embedded schema.
func (s *PGStore) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.pool)
}

func (s *PGStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	run := func(tx pgx.Tx) error {
		return fn(&PGStore{pool: s.pool, tx: tx, q: s.q.WithTx(tx)})
	}
	if s.tx != nil {
		// Nested calls become savepoints.
		return pgx.BeginFunc(ctx, s.tx, run)
	}
	return pgx.BeginFunc(ctx, s.pool, run)
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PGStore) Close() {
	if s.tx == nil {
		s.pool.Close()
	}
}

func (s *PGStore) ListOrganizations(ctx context.Context, f OrganizationFilter, limit, offset int) ([]Organization, error) {
	if offset < 0 || offset > math.MaxInt32 {
		return nil, nil
	}
	rows, err := s.q.ListOrganizations(ctx, db.ListOrganizationsParams{
		Name:    escapeLike(f.Name),
		Country: escapeLike(f.Country),
		Limit:   int32(limit),
		Offset:  int32(offset),
	})
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toOrganization), nil
}

func (s *PGStore) CountOrganizations(ctx context.Context, f OrganizationFilter) (int, error) {
	n, err := s.q.CountOrganizations(ctx, db.CountOrganizationsParams{
		Name:    escapeLike(f.Name),
		Country: escapeLike(f.Country),
	})
	return int(n), err
}

func (s *PGStore) AllOrganizations(ctx context.Context) ([]Organization, error) {
	rows, err := s.q.ListAllOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toOrganization), nil
}

func (s *PGStore) GetOrganization(ctx context.Context, id int64) (Organization, error) {
	row, err := s.q.GetOrganization(ctx, id)
	if err != nil {
		return Organization{}, translate(err, EntityOrganization, id)
	}
	return toOrganization(row), nil
}

func (s *PGStore) FindOrganizationByName(ctx context.Context, name string) (Organization, error) {
	row, err := s.q.GetOrganizationByName(ctx, name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Organization{}, err
	}
	return toOrganization(row), nil
}

func (s *PGStore) CreateOrganization(ctx context.Context, in OrganizationInput) (Organization, error) {
	row, err := s.q.CreateOrganization(ctx, db.CreateOrganizationParams{Name: in.Name, Country: in.Country})
	if err != nil {
		return Organization{}, err
	}
	return toOrganization(row), nil
}

func (s *PGStore) UpdateOrganization(ctx context.Context, id int64, in OrganizationInput) (Organization, error) {
	row, err := s.q.UpdateOrganization(ctx, db.UpdateOrganizationParams{ID: id, Name: in.Name, Country: in.Country})
	if err != nil {
		return Organization{}, translate(err, EntityOrganization, id)
	}
	return toOrganization(row), nil
}

func (s *PGStore) DeleteOrganization(ctx context.Context, id int64) (int, error) {
	projects, err := s.q.CountProjectsByOrganization(ctx, id)
	if err != nil {
		return 0, err
	}
	// Projects go with it through ON DELETE CASCADE.
	n, err := s.q.DeleteOrganization(ctx, id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, notFound(EntityOrganization, id)
	}
	return int(projects), nil
}

func (s *PGStore) ListProjects(ctx context.Context, f ProjectFilter, limit, offset int) ([]Project, error) {
	if offset < 0 || offset > math.MaxInt32 {
		return nil, nil
	}
	rows, err := s.q.ListProjects(ctx, db.ListProjectsParams{
		Name:         escapeLike(f.Name),
		Sector:       escapeLike(f.Sector),
		Organization: escapeLike(f.Organization),
		Limit:        int32(limit),
		Offset:       int32(offset),
	})
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toProject), nil
}

func (s *PGStore) CountProjects(ctx context.Context, f ProjectFilter) (int, error) {
	n, err := s.q.CountProjects(ctx, db.CountProjectsParams{
		Name:         escapeLike(f.Name),
		Sector:       escapeLike(f.Sector),
		Organization: escapeLike(f.Organization),
	})
	return int(n), err
}

func (s *PGStore) AllProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.q.ListAllProjects(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toProject), nil
}

func (s *PGStore) GetProject(ctx context.Context, id int64) (Project, error) {
	row, err := s.q.GetProject(ctx, id)
	if err != nil {
		return Project{}, translate(err, EntityProject, id)
	}
	return toProject(row), nil
}

func (s *PGStore) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	row, err := s.q.CreateProject(ctx, db.CreateProjectParams{
		Name:           in.Name,
		Sector:         in.Sector,
		OrganizationID: in.OrganizationID,
	})
	if err != nil {
		return Project{}, translate(err, EntityOrganization, in.OrganizationID)
	}
	return toProject(row), nil
}

func (s *PGStore) UpdateProject(ctx context.Context, id int64, in ProjectInput) (Project, error) {
	row, err := s.q.UpdateProject(ctx, db.UpdateProjectParams{
		ID:             id,
		Name:           in.Name,
		Sector:         in.Sector,
		OrganizationID: in.OrganizationID,
	})
	if err != nil {
		return Project{}, translate(err, EntityProject, id)
	}
	return toProject(row), nil
}

func (s *PGStore) DeleteProject(ctx context.Context, id int64) error {
	n, err := s.q.DeleteProject(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(EntityProject, id)
	}
	return nil
}

func (s *PGStore) ListMasters(ctx context.Context, kind MasterKind) ([]MasterValue, error) {
	var (
		rows []db.MasterValue
		err  error
	)
	switch kind {
	case MasterCountry:
		rows, err = s.q.ListCountries(ctx)
	case MasterSector:
		rows, err = s.q.ListSectors(ctx)
	default:
		return nil, unknownMaster(kind)
	}
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toMasterValue), nil
}

func (s *PGStore) MasterExists(ctx context.Context, kind MasterKind, name string) (bool, error) {
	switch kind {
	case MasterCountry:
		return s.q.CountryExists(ctx, name)
	case MasterSector:
		return s.q.SectorExists(ctx, name)
	default:
		return false, unknownMaster(kind)
	}
}

func (s *PGStore) CreateMaster(ctx context.Context, kind MasterKind, name string) (MasterValue, error) {
	var (
		row db.MasterValue
		err error
	)
	switch kind {
	case MasterCountry:
		row, err = s.q.CreateCountry(ctx, name)
	case MasterSector:
		row, err = s.q.CreateSector(ctx, name)
	default:
		return MasterValue{}, unknownMaster(kind)
	}
	// ON CONFLICT DO NOTHING returns no row when another request won.
	if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgUniqueViolation) {
		return MasterValue{}, fmt.Errorf("%s %q: %w", kind, name, ErrAlreadyExists)
	}
	if err != nil {
		return MasterValue{}, err
	}
	return toMasterValue(row), nil
}

func (s *PGStore) DeleteMaster(ctx context.Context, kind MasterKind, id int64) (MasterValue, error) {
	var (
		row db.MasterValue
		err error
	)
	switch kind {
	case MasterCountry:
		row, err = s.q.DeleteCountry(ctx, id)
	case MasterSector:
		row, err = s.q.DeleteSector(ctx, id)
	default:
		return MasterValue{}, unknownMaster(kind)
	}
	if err != nil {
		return MasterValue{}, translate(err, kind.Entity(), id)
	}
	return toMasterValue(row), nil
}

func (s *PGStore) ProjectCountsBySector(ctx context.Context) ([]GroupCount, error) {
	rows, err := s.q.CountProjectsBySector(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toGroupCount), nil
}

func (s *PGStore) ProjectCountsByCountry(ctx context.Context) ([]GroupCount, error) {
	rows, err := s.q.CountProjectsByCountry(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toGroupCount), nil
}

func (s *PGStore) AppendAudit(ctx context.Context, e AuditEntry) (AuditEntry, error) {
	id, err := toPgUUID(e.ID)
	if err != nil {
		return AuditEntry{}, fmt.Errorf("audit id: %w", err)
	}
	row, err := s.q.InsertAuditLog(ctx, db.InsertAuditLogParams{
		ID:         id,
		EntityKind: string(e.EntityKind),
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		Details:    e.Details,
	})
	if err != nil {
		return AuditEntry{}, err
	}
	return toAuditEntry(row), nil
}

func (s *PGStore) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := s.q.ListRecentAuditLog(ctx, int32(limit))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, toAuditEntry), nil
}

// escapeLike makes %, _ and \ match literally inside ILIKE patterns.
func escapeLike(s string) string {
	if !strings.ContainsAny(s, `\%_`) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// translate maps missing rows and foreign key failures to ErrNotFound.
func translate(err error, kind EntityKind, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgForeignKeyViolation) {
		return notFound(kind, id)
	}
	return err
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func unknownMaster(kind MasterKind) error {
	return fmt.Errorf("unknown master list %q", kind)
}
