package core

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory Store for local runs and tests. All access is
// serialized by one mutex; WithTx works on a copy of the state and swaps
// it in only when fn succeeds.
type MemStore struct {
	mu   *sync.Mutex
	st   *memState
	inTx bool
	now  func() time.Time
}

type memState struct {
	orgs     map[int64]Organization
	projects map[int64]Project
	masters  map[MasterKind]map[int64]string
	audit    []AuditEntry
	nextID   map[string]int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		mu: &sync.Mutex{},
		st: &memState{
			orgs:     make(map[int64]Organization),
			projects: make(map[int64]Project),
			masters: map[MasterKind]map[int64]string{
				MasterCountry: {},
				MasterSector:  {},
			},
			nextID: make(map[string]int64),
		},
		now: time.Now,
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		orgs:     maps.Clone(s.orgs),
		projects: maps.Clone(s.projects),
		masters:  make(map[MasterKind]map[int64]string, len(s.masters)),
		audit:    slices.Clone(s.audit),
		nextID:   maps.Clone(s.nextID),
	}
	for k, v := range s.masters {
		c.masters[k] = maps.Clone(v)
	}
	return c
}

func (s *memState) id(seq string) int64 {
	s.nextID[seq]++
	return s.nextID[seq]
}

// view runs fn with exclusive access to the state.
func (m *MemStore) view(fn func(st *memState) error) error {
	if !m.inTx {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	return fn(m.st)
}

func (m *MemStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MemStore{mu: m.mu, st: m.st.clone(), inTx: true, now: m.now}
	if err := fn(tx); err != nil {
		return err
	}
	m.st = tx.st
	return nil
}

func (m *MemStore) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemStore) Close() {}

func (m *MemStore) ListOrganizations(ctx context.Context, f OrganizationFilter, limit, offset int) ([]Organization, error) {
	var out []Organization
	err := m.view(func(st *memState) error {
		out = paginate(st.filteredOrgs(f), limit, offset)
		return nil
	})
	return out, err
}

func (m *MemStore) CountOrganizations(ctx context.Context, f OrganizationFilter) (int, error) {
	var n int
	err := m.view(func(st *memState) error {
		n = len(st.filteredOrgs(f))
		return nil
	})
	return n, err
}

func (m *MemStore) AllOrganizations(ctx context.Context) ([]Organization, error) {
	return m.ListOrganizations(ctx, OrganizationFilter{}, -1, 0)
}

func (m *MemStore) GetOrganization(ctx context.Context, id int64) (Organization, error) {
	var org Organization
	err := m.view(func(st *memState) error {
		o, ok := st.orgs[id]
		if !ok {
			return notFound(EntityOrganization, id)
		}
		org = o
		return nil
	})
	return org, err
}

func (m *MemStore) FindOrganizationByName(ctx context.Context, name string) (Organization, error) {
	var org Organization
	err := m.view(func(st *memState) error {
		var found bool
		for _, o := range st.orgs {
			if o.Name == name && (!found || o.ID < org.ID) {
				org, found = o, true
			}
		}
		if !found {
			return fmt.Errorf("organization %q: %w", name, ErrNotFound)
		}
		return nil
	})
	return org, err
}

func (m *MemStore) CreateOrganization(ctx context.Context, in OrganizationInput) (Organization, error) {
	var org Organization
	err := m.view(func(st *memState) error {
		org = Organization{ID: st.id("organization"), Name: in.Name, Country: in.Country, CreatedAt: m.now()}
		st.orgs[org.ID] = org
		return nil
	})
	return org, err
}

func (m *MemStore) UpdateOrganization(ctx context.Context, id int64, in OrganizationInput) (Organization, error) {
	var org Organization
	err := m.view(func(st *memState) error {
		o, ok := st.orgs[id]
		if !ok {
			return notFound(EntityOrganization, id)
		}
		o.Name, o.Country = in.Name, in.Country
		st.orgs[id] = o
		org = o
		return nil
	})
	return org, err
}

func (m *MemStore) DeleteOrganization(ctx context.Context, id int64) (int, error) {
	var cascaded int
	err := m.view(func(st *memState) error {
		if _, ok := st.orgs[id]; !ok {
			return notFound(EntityOrganization, id)
		}
		delete(st.orgs, id)
		for pid, p := range st.projects {
			if p.OrganizationID == id {
				delete(st.projects, pid)
				cascaded++
			}
		}
		return nil
	})
	return cascaded, err
}

func (m *MemStore) ListProjects(ctx context.Context, f ProjectFilter, limit, offset int) ([]Project, error) {
	var out []Project
	err := m.view(func(st *memState) error {
		out = paginate(st.filteredProjects(f), limit, offset)
		return nil
	})
	return out, err
}

func (m *MemStore) CountProjects(ctx context.Context, f ProjectFilter) (int, error) {
	var n int
	err := m.view(func(st *memState) error {
		n = len(st.filteredProjects(f))
		return nil
	})
	return n, err
}

func (m *MemStore) AllProjects(ctx context.Context) ([]Project, error) {
	return m.ListProjects(ctx, ProjectFilter{}, -1, 0)
}

func (m *MemStore) GetProject(ctx context.Context, id int64) (Project, error) {
	var project Project
	err := m.view(func(st *memState) error {
		p, ok := st.projects[id]
		if !ok {
			return notFound(EntityProject, id)
		}
		project = st.withOwner(p)
		return nil
	})
	return project, err
}

func (m *MemStore) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var project Project
	err := m.view(func(st *memState) error {
		if _, ok := st.orgs[in.OrganizationID]; !ok {
			return notFound(EntityOrganization, in.OrganizationID)
		}
		p := Project{
			ID:             st.id("project"),
			Name:           in.Name,
			Sector:         in.Sector,
			OrganizationID: in.OrganizationID,
			CreatedAt:      m.now(),
		}
		st.projects[p.ID] = p
		project = st.withOwner(p)
		return nil
	})
	return project, err
}

func (m *MemStore) UpdateProject(ctx context.Context, id int64, in ProjectInput) (Project, error) {
	var project Project
	err := m.view(func(st *memState) error {
		p, ok := st.projects[id]
		if !ok {
			return notFound(EntityProject, id)
		}
		if _, ok := st.orgs[in.OrganizationID]; !ok {
			return notFound(EntityOrganization, in.OrganizationID)
		}
		p.Name, p.Sector, p.OrganizationID = in.Name, in.Sector, in.OrganizationID
		st.projects[id] = p
		project = st.withOwner(p)
		return nil
	})
	return project, err
}

func (m *MemStore) DeleteProject(ctx context.Context, id int64) error {
	return m.view(func(st *memState) error {
		if _, ok := st.projects[id]; !ok {
			return notFound(EntityProject, id)
		}
		delete(st.projects, id)
		return nil
	})
}

func (m *MemStore) ListMasters(ctx context.Context, kind MasterKind) ([]MasterValue, error) {
	var out []MasterValue
	err := m.view(func(st *memState) error {
		list, ok := st.masters[kind]
		if !ok {
			return unknownMaster(kind)
		}
		for id, name := range list {
			out = append(out, MasterValue{ID: id, Name: name})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (m *MemStore) MasterExists(ctx context.Context, kind MasterKind, name string) (bool, error) {
	var exists bool
	err := m.view(func(st *memState) error {
		list, ok := st.masters[kind]
		if !ok {
			return unknownMaster(kind)
		}
		for _, existing := range list {
			if existing == name {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (m *MemStore) CreateMaster(ctx context.Context, kind MasterKind, name string) (MasterValue, error) {
	var value MasterValue
	err := m.view(func(st *memState) error {
		list, ok := st.masters[kind]
		if !ok {
			return unknownMaster(kind)
		}
		for _, existing := range list {
			if existing == name {
				return fmt.Errorf("%s %q: %w", kind, name, ErrAlreadyExists)
			}
		}
		value = MasterValue{ID: st.id(string(kind)), Name: name}
		list[value.ID] = name
		return nil
	})
	return value, err
}

func (m *MemStore) DeleteMaster(ctx context.Context, kind MasterKind, id int64) (MasterValue, error) {
	var value MasterValue
	err := m.view(func(st *memState) error {
		list, ok := st.masters[kind]
		if !ok {
			return unknownMaster(kind)
		}
		name, ok := list[id]
		if !ok {
			return notFound(kind.Entity(), id)
		}
		delete(list, id)
		value = MasterValue{ID: id, Name: name}
		return nil
	})
	return value, err
}

func (m *MemStore) ProjectCountsBySector(ctx context.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := m.view(func(st *memState) error {
		counts := make(map[string]int)
		for _, p := range st.projects {
			counts[p.Sector]++
		}
		out = sortedCounts(counts)
		return nil
	})
	return out, err
}

func (m *MemStore) ProjectCountsByCountry(ctx context.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := m.view(func(st *memState) error {
		counts := make(map[string]int)
		for _, p := range st.projects {
			if o, ok := st.orgs[p.OrganizationID]; ok {
				counts[o.Country]++
			}
		}
		out = sortedCounts(counts)
		return nil
	})
	return out, err
}

func (m *MemStore) AppendAudit(ctx context.Context, e AuditEntry) (AuditEntry, error) {
	err := m.view(func(st *memState) error {
		e.CreatedAt = m.now()
		st.audit = append(st.audit, e)
		return nil
	})
	return e, err
}

func (m *MemStore) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	var out []AuditEntry
	err := m.view(func(st *memState) error {
		for i := len(st.audit) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, st.audit[i])
		}
		return nil
	})
	return out, err
}

func (st *memState) withOwner(p Project) Project {
	if o, ok := st.orgs[p.OrganizationID]; ok {
		p.OrganizationName = o.Name
	} else {
		p.OrganizationName = ""
	}
	return p
}

func (st *memState) filteredOrgs(f OrganizationFilter) []Organization {
	var out []Organization
	for _, o := range st.orgs {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (st *memState) filteredProjects(f ProjectFilter) []Project {
	var out []Project
	for _, p := range st.projects {
		p = st.withOwner(p)
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// paginate slices items; a negative limit means no limit.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedCounts(counts map[string]int) []GroupCount {
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.Compare(out[i].Key, out[j].Key) < 0
	})
	return out
}
