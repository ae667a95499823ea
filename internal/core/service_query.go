package core

import (
	"context"
	"fmt"
)

// ListOrganizations returns one page of organizations ordered by name.
func (s *Service) ListOrganizations(ctx context.Context, f OrganizationFilter, page int) (Page[Organization], error) {
	f = f.Normalize()

	total, err := s.store.CountOrganizations(ctx, f)
	if err != nil {
		return Page[Organization]{}, fmt.Errorf("count organizations: %w", err)
	}

	p := NewPage[Organization](page, total)
	if !p.InRange() {
		return p, nil
	}

	p.Items, err = s.store.ListOrganizations(ctx, f, p.Size, p.Offset())
	if err != nil {
		return Page[Organization]{}, fmt.Errorf("list organizations: %w", err)
	}
	return p, nil
}

// ListProjects returns one page of projects, newest first.
func (s *Service) ListProjects(ctx context.Context, f ProjectFilter, page int) (Page[Project], error) {
	f = f.Normalize()

	total, err := s.store.CountProjects(ctx, f)
	if err != nil {
		return Page[Project]{}, fmt.Errorf("count projects: %w", err)
	}

	p := NewPage[Project](page, total)
	if !p.InRange() {
		return p, nil
	}

	p.Items, err = s.store.ListProjects(ctx, f, p.Size, p.Offset())
	if err != nil {
		return Page[Project]{}, fmt.Errorf("list projects: %w", err)
	}
	return p, nil
}

// GetOrganization returns a single organization or ErrNotFound.
func (s *Service) GetOrganization(ctx context.Context, id int64) (Organization, error) {
	return s.store.GetOrganization(ctx, id)
}

// GetProject returns a single project or ErrNotFound.
func (s *Service) GetProject(ctx context.Context, id int64) (Project, error) {
	return s.store.GetProject(ctx, id)
}

// OrganizationOptions lists every organization, for select inputs.
func (s *Service) OrganizationOptions(ctx context.Context) ([]Organization, error) {
	orgs, err := s.store.AllOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organization options: %w", err)
	}
	return orgs, nil
}
