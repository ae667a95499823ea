package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/minicrm/internal/logging"
)

// AddOrganization validates in, creates the organization and records an
// audit entry in the same transaction.
func (s *Service) AddOrganization(ctx context.Context, in OrganizationInput) (Organization, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Organization{}, err
	}

	var org Organization
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		org, err = tx.CreateOrganization(ctx, in)
		if err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		details := fmt.Sprintf("Added organization %q (%s)", org.Name, org.Country)
		return s.recordAudit(ctx, tx, EntityOrganization, org.ID, ActionAdd, details)
	})
	if err != nil {
		return Organization{}, err
	}

	logging.FromContext(ctx).Info("organization added", "id", org.ID, "name", org.Name)
	return org, nil
}

// UpdateOrganization replaces name and country of an existing organization.
func (s *Service) UpdateOrganization(ctx context.Context, id int64, in OrganizationInput) (Organization, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Organization{}, err
	}

	var org Organization
	err := s.store.WithTx(ctx, func(tx Store) error {
		before, err := tx.GetOrganization(ctx, id)
		if err != nil {
			return err
		}
		org, err = tx.UpdateOrganization(ctx, id, in)
		if err != nil {
			return fmt.Errorf("update organization: %w", err)
		}
		details := fmt.Sprintf("Updated organization %q: %s", before.Name, describeChanges(
			change{"name", before.Name, org.Name},
			change{"country", before.Country, org.Country},
		))
		return s.recordAudit(ctx, tx, EntityOrganization, id, ActionEdit, details)
	})
	if err != nil {
		return Organization{}, err
	}

	logging.FromContext(ctx).Info("organization updated", "id", id)
	return org, nil
}

// DeleteOrganization removes an organization together with its projects
// and returns how many projects were removed.
func (s *Service) DeleteOrganization(ctx context.Context, id int64) (int, error) {
	var cascaded int
	err := s.store.WithTx(ctx, func(tx Store) error {
		org, err := tx.GetOrganization(ctx, id)
		if err != nil {
			return err
		}
		cascaded, err = tx.DeleteOrganization(ctx, id)
		if err != nil {
			return fmt.Errorf("delete organization: %w", err)
		}
		details := fmt.Sprintf("Deleted organization %q (%s) and %d project(s)", org.Name, org.Country, cascaded)
		return s.recordAudit(ctx, tx, EntityOrganization, id, ActionDelete, details)
	})
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("organization deleted", "id", id, "projects_deleted", cascaded)
	return cascaded, nil
}

// AddProject validates in, checks the owning organization exists and
// creates the project.
func (s *Service) AddProject(ctx context.Context, in ProjectInput) (Project, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Project{}, err
	}

	var project Project
	err := s.store.WithTx(ctx, func(tx Store) error {
		org, err := tx.GetOrganization(ctx, in.OrganizationID)
		if err != nil {
			return err
		}
		project, err = tx.CreateProject(ctx, in)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		project.OrganizationName = org.Name
		details := fmt.Sprintf("Added project %q (%s) for organization %q", project.Name, project.Sector, org.Name)
		return s.recordAudit(ctx, tx, EntityProject, project.ID, ActionAdd, details)
	})
	if err != nil {
		return Project{}, err
	}

	logging.FromContext(ctx).Info("project added", "id", project.ID, "organization_id", project.OrganizationID)
	return project, nil
}

// UpdateProject replaces name, sector and owner of an existing project.
func (s *Service) UpdateProject(ctx context.Context, id int64, in ProjectInput) (Project, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Project{}, err
	}

	var project Project
	err := s.store.WithTx(ctx, func(tx Store) error {
		before, err := tx.GetProject(ctx, id)
		if err != nil {
			return err
		}
		org, err := tx.GetOrganization(ctx, in.OrganizationID)
		if err != nil {
			return err
		}
		project, err = tx.UpdateProject(ctx, id, in)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		project.OrganizationName = org.Name
		details := fmt.Sprintf("Updated project %q: %s", before.Name, describeChanges(
			change{"name", before.Name, project.Name},
			change{"sector", before.Sector, project.Sector},
			change{"organization", before.OrganizationName, org.Name},
		))
		return s.recordAudit(ctx, tx, EntityProject, id, ActionEdit, details)
	})
	if err != nil {
		return Project{}, err
	}

	logging.FromContext(ctx).Info("project updated", "id", id)
	return project, nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		project, err := tx.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteProject(ctx, id); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		details := fmt.Sprintf("Deleted project %q (%s) of organization %q", project.Name, project.Sector, project.OrganizationName)
		return s.recordAudit(ctx, tx, EntityProject, id, ActionDelete, details)
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("project deleted", "id", id)
	return nil
}

type change struct {
	field, from, to string
}

// describeChanges renders `name "a" -> "b", sector "x" -> "y"`.
func describeChanges(changes ...change) string {
	var parts []string
	for _, c := range changes {
		if c.from != c.to {
			parts = append(parts, fmt.Sprintf("%s %q -> %q", c.field, c.from, c.to))
		}
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
