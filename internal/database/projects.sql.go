package database

import (
	"context"
)

const listProjects = `
SELECT p.id, p.name, p.sector, p.created_at, p.organization_id, COALESCE(o.name, '')
FROM project p
LEFT JOIN organization o ON o.id = p.organization_id
WHERE ($1::text = '' OR p.name ILIKE '%' || $1 || '%')
  AND ($2::text = '' OR p.sector ILIKE '%' || $2 || '%')
  AND ($3::text = '' OR o.name ILIKE '%' || $3 || '%')
ORDER BY p.created_at DESC, p.id DESC
LIMIT $4 OFFSET $5
`

type ListProjectsParams struct {
	Name         string
	Sector       string
	Organization string
	Limit        int32
	Offset       int32
}

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjects,
		arg.Name,
		arg.Sector,
		arg.Organization,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

const countProjects = `
SELECT COUNT(*)
FROM project p
LEFT JOIN organization o ON o.id = p.organization_id
WHERE ($1::text = '' OR p.name ILIKE '%' || $1 || '%')
  AND ($2::text = '' OR p.sector ILIKE '%' || $2 || '%')
  AND ($3::text = '' OR o.name ILIKE '%' || $3 || '%')
`

type CountProjectsParams struct {
	Name         string
	Sector       string
	Organization string
}

func (q *Queries) CountProjects(ctx context.Context, arg CountProjectsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countProjects, arg.Name, arg.Sector, arg.Organization)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listAllProjects = `
SELECT p.id, p.name, p.sector, p.created_at, p.organization_id, COALESCE(o.name, '')
FROM project p
LEFT JOIN organization o ON o.id = p.organization_id
ORDER BY p.created_at DESC, p.id DESC
`

func (q *Queries) ListAllProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.Query(ctx, listAllProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

const getProject = `
SELECT p.id, p.name, p.sector, p.created_at, p.organization_id, COALESCE(o.name, '')
FROM project p
LEFT JOIN organization o ON o.id = p.organization_id
WHERE p.id = $1
`

func (q *Queries) GetProject(ctx context.Context, id int64) (Project, error) {
	row := q.db.QueryRow(ctx, getProject, id)
	var i Project
	err := row.Scan(&i.ID, &i.Name, &i.Sector, &i.CreatedAt, &i.OrganizationID, &i.OrganizationName)
	return i, err
}

const createProject = `
INSERT INTO project (name, sector, organization_id)
VALUES ($1, $2, $3)
RETURNING id, name, sector, created_at, organization_id
`

type CreateProjectParams struct {
	Name           string
	Sector         string
	OrganizationID int64
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject, arg.Name, arg.Sector, arg.OrganizationID)
	var i Project
	err := row.Scan(&i.ID, &i.Name, &i.Sector, &i.CreatedAt, &i.OrganizationID)
	return i, err
}

const updateProject = `
UPDATE project
SET name = $2, sector = $3, organization_id = $4
WHERE id = $1
RETURNING id, name, sector, created_at, organization_id
`

type UpdateProjectParams struct {
	ID             int64
	Name           string
	Sector         string
	OrganizationID int64
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, updateProject, arg.ID, arg.Name, arg.Sector, arg.OrganizationID)
	var i Project
	err := row.Scan(&i.ID, &i.Name, &i.Sector, &i.CreatedAt, &i.OrganizationID)
	return i, err
}

const deleteProject = `
DELETE FROM project
WHERE id = $1
`

func (q *Queries) DeleteProject(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProject, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countProjectsByOrganization = `
SELECT COUNT(*)
FROM project
WHERE organization_id = $1
`

func (q *Queries) CountProjectsByOrganization(ctx context.Context, organizationID int64) (int64, error) {
	row := q.db.QueryRow(ctx, countProjectsByOrganization, organizationID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type projectRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProjects(rows projectRows) ([]Project, error) {
	var items []Project
	for rows.Next() {
		var i Project
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Sector,
			&i.CreatedAt,
			&i.OrganizationID,
			&i.OrganizationName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
