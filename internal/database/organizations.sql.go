package database

import (
	"context"
)

const listOrganizations = `
SELECT id, name, country, created_at
FROM organization
WHERE ($1::text = '' OR name ILIKE '%' || $1 || '%')
  AND ($2::text = '' OR country ILIKE '%' || $2 || '%')
ORDER BY name ASC, id ASC
LIMIT $3 OFFSET $4
`

type ListOrganizationsParams struct {
	Name    string
	Country string
	Limit   int32
	Offset  int32
}

func (q *Queries) ListOrganizations(ctx context.Context, arg ListOrganizationsParams) ([]Organization, error) {
	rows, err := q.db.Query(ctx, listOrganizations, arg.Name, arg.Country, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Organization
	for rows.Next() {
		var i Organization
		if err := rows.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countOrganizations = `
SELECT COUNT(*)
FROM organization
WHERE ($1::text = '' OR name ILIKE '%' || $1 || '%')
  AND ($2::text = '' OR country ILIKE '%' || $2 || '%')
`

type CountOrganizationsParams struct {
	Name    string
	Country string
}

func (q *Queries) CountOrganizations(ctx context.Context, arg CountOrganizationsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countOrganizations, arg.Name, arg.Country)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listAllOrganizations = `
SELECT id, name, country, created_at
FROM organization
ORDER BY name ASC, id ASC
`

func (q *Queries) ListAllOrganizations(ctx context.Context) ([]Organization, error) {
	rows, err := q.db.Query(ctx, listAllOrganizations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Organization
	for rows.Next() {
		var i Organization
		if err := rows.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getOrganization = `
SELECT id, name, country, created_at
FROM organization
WHERE id = $1
`

func (q *Queries) GetOrganization(ctx context.Context, id int64) (Organization, error) {
	row := q.db.QueryRow(ctx, getOrganization, id)
	var i Organization
	err := row.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt)
	return i, err
}

const getOrganizationByName = `
SELECT id, name, country, created_at
FROM organization
WHERE name = $1
ORDER BY id ASC
LIMIT 1
`

func (q *Queries) GetOrganizationByName(ctx context.Context, name string) (Organization, error) {
	row := q.db.QueryRow(ctx, getOrganizationByName, name)
	var i Organization
	err := row.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt)
	return i, err
}

const createOrganization = `
INSERT INTO organization (name, country)
VALUES ($1, $2)
RETURNING id, name, country, created_at
`

type CreateOrganizationParams struct {
	Name    string
	Country string
}

func (q *Queries) CreateOrganization(ctx context.Context, arg CreateOrganizationParams) (Organization, error) {
	row := q.db.QueryRow(ctx, createOrganization, arg.Name, arg.Country)
	var i Organization
	err := row.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt)
	return i, err
}

const updateOrganization = `
UPDATE organization
SET name = $2, country = $3
WHERE id = $1
RETURNING id, name, country, created_at
`

type UpdateOrganizationParams struct {
	ID      int64
	Name    string
	Country string
}

func (q *Queries) UpdateOrganization(ctx context.Context, arg UpdateOrganizationParams) (Organization, error) {
	row := q.db.QueryRow(ctx, updateOrganization, arg.ID, arg.Name, arg.Country)
	var i Organization
	err := row.Scan(&i.ID, &i.Name, &i.Country, &i.CreatedAt)
	return i, err
}

const deleteOrganization = `
DELETE FROM organization
WHERE id = $1
`

func (q *Queries) DeleteOrganization(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteOrganization, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
