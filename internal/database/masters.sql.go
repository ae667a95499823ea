package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listCountries = `
SELECT id, name FROM country ORDER BY name ASC
`

func (q *Queries) ListCountries(ctx context.Context) ([]MasterValue, error) {
	rows, err := q.db.Query(ctx, listCountries)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[MasterValue])
}

const countryExists = `
SELECT EXISTS (SELECT 1 FROM country WHERE name = $1)
`

func (q *Queries) CountryExists(ctx context.Context, name string) (bool, error) {
	row := q.db.QueryRow(ctx, countryExists, name)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

// CreateCountry returns pgx.ErrNoRows when the name is already taken.
const createCountry = `
INSERT INTO country (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING
RETURNING id, name
`

func (q *Queries) CreateCountry(ctx context.Context, name string) (MasterValue, error) {
	row := q.db.QueryRow(ctx, createCountry, name)
	var i MasterValue
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const deleteCountry = `
DELETE FROM country
WHERE id = $1
RETURNING id, name
`

func (q *Queries) DeleteCountry(ctx context.Context, id int64) (MasterValue, error) {
	row := q.db.QueryRow(ctx, deleteCountry, id)
	var i MasterValue
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const listSectors = `
SELECT id, name FROM sector ORDER BY name ASC
`

func (q *Queries) ListSectors(ctx context.Context) ([]MasterValue, error) {
	rows, err := q.db.Query(ctx, listSectors)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[MasterValue])
}

const sectorExists = `
SELECT EXISTS (SELECT 1 FROM sector WHERE name = $1)
`

func (q *Queries) SectorExists(ctx context.Context, name string) (bool, error) {
	row := q.db.QueryRow(ctx, sectorExists, name)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

// CreateSector returns pgx.ErrNoRows when the name is already taken.
const createSector = `
INSERT INTO sector (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING
RETURNING id, name
`

func (q *Queries) CreateSector(ctx context.Context, name string) (MasterValue, error) {
	row := q.db.QueryRow(ctx, createSector, name)
	var i MasterValue
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const deleteSector = `
DELETE FROM sector
WHERE id = $1
RETURNING id, name
`

func (q *Queries) DeleteSector(ctx context.Context, id int64) (MasterValue, error) {
	row := q.db.QueryRow(ctx, deleteSector, id)
	var i MasterValue
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}
