package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const countProjectsBySector = `
SELECT sector, COUNT(*)
FROM project
GROUP BY sector
ORDER BY COUNT(*) DESC, sector ASC
`

func (q *Queries) CountProjectsBySector(ctx context.Context) ([]GroupCount, error) {
	rows, err := q.db.Query(ctx, countProjectsBySector)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[GroupCount])
}

const countProjectsByCountry = `
SELECT o.country, COUNT(*)
FROM project p
JOIN organization o ON o.id = p.organization_id
GROUP BY o.country
ORDER BY COUNT(*) DESC, o.country ASC
`

func (q *Queries) CountProjectsByCountry(ctx context.Context) ([]GroupCount, error) {
	rows, err := q.db.Query(ctx, countProjectsByCountry)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[GroupCount])
}
