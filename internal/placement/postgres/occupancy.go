package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-directory/internal/placement"
	"github.com/jmoiron/sqlx"
)

const occupantsQuery = `
SELECT e.id AS employee_id, e.first_name, e.last_name, e.position, w.desk_number
FROM employees e
JOIN workstations w ON w.id = e.workstation_id
WHERE w.desk_number IN (?)
ORDER BY w.desk_number, e.id`

type OccupancyRepository struct {
	db *sqlx.DB
}

func NewOccupancyRepository(db *sqlx.DB) placement.Repository {
	return &OccupancyRepository{db: db}
}

func (r *OccupancyRepository) OccupantsAtDesks(ctx context.Context, deskNumbers []string) ([]placement.Occupant, error) {
	if len(deskNumbers) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(occupantsQuery, deskNumbers)
	if err != nil {
		return nil, fmt.Errorf("build occupants query: %w", err)
	}

	var occupants []placement.Occupant
	if err := r.db.SelectContext(ctx, &occupants, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return occupants, nil
}
