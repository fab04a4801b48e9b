package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
	"github.com/frahmantamala/employee-directory/internal/placement"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	"gorm.io/gorm"
)

type WorkstationRepository struct {
	db *gorm.DB
}

func NewWorkstationRepository(db *gorm.DB) workstation.RepositoryAPI {
	return &WorkstationRepository{db: db}
}

func (r *WorkstationRepository) GetAll(ctx context.Context, filter workstation.ListFilter) ([]*workstationDatamodel.Workstation, error) {
	q := r.db.WithContext(ctx).Model(&workstationDatamodel.Workstation{})
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	q = q.Scopes(database.MatchTerms(filter.Query, "name", "description"))

	var rows []*workstationDatamodel.Workstation
	err := q.Order("name ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *WorkstationRepository) GetByID(ctx context.Context, id int64) (*workstationDatamodel.Workstation, error) {
	var ws workstationDatamodel.Workstation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *WorkstationRepository) Create(ctx context.Context, ws *workstationDatamodel.Workstation) error {
	return translate(r.db.WithContext(ctx).Create(ws).Error)
}

func (r *WorkstationRepository) Update(ctx context.Context, ws *workstationDatamodel.Workstation) error {
	return translate(r.db.WithContext(ctx).Save(ws).Error)
}

func (r *WorkstationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("workstation_id = ?", id).
			Update("workstation_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&workstationDatamodel.Workstation{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *WorkstationRepository) ListOccupants(ctx context.Context, id int64) ([]placement.Candidate, error) {
	var rows []employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name", "position").
		Where("workstation_id = ?", id).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	occupants := make([]placement.Candidate, 0, len(rows))
	for _, row := range rows {
		occupants = append(occupants, placement.Candidate{
			ID:       row.ID,
			Name:     row.LastName + " " + row.FirstName,
			Position: row.Position,
		})
	}
	return occupants, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDeskNumberTaken.WithCause(err)
	}
	return err
}
