package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const imageOrder = "display_order ASC, created_at ASC, id ASC"

// EmployeeRepository implements employee.Repository using GORM. Aggregate
// reads use one query per association, however many employees are loaded.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

var _ employee.Repository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) aggregate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Workstation").
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Skills.Skill").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(imageOrder)
		})
}

func (r *EmployeeRepository) GetAggregate(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.aggregate(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByHireDateDesc returns the latest hires first. Employees without a
// hire date come last.
func (r *EmployeeRepository) ListByHireDateDesc(ctx context.Context, limit int) ([]*employeeDatamodel.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.aggregate(ctx).
		Order("CASE WHEN hire_date IS NULL THEN 1 ELSE 0 END").
		Order("hire_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) ListByName(ctx context.Context, filter employee.ListFilter, offset, count int) ([]*employeeDatamodel.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.aggregate(ctx).
		Scopes(filtered(filter)).
		Order("last_name ASC").
		Order("first_name ASC").
		Order("id ASC").
		Offset(offset).
		Limit(count).
		Find(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) Count(ctx context.Context, filter employee.ListFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Scopes(filtered(filter)).
		Count(&total).Error
	return total, err
}

func filtered(filter employee.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Position != "" {
			db = db.Where("position = ?", filter.Position)
		}
		if filter.WorkstationID != nil {
			db = db.Where("workstation_id = ?", *filter.WorkstationID)
		}
		return database.MatchTerms(filter.Query, "last_name", "first_name", "email")(db)
	}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, row *employeeDatamodel.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error)
}

func (r *EmployeeRepository) Update(ctx context.Context, row *employeeDatamodel.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error)
}

func (r *EmployeeRepository) DeleteWithDependents(ctx context.Context, id int64) ([]string, bool, error) {
	var (
		filePaths []string
		found     bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&employeeDatamodel.EmployeeImage{}).
			Where("employee_id = ?", id).
			Order(imageOrder).
			Pluck("file_path", &filePaths).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&employeeDatamodel.EmployeeImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&employeeDatamodel.EmployeeSkill{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&employeeDatamodel.Employee{}, id)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return filePaths, found, nil
}

func (r *EmployeeRepository) GetImages(ctx context.Context, employeeID int64) ([]employeeDatamodel.EmployeeImage, error) {
	var images []employeeDatamodel.EmployeeImage
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order(imageOrder).
		Find(&images).Error
	return images, err
}

func (r *EmployeeRepository) GetSkills(ctx context.Context, employeeID int64) ([]employeeDatamodel.EmployeeSkill, error) {
	var skills []employeeDatamodel.EmployeeSkill
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&skills).Error
	return skills, err
}

// UpsertSkill inserts a rating or updates the level of the existing one.
func (r *EmployeeRepository) UpsertSkill(ctx context.Context, rating *employeeDatamodel.EmployeeSkill) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"level"}),
		}).
		Create(rating).Error
}

func (r *EmployeeRepository) DeleteSkill(ctx context.Context, employeeID, skillID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", employeeID, skillID).
		Delete(&employeeDatamodel.EmployeeSkill{})
	return res.RowsAffected > 0, res.Error
}

func (r *EmployeeRepository) ImagePathInUse(ctx context.Context, filePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employeeDatamodel.EmployeeImage{}).
		Where("file_path = ?", filePath).
		Count(&count).Error
	return count > 0, err
}

// CreateImage inserts the image row. The unique index on file_path settles
// races between two writers registering the same file.
func (r *EmployeeRepository) CreateImage(ctx context.Context, image *employeeDatamodel.EmployeeImage) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrImagePathTaken.WithCause(err)
	}
	return err
}

func (r *EmployeeRepository) DeleteImage(ctx context.Context, employeeID, imageID int64) (*employeeDatamodel.EmployeeImage, error) {
	var image employeeDatamodel.EmployeeImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND employee_id = ?", imageID, employeeID).First(&image).Error; err != nil {
			return err
		}
		return tx.Delete(&image).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// ListImagePaths returns every stored file still referenced by an image.
func (r *EmployeeRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&employeeDatamodel.EmployeeImage{}).
		Distinct("file_path").
		Pluck("file_path", &paths).Error
	return paths, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmailTaken.WithCause(err)
	}
	return err
}
