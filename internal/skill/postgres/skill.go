package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	"github.com/frahmantamala/employee-directory/internal/skill"
	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) skill.RepositoryAPI {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) GetAll(ctx context.Context) ([]*skillDatamodel.Skill, error) {
	var skills []*skillDatamodel.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*skillDatamodel.Skill, error) {
	var s skillDatamodel.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) Create(ctx context.Context, s *skillDatamodel.Skill) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SkillRepository) Update(ctx context.Context, s *skillDatamodel.Skill) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SkillRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).Delete(&employeeDatamodel.EmployeeSkill{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&skillDatamodel.Skill{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrSkillNameTaken.WithCause(err)
	}
	return err
}
