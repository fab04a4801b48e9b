package skill

import (
	"strings"
	"time"

	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
)

type Skill struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Skill) ToResponse() SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
	}
}

func (s *Skill) Apply(dto *UpdateSkillDTO) {
	if dto.Name != nil {
		s.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		s.Description = *dto.Description
	}
	s.UpdatedAt = time.Now()
}

func NewSkill(name, description string) *Skill {
	now := time.Now()
	return &Skill{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(s *Skill) *skillDatamodel.Skill {
	return &skillDatamodel.Skill{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromDataModel(s *skillDatamodel.Skill) *Skill {
	return &Skill{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
