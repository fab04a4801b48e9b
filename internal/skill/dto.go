package skill

import (
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

type CreateSkillDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *CreateSkillDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateSkillDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d *UpdateSkillDTO) Validate() error {
	if d.Name == nil {
		return nil
	}
	v := validation.NewValidator()
	v.Field("name", *d.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type SkillResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SkillsResponse struct {
	Skills []SkillResponse `json:"skills"`
}
