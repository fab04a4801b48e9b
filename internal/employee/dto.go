package employee

import (
	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
	"github.com/frahmantamala/employee-directory/internal/media"
	"github.com/frahmantamala/employee-directory/internal/placement"
)

const (
	MinSkillLevel = 1
	MaxSkillLevel = 10
)

// CreateEmployeeDTO represents the request payload for creating an employee
type CreateEmployeeDTO struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Gender        string  `json:"gender,omitempty"`
	Email         string  `json:"email"`
	Position      string  `json:"position"`
	HireDate      *string `json:"hire_date,omitempty"`
	Description   string  `json:"description"`
	WorkstationID *int64  `json:"workstation_id,omitempty"`
}

// Validate validates the CreateEmployeeDTO
func (d *CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("first_name", d.FirstName).Required().MaxLength(50)
	v.Field("last_name", d.LastName).Required().MaxLength(50)
	v.Field("email", d.Email).Required().MaxLength(254).Email()
	v.Field("gender", d.Gender).OneOf(internal.ErrCodeInvalidGender, genders...)
	v.Field("position", d.Position).MaxLength(100)
	v.Field("hire_date", d.HireDate).Date()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateEmployeeDTO carries a partial update. The desk is changed through
// AssignWorkstationDTO instead.
type UpdateEmployeeDTO struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Email       *string `json:"email,omitempty"`
	Position    *string `json:"position,omitempty"`
	HireDate    *string `json:"hire_date,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if d.FirstName != nil {
		v.Field("first_name", *d.FirstName).Required().MaxLength(50)
	}
	if d.LastName != nil {
		v.Field("last_name", *d.LastName).Required().MaxLength(50)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().MaxLength(254).Email()
	}
	if d.Gender != nil {
		v.Field("gender", *d.Gender).OneOf(internal.ErrCodeInvalidGender, genders...)
	}
	if d.Position != nil {
		v.Field("position", *d.Position).MaxLength(100)
	}
	v.Field("hire_date", d.HireDate).Date()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// AssignWorkstationDTO moves an employee. A null workstation_id unseats them.
type AssignWorkstationDTO struct {
	WorkstationID *int64 `json:"workstation_id"`
}

// PlacementCheckDTO asks whether an employee could sit at a desk without
// saving anything. Position overrides the stored one when present.
type PlacementCheckDTO struct {
	WorkstationID *int64  `json:"workstation_id"`
	Position      *string `json:"position,omitempty"`
}

type PlacementCheckResponse struct {
	OK        bool                 `json:"ok"`
	Conflicts []placement.Conflict `json:"conflicts"`
}

type SetSkillLevelDTO struct {
	Level int `json:"level"`
}

func (d *SetSkillLevelDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("level", d.Level).IntRange(MinSkillLevel, MaxSkillLevel, internal.ErrCodeInvalidSkillLevel)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// AddImageDTO registers a file already placed under the media root.
type AddImageDTO struct {
	FilePath string `json:"file_path"`
	Order    int    `json:"order"`
}

// Validate checks the payload and rewrites FilePath in canonical form.
func (d *AddImageDTO) Validate() error {
	clean, pathErr := media.CleanPath(d.FilePath)

	v := validation.NewValidator()
	v.Field("file_path", d.FilePath).Required().Custom(func(interface{}) *internal.AppError {
		if pathErr != nil {
			return internal.NewValidationFieldError("file_path",
				"file_path must be a relative path inside the media store", internal.ErrCodeInvalidFilePath)
		}
		return nil
	})
	v.Field("file_path", clean).MaxLength(255)
	v.Field("order", d.Order).NonNegative(internal.ErrCodeInvalidImageOrder)
	if err := v.Validate(); err != nil {
		return err
	}

	d.FilePath = clean
	return nil
}

type SkillsResponse struct {
	Skills []SkillRatingView `json:"skills"`
}

type ImagesResponse struct {
	CoverImage    *ImageView  `json:"cover_image"`
	GalleryImages []ImageView `json:"gallery_images"`
}
