package employee

import (
	"time"

	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
)

type Employee struct {
	ID            int64                             `gorm:"primaryKey"`
	FirstName     string                            `gorm:"column:first_name;size:50;not null;index:idx_employees_name,priority:2"`
	LastName      string                            `gorm:"column:last_name;size:50;not null;index:idx_employees_name,priority:1"`
	Gender        string                            `gorm:"column:gender;size:10"`
	Email         string                            `gorm:"column:email;size:254;uniqueIndex;not null"`
	Position      string                            `gorm:"column:position;size:100"`
	HireDate      *time.Time                        `gorm:"column:hire_date;type:date;index"`
	Description   string                            `gorm:"column:description;type:text"`
	WorkstationID *int64                            `gorm:"column:workstation_id;index"`
	Workstation   *workstationDatamodel.Workstation `gorm:"foreignKey:WorkstationID;constraint:OnDelete:SET NULL"`
	Skills        []EmployeeSkill                   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Images        []EmployeeImage                   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeSkill holds one rating per (employee, skill) pair.
type EmployeeSkill struct {
	ID         int64                 `gorm:"primaryKey"`
	EmployeeID int64                 `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_skills_pair,priority:1"`
	SkillID    int64                 `gorm:"column:skill_id;not null;uniqueIndex:idx_employee_skills_pair,priority:2"`
	Level      int                   `gorm:"column:level;not null"`
	Skill      *skillDatamodel.Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (EmployeeSkill) TableName() string {
	return "employee_skills"
}

type EmployeeImage struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeID   int64     `gorm:"column:employee_id;not null;index:idx_employee_images_order,priority:1"`
	FilePath     string    `gorm:"column:file_path;size:255;not null;uniqueIndex:idx_employee_images_file_path"`
	DisplayOrder int       `gorm:"column:display_order;not null;index:idx_employee_images_order,priority:2"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EmployeeImage) TableName() string {
	return "employee_images"
}
