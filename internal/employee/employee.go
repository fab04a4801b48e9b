package employee

import (
	"strings"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var genders = []string{string(GenderMale), string(GenderFemale), string(GenderOther)}

type Employee struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Gender        Gender     `json:"gender,omitempty"`
	Email         string     `json:"email"`
	Position      string     `json:"position"`
	HireDate      *time.Time `json:"hire_date,omitempty"`
	Description   string     `json:"description"`
	WorkstationID *int64     `json:"workstation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FullName is "LastName FirstName", the directory's display order.
func (e *Employee) FullName() string {
	return FullName(e.FirstName, e.LastName)
}

func FullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(lastName) + " " + strings.TrimSpace(firstName))
}

// WorkExperienceDays counts UTC calendar days from the hire date to now. It
// is zero without a hire date and never negative.
func WorkExperienceDays(hireDate *time.Time, now time.Time) int {
	if hireDate == nil {
		return 0
	}
	today := calendarDate(now.UTC())
	hired := calendarDate(*hireDate)
	if !today.After(hired) {
		return 0
	}
	return int(today.Sub(hired).Hours() / 24)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (e *Employee) IsSeated() bool {
	return e.WorkstationID != nil
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Gender:        string(e.Gender),
		Email:         e.Email,
		Position:      e.Position,
		HireDate:      e.HireDate,
		Description:   e.Description,
		WorkstationID: e.WorkstationID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Gender:        Gender(e.Gender),
		Email:         e.Email,
		Position:      e.Position,
		HireDate:      e.HireDate,
		Description:   e.Description,
		WorkstationID: e.WorkstationID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
