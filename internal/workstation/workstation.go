package workstation

import (
	"strconv"
	"strings"
	"time"

	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
)

type Workstation struct {
	ID          int64     `json:"id"`
	DeskNumber  string    `json:"desk_number"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"is_active"`
	Equipment   string    `json:"equipment"`
	Notes       string    `json:"notes"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListFilter narrows a workstation listing. Zero values match everything.
// Query is matched against name and description.
type ListFilter struct {
	Active   *bool
	Location string
	Query    string
}

// NormalizeDeskNumber trims a desk number and writes numeric ones in
// canonical form, so "05" and "5" name the same desk.
func NormalizeDeskNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return strconv.Itoa(n)
	}
	return trimmed
}

func NewWorkstation(dto *CreateWorkstationDTO) *Workstation {
	now := time.Now()
	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}
	return &Workstation{
		DeskNumber:  NormalizeDeskNumber(dto.DeskNumber),
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		Location:    strings.TrimSpace(dto.Location),
		IsActive:    active,
		Equipment:   dto.Equipment,
		Notes:       dto.Notes,
		IPAddress:   strings.TrimSpace(dto.IPAddress),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (w *Workstation) Apply(dto *UpdateWorkstationDTO) {
	if dto.DeskNumber != nil {
		w.DeskNumber = NormalizeDeskNumber(*dto.DeskNumber)
	}
	if dto.Name != nil {
		w.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		w.Description = *dto.Description
	}
	if dto.Location != nil {
		w.Location = strings.TrimSpace(*dto.Location)
	}
	if dto.IsActive != nil {
		w.IsActive = *dto.IsActive
	}
	if dto.Equipment != nil {
		w.Equipment = *dto.Equipment
	}
	if dto.Notes != nil {
		w.Notes = *dto.Notes
	}
	if dto.IPAddress != nil {
		w.IPAddress = strings.TrimSpace(*dto.IPAddress)
	}
	w.UpdatedAt = time.Now()
}

func (w *Workstation) String() string {
	return w.DeskNumber + " - " + w.Name
}

func ToDataModel(w *Workstation) *workstationDatamodel.Workstation {
	return &workstationDatamodel.Workstation{
		ID:          w.ID,
		DeskNumber:  w.DeskNumber,
		Name:        w.Name,
		Description: w.Description,
		Location:    w.Location,
		IsActive:    w.IsActive,
		Equipment:   w.Equipment,
		Notes:       w.Notes,
		IPAddress:   w.IPAddress,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func FromDataModel(w *workstationDatamodel.Workstation) *Workstation {
	return &Workstation{
		ID:          w.ID,
		DeskNumber:  w.DeskNumber,
		Name:        w.Name,
		Description: w.Description,
		Location:    w.Location,
		IsActive:    w.IsActive,
		Equipment:   w.Equipment,
		Notes:       w.Notes,
		IPAddress:   w.IPAddress,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
