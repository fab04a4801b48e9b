package workstation

import (
	"fmt"
	"net"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

type CreateWorkstationDTO struct {
	DeskNumber  string `json:"desk_number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	IsActive    *bool  `json:"is_active,omitempty"`
	Equipment   string `json:"equipment"`
	Notes       string `json:"notes"`
	IPAddress   string `json:"ip_address"`
}

func (d *CreateWorkstationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("desk_number", NormalizeDeskNumber(d.DeskNumber)).Required().MaxLength(20)
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("location", d.Location).MaxLength(100)
	v.Field("ip_address", d.IPAddress).Custom(ipAddress("ip_address"))
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateWorkstationDTO struct {
	DeskNumber  *string `json:"desk_number,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Equipment   *string `json:"equipment,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IPAddress   *string `json:"ip_address,omitempty"`
}

func (d *UpdateWorkstationDTO) Validate() error {
	v := validation.NewValidator()
	if d.DeskNumber != nil {
		v.Field("desk_number", NormalizeDeskNumber(*d.DeskNumber)).Required().MaxLength(20)
	}
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(100)
	}
	if d.Location != nil {
		v.Field("location", *d.Location).MaxLength(100)
	}
	if d.IPAddress != nil {
		v.Field("ip_address", *d.IPAddress).Custom(ipAddress("ip_address"))
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func ipAddress(field string) func(interface{}) *internal.AppError {
	return func(value interface{}) *internal.AppError {
		s, _ := value.(string)
		if s == "" || net.ParseIP(s) != nil {
			return nil
		}
		return internal.NewValidationFieldError(field, fmt.Sprintf("%s must be an IPv4 or IPv6 address", field), internal.ErrCodeValidationFailed)
	}
}

type WorkstationsResponse struct {
	Workstations []*Workstation `json:"workstations"`
}
