package workstation

import "time"

type Workstation struct {
	ID          int64     `gorm:"primaryKey"`
	DeskNumber  string    `gorm:"column:desk_number;size:20;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Description string    `gorm:"column:description;type:text"`
	Location    string    `gorm:"column:location;size:100"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	Equipment   string    `gorm:"column:equipment;type:text"`
	Notes       string    `gorm:"column:notes;type:text"`
	IPAddress   string    `gorm:"column:ip_address;size:45"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Workstation) TableName() string {
	return "workstations"
}
