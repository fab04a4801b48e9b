package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeDeleted      = "employee.deleted"
	EventTypeEmployeeImageDeleted = "employee.image_deleted"
)

// EmployeeDeletedEvent is published after the employee row and its
// dependent rows are gone. FilePaths are the stored images left to release.
type EmployeeDeletedEvent struct {
	BaseEvent
	EmployeeID int64    `json:"employee_id"`
	FilePaths  []string `json:"file_paths"`
}

func NewEmployeeDeletedEvent(employeeID int64, filePaths []string) *EmployeeDeletedEvent {
	return &EmployeeDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"file_paths":  filePaths,
			},
		},
		EmployeeID: employeeID,
		FilePaths:  filePaths,
	}
}

type EmployeeImageDeletedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	ImageID    int64  `json:"image_id"`
	FilePath   string `json:"file_path"`
}

func NewEmployeeImageDeletedEvent(employeeID, imageID int64, filePath string) *EmployeeImageDeletedEvent {
	return &EmployeeImageDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeImageDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"image_id":    imageID,
				"file_path":   filePath,
			},
		},
		EmployeeID: employeeID,
		ImageID:    imageID,
		FilePath:   filePath,
	}
}

// ReleasablePaths returns the stored file paths an event frees, if any.
func ReleasablePaths(event Event) []string {
	switch e := event.(type) {
	case *EmployeeDeletedEvent:
		return e.FilePaths
	case *EmployeeImageDeletedEvent:
		if e.FilePath == "" {
			return nil
		}
		return []string{e.FilePath}
	default:
		return nil
	}
}
