package model

import (
	"time"

	"field-service.com/field-service/internal/constants"
)

type Task struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	Title         string               `gorm:"not null" json:"title"`
	Description   string               `json:"description"`
	Status        constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	AssigneeIDs   []uint               `gorm:"serializer:json" json:"assignee_ids"`
	GeoLocationID *uint                `json:"geo_location_id,omitempty"`
	GeoLocation   *GeoLocation         `json:"geo_location,omitempty"`
	Attachments   []Attachment         `json:"attachments,omitempty"`
	Version       uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time            `json:"created_at"`
	StartedAt     *time.Time           `json:"started_at,omitempty"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`
}

// IsAssignee reports whether the given user is assigned to the task.
// Assignee order is irrelevant.
func (t *Task) IsAssignee(userID uint) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
