package model

import (
	"fmt"
	"time"

	"field-service.com/field-service/internal/constants"
)

// TaskTopic builds the audit-stream topic for a task. Unrelated subsystems
// append to the same per-task stream through this key.
func TaskTopic(taskID uint) string {
	return fmt.Sprintf("task:%d", taskID)
}

// Activity is an append-only audit record addressed by a composite topic
// ("task:<id>") and a coarse action tag. Records are never updated or deleted.
type Activity struct {
	ID        uint                     `gorm:"primaryKey" json:"id"`
	Topic     string                   `gorm:"index;not null" json:"topic"`
	Action    constants.ActivityAction `gorm:"type:varchar(40);index;not null" json:"action"`
	UserID    uint                     `gorm:"not null" json:"user_id"`
	Payload   ActivityPayload          `gorm:"serializer:json" json:"payload"`
	CreatedAt time.Time                `json:"created_at"`
}

// ActivityPayload carries the action-specific details. Only the fields
// relevant to the action are set.
type ActivityPayload struct {
	EventType      string              `json:"event_type,omitempty"`
	GeoLocation    *GeoLocation        `json:"geo_location,omitempty"`
	DistanceMeters float64             `json:"distance_meters,omitempty"`
	Attachments    []AttachmentSummary `json:"attachments"`
	Notes          string              `json:"notes,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	Comment        string              `json:"comment,omitempty"`
	PaymentID      *uint               `json:"payment_id,omitempty"`
}
