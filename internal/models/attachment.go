package model

import (
	"time"

	"gorm.io/gorm"
)

type Attachment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Provider   string         `gorm:"not null" json:"provider"`
	Path       string         `gorm:"not null" json:"path"`
	MimeType   string         `gorm:"not null" json:"mime_type"`
	Size       int64          `json:"size"`
	Filename   string         `json:"filename"`
	TaskID     uint           `gorm:"index;not null" json:"task_id"`
	UploaderID uint           `gorm:"not null" json:"uploader_id"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttachmentSummary is the reduced shape embedded in activity payloads.
type AttachmentSummary struct {
	ID       uint   `json:"id"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}

func (a Attachment) Summary() AttachmentSummary {
	return AttachmentSummary{ID: a.ID, MimeType: a.MimeType, Filename: a.Filename}
}
