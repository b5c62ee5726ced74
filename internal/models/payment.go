package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	TaskID              uint            `gorm:"index;not null" json:"task_id"`
	Amount              decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	CollectedBy         uint            `gorm:"not null" json:"collected_by"`
	InvoiceAttachmentID *uint           `json:"invoice_attachment_id,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}
