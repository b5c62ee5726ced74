package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "field-service.com/field-service/internal/models"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) WithTx(tx *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: tx}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	attachment.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&attachments).Error
	return attachments, err
}
