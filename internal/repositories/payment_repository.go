package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "field-service.com/field-service/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	payment.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&payments).Error
	return payments, err
}
