package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"field-service.com/field-service/internal/constants"
	model "field-service.com/field-service/internal/models"
)

// ActivityRepository appends to and reads the per-topic audit stream.
// Activities are never updated or deleted.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) WithTx(tx *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	activity.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(activity).Error
}

// HasAction reports whether the user has a recorded activity with the given
// action on the topic.
func (r *ActivityRepository) HasAction(
	ctx context.Context,
	topic string,
	action constants.ActivityAction,
	userID uint,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("topic = ? AND action = ? AND user_id = ?", topic, action, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ActivityRepository) ListByTopic(ctx context.Context, topic string) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("topic = ?", topic).
		Order("created_at asc").
		Find(&activities).Error
	return activities, err
}
