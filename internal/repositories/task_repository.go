package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"field-service.com/field-service/internal/constants"
	apperrors "field-service.com/field-service/internal/errors"
	model "field-service.com/field-service/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

// ErrStatusConflict is returned when a conditional status transition matches
// no row: the task's status no longer equals the required one because a
// concurrent event won the race.
var ErrStatusConflict = errors.New("task status conflict")

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a repository bound to an open transaction handle.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.Status == "" {
		task.Status = constants.StatusPreparing
	}
	task.Version = 1
	task.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("GeoLocation").
		Preload("Attachments").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("GeoLocation").
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}

	task.Version++
	return nil
}

// TransitionStatus advances a task from the required status to the target
// status and stamps the event timestamp column, as one conditional write.
// The WHERE clause on the current status makes the legality check and the
// transition atomic: of N concurrent events only one affects a row.
func (r *TaskRepository) TransitionStatus(
	ctx context.Context,
	taskID uint,
	required constants.TaskStatus,
	target constants.TaskStatus,
	timestampColumn string,
	ts time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", taskID, required).
		Updates(map[string]interface{}{
			"status":        target,
			timestampColumn: ts,
			"version":       gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}
