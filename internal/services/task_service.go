package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"field-service.com/field-service/internal/constants"
	apperrors "field-service.com/field-service/internal/errors"
	model "field-service.com/field-service/internal/models"
	repository "field-service.com/field-service/internal/repositories"
)

// TaskService is the thin administrative surface over tasks. Lifecycle
// events never go through here; they belong to TaskEventService.
type TaskService struct {
	db           *gorm.DB
	tasks        *repository.TaskRepository
	geoLocations *repository.GeoLocationRepository
}

func NewTaskService(
	db *gorm.DB,
	tasks *repository.TaskRepository,
	geoLocations *repository.GeoLocationRepository,
) *TaskService {
	return &TaskService{
		db:           db,
		tasks:        tasks,
		geoLocations: geoLocations,
	}
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	title, description string,
	assigneeIDs []uint,
	status constants.TaskStatus,
	target *model.GeoLocation,
) (*model.Task, error) {
	if status == "" {
		status = constants.StatusReady
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		AssigneeIDs: assigneeIDs,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if target != nil {
			if err := s.geoLocations.WithTx(tx).Create(ctx, target); err != nil {
				return err
			}
			task.GeoLocationID = &target.ID
			task.GeoLocation = target
		}

		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies an administrative edit to a task. The caller sends
// the version it read; a stale version means someone else changed the
// task in between and the edit is rejected.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	id uint,
	title, description string,
	status constants.TaskStatus,
	version uint,
) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		task.Title = title
	}
	if description != "" {
		task.Description = description
	}
	if status != "" {
		task.Status = status
	}
	task.Version = version

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperrors.ErrOptimisticLock
		}
		return nil, err
	}

	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}
