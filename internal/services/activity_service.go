package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"field-service.com/field-service/internal/constants"
	apperrors "field-service.com/field-service/internal/errors"
	model "field-service.com/field-service/internal/models"
	repository "field-service.com/field-service/internal/repositories"
	"field-service.com/field-service/internal/storage"
)

// ActivityService appends comment and upload records to a task's audit
// stream and reads the stream back. It shares the topic/action convention
// with the event orchestrator without sharing any code path.
type ActivityService struct {
	tasks      *repository.TaskRepository
	activities *repository.ActivityRepository
	users      *repository.UserRepository
	uploader   *storage.Uploader
	log        *logrus.Logger
}

func NewActivityService(
	tasks *repository.TaskRepository,
	activities *repository.ActivityRepository,
	users *repository.UserRepository,
	uploader *storage.Uploader,
	log *logrus.Logger,
) *ActivityService {
	return &ActivityService{
		tasks:      tasks,
		activities: activities,
		users:      users,
		uploader:   uploader,
		log:        log,
	}
}

func (s *ActivityService) AddComment(ctx context.Context, taskID, userID uint, comment string) (*model.Activity, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() && !task.IsAssignee(user.ID) {
		return nil, apperrors.ErrNotAssigned
	}

	activity := &model.Activity{
		Topic:  model.TaskTopic(task.ID),
		Action: constants.ActionTaskCommented,
		UserID: user.ID,
		Payload: model.ActivityPayload{
			Attachments: []model.AttachmentSummary{},
			Comment:     comment,
		},
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// UploadAttachments stores files against a task outside any lifecycle event
// and records the upload in the audit stream.
func (s *ActivityService) UploadAttachments(
	ctx context.Context,
	taskID, userID uint,
	files []storage.File,
) ([]model.Attachment, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.uploader.UploadTaskAttachments(ctx, task, user, files)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AttachmentSummary, 0, len(attachments))
	for _, a := range attachments {
		summaries = append(summaries, a.Summary())
	}

	activity := &model.Activity{
		Topic:   model.TaskTopic(task.ID),
		Action:  constants.ActionTaskAttachmentsUploaded,
		UserID:  user.ID,
		Payload: model.ActivityPayload{Attachments: summaries},
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	return attachments, nil
}

// TaskHistory returns the full audit stream for a task, oldest first.
func (s *ActivityService) TaskHistory(ctx context.Context, taskID uint) ([]model.Activity, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	return s.activities.ListByTopic(ctx, model.TaskTopic(taskID))
}
