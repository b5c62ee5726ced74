package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/casdoor/oss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "field-service.com/field-service/internal/errors"
	model "field-service.com/field-service/internal/models"
	repository "field-service.com/field-service/internal/repositories"
)

// File is a decoded upload: raw bytes plus the client-declared metadata.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Uploader persists evidence files to the storage backend and records an
// Attachment row for each. It runs before the event transaction: storage
// writes cannot be rolled back with the relational store.
type Uploader struct {
	storage     oss.StorageInterface
	attachments *repository.AttachmentRepository
	provider    string
	maxFiles    int
	maxFileSize int64
	allowed     map[string]struct{}
	log         *logrus.Logger
}

func NewUploader(
	storage oss.StorageInterface,
	attachments *repository.AttachmentRepository,
	provider string,
	maxFiles int,
	maxFileSize int64,
	allowedTypes []string,
	log *logrus.Logger,
) *Uploader {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return &Uploader{
		storage:     storage,
		attachments: attachments,
		provider:    provider,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
		allowed:     allowed,
		log:         log,
	}
}

// UploadTaskAttachments validates and stores evidence files for a task.
// Only admins and assignees may upload. Any failure leaves no partial
// Attachment rows for files not yet processed; already-stored objects are
// not removed.
func (u *Uploader) UploadTaskAttachments(
	ctx context.Context,
	task *model.Task,
	user *model.User,
	files []File,
) ([]model.Attachment, error) {
	if !user.IsAdmin() && !task.IsAssignee(user.ID) {
		return nil, apperrors.ErrNotAssigned
	}

	if len(files) > u.maxFiles {
		return nil, apperrors.ErrTooManyFiles
	}

	for i := range files {
		if err := u.validateFile(&files[i]); err != nil {
			return nil, err
		}
	}

	attachments := make([]model.Attachment, 0, len(files))
	for _, f := range files {
		attachment, err := u.store(ctx, task.ID, user.ID, f)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}

	return attachments, nil
}

// UploadInvoice stores a single invoice file collected during check-out.
func (u *Uploader) UploadInvoice(
	ctx context.Context,
	task *model.Task,
	user *model.User,
	file File,
) (*model.Attachment, error) {
	attachments, err := u.UploadTaskAttachments(ctx, task, user, []File{file})
	if err != nil {
		return nil, err
	}
	return &attachments[0], nil
}

func (u *Uploader) validateFile(f *File) error {
	if int64(len(f.Data)) > u.maxFileSize {
		return apperrors.ErrFileTooLarge
	}

	if f.ContentType == "" {
		f.ContentType = http.DetectContentType(f.Data)
	}

	if _, ok := u.allowed[f.ContentType]; !ok {
		return apperrors.ErrUnsupportedFileType
	}

	return nil
}

func (u *Uploader) store(ctx context.Context, taskID, uploaderID uint, f File) (*model.Attachment, error) {
	key := objectKey(taskID, f.Filename)

	if _, err := u.storage.Put(key, bytes.NewReader(f.Data)); err != nil {
		u.log.WithError(err).WithField("path", key).Error("storage put failed")
		return nil, apperrors.ErrStorageFailure
	}

	attachment := &model.Attachment{
		Provider:   u.provider,
		Path:       key,
		MimeType:   f.ContentType,
		Size:       int64(len(f.Data)),
		Filename:   f.Filename,
		TaskID:     taskID,
		UploaderID: uploaderID,
	}

	if err := u.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}

	return attachment, nil
}

func objectKey(taskID uint, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("tasks/%d/%s%s", taskID, uuid.NewString(), ext)
}
