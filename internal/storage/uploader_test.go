package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/casdoor/oss"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"field-service.com/field-service/internal/constants"
	apperrors "field-service.com/field-service/internal/errors"
	model "field-service.com/field-service/internal/models"
	repository "field-service.com/field-service/internal/repositories"
)

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(path string, reader io.Reader) (*oss.Object, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.objects[path] = data
	return &oss.Object{Path: path, Name: path}, nil
}

func (f *fakeStorage) Get(path string) (*os.File, error) { return nil, errors.New("not supported") }
func (f *fakeStorage) GetStream(path string) (io.ReadCloser, error) {
	return nil, errors.New("not supported")
}
func (f *fakeStorage) Delete(path string) error                { delete(f.objects, path); return nil }
func (f *fakeStorage) List(path string) ([]*oss.Object, error) { return nil, nil }
func (f *fakeStorage) GetEndpoint() string                     { return "fake://" }
func (f *fakeStorage) GetURL(path string) (string, error)      { return "fake://" + path, nil }

func setupUploader(t *testing.T, maxFiles int, maxSize int64) (*Uploader, *fakeStorage, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Attachment{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newFakeStorage()
	uploader := NewUploader(
		store,
		repository.NewAttachmentRepository(db),
		"fake",
		maxFiles,
		maxSize,
		[]string{"image/jpeg", "image/png"},
		log,
	)

	return uploader, store, db
}

func worker(id uint) *model.User {
	return &model.User{ID: id, Name: "worker", Role: constants.RoleWorker}
}

func assignedTask() *model.Task {
	return &model.Task{ID: 7, Title: "task", AssigneeIDs: []uint{1}}
}

func TestUploadStoresFileAndCreatesAttachment(t *testing.T) {
	uploader, store, db := setupUploader(t, 5, 1<<20)

	attachments, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(1),
		[]File{{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}},
	)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(attachments))
	}

	a := attachments[0]
	if a.TaskID != 7 || a.UploaderID != 1 {
		t.Errorf("unexpected ownership: task %d uploader %d", a.TaskID, a.UploaderID)
	}
	if a.Provider != "fake" {
		t.Errorf("unexpected provider %q", a.Provider)
	}
	if a.Filename != "photo.jpg" || a.MimeType != "image/jpeg" || a.Size != 4 {
		t.Errorf("unexpected metadata: %+v", a)
	}
	if !strings.HasPrefix(a.Path, "tasks/7/") || !strings.HasSuffix(a.Path, ".jpg") {
		t.Errorf("unexpected object key %q", a.Path)
	}
	if _, ok := store.objects[a.Path]; !ok {
		t.Error("expected the object stored under the attachment path")
	}

	var count int64
	db.Model(&model.Attachment{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one attachment row, got %d", count)
	}
}

func TestUploadRejectsNonAssignee(t *testing.T) {
	uploader, _, _ := setupUploader(t, 5, 1<<20)

	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(2),
		[]File{{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}},
	)
	if !errors.Is(err, apperrors.ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestUploadAllowsAdmin(t *testing.T) {
	uploader, _, _ := setupUploader(t, 5, 1<<20)

	admin := &model.User{ID: 9, Name: "admin", Role: constants.RoleAdmin}
	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		admin,
		[]File{{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}},
	)
	if err != nil {
		t.Fatalf("expected admin upload to succeed, got %v", err)
	}
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	uploader, store, _ := setupUploader(t, 1, 1<<20)

	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(1),
		[]File{
			{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
			{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		},
	)
	if !errors.Is(err, apperrors.ErrTooManyFiles) {
		t.Fatalf("expected ErrTooManyFiles, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	uploader, store, _ := setupUploader(t, 5, 3)

	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(1),
		[]File{{Filename: "big.jpg", ContentType: "image/jpeg", Data: []byte("toolarge")}},
	)
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	uploader, _, _ := setupUploader(t, 5, 1<<20)

	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(1),
		[]File{{Filename: "script.sh", ContentType: "application/x-sh", Data: []byte("#!/bin/sh")}},
	)
	if !errors.Is(err, apperrors.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestUploadValidatesBeforeStoringAnything(t *testing.T) {
	uploader, store, db := setupUploader(t, 5, 1<<20)

	// Second file is invalid: the first must not be stored either.
	_, err := uploader.UploadTaskAttachments(
		context.Background(),
		assignedTask(),
		worker(1),
		[]File{
			{Filename: "ok.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
			{Filename: "bad.sh", ContentType: "application/x-sh", Data: []byte("#!")},
		},
	)
	if !errors.Is(err, apperrors.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Error("expected nothing stored")
	}

	var count int64
	db.Model(&model.Attachment{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no attachment rows, got %d", count)
	}
}
