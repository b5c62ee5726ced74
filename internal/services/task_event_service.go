package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"field-service.com/field-service/internal/constants"
	apperrors "field-service.com/field-service/internal/errors"
	"field-service.com/field-service/internal/gps"
	model "field-service.com/field-service/internal/models"
	repository "field-service.com/field-service/internal/repositories"
	"field-service.com/field-service/internal/storage"
)

// EventInput carries everything a worker reports when checking in or out of
// a task. Payment fields are only honored on check-out.
type EventInput struct {
	TaskID           uint
	UserID           uint
	Latitude         float64
	Longitude        float64
	Notes            string
	Files            []storage.File
	PaymentCollected bool
	PaymentAmount    decimal.Decimal
	PaymentNotes     string
	InvoiceFile      *storage.File
}

// Event is the recorded lifecycle event itself.
type Event struct {
	Type           string                    `json:"type"`
	GeoLocation    *model.GeoLocation        `json:"geo_location"`
	DistanceMeters float64                   `json:"distance_meters"`
	Attachments    []model.AttachmentSummary `json:"attachments"`
}

type EventResult struct {
	Event    Event          `json:"event"`
	Task     *model.Task    `json:"task"`
	Payment  *model.Payment `json:"payment,omitempty"`
	Warnings []string       `json:"warnings"`
}

// eventConfig is the per-kind variant driving the shared recording procedure.
// Check-in and check-out differ only in these fields.
type eventConfig struct {
	kind                 string
	requiredStatus       constants.TaskStatus
	targetStatus         constants.TaskStatus
	timestampColumn      string
	action               constants.ActivityAction
	errWrongStatus       *apperrors.Exception
	requiresPriorCheckIn bool
	acceptsPayment       bool
}

var checkInConfig = eventConfig{
	kind:            "check-in",
	requiredStatus:  constants.StatusReady,
	targetStatus:    constants.StatusInProgress,
	timestampColumn: "started_at",
	action:          constants.ActionTaskCheckedIn,
	errWrongStatus:  apperrors.ErrCheckInWrongStatus,
}

var checkOutConfig = eventConfig{
	kind:                 "check-out",
	requiredStatus:       constants.StatusInProgress,
	targetStatus:         constants.StatusCompleted,
	timestampColumn:      "completed_at",
	action:               constants.ActionTaskCheckedOut,
	errWrongStatus:       apperrors.ErrCheckOutWrongStatus,
	requiresPriorCheckIn: true,
	acceptsPayment:       true,
}

// TaskEventService records task lifecycle events: it validates the worker's
// right to act, verifies reported coordinates against the task's target
// location, persists evidence, and advances task state atomically with an
// audit record.
type TaskEventService struct {
	db                 *gorm.DB
	tasks              *repository.TaskRepository
	geoLocations       *repository.GeoLocationRepository
	activities         *repository.ActivityRepository
	payments           *repository.PaymentRepository
	users              *repository.UserRepository
	uploader           *storage.Uploader
	warnDistanceMeters float64
	log                *logrus.Logger
}

func NewTaskEventService(
	db *gorm.DB,
	tasks *repository.TaskRepository,
	geoLocations *repository.GeoLocationRepository,
	activities *repository.ActivityRepository,
	payments *repository.PaymentRepository,
	users *repository.UserRepository,
	uploader *storage.Uploader,
	warnDistanceMeters float64,
	log *logrus.Logger,
) *TaskEventService {
	return &TaskEventService{
		db:                 db,
		tasks:              tasks,
		geoLocations:       geoLocations,
		activities:         activities,
		payments:           payments,
		users:              users,
		uploader:           uploader,
		warnDistanceMeters: warnDistanceMeters,
		log:                log,
	}
}

// CheckIn records a READY → IN_PROGRESS event and stamps StartedAt.
func (s *TaskEventService) CheckIn(ctx context.Context, input EventInput) (*EventResult, error) {
	return s.recordEvent(ctx, checkInConfig, input)
}

// CheckOut records an IN_PROGRESS → COMPLETED event, stamps CompletedAt and
// optionally creates a payment for money collected on site. It requires a
// prior check-in by the same worker.
func (s *TaskEventService) CheckOut(ctx context.Context, input EventInput) (*EventResult, error) {
	return s.recordEvent(ctx, checkOutConfig, input)
}

func (s *TaskEventService) recordEvent(ctx context.Context, cfg eventConfig, input EventInput) (*EventResult, error) {
	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Only assignees may record events. Admins get no override here: someone
	// has to actually be on site.
	if !task.IsAssignee(user.ID) {
		return nil, apperrors.ErrNotAssigned
	}

	if task.Status != cfg.requiredStatus {
		return nil, cfg.errWrongStatus
	}

	topic := model.TaskTopic(task.ID)

	if cfg.requiresPriorCheckIn {
		checkedIn, err := s.activities.HasAction(ctx, topic, constants.ActionTaskCheckedIn, user.ID)
		if err != nil {
			return nil, err
		}
		if !checkedIn {
			return nil, apperrors.ErrMissingCheckIn
		}
	}

	verification := gps.Verify(task.GeoLocation, input.Latitude, input.Longitude, s.warnDistanceMeters)

	// Evidence and invoice uploads happen before the transaction: storage
	// writes cannot be rolled back with the relational store. A failure here
	// aborts the event with no database effects.
	var attachments []model.Attachment
	if len(input.Files) > 0 {
		attachments, err = s.uploader.UploadTaskAttachments(ctx, task, user, input.Files)
		if err != nil {
			return nil, err
		}
	}

	collectPayment := cfg.acceptsPayment && input.PaymentCollected

	var invoice *model.Attachment
	if collectPayment && input.InvoiceFile != nil {
		invoice, err = s.uploader.UploadInvoice(ctx, task, user, *input.InvoiceFile)
		if err != nil {
			return nil, err
		}
	}

	summaries := make([]model.AttachmentSummary, 0, len(attachments))
	for _, a := range attachments {
		summaries = append(summaries, a.Summary())
	}

	var (
		eventLocation *model.GeoLocation
		payment       *model.Payment
	)

	now := time.Now().UTC()

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventLocation = &model.GeoLocation{Lat: input.Latitude, Lng: input.Longitude}
		if err := s.geoLocations.WithTx(tx).Create(ctx, eventLocation); err != nil {
			return err
		}

		if collectPayment {
			payment = &model.Payment{
				TaskID:      task.ID,
				Amount:      input.PaymentAmount,
				CollectedBy: user.ID,
				Notes:       input.PaymentNotes,
			}
			if invoice != nil {
				payment.InvoiceAttachmentID = &invoice.ID
			}
			if err := s.payments.WithTx(tx).Create(ctx, payment); err != nil {
				return err
			}
		}

		payload := model.ActivityPayload{
			EventType:      cfg.kind,
			GeoLocation:    eventLocation,
			DistanceMeters: verification.DistanceMeters,
			Attachments:    summaries,
			Notes:          input.Notes,
			Warnings:       verification.Warnings,
		}
		if payment != nil {
			payload.PaymentID = &payment.ID
		}

		activity := &model.Activity{
			Topic:   topic,
			Action:  cfg.action,
			UserID:  user.ID,
			Payload: payload,
		}
		if err := s.activities.WithTx(tx).Create(ctx, activity); err != nil {
			return err
		}

		// Conditional write: the WHERE clause on the current status closes
		// the race between the legality check above and this transition.
		err := s.tasks.WithTx(tx).TransitionStatus(
			ctx, task.ID, cfg.requiredStatus, cfg.targetStatus, cfg.timestampColumn, now,
		)
		if err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return cfg.errWrongStatus
			}
			return err
		}

		task, err = s.tasks.WithTx(tx).FindByID(ctx, task.ID)
		return err
	})

	if txErr != nil {
		if len(attachments) > 0 || invoice != nil {
			// Stored objects cannot be un-uploaded; the aborted transaction
			// leaves them orphaned for an operator to reap.
			s.log.WithError(txErr).WithFields(logrus.Fields{
				"task_id": input.TaskID,
				"files":   len(attachments),
			}).Warn("event transaction aborted after uploads, stored files orphaned")
		}
		return nil, txErr
	}

	s.log.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"user_id":  user.ID,
		"event":    cfg.kind,
		"distance": verification.DistanceMeters,
	}).Info("task event recorded")

	return &EventResult{
		Event: Event{
			Type:           cfg.kind,
			GeoLocation:    eventLocation,
			DistanceMeters: verification.DistanceMeters,
			Attachments:    summaries,
		},
		Task:     task,
		Payment:  payment,
		Warnings: verification.Warnings,
	}, nil
}
