package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"field-service.com/field-service/internal/constants"
	dto "field-service.com/field-service/internal/data_models"
	apperrors "field-service.com/field-service/internal/errors"
	"field-service.com/field-service/internal/http/validators"
	model "field-service.com/field-service/internal/models"
	"field-service.com/field-service/internal/services"
	"field-service.com/field-service/internal/storage"
)

type Handler struct {
	events     *services.TaskEventService
	activities *services.ActivityService
	tasks      *services.TaskService
}

func NewHandler(
	events *services.TaskEventService,
	activities *services.ActivityService,
	tasks *services.TaskService,
) *Handler {
	return &Handler{
		events:     events,
		activities: activities,
		tasks:      tasks,
	}
}

func (h *Handler) CheckIn(c echo.Context) error {
	input, err := h.bindEventInput(c, false)
	if err != nil {
		return err
	}

	result, err := h.events.CheckIn(c.Request().Context(), *input)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"checkIn":  result.Event,
		"task":     result.Task,
		"warnings": result.Warnings,
	})
}

func (h *Handler) CheckOut(c echo.Context) error {
	input, err := h.bindEventInput(c, true)
	if err != nil {
		return err
	}

	result, err := h.events.CheckOut(c.Request().Context(), *input)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"checkOut": result.Event,
		"task":     result.Task,
		"payment":  result.Payment,
		"warnings": result.Warnings,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	var target *model.GeoLocation
	if req.Location != nil {
		target = &model.GeoLocation{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Name:    req.Location.Name,
			Address: req.Location.Address,
		}
	}

	task, err := h.tasks.CreateTask(
		c.Request().Context(),
		req.Title,
		req.Description,
		req.AssigneeIDs,
		constants.TaskStatus(req.Status),
		target,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(
		c.Request().Context(),
		id,
		req.Title,
		req.Description,
		constants.TaskStatus(req.Status),
		req.Version,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) AddComment(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCommentRequest(&req); err != nil {
		return err
	}

	activity, err := h.activities.AddComment(c.Request().Context(), id, userID, req.Comment)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, activity)
}

func (h *Handler) TaskHistory(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	activities, err := h.activities.TaskHistory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(activities),
		"activities": activities,
	})
}

func (h *Handler) UploadAttachments(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	userID, err := actorID(c)
	if err != nil {
		return err
	}

	files, err := formFiles(c)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files supplied")
	}

	attachments, err := h.activities.UploadAttachments(c.Request().Context(), id, userID, files)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"attachments": attachments})
}

func (h *Handler) bindEventInput(c echo.Context, payment bool) (*services.EventInput, error) {
	id, err := taskID(c)
	if err != nil {
		return nil, err
	}

	userID, err := actorID(c)
	if err != nil {
		return nil, err
	}

	lat, err := formFloat(c, "latitude")
	if err != nil {
		return nil, err
	}
	lng, err := formFloat(c, "longitude")
	if err != nil {
		return nil, err
	}

	files, err := formFiles(c)
	if err != nil {
		return nil, err
	}

	input := &services.EventInput{
		TaskID:    id,
		UserID:    userID,
		Latitude:  lat,
		Longitude: lng,
		Notes:     c.FormValue("notes"),
		Files:     files,
	}

	if !payment {
		req := dto.CheckInRequest{Latitude: lat, Longitude: lng, Notes: input.Notes}
		if err := validators.ValidateCheckInRequest(&req); err != nil {
			return nil, err
		}
		return input, nil
	}

	req := dto.CheckOutRequest{
		CheckInRequest:   dto.CheckInRequest{Latitude: lat, Longitude: lng, Notes: input.Notes},
		PaymentCollected: c.FormValue("paymentCollected") == "true",
		PaymentAmount:    c.FormValue("paymentAmount"),
		PaymentNotes:     c.FormValue("paymentNotes"),
	}
	if err := validators.ValidateCheckOutRequest(&req); err != nil {
		return nil, err
	}

	input.PaymentCollected = req.PaymentCollected
	input.PaymentNotes = req.PaymentNotes

	if req.PaymentCollected {
		if req.PaymentAmount == "" {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "paymentAmount is required")
		}
		amount, err := decimal.NewFromString(req.PaymentAmount)
		if err != nil || amount.IsNegative() {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid paymentAmount")
		}
		input.PaymentAmount = amount

		if fh, err := c.FormFile("invoiceFile"); err == nil {
			invoice, err := readFormFile(fh)
			if err != nil {
				return nil, err
			}
			input.InvoiceFile = invoice
		}
	}

	return input, nil
}

// formFiles collects uploaded evidence: raw multipart files under "files",
// falling back to base64-encoded form values under "attachments".
func formFiles(c echo.Context) ([]storage.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	var files []storage.File
	for _, fh := range form.File["files"] {
		f, err := readFormFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}

	if len(files) > 0 {
		return files, nil
	}

	for i, encoded := range form.Value["attachments"] {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid base64 attachment")
		}
		files = append(files, storage.File{
			Filename: fmt.Sprintf("attachment-%d", i+1),
			Data:     data,
		})
	}

	return files, nil
}

func readFormFile(fh *multipart.FileHeader) (*storage.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable uploaded file")
	}

	return &storage.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func taskID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	return uint(id), nil
}

// actorID identifies the acting user. Authentication itself is handled
// upstream; this layer trusts the forwarded identity header.
func actorID(c echo.Context) (uint, error) {
	raw := c.Request().Header.Get("X-User-ID")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "X-User-ID header is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid X-User-ID header")
	}

	return uint(id), nil
}

func formFloat(c echo.Context, name string) (float64, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return v, nil
}

func httpError(err error) error {
	code := apperrors.StatusCode(err)

	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(code, appErr.Message)
	}
	return echo.NewHTTPError(code, "internal server error")
}
