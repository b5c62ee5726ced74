package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	dto "field-service.com/field-service/internal/data_models"
)

var validate = validator.New()

func ValidateCheckInRequest(r *dto.CheckInRequest) error {
	if err := validate.Struct(r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid coordinates")
	}
	return nil
}

func ValidateCheckOutRequest(r *dto.CheckOutRequest) error {
	if err := validate.Struct(r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid coordinates")
	}
	return nil
}

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if err := validate.Struct(r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task payload")
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if err := validate.Struct(r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task payload")
	}
	return nil
}

func ValidateCommentRequest(r *dto.CommentRequest) error {
	if err := validate.Struct(r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "comment is required")
	}
	return nil
}
