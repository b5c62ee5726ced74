package errors

import "net/http"

var ErrMissingCheckIn = &Exception{
	Message:    "Bạn chưa check-in vào công việc này",
	StatusCode: http.StatusBadRequest,
}
