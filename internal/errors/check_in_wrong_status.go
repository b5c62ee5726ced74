package errors

import "net/http"

var ErrCheckInWrongStatus = &Exception{
	Message:    "Công việc chưa sẵn sàng để check-in",
	StatusCode: http.StatusBadRequest,
}
