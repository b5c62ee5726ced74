package errors

import "net/http"

var ErrCheckOutWrongStatus = &Exception{
	Message:    "Công việc chưa được bắt đầu, không thể check-out",
	StatusCode: http.StatusBadRequest,
}
