package errors

import "net/http"

var ErrNotAssigned = &Exception{
	Message:    "Bạn không được phân công cho công việc này",
	StatusCode: http.StatusForbidden,
}
