package errors

import "net/http"

var ErrTooManyFiles = &Exception{
	Message:    "too many files in one upload",
	StatusCode: http.StatusBadRequest,
}
