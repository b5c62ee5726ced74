package errors

import "net/http"

var ErrStorageFailure = &Exception{
	Message:    "failed to store uploaded file",
	StatusCode: http.StatusInternalServerError,
}
