package errors

import "net/http"

var ErrFileTooLarge = &Exception{
	Message:    "file exceeds the maximum allowed size",
	StatusCode: http.StatusBadRequest,
}
