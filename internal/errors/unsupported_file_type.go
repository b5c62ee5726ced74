package errors

import "net/http"

var ErrUnsupportedFileType = &Exception{
	Message:    "unsupported file type",
	StatusCode: http.StatusBadRequest,
}
