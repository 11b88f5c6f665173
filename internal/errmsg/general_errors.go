package errmsg

import "net/http"

// InternalServerError never carries the cause; log it before responding.
var InternalServerError = NewStatusError(
	http.StatusInternalServerError,
	"An unexpected error occurred",
)

var RequestTimeout = NewStatusError(
	http.StatusServiceUnavailable,
	"the request did not complete in time",
)

type _InternalServerError struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Message string `json:"message" example:"An unexpected error occurred"`
}

var TooManyRequests = NewStatusError(
	http.StatusTooManyRequests,
	"too many requests",
)

type _TooManyRequests struct {
	Error   string `json:"error" example:"Too Many Requests"`
	Message string `json:"message" example:"too many requests"`
}
