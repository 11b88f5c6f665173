package errmsg

import "net/http"

var EmptyStatusError = NewStatusError(0, "")

// StatusError is a caller facing failure: an HTTP status, a category label
// and a human readable message.
type StatusError struct {
	StatusCode int
	Label      string
	Message    string
}

func NewStatusError(statusCode int, message string) StatusError {
	return StatusError{
		StatusCode: statusCode,
		Label:      http.StatusText(statusCode),
		Message:    message,
	}
}

// WithLabel returns a copy carrying a different category label.
func (se StatusError) WithLabel(label string) StatusError {
	se.Label = label
	return se
}

func (se StatusError) Error() string {
	return se.Message
}
