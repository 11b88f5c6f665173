package errmsg

import "net/http"

var (
	AuditEventNotFound = NewStatusError(
		http.StatusNotFound,
		"audit event not found",
	)
	AuditEventInvalidPayload = NewStatusError(
		http.StatusBadRequest,
		"param is missing or the value is empty: audit_event",
	)
	AuditEventValidationFailed = NewStatusError(
		http.StatusUnprocessableEntity,
		"Failed to create audit event",
	).WithLabel("Validation Error")
	AuditEventInvalidQuery = NewStatusError(
		http.StatusUnprocessableEntity,
		"Invalid query parameters",
	).WithLabel("Validation Error")
)

type _AuditEventNotFound struct {
	Error   string `json:"error" example:"Not Found"`
	Message string `json:"message" example:"audit event not found"`
}

type _AuditEventInvalidPayload struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"param is missing or the value is empty: audit_event"`
}

type _AuditEventValidationFailed struct {
	Error   string   `json:"error" example:"Validation Error"`
	Message string   `json:"message" example:"Failed to create audit event"`
	Details []string `json:"details" example:"Entity type can't be blank"`
}

type _AuditEventInvalidQuery struct {
	Error   string   `json:"error" example:"Validation Error"`
	Message string   `json:"message" example:"Invalid query parameters"`
	Details []string `json:"details" example:"Start date is not a valid timestamp"`
}

var LiveTailClosed = NewStatusError(
	http.StatusServiceUnavailable,
	"live tail is shutting down, reconnect to another instance",
)

type _LiveTailClosed struct {
	Error   string `json:"error" example:"Service Unavailable"`
	Message string `json:"message" example:"live tail is shutting down, reconnect to another instance"`
}
