package errmsg

import "strings"

// ValidationError lists every violated constraint of a write candidate or
// query. It is an expected outcome, never a fault.
type ValidationError struct {
	Details []string
}

func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

func (ve *ValidationError) Error() string {
	return "validation failed: " + strings.Join(ve.Details, ", ")
}
