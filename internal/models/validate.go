package models

import (
	"strings"

	"auditservice/internal/errmsg"
)

const (
	msgBlank       = "can't be blank"
	msgNotIncluded = "is not included in the list"
	msgNotTime     = "is not a valid timestamp"
)

// Validate checks required fields and closed vocabularies. Each violated
// constraint yields one message; a blank enumerated field only reports blank.
func (c NewAuditEvent) Validate() error {
	var details []string

	if strings.TrimSpace(c.EventType) == "" {
		details = append(details, "Event type "+msgBlank)
	}

	switch {
	case c.EntityType == "":
		details = append(details, "Entity type "+msgBlank)
	case !c.EntityType.Valid():
		details = append(details, "Entity type "+msgNotIncluded)
	}

	switch {
	case c.Action == "":
		details = append(details, "Action "+msgBlank)
	case !c.Action.Valid():
		details = append(details, "Action "+msgNotIncluded)
	}

	switch {
	case c.Status == "":
		details = append(details, "Status "+msgBlank)
	case !c.Status.Valid():
		details = append(details, "Status "+msgNotIncluded)
	}

	switch {
	case c.invalidOccurredAt:
		details = append(details, "Occurred at "+msgNotTime)
	case c.OccurredAt == nil || c.OccurredAt.IsZero():
		details = append(details, "Occurred at "+msgBlank)
	}

	if len(details) > 0 {
		return errmsg.NewValidationError(details...)
	}
	return nil
}
