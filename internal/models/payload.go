package models

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing caller supplied times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses ISO 8601 style date/time strings. Values without a
// zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// AuditEventPayload is the wire shape producers submit.
type AuditEventPayload struct {
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Status     string         `json:"status"`
	Metadata   map[string]any `json:"metadata"`
	OccurredAt string         `json:"occurred_at,omitempty"`
}

// Candidate converts the payload into a write candidate. It fails only when
// occurred_at does not parse, and then reports every violated constraint
// of the payload, not just the timestamp.
func (p AuditEventPayload) Candidate() (NewAuditEvent, error) {
	c := NewAuditEvent{
		EventType:  strings.TrimSpace(p.EventType),
		EntityType: EntityType(strings.TrimSpace(p.EntityType)),
		EntityID:   strings.TrimSpace(p.EntityID),
		Action:     Action(strings.TrimSpace(p.Action)),
		Status:     Status(strings.TrimSpace(p.Status)),
		Metadata:   p.Metadata,
	}

	if strings.TrimSpace(p.OccurredAt) != "" {
		t, err := ParseTimestamp(p.OccurredAt)
		if err != nil {
			c.invalidOccurredAt = true
			return NewAuditEvent{}, c.Validate()
		}
		c.OccurredAt = &t
	}

	return c, nil
}
