package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEvent is an immutable record of one action taken against an entity.
// ID marshals to JSON as its hex string.
type AuditEvent struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	EventType  string     `bson:"event_type" json:"event_type"`
	EntityType EntityType `bson:"entity_type" json:"entity_type"`
	EntityID   string     `bson:"entity_id" json:"entity_id"`
	Action     Action     `bson:"action" json:"action"`
	Status     Status     `bson:"status" json:"status"`

	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata"`

	UserAgent string `bson:"user_agent,omitempty" json:"user_agent"`
	IPAddress string `bson:"ip_address,omitempty" json:"ip_address"`

	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// NewAuditEvent is a write candidate. A nil OccurredAt is filled in by
// Normalize before validation.
type NewAuditEvent struct {
	EventType  string
	EntityType EntityType
	EntityID   string
	Action     Action
	Status     Status
	Metadata   map[string]any
	OccurredAt *time.Time

	// filled from the caller's network context, never from the payload
	UserAgent string
	IPAddress string

	// set by AuditEventPayload.Candidate when occurred_at did not parse
	invalidOccurredAt bool
}

// Normalize sets defaults that must be present before validation runs.
// A caller supplied OccurredAt is never overwritten.
func (c *NewAuditEvent) Normalize(now func() time.Time) {
	if c.OccurredAt == nil {
		t := now()
		c.OccurredAt = &t
	}
}

// Record builds the persisted form of a validated candidate. Timestamps are
// kept in UTC at millisecond precision, the resolution of a BSON datetime.
func (c NewAuditEvent) Record(createdAt time.Time) AuditEvent {
	evt := AuditEvent{
		EventType:  c.EventType,
		EntityType: c.EntityType,
		EntityID:   c.EntityID,
		Action:     c.Action,
		Status:     c.Status,
		Metadata:   c.Metadata,
		UserAgent:  c.UserAgent,
		IPAddress:  c.IPAddress,
		CreatedAt:  storedTime(createdAt),
		UpdatedAt:  storedTime(createdAt),
	}
	if c.OccurredAt != nil {
		evt.OccurredAt = storedTime(*c.OccurredAt)
	}
	return evt
}

func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
