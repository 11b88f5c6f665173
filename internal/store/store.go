// Package store persists audit events and serves the indexed lookups and
// filtered scans the query engine is built on.
package store

import (
	"context"
	"errors"
	"time"

	"auditservice/internal/models"
)

var (
	// ErrNotFound is returned by FindByID when no event has the identifier.
	ErrNotFound = errors.New("audit event not found")
	// ErrUnavailable marks failures of the underlying storage.
	ErrUnavailable = errors.New("storage unavailable")
)

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks

// Store is the event store contract shared by every backend. There is no
// update or delete: events are immutable once created.
type Store interface {
	Create(ctx context.Context, candidate models.NewAuditEvent) (models.AuditEvent, error)
	CreateMany(ctx context.Context, candidates []models.NewAuditEvent) ([]models.AuditEvent, []error)
	FindByID(ctx context.Context, id string) (models.AuditEvent, error)
	Scan(ctx context.Context, filter Filter, window Window) ([]models.AuditEvent, int64, error)
	Ping(ctx context.Context) error
}

// TimeRange bounds occurred_at, both ends inclusive.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Filter is a conjunction of optional predicates. Zero fields are inactive.
type Filter struct {
	EntityID   string
	EntityType models.EntityType
	EventType  string
	Status     models.Status
	OccurredAt *TimeRange
}

// Matches evaluates the filter against one event.
func (f Filter) Matches(evt models.AuditEvent) bool {
	if f.EntityID != "" && evt.EntityID != f.EntityID {
		return false
	}
	if f.EntityType != "" && evt.EntityType != f.EntityType {
		return false
	}
	if f.EventType != "" && evt.EventType != f.EventType {
		return false
	}
	if f.Status != "" && evt.Status != f.Status {
		return false
	}
	if r := f.OccurredAt; r != nil {
		if evt.OccurredAt.Before(r.From) || evt.OccurredAt.After(r.To) {
			return false
		}
	}
	return true
}

// Window selects a slice of the ordered matches.
type Window struct {
	Offset int64
	Limit  int64
}

// StorageError wraps a driver failure. It matches both ErrUnavailable and
// the original cause under errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

func unavailable(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

type config struct {
	now func() time.Time
}

// Option configures a store backend.
type Option func(*config)

// WithClock replaces the time source used for occurred_at defaults and
// created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func newConfig(opts []Option) config {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// prepare runs the write path checks shared by every backend: normalize,
// validate, stamp.
func prepare(candidate models.NewAuditEvent, now func() time.Time) (models.AuditEvent, error) {
	ts := now()
	candidate.Normalize(func() time.Time { return ts })
	if err := candidate.Validate(); err != nil {
		return models.AuditEvent{}, err
	}
	return candidate.Record(ts), nil
}
