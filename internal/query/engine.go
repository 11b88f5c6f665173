// Package query turns caller supplied filter strings into store scans and
// computes page metadata.
package query

import (
	"context"
	"strings"
	"time"

	"auditservice/internal/errmsg"
	"auditservice/internal/metrics"
	"auditservice/internal/models"
	"auditservice/internal/store"
)

const (
	kindList     = "list"
	kindByEntity = "by_entity"
)

// Params are the raw, unparsed query inputs.
type Params struct {
	EntityID   string
	EntityType string
	EventType  string
	Status     string
	StartDate  string
	EndDate    string
	Page       string
	PerPage    string
}

// Page is one window of matching events plus metadata.
type Page struct {
	Events []models.AuditEvent
	Meta   Meta
}

// Scanner is the part of the event store the engine needs.
type Scanner interface {
	Scan(ctx context.Context, filter store.Filter, window store.Window) ([]models.AuditEvent, int64, error)
}

type Engine struct {
	scanner    Scanner
	maxPerPage int
	metrics    *metrics.Metrics
}

type Option func(*Engine)

func WithMaxPerPage(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPerPage = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func NewEngine(scanner Scanner, opts ...Option) *Engine {
	e := &Engine{
		scanner:    scanner,
		maxPerPage: DefaultMaxPerPage,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compose builds the conjunctive filter from the optional criteria. The
// date range is only applied when both bounds are given.
func Compose(p Params) (store.Filter, error) {
	f := store.Filter{
		EntityID:   strings.TrimSpace(p.EntityID),
		EntityType: models.EntityType(strings.TrimSpace(p.EntityType)),
		EventType:  strings.TrimSpace(p.EventType),
		Status:     models.Status(strings.TrimSpace(p.Status)),
	}

	start, end := strings.TrimSpace(p.StartDate), strings.TrimSpace(p.EndDate)
	if start == "" || end == "" {
		return f, nil
	}

	var details []string
	from, err := models.ParseTimestamp(start)
	if err != nil {
		details = append(details, "Start date is not a valid timestamp")
	}
	to, err := models.ParseTimestamp(end)
	if err != nil {
		details = append(details, "End date is not a valid timestamp")
	}
	if len(details) > 0 {
		return store.Filter{}, errmsg.NewValidationError(details...)
	}

	f.OccurredAt = &store.TimeRange{From: from, To: to}
	return f, nil
}

// List serves the general filtered listing.
func (e *Engine) List(ctx context.Context, p Params) (Page, error) {
	filter, err := Compose(p)
	if err != nil {
		return Page{}, err
	}
	return e.run(ctx, kindList, filter, ParsePagination(p.Page, p.PerPage, e.maxPerPage))
}

// ByEntity lists the history of one entity. The entity id is mandatory and
// entity_type is the only secondary filter honoured.
func (e *Engine) ByEntity(ctx context.Context, entityID string, p Params) (Page, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return Page{}, errmsg.NewValidationError("Entity id can't be blank")
	}

	filter := store.Filter{
		EntityID:   entityID,
		EntityType: models.EntityType(strings.TrimSpace(p.EntityType)),
	}
	return e.run(ctx, kindByEntity, filter, ParsePagination(p.Page, p.PerPage, e.maxPerPage))
}

func (e *Engine) run(ctx context.Context, kind string, filter store.Filter, pg Pagination) (Page, error) {
	started := time.Now()

	events, total, err := e.scanner.Scan(ctx, filter, pg.Window())
	if err != nil {
		return Page{}, err
	}

	e.metrics.QueryServed(kind, time.Since(started))

	return Page{
		Events: events,
		Meta: Meta{
			CurrentPage: pg.Page,
			TotalPages:  TotalPages(total, pg.PerPage),
			TotalCount:  total,
			PerPage:     pg.PerPage,
		},
	}, nil
}
