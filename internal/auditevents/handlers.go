package auditevents

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"auditservice/internal/errmsg"
	"auditservice/internal/metrics"
	"auditservice/internal/models"
	"auditservice/internal/query"
	"auditservice/internal/store"
	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// Handler serves the audit event API.
type Handler struct {
	Store   store.Store
	Engine  *query.Engine
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func NewHandler(s store.Store, engine *query.Engine, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:   s,
		Engine:  engine,
		Metrics: m,
		Logger:  logger,
	}
}

// EventResponse wraps a single audit event.
type EventResponse struct {
	Data models.AuditEvent `json:"data"`
}

// ListResponse is one page of audit events.
type ListResponse struct {
	Data []models.AuditEvent `json:"data"`
	Meta query.Meta          `json:"meta"`
}

// CreateRequest is the body accepted by CreateHandler.
type CreateRequest struct {
	AuditEvent *models.AuditEventPayload `json:"audit_event"`
}

// ListHandler lists audit events.
// @Summary List audit events
// @Description Filters are optional and combined with AND. The date range applies only when both bounds are given. Results are ordered by occurred_at, most recent first.
// @Tags Audit Events
// @Produce json
// @Param entity_id query string false "Entity identifier"
// @Param entity_type query string false "Entity type" Enums(client, invoice, system)
// @Param event_type query string false "Event type, e.g. client.created"
// @Param status query string false "Outcome" Enums(success, failed)
// @Param start_date query string false "Inclusive lower bound on occurred_at (ISO 8601)"
// @Param end_date query string false "Inclusive upper bound on occurred_at (ISO 8601)"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(25)
// @Success 200 {object} ListResponse
// @Failure 422 {object} errmsg._AuditEventInvalidQuery
// @Failure 500 {object} errmsg._InternalServerError
// @Router /api/v1/audit_events [get]
func (h *Handler) ListHandler(c fiber.Ctx) error {
	page, err := h.Engine.List(utils.RequestContext(c), query.Params{
		EntityID:   c.Query("entity_id"),
		EntityType: c.Query("entity_type"),
		EventType:  c.Query("event_type"),
		Status:     c.Query("status"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Page:       c.Query("page"),
		PerPage:    c.Query("per_page"),
	})
	if err != nil {
		return h.fail(c, "list", err, errmsg.AuditEventInvalidQuery)
	}

	return c.JSON(ListResponse{Data: page.Events, Meta: page.Meta})
}

// ByEntityHandler lists the history of one entity.
// @Summary List audit events for an entity
// @Tags Audit Events
// @Produce json
// @Param entity_id path string true "Entity identifier"
// @Param entity_type query string false "Entity type" Enums(client, invoice, system)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(25)
// @Success 200 {object} ListResponse
// @Failure 500 {object} errmsg._InternalServerError
// @Router /api/v1/audit_events/entity/{entity_id} [get]
func (h *Handler) ByEntityHandler(c fiber.Ctx) error {
	page, err := h.Engine.ByEntity(utils.RequestContext(c), c.Params("entity_id"), query.Params{
		EntityType: c.Query("entity_type"),
		Page:       c.Query("page"),
		PerPage:    c.Query("per_page"),
	})
	if err != nil {
		return h.fail(c, "list by entity", err, errmsg.AuditEventInvalidQuery)
	}

	return c.JSON(ListResponse{Data: page.Events, Meta: page.Meta})
}

// ShowHandler returns one audit event.
// @Summary Get audit event
// @Tags Audit Events
// @Produce json
// @Param id path string true "Audit event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} errmsg._AuditEventNotFound
// @Failure 500 {object} errmsg._InternalServerError
// @Router /api/v1/audit_events/{id} [get]
func (h *Handler) ShowHandler(c fiber.Ctx) error {
	evt, err := h.Store.FindByID(utils.RequestContext(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "find", err, errmsg.AuditEventInvalidQuery)
	}

	return c.JSON(EventResponse{Data: evt})
}

// CreateHandler records a new audit event. The caller's IP address and
// User-Agent are taken from the request, never from the body.
// @Summary Create audit event
// @Tags Audit Events
// @Accept json
// @Produce json
// @Param payload body CreateRequest true "Audit event"
// @Success 201 {object} EventResponse
// @Failure 400 {object} errmsg._AuditEventInvalidPayload
// @Failure 422 {object} errmsg._AuditEventValidationFailed
// @Failure 500 {object} errmsg._InternalServerError
// @Router /api/v1/audit_events [post]
func (h *Handler) CreateHandler(c fiber.Ctx) error {
	var body CreateRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.AuditEvent == nil {
		return utils.StatusError(c, errmsg.AuditEventInvalidPayload)
	}

	candidate, err := body.AuditEvent.Candidate()
	if err != nil {
		h.Metrics.ValidationFailed(metrics.SourceHTTP)
		return h.fail(c, "create", err, errmsg.AuditEventValidationFailed)
	}

	candidate.IPAddress = c.IP()
	candidate.UserAgent = c.Get(fiber.HeaderUserAgent)

	evt, err := h.Store.Create(utils.RequestContext(c), candidate)
	if err != nil {
		var ve *errmsg.ValidationError
		if errors.As(err, &ve) {
			h.Metrics.ValidationFailed(metrics.SourceHTTP)
		}
		return h.fail(c, "create", err, errmsg.AuditEventValidationFailed)
	}

	h.Metrics.EventCreated(string(evt.EntityType), string(evt.Status), metrics.SourceHTTP)

	return c.Status(http.StatusCreated).JSON(EventResponse{Data: evt})
}

// fail maps core errors onto responses. Validation failures answer with
// invalid plus their details; storage faults are logged and answered
// generically.
func (h *Handler) fail(c fiber.Ctx, op string, err error, invalid errmsg.StatusError) error {
	var ve *errmsg.ValidationError

	switch {
	case errors.As(err, &ve):
		return utils.ValidationError(c, invalid, ve)
	case errors.Is(err, store.ErrNotFound):
		return utils.StatusError(c, errmsg.AuditEventNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		h.Logger.WarnContext(c, "audit event "+op+" timed out",
			"request_id", requestid.FromContext(c),
			"error", err)
		return utils.StatusError(c, errmsg.RequestTimeout)
	default:
		h.Logger.ErrorContext(c, "audit event "+op+" failed",
			"request_id", requestid.FromContext(c),
			"path", c.Path(),
			"error", err)
		return utils.StatusError(c, errmsg.InternalServerError)
	}
}
