// Package health reports liveness and storage reachability.
package health

import (
	"context"
	"log/slog"
	"time"

	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
)

const (
	ServiceName = "audit-service"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by every store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response is the /health body. Status stays "ok" while the process is
// serving; Database reflects the storage ping.
type Response struct {
	Status    string    `json:"status" example:"ok"`
	Service   string    `json:"service" example:"audit-service"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database" example:"connected"`
}

type Handler struct {
	pinger Pinger
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(pinger Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{pinger: pinger, logger: logger, now: time.Now}
}

func Routes(app fiber.Router, h *Handler) {
	app.Get("/health", h.HealthHandler)
}

// Check pings storage and builds the report.
func (h *Handler) Check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	db := DatabaseConnected
	if h.pinger == nil {
		db = DatabaseDisconnected
	} else if err := h.pinger.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "storage ping failed", "error", err)
		db = DatabaseDisconnected
	}

	return Response{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: h.now().UTC(),
		Database:  db,
	}
}

// HealthHandler reports service health.
// @Summary Health check
// @Description Always answers 200 while the process serves requests; database reports whether storage answered a ping.
// @Tags Meta
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (h *Handler) HealthHandler(c fiber.Ctx) error {
	return c.JSON(h.Check(utils.RequestContext(c)))
}
