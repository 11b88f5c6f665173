package middleware

import (
	"log/slog"
	"time"

	"auditservice/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// RequestLog logs each request with request_id, method, path, status and
// duration, and records the request duration metric. Errors returned down
// the chain are rendered through onError first so the logged status is the
// one the client sees. Use after requestid so the ID is available.
func RequestLog(logger *slog.Logger, m *metrics.Metrics, onError fiber.ErrorHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := onError(c, err); herr != nil {
				return herr
			}
		}

		dur := time.Since(start)
		status := c.Response().StatusCode()

		m.RequestServed(c.Method(), c.Path(), status, dur)

		logger.InfoContext(c, "request",
			"request_id", requestid.FromContext(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", dur.Milliseconds())

		return nil
	}
}
