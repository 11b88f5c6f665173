package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// Recoverer turns panics into errors for the app error handler and logs the
// stack with the request ID.
func Recoverer(logger *slog.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, rec any) {
			logger.ErrorContext(c, "panic recovered",
				"request_id", requestid.FromContext(c),
				"method", c.Method(),
				"path", c.Path(),
				"panic", rec,
				"stack", string(debug.Stack()))
		},
	})
}
