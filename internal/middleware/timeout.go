package middleware

import (
	"context"
	"time"

	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// Timeout bounds the context handlers pass to storage through
// utils.RequestContext. Handlers see context.DeadlineExceeded from the store
// once d elapses.
func Timeout(d time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(utils.RequestContext(c), d)
		defer cancel()

		utils.SetRequestContext(c, ctx)
		return c.Next()
	}
}
