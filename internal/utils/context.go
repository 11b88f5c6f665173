package utils

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

type requestContextKey struct{}

// RequestContext is the context handlers pass to storage. fiber.Ctx never
// expires on its own, so the deadline set by middleware.Timeout lives in
// Locals; without one the request itself is returned.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey{}).(context.Context); ok {
		return ctx
	}
	return c
}

// SetRequestContext replaces the context RequestContext returns for c.
func SetRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(requestContextKey{}, ctx)
}
