package auditevents

import "github.com/gofiber/fiber/v3"

func Routes(app fiber.Router, h *Handler) {
	events := app.Group("/audit_events")

	events.Get("/", h.ListHandler)
	events.Post("/", h.CreateHandler)
	events.Get("/entity/:entity_id", h.ByEntityHandler)
	events.Get("/:id", h.ShowHandler)
}
