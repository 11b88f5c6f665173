package utils

import (
	"auditservice/internal/errmsg"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the envelope every failed request answers with.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func StatusError(c fiber.Ctx, se errmsg.StatusError) error {
	return c.Status(se.StatusCode).JSON(ErrorResponse{
		Error:   se.Label,
		Message: se.Message,
	})
}

// ValidationError answers with se and the violated constraints of ve.
func ValidationError(c fiber.Ctx, se errmsg.StatusError, ve *errmsg.ValidationError) error {
	return c.Status(se.StatusCode).JSON(ErrorResponse{
		Error:   se.Label,
		Message: se.Message,
		Details: ve.Details,
	})
}
