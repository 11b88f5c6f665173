package helpers

import (
	"testing"

	"github.com/gofiber/fiber/v3"
)

func API_MetaPing(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app,
		"GET",
		"/meta/ping",
		nil,
		nil,
	)
}

func API_MetaVersion(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app,
		"GET",
		"/meta/version",
		nil,
		nil,
	)
}

func API_Health(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app,
		"GET",
		"/health",
		nil,
		nil,
	)
}

func API_Metrics(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app,
		"GET",
		"/metrics",
		nil,
		nil,
	)
}
