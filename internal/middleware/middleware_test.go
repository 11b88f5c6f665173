package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestApp(buf *bytes.Buffer) *fiber.App {
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	onError := func(c fiber.Ctx, err error) error {
		return c.Status(http.StatusTeapot).SendString(err.Error())
	}

	app := fiber.New(fiber.Config{ErrorHandler: onError})
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-1" }}))
	app.Use(RequestLog(logger, nil, onError))
	app.Use(Recoverer(logger))
	return app
}

func TestRequestLogRecordsRenderedStatus(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)
	app.Get("/boom", func(c fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	require.Contains(t, buf.String(), `"status":418`)
	require.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestRecovererLogsPanics(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)
	app.Get("/panic", func(c fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.Contains(t, buf.String(), "panic recovered")
}

func TestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(Timeout(time.Second))

	var deadline bool
	app.Get("/", func(c fiber.Ctx) error {
		_, deadline = utils.RequestContext(c).Deadline()
		return c.SendStatus(http.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.True(t, deadline)
}

func TestTimeoutExpires(t *testing.T) {
	app := fiber.New()
	app.Use(Timeout(time.Millisecond))

	var ctxErr error
	app.Get("/", func(c fiber.Ctx) error {
		ctx := utils.RequestContext(c)
		<-ctx.Done()
		ctxErr = ctx.Err()
		return c.SendStatus(http.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.ErrorIs(t, ctxErr, context.DeadlineExceeded)
}

func TestWithoutTimeoutRequestHasNoDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(Timeout(0))

	deadline := true
	app.Get("/", func(c fiber.Ctx) error {
		_, deadline = utils.RequestContext(c).Deadline()
		return c.SendStatus(http.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.False(t, deadline)
}

func TestWriteRateLimitOnlyLimitsPosts(t *testing.T) {
	app := fiber.New()
	app.Use(WriteRateLimit(NewIPRateLimiter(rate.Every(time.Hour), 2)))
	app.Get("/events", func(c fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Post("/events", func(c fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	post := func() int {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/events", nil))
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, http.StatusCreated, post())
	require.Equal(t, http.StatusCreated, post())
	require.Equal(t, http.StatusTooManyRequests, post())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteRateLimitDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(WriteRateLimit(nil))
	app.Post("/events", func(c fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	for range 5 {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/events", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}
