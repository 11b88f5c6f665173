package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"auditservice/internal/errmsg"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

// RequestRunner sends one request through app and returns the raw body and
// status. A body implies a JSON content type unless headers override it.
func RequestRunner(
	t *testing.T,
	app *fiber.App,
	method string,
	path string,
	body []byte,
	headers map[string]string,
	config ...fiber.TestConfig,
) ([]byte, int) {
	t.Helper()

	cfg := fiber.TestConfig{Timeout: 30 * time.Second}
	if len(config) > 0 {
		cfg = config[0]
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := app.Test(req, cfg)
	require.NoError(t, err)
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return out, res.StatusCode
}

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// ResponseErrorCheck asserts the response is serr and returns its details.
func ResponseErrorCheck(
	t *testing.T,
	serr errmsg.StatusError,
	bodyBytes []byte,
	statusCode int,
) []string {
	t.Helper()

	require.Equal(t, serr.StatusCode, statusCode)

	var body ErrorBody
	err := json.Unmarshal(bodyBytes, &body)
	require.NoError(t, err)

	require.Equal(t, serr.Label, body.Error)
	require.Equal(t, serr.Message, body.Message)

	return body.Details
}
