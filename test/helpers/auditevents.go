package helpers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"auditservice/internal/auditevents"
	"auditservice/internal/models"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func API_CreateAuditEvent(
	t *testing.T,
	app *fiber.App,
	payload any,
	headers map[string]string,
) (bodyBytes []byte, statusCode int) {
	// marshalling the payload into JSON
	sendBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	return RequestRunner(t, app,
		"POST",
		"/api/v1/audit_events",
		sendBytes,
		headers,
	)
}

func API_ListAuditEvents(
	t *testing.T,
	app *fiber.App,
	params url.Values,
) (bodyBytes []byte, statusCode int) {
	path := "/api/v1/audit_events"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return RequestRunner(t, app,
		"GET",
		path,
		nil,
		nil,
	)
}

func API_ShowAuditEvent(
	t *testing.T,
	app *fiber.App,
	id string,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app,
		"GET",
		"/api/v1/audit_events/"+url.PathEscape(id),
		nil,
		nil,
	)
}

func API_EntityAuditEvents(
	t *testing.T,
	app *fiber.App,
	entityID string,
	params url.Values,
) (bodyBytes []byte, statusCode int) {
	path := "/api/v1/audit_events/entity/" + url.PathEscape(entityID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return RequestRunner(t, app,
		"GET",
		path,
		nil,
		nil,
	)
}

// Event builds a valid create body nested under audit_event. Overrides
// replace or, when set to nil, remove fields.
func Event(entityID string, overrides map[string]any) map[string]any {
	evt := map[string]any{
		"event_type":  "client.created",
		"entity_type": "client",
		"entity_id":   entityID,
		"action":      "create",
		"status":      "success",
	}
	for key, value := range overrides {
		if value == nil {
			delete(evt, key)
			continue
		}
		evt[key] = value
	}
	return map[string]any{"audit_event": evt}
}

// MustCreate posts a valid event and returns the stored record.
func MustCreate(t *testing.T, app *fiber.App, entityID string, overrides map[string]any) models.AuditEvent {
	t.Helper()

	body, statusCode := API_CreateAuditEvent(t, app, Event(entityID, overrides), nil)
	require.Equal(t, http.StatusCreated, statusCode, string(body))

	return DecodeEvent(t, body)
}

func DecodeEvent(t *testing.T, body []byte) models.AuditEvent {
	t.Helper()

	var resp auditevents.EventResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func DecodeList(t *testing.T, body []byte) auditevents.ListResponse {
	t.Helper()

	var resp auditevents.ListResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}
