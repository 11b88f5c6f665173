package auditevents

import (
	"net/http"
	"testing"
	"time"

	"auditservice/internal/errmsg"
	"auditservice/internal/models"
	"auditservice/test/helpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateAuditEvent(t *testing.T) {
	entityID := uuid.NewString()
	payload := helpers.Event(entityID, map[string]any{
		"event_type":  "invoice.created",
		"entity_type": "invoice",
		"metadata":    map[string]any{"amount": 500.0, "currency": "USD"},
	})

	before := time.Now().Add(-time.Second)
	body, statusCode := helpers.API_CreateAuditEvent(t, app, payload, nil)
	require.Equal(t, http.StatusCreated, statusCode)

	evt := helpers.DecodeEvent(t, body)
	require.False(t, evt.ID.IsZero())
	require.Equal(t, "invoice.created", evt.EventType)
	require.Equal(t, models.EntityInvoice, evt.EntityType)
	require.Equal(t, entityID, evt.EntityID)
	require.Equal(t, models.ActionCreate, evt.Action)
	require.Equal(t, models.StatusSuccess, evt.Status)
	require.Equal(t, 500.0, evt.Metadata["amount"])
	require.Equal(t, "USD", evt.Metadata["currency"])

	// occurred_at defaults to the creation time
	require.True(t, evt.OccurredAt.After(before))
	require.False(t, evt.CreatedAt.IsZero())
	require.True(t, evt.CreatedAt.Equal(evt.UpdatedAt))

	body, statusCode = helpers.API_ShowAuditEvent(t, app, evt.ID.Hex())
	require.Equal(t, http.StatusOK, statusCode)
	require.Equal(t, evt.ID, helpers.DecodeEvent(t, body).ID)
}

func TestCreateCapturesNetworkContext(t *testing.T) {
	payload := helpers.Event(uuid.NewString(), map[string]any{
		"ip_address": "6.6.6.6",
		"user_agent": "spoofed",
	})

	body, statusCode := helpers.API_CreateAuditEvent(t, app, payload, map[string]string{
		"User-Agent": "Test Agent",
	})
	require.Equal(t, http.StatusCreated, statusCode)

	evt := helpers.DecodeEvent(t, body)
	require.Equal(t, "Test Agent", evt.UserAgent)
	require.NotEmpty(t, evt.IPAddress)
	require.NotEqual(t, "6.6.6.6", evt.IPAddress)
}

func TestCreateKeepsSuppliedOccurredAt(t *testing.T) {
	evt := helpers.MustCreate(t, app, uuid.NewString(), map[string]any{
		"occurred_at": "2025-01-15T10:30:00Z",
	})

	require.True(t, evt.OccurredAt.Equal(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)))
}

func TestCreateInvalidValues(t *testing.T) {
	before := mem.Len()

	body, statusCode := helpers.API_CreateAuditEvent(t, app, map[string]any{
		"audit_event": map[string]any{
			"event_type":  "",
			"entity_type": "invalid_type",
			"action":      "invalid_action",
			"status":      "invalid_status",
		},
	}, nil)

	details := helpers.ResponseErrorCheck(t, errmsg.AuditEventValidationFailed, body, statusCode)
	require.ElementsMatch(t, []string{
		"Event type can't be blank",
		"Entity type is not included in the list",
		"Action is not included in the list",
		"Status is not included in the list",
	}, details)

	require.Equal(t, before, mem.Len())
}

func TestCreateMissingFields(t *testing.T) {
	body, statusCode := helpers.API_CreateAuditEvent(t, app, map[string]any{
		"audit_event": map[string]any{"event_type": "test.event"},
	}, nil)

	details := helpers.ResponseErrorCheck(t, errmsg.AuditEventValidationFailed, body, statusCode)
	require.ElementsMatch(t, []string{
		"Entity type can't be blank",
		"Action can't be blank",
		"Status can't be blank",
	}, details)
}

func TestCreateInvalidOccurredAt(t *testing.T) {
	body, statusCode := helpers.API_CreateAuditEvent(t, app,
		helpers.Event(uuid.NewString(), map[string]any{"occurred_at": "next tuesday"}), nil)

	details := helpers.ResponseErrorCheck(t, errmsg.AuditEventValidationFailed, body, statusCode)
	require.Equal(t, []string{"Occurred at is not a valid timestamp"}, details)
}

func TestCreateInvalidOccurredAtWithOtherViolations(t *testing.T) {
	before := mem.Len()

	body, statusCode := helpers.API_CreateAuditEvent(t, app,
		helpers.Event(uuid.NewString(), map[string]any{
			"entity_type": "widget",
			"action":      nil,
			"occurred_at": "not-a-date",
		}), nil)

	details := helpers.ResponseErrorCheck(t, errmsg.AuditEventValidationFailed, body, statusCode)
	require.ElementsMatch(t, []string{
		"Entity type is not included in the list",
		"Action can't be blank",
		"Occurred at is not a valid timestamp",
	}, details)
	require.Equal(t, before, mem.Len())
}

func TestCreateMissingEnvelope(t *testing.T) {
	body, statusCode := helpers.API_CreateAuditEvent(t, app, map[string]any{
		"event_type": "client.created",
	}, nil)
	helpers.ResponseErrorCheck(t, errmsg.AuditEventInvalidPayload, body, statusCode)

	body, statusCode = helpers.RequestRunner(t, app, "POST", "/api/v1/audit_events", []byte("{not json"), nil)
	helpers.ResponseErrorCheck(t, errmsg.AuditEventInvalidPayload, body, statusCode)
}
