package auditctl

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"auditservice/internal"
	"auditservice/internal/models"
	"auditservice/internal/store"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	app := internal.NewApp(internal.Deps{Store: mem, MaxPerPage: 100})

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return srv, mem
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--host", srv.URL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func createEvent(t *testing.T, mem *store.Memory, entityID string) models.AuditEvent {
	t.Helper()

	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	evt, err := mem.Create(context.Background(), models.NewAuditEvent{
		EventType:  "client.created",
		EntityType: models.EntityClient,
		EntityID:   entityID,
		Action:     models.ActionCreate,
		Status:     models.StatusSuccess,
		OccurredAt: &at,
	})
	require.NoError(t, err)
	return evt
}

func TestPing(t *testing.T) {
	srv, _ := newServer(t)

	out, err := run(t, srv, "ping")
	require.NoError(t, err)
	require.Equal(t, "PONG\n", out)
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)

	out, err := run(t, srv, "health")
	require.NoError(t, err)
	require.Contains(t, out, "audit-service")
	require.Contains(t, out, "connected")
}

func TestEventsList(t *testing.T) {
	srv, mem := newServer(t)
	evt := createEvent(t, mem, "CLI-042")
	createEvent(t, mem, "CLI-043")

	out, err := run(t, srv, "events", "list", "--entity-id", "CLI-042")
	require.NoError(t, err)
	require.Contains(t, out, evt.ID.Hex())
	require.NotContains(t, out, "CLI-043")
	require.Contains(t, out, "page 1 of 1, 1 events")
}

func TestEventsShow(t *testing.T) {
	srv, mem := newServer(t)
	evt := createEvent(t, mem, "CLI-042")

	out, err := run(t, srv, "events", "show", evt.ID.Hex())
	require.NoError(t, err)
	require.Contains(t, out, `"entity_id": "CLI-042"`)
}

func TestEventsShowNotFound(t *testing.T) {
	srv, _ := newServer(t)

	_, err := run(t, srv, "events", "show", "000000000000000000000000")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.StatusCode)
	require.Equal(t, "audit event not found", apiErr.Body.Message)
}

func TestVersionWithoutServer(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--host", "127.0.0.1:1", "version"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "No version detected\n", out.String())
}
