// Package seed loads a representative audit trail for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"auditservice/internal/models"
	"auditservice/internal/store"

	"github.com/google/uuid"
)

// ErrResetRefused is returned when a reset is requested for production.
var ErrResetRefused = errors.New("refusing to reset audit events in prod")

// Resetter is implemented by stores that can be emptied before seeding.
type Resetter interface {
	Reset(ctx context.Context) error
}

var (
	clientIDs  = []string{"CLI-001", "CLI-002", "CLI-003", "CLI-004", "CLI-005"}
	invoiceIDs = []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}

	errorTypes = []string{"ValidationError", "ConnectionError", "TimeoutError", "AuthenticationError"}
	severities = []string{"low", "medium", "high", "critical"}

	recentUserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X)",
	}
)

const day = 24 * time.Hour

// Summary counts what a seed run stored.
type Summary struct {
	Total    int
	ByEntity map[models.EntityType]int
	ByStatus map[models.Status]int
}

// Events builds the sample trail relative to now. The same rng seed yields
// the same events.
func Events(now time.Time, rng *rand.Rand) []models.NewAuditEvent {
	var out []models.NewAuditEvent

	add := func(c models.NewAuditEvent, at time.Time) {
		c.OccurredAt = &at
		out = append(out, c)
	}

	for i, id := range clientIDs {
		n := i + 1
		base := now.Add(-time.Duration(n) * day)

		add(models.NewAuditEvent{
			EventType:  "client.created",
			EntityType: models.EntityClient,
			EntityID:   id,
			Action:     models.ActionCreate,
			Status:     models.StatusSuccess,
			Metadata: map[string]any{
				"name":   fmt.Sprintf("Client %d", n),
				"email":  fmt.Sprintf("client%d@example.com", n),
				"tax_id": fmt.Sprintf("TAX-%d", between(rng, 10000, 99999)),
			},
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			IPAddress: fmt.Sprintf("192.168.1.%d", 100+i),
		}, base)

		for r := 0; r < 3; r++ {
			add(models.NewAuditEvent{
				EventType:  "client.read",
				EntityType: models.EntityClient,
				EntityID:   id,
				Action:     models.ActionRead,
				Status:     models.StatusSuccess,
				Metadata: map[string]any{
					"accessed_fields": []any{"name", "email", "tax_id"},
					"purpose":         "view_details",
				},
				UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
				IPAddress: fmt.Sprintf("192.168.1.%d", 110+r),
			}, base.Add(time.Duration(r+1)*time.Hour))
		}

		if i%2 == 0 {
			add(models.NewAuditEvent{
				EventType:  "client.updated",
				EntityType: models.EntityClient,
				EntityID:   id,
				Action:     models.ActionUpdate,
				Status:     models.StatusSuccess,
				Metadata: map[string]any{
					"updated_fields": []any{"email", "phone"},
					"previous_email": fmt.Sprintf("old%d@example.com", n),
					"new_email":      fmt.Sprintf("client%d@example.com", n),
				},
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
				IPAddress: fmt.Sprintf("192.168.1.%d", 120+i),
			}, now.Add(-time.Duration(i)*time.Hour))
		}
	}

	for i, id := range invoiceIDs {
		base := now.Add(-time.Duration(i+2) * day)

		add(models.NewAuditEvent{
			EventType:  "invoice.created",
			EntityType: models.EntityInvoice,
			EntityID:   id,
			Action:     models.ActionCreate,
			Status:     models.StatusSuccess,
			Metadata: map[string]any{
				"client_id":   pick(rng, clientIDs),
				"amount":      float64(between(rng, 10000, 1000000)) / 100,
				"currency":    "USD",
				"items_count": between(rng, 1, 10),
			},
			UserAgent: "PostmanRuntime/7.32.0",
			IPAddress: fmt.Sprintf("192.168.2.%d", 100+i),
		}, base)

		for r := 0; r < 5; r++ {
			add(models.NewAuditEvent{
				EventType:  "invoice.read",
				EntityType: models.EntityInvoice,
				EntityID:   id,
				Action:     models.ActionRead,
				Status:     models.StatusSuccess,
				Metadata: map[string]any{
					"accessed_by": fmt.Sprintf("user_%d", between(rng, 1, 5)),
					"purpose":     "review",
				},
				UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X)",
				IPAddress: fmt.Sprintf("192.168.2.%d", 110+r),
			}, base.Add(time.Duration(r+1)*time.Hour))
		}

		if i%2 == 1 {
			add(models.NewAuditEvent{
				EventType:  "invoice.updated",
				EntityType: models.EntityInvoice,
				EntityID:   id,
				Action:     models.ActionUpdate,
				Status:     models.StatusSuccess,
				Metadata: map[string]any{
					"updated_fields":  []any{"status"},
					"previous_status": "draft",
					"new_status":      "sent",
				},
				UserAgent: "curl/7.88.0",
				IPAddress: fmt.Sprintf("192.168.2.%d", 120+i),
			}, now.Add(-time.Duration(i)*time.Hour))
		}

		if i == 4 {
			add(models.NewAuditEvent{
				EventType:  "invoice.deleted",
				EntityType: models.EntityInvoice,
				EntityID:   id,
				Action:     models.ActionDelete,
				Status:     models.StatusSuccess,
				Metadata: map[string]any{
					"reason":     "duplicate",
					"deleted_by": "admin_user",
				},
				UserAgent: "Mozilla/5.0 (X11; Linux x86_64)",
				IPAddress: "192.168.2.130",
			}, now.Add(-time.Hour))
		}
	}

	for i := 0; i < 5; i++ {
		add(models.NewAuditEvent{
			EventType:  "error.occurred",
			EntityType: models.EntitySystem,
			EntityID:   fmt.Sprintf("SYS-%d", i+1),
			Action:     models.ActionError,
			Status:     models.StatusFailed,
			Metadata: map[string]any{
				"error_type":    pick(rng, errorTypes),
				"error_message": "An error occurred during processing",
				"stack_trace":   "Error stack trace here...",
				"severity":      pick(rng, severities),
			},
			UserAgent: "InternalService/1.0",
			IPAddress: fmt.Sprintf("10.0.0.%d", 10+i),
		}, now.Add(-time.Duration(i+1)*time.Hour))
	}

	entities := append(append([]string{}, clientIDs...), invoiceIDs...)
	for i := 0; i < 10; i++ {
		session, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			session = uuid.New()
		}

		add(models.NewAuditEvent{
			EventType:  pick(rng, []string{"client.read", "invoice.read", "client.updated"}),
			EntityType: pick(rng, []models.EntityType{models.EntityClient, models.EntityInvoice}),
			EntityID:   pick(rng, entities),
			Action:     pick(rng, []models.Action{models.ActionRead, models.ActionUpdate}),
			Status:     models.StatusSuccess,
			Metadata: map[string]any{
				"timestamp":  now.UTC().Format(time.RFC3339),
				"session_id": session.String(),
			},
			UserAgent: pick(rng, recentUserAgents),
			IPAddress: fmt.Sprintf("192.168.3.%d", between(rng, 1, 255)),
		}, now.Add(-time.Duration(between(rng, 1, 60))*time.Minute))
	}

	return out
}

// Run stores the sample trail. With reset the store is emptied first, which
// requires a Resetter and is refused for the prod deployment.
func Run(ctx context.Context, s store.Store, deployment string, reset bool, now time.Time, rng *rand.Rand) (Summary, error) {
	if reset {
		if deployment == "prod" {
			return Summary{}, ErrResetRefused
		}
		r, ok := s.(Resetter)
		if !ok {
			return Summary{}, fmt.Errorf("store %T cannot be reset", s)
		}
		if err := r.Reset(ctx); err != nil {
			return Summary{}, err
		}
	}

	events, errs := s.CreateMany(ctx, Events(now, rng))

	sum := Summary{
		ByEntity: map[models.EntityType]int{},
		ByStatus: map[models.Status]int{},
	}
	var failed []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, err)
			continue
		}
		sum.Total++
		sum.ByEntity[events[i].EntityType]++
		sum.ByStatus[events[i].Status]++
	}

	if len(failed) > 0 {
		return sum, fmt.Errorf("%d of %d seed events failed: %w", len(failed), len(errs), errors.Join(failed...))
	}
	return sum, nil
}

// between returns an int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.Intn(len(from))]
}
