package store

import (
	"context"
	"testing"
	"time"

	"auditservice/internal/errmsg"
	"auditservice/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	return func() time.Time { return epoch }
}

func candidate(entityID string, at time.Time) models.NewAuditEvent {
	return models.NewAuditEvent{
		EventType:  "client.updated",
		EntityType: models.EntityClient,
		EntityID:   entityID,
		Action:     models.ActionUpdate,
		Status:     models.StatusSuccess,
		Metadata: map[string]any{
			"updated_fields": []any{"email"},
			"source":         map[string]any{"app": "crm", "version": 3.0},
		},
		UserAgent:  "curl/8.5.0",
		IPAddress:  "192.168.1.10",
		OccurredAt: &at,
	}
}

// runContract exercises the behaviour every backend must share. newStore
// must return an empty store stamped by fixedClock.
func runContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		s := newStore(t)

		at := epoch.Add(-time.Hour)
		created, err := s.Create(ctx, candidate("CLI-001", at))
		require.NoError(t, err)
		require.False(t, created.ID.IsZero())
		require.True(t, created.OccurredAt.Equal(at))
		require.True(t, created.CreatedAt.Equal(epoch))
		require.True(t, created.UpdatedAt.Equal(epoch))

		found, err := s.FindByID(ctx, created.ID.Hex())
		require.NoError(t, err)
		require.Equal(t, created.ID, found.ID)
		require.Equal(t, "CLI-001", found.EntityID)
		require.Equal(t, "curl/8.5.0", found.UserAgent)
		require.Equal(t, "192.168.1.10", found.IPAddress)
		require.True(t, found.OccurredAt.Equal(at))
		require.Equal(t, []any{"email"}, toAnySlice(found.Metadata["updated_fields"]))
		require.Equal(t, "crm", asMap(found.Metadata["source"])["app"])
	})

	t.Run("default occurred at", func(t *testing.T) {
		s := newStore(t)

		c := candidate("CLI-002", epoch)
		c.OccurredAt = nil
		created, err := s.Create(ctx, c)
		require.NoError(t, err)
		require.True(t, created.OccurredAt.Equal(epoch))
	})

	t.Run("occurred at kept to the millisecond", func(t *testing.T) {
		s := newStore(t)

		at := time.Date(2025, 1, 15, 12, 30, 0, 250_000_000, time.FixedZone("CET", 60*60))
		created, err := s.Create(ctx, candidate("CLI-004", at.Add(999*time.Microsecond)))
		require.NoError(t, err)

		found, err := s.FindByID(ctx, created.ID.Hex())
		require.NoError(t, err)
		require.True(t, found.OccurredAt.Equal(at), "stored %s", found.OccurredAt)
		require.Equal(t, 250_000_000, found.OccurredAt.UTC().Nanosecond())
	})

	t.Run("invalid candidate is not stored", func(t *testing.T) {
		s := newStore(t)

		c := candidate("CLI-003", epoch)
		c.Status = "pending"
		_, err := s.Create(ctx, c)

		var ve *errmsg.ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, []string{"Status is not included in the list"}, ve.Details)

		_, total, err := s.Scan(ctx, Filter{}, Window{Limit: 10})
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run("find unknown and malformed ids", func(t *testing.T) {
		s := newStore(t)

		_, err := s.FindByID(ctx, primitive.NewObjectID().Hex())
		require.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindByID(ctx, "CLI-001")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create many reports per candidate", func(t *testing.T) {
		s := newStore(t)

		bad := candidate("INV-001", epoch)
		bad.EntityType = "order"

		events, errs := s.CreateMany(ctx, []models.NewAuditEvent{
			candidate("INV-001", epoch.Add(-2*time.Hour)),
			bad,
			candidate("INV-002", epoch.Add(-time.Hour)),
		})
		require.Len(t, events, 3)
		require.Len(t, errs, 3)
		require.NoError(t, errs[0])
		require.Error(t, errs[1])
		require.NoError(t, errs[2])
		require.True(t, events[1].ID.IsZero())

		_, total, err := s.Scan(ctx, Filter{}, Window{Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
	})

	t.Run("scan filters and orders", func(t *testing.T) {
		s := newStore(t)

		var ids []primitive.ObjectID
		for i, at := range []time.Time{
			epoch.Add(-3 * time.Hour),
			epoch.Add(-1 * time.Hour),
			epoch.Add(-2 * time.Hour),
			epoch.Add(-1 * time.Hour),
		} {
			c := candidate("CLI-010", at)
			if i == 2 {
				c.Status = models.StatusFailed
			}
			evt, err := s.Create(ctx, c)
			require.NoError(t, err)
			ids = append(ids, evt.ID)
		}
		_, err := s.Create(ctx, candidate("CLI-011", epoch))
		require.NoError(t, err)

		events, total, err := s.Scan(ctx, Filter{EntityID: "CLI-010"}, Window{Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 4, total)

		got := make([]primitive.ObjectID, len(events))
		for i, evt := range events {
			got[i] = evt.ID
		}
		// equal occurred_at values keep the most recent insert first
		require.Equal(t, []primitive.ObjectID{ids[3], ids[1], ids[2], ids[0]}, got)

		events, total, err = s.Scan(ctx, Filter{EntityID: "CLI-010", Status: models.StatusFailed}, Window{Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, ids[2], events[0].ID)

		events, total, err = s.Scan(ctx, Filter{
			OccurredAt: &TimeRange{From: epoch.Add(-2 * time.Hour), To: epoch.Add(-time.Hour)},
		}, Window{Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 3, total)
		require.Len(t, events, 3)
	})

	t.Run("scan windows", func(t *testing.T) {
		s := newStore(t)

		for i := 0; i < 7; i++ {
			_, err := s.Create(ctx, candidate("INV-100", epoch.Add(-time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}

		events, total, err := s.Scan(ctx, Filter{EntityID: "INV-100"}, Window{Offset: 5, Limit: 5})
		require.NoError(t, err)
		require.EqualValues(t, 7, total)
		require.Len(t, events, 2)
		require.True(t, events[1].OccurredAt.Equal(epoch.Add(-6*time.Minute)))

		events, total, err = s.Scan(ctx, Filter{EntityID: "INV-100"}, Window{Offset: 20, Limit: 5})
		require.NoError(t, err)
		require.EqualValues(t, 7, total)
		require.NotNil(t, events)
		require.Empty(t, events)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newStore(t).Ping(ctx))
	})
}

// toAnySlice normalizes decoded arrays, which come back as primitive.A from
// BSON and []any from memory.
func toAnySlice(v any) []any {
	switch vv := v.(type) {
	case primitive.A:
		return []any(vv)
	case []any:
		return vv
	default:
		return nil
	}
}

// asMap normalizes decoded documents, which come back as primitive.M from
// BSON and map[string]any from memory.
func asMap(v any) map[string]any {
	switch vv := v.(type) {
	case primitive.M:
		return map[string]any(vv)
	case map[string]any:
		return vv
	default:
		return nil
	}
}
