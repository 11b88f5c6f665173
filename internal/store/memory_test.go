package store

import (
	"context"
	"sync"
	"testing"

	"auditservice/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMemoryContract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewMemory(WithClock(fixedClock()))
	})
}

func TestMemoryIsolatesStoredMetadata(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	c := candidate("CLI-001", epoch)
	created, err := s.Create(ctx, c)
	require.NoError(t, err)

	// mutate what the caller still holds
	c.Metadata["source"].(map[string]any)["app"] = "tampered"
	created.Metadata["updated_fields"] = "tampered"

	found, err := s.FindByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "crm", found.Metadata["source"].(map[string]any)["app"])
	require.Equal(t, []any{"email"}, found.Metadata["updated_fields"])
}

func TestMemoryConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, candidate("CLI-001", epoch))
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 20, s.Len())
}

func TestMemoryReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.Create(ctx, candidate("CLI-001", epoch))
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))
	require.Zero(t, s.Len())

	_, err = s.FindByID(ctx, created.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFilterMatches(t *testing.T) {
	evt := candidate("CLI-001", epoch).Record(epoch)

	require.True(t, Filter{}.Matches(evt))
	require.True(t, Filter{EntityID: "CLI-001", EntityType: models.EntityClient}.Matches(evt))
	require.False(t, Filter{EntityID: "CLI-002"}.Matches(evt))
	require.False(t, Filter{EventType: "client.created"}.Matches(evt))
	require.False(t, Filter{Status: models.StatusFailed}.Matches(evt))
	require.True(t, Filter{OccurredAt: &TimeRange{From: epoch, To: epoch}}.Matches(evt))
	require.False(t, Filter{OccurredAt: &TimeRange{From: epoch.Add(1), To: epoch.Add(2)}}.Matches(evt))
}
