package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCachedFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	var logs bytes.Buffer
	s := NewCached(NewMemory(), rdb, time.Minute, slog.New(slog.NewTextHandler(&logs, nil)))

	created, err := s.Create(ctx, candidate("CLI-001", epoch))
	require.NoError(t, err)

	found, err := s.FindByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = s.FindByID(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	require.Contains(t, logs.String(), "audit event cache")
}

func TestDecodeCachedKeepsMetadataMaps(t *testing.T) {
	evt := candidate("CLI-001", epoch).Record(epoch)

	data, err := bson.Marshal(evt)
	require.NoError(t, err)

	decoded, err := decodeCached(data)
	require.NoError(t, err)

	source := asMap(decoded.Metadata["source"])
	require.NotNil(t, source, "nested metadata decodes as a map, got %T", decoded.Metadata["source"])
	require.Equal(t, "crm", source["app"])
	require.True(t, decoded.OccurredAt.Equal(epoch))
}
