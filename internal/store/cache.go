package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auditservice/internal/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

const cacheKeyPrefix = "audit_events:"

// Cached puts a redis read-through cache in front of FindByID. Events never
// change after creation, so entries are never invalidated; the TTL only
// bounds memory. Redis failures degrade to the wrapped store.
type Cached struct {
	Store

	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(inner Store, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{
		Store:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cached) Create(ctx context.Context, candidate models.NewAuditEvent) (models.AuditEvent, error) {
	evt, err := c.Store.Create(ctx, candidate)
	if err != nil {
		return evt, err
	}
	c.put(ctx, evt)
	return evt, nil
}

func (c *Cached) CreateMany(ctx context.Context, candidates []models.NewAuditEvent) ([]models.AuditEvent, []error) {
	events, errs := c.Store.CreateMany(ctx, candidates)
	for i, evt := range events {
		if errs[i] == nil {
			c.put(ctx, evt)
		}
	}
	return events, errs
}

func (c *Cached) FindByID(ctx context.Context, id string) (models.AuditEvent, error) {
	data, err := c.rdb.Get(ctx, cacheKeyPrefix+id).Bytes()
	switch {
	case err == nil:
		evt, decodeErr := decodeCached(data)
		if decodeErr == nil {
			return evt, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "id", id, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "audit event cache read failed", "id", id, "error", err)
	}

	evt, err := c.Store.FindByID(ctx, id)
	if err != nil {
		return evt, err
	}
	c.put(ctx, evt)
	return evt, nil
}

func (c *Cached) put(ctx context.Context, evt models.AuditEvent) {
	data, err := bson.Marshal(evt)
	if err != nil {
		c.logger.WarnContext(ctx, "audit event cache encode failed", "id", evt.ID.Hex(), "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+evt.ID.Hex(), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "audit event cache write failed", "id", evt.ID.Hex(), "error", err)
	}
}

// decodeCached mirrors the client decode settings so nested metadata comes
// back as maps.
func decodeCached(data []byte) (models.AuditEvent, error) {
	var evt models.AuditEvent
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return evt, err
	}
	dec.DefaultDocumentM()
	err = dec.Decode(&evt)
	return evt, err
}
