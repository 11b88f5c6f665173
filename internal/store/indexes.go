package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Indexes is the index set the scan access paths rely on. Entity scoped
// lookups use the compound (entity_type, entity_id) index; global recency
// listings walk occurred_at descending.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "entity_id", Value: 1}}},
		{Keys: bson.D{{Key: "entity_type", Value: 1}}},
		{Keys: bson.D{{Key: "event_type", Value: 1}}},
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}}},
	}
}

// EnsureIndexes creates any missing index. Existing indexes with the same
// keys are left untouched.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if _, err := m.coll.Indexes().CreateMany(ctx, Indexes()); err != nil {
		return unavailable("create indexes", err)
	}
	return nil
}

// Reset drops every stored event and recreates the indexes. Only seeding
// uses it; the API never removes events.
func (m *Mongo) Reset(ctx context.Context) error {
	if err := m.coll.Drop(ctx); err != nil {
		return unavailable("drop", err)
	}
	return m.EnsureIndexes(ctx)
}
