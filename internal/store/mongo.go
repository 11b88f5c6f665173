package store

import (
	"context"
	"errors"

	"auditservice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the single collection holding audit events.
const CollectionName = "audit_events"

// recency is the order every scan uses: newest occurrence first, later
// inserts first among equal occurrences.
var recency = bson.D{
	{Key: "occurred_at", Value: -1},
	{Key: "_id", Value: -1},
}

// Mongo stores audit events in a MongoDB collection.
type Mongo struct {
	coll *mongo.Collection
	cfg  config
}

func NewMongo(coll *mongo.Collection, opts ...Option) *Mongo {
	return &Mongo{
		coll: coll,
		cfg:  newConfig(opts),
	}
}

func (m *Mongo) Create(ctx context.Context, candidate models.NewAuditEvent) (models.AuditEvent, error) {
	evt, err := prepare(candidate, m.cfg.now)
	if err != nil {
		return models.AuditEvent{}, err
	}

	evt.ID = primitive.NewObjectID()
	if _, err := m.coll.InsertOne(ctx, evt); err != nil {
		return models.AuditEvent{}, unavailable("insert", err)
	}

	return evt, nil
}

// CreateMany validates every candidate, then inserts the valid ones in a
// single unordered write. errs[i] is nil when candidates[i] was persisted.
func (m *Mongo) CreateMany(ctx context.Context, candidates []models.NewAuditEvent) ([]models.AuditEvent, []error) {
	events := make([]models.AuditEvent, len(candidates))
	errs := make([]error, len(candidates))

	docs := make([]interface{}, 0, len(candidates))
	positions := make([]int, 0, len(candidates))

	for i, candidate := range candidates {
		evt, err := prepare(candidate, m.cfg.now)
		if err != nil {
			errs[i] = err
			continue
		}
		evt.ID = primitive.NewObjectID()
		events[i] = evt
		docs = append(docs, evt)
		positions = append(positions, i)
	}

	if len(docs) == 0 {
		return events, errs
	}

	_, err := m.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return events, errs
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError == nil && len(bwe.WriteErrors) > 0 {
		for _, we := range bwe.WriteErrors {
			if we.Index >= 0 && we.Index < len(positions) {
				i := positions[we.Index]
				errs[i] = unavailable("insert", we)
				events[i] = models.AuditEvent{}
			}
		}
		return events, errs
	}

	for _, i := range positions {
		errs[i] = unavailable("insert", err)
		events[i] = models.AuditEvent{}
	}
	return events, errs
}

// FindByID resolves a hex identifier. Identifiers that are not ObjectIDs
// cannot name any event and are reported as not found.
func (m *Mongo) FindByID(ctx context.Context, id string) (models.AuditEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.AuditEvent{}, ErrNotFound
	}

	var evt models.AuditEvent
	err = m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&evt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AuditEvent{}, ErrNotFound
	}
	if err != nil {
		return models.AuditEvent{}, unavailable("find", err)
	}

	return evt, nil
}

// Scan counts every match, then fetches the requested window in recency
// order. The two reads are not isolated from concurrent inserts.
func (m *Mongo) Scan(ctx context.Context, filter Filter, window Window) ([]models.AuditEvent, int64, error) {
	query := filterDocument(filter)

	total, err := m.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, unavailable("count", err)
	}

	events := []models.AuditEvent{}
	if total == 0 || window.Offset >= total || window.Limit <= 0 {
		return events, total, nil
	}

	opts := options.Find().
		SetSort(recency).
		SetSkip(window.Offset).
		SetLimit(window.Limit)

	cursor, err := m.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, unavailable("find", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, unavailable("decode", err)
	}

	return events, total, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// filterDocument renders the active predicates as a MongoDB query.
func filterDocument(f Filter) bson.M {
	query := bson.M{}
	if f.EntityID != "" {
		query["entity_id"] = f.EntityID
	}
	if f.EntityType != "" {
		query["entity_type"] = f.EntityType
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if r := f.OccurredAt; r != nil {
		query["occurred_at"] = bson.M{
			"$gte": r.From,
			"$lte": r.To,
		}
	}
	return query
}
