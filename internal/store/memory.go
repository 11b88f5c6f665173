package store

import (
	"context"
	"sort"
	"sync"

	"auditservice/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps audit events in process. It honours the same ordering and
// filtering rules as Mongo and backs tests and the memory store profile.
type Memory struct {
	mu     sync.RWMutex
	events []models.AuditEvent
	byID   map[primitive.ObjectID]int
	cfg    config
}

func NewMemory(opts ...Option) *Memory {
	return &Memory{
		byID: make(map[primitive.ObjectID]int),
		cfg:  newConfig(opts),
	}
}

func (s *Memory) Create(_ context.Context, candidate models.NewAuditEvent) (models.AuditEvent, error) {
	evt, err := prepare(candidate, s.cfg.now)
	if err != nil {
		return models.AuditEvent{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(evt), nil
}

func (s *Memory) CreateMany(_ context.Context, candidates []models.NewAuditEvent) ([]models.AuditEvent, []error) {
	events := make([]models.AuditEvent, len(candidates))
	errs := make([]error, len(candidates))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, candidate := range candidates {
		evt, err := prepare(candidate, s.cfg.now)
		if err != nil {
			errs[i] = err
			continue
		}
		events[i] = s.insert(evt)
	}

	return events, errs
}

// insert must be called with the write lock held.
func (s *Memory) insert(evt models.AuditEvent) models.AuditEvent {
	evt.ID = primitive.NewObjectID()
	evt.Metadata = cloneMap(evt.Metadata)

	s.byID[evt.ID] = len(s.events)
	s.events = append(s.events, evt)

	return clone(evt)
}

func (s *Memory) FindByID(_ context.Context, id string) (models.AuditEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.AuditEvent{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[oid]
	if !ok {
		return models.AuditEvent{}, ErrNotFound
	}
	return clone(s.events[i]), nil
}

func (s *Memory) Scan(_ context.Context, filter Filter, window Window) ([]models.AuditEvent, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// positions in insertion order
	matches := make([]int, 0)
	for i, evt := range s.events {
		if filter.Matches(evt) {
			matches = append(matches, i)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		ea, eb := s.events[matches[a]], s.events[matches[b]]
		if !ea.OccurredAt.Equal(eb.OccurredAt) {
			return ea.OccurredAt.After(eb.OccurredAt)
		}
		return matches[a] > matches[b]
	})

	total := int64(len(matches))
	if window.Offset < 0 {
		window.Offset = 0
	}
	events := []models.AuditEvent{}
	if window.Offset >= total || window.Limit <= 0 {
		return events, total, nil
	}

	end := window.Offset + window.Limit
	if end > total {
		end = total
	}
	for _, i := range matches[window.Offset:end] {
		events = append(events, clone(s.events[i]))
	}

	return events, total, nil
}

func (s *Memory) Ping(context.Context) error {
	return nil
}

// Reset forgets every stored event.
func (s *Memory) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	s.byID = make(map[primitive.ObjectID]int)
	return nil
}

// Len reports how many events are held.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// clone copies an event deeply enough that callers cannot reach stored state.
func clone(evt models.AuditEvent) models.AuditEvent {
	evt.Metadata = cloneMap(evt.Metadata)
	return evt
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
