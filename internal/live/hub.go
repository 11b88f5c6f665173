// Package live fans newly persisted audit events out to websocket
// subscribers. Delivery is best effort: nothing is replayed and a
// subscriber that falls behind loses events rather than stalling writers.
package live

import (
	"context"
	"errors"
	"sync"

	"auditservice/internal/metrics"
	"auditservice/internal/models"
	"auditservice/internal/store"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 64

var ErrHubClosed = errors.New("live hub closed")

// Hub tracks subscriptions. The zero value is not usable; call NewHub.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	closed  bool
	buffer  int
	metrics *metrics.Metrics
}

func NewHub(buffer int, m *metrics.Metrics) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:    make(map[*Subscription]struct{}),
		buffer:  buffer,
		metrics: m,
	}
}

// Subscription receives the events matching its filter until it is
// cancelled or the hub closes.
type Subscription struct {
	hub    *Hub
	filter store.Filter
	events chan models.AuditEvent
	once   sync.Once
}

// Subscribe registers a filtered subscription. The date range of the
// filter is honoured like any other predicate.
func (h *Hub) Subscribe(filter store.Filter) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscription{
		hub:    h,
		filter: filter,
		events: make(chan models.AuditEvent, h.buffer),
	}
	h.subs[sub] = struct{}{}
	h.metrics.Subscribed(1)
	return sub, nil
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan models.AuditEvent {
	return s.events
}

// Cancel removes the subscription. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.detach()
}

// detach expects the hub lock to be held.
func (s *Subscription) detach() {
	s.once.Do(func() {
		delete(s.hub.subs, s)
		close(s.events)
		s.hub.metrics.Subscribed(-1)
	})
}

// Publish offers evt to every matching subscriber without blocking.
func (h *Hub) Publish(evt models.AuditEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.filter.Matches(evt) {
			continue
		}
		select {
		case sub.events <- evt:
		default:
			h.metrics.LiveDrop()
		}
	}
}

// Len reports the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// Close ends every subscription and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		sub.detach()
	}
}

// Publisher is a store that announces every event it persists on a hub.
type Publisher struct {
	store.Store
	hub *Hub
}

// NewPublisher wraps s so HTTP and ingest writes both reach the hub.
func NewPublisher(s store.Store, hub *Hub) *Publisher {
	return &Publisher{Store: s, hub: hub}
}

func (p *Publisher) Create(ctx context.Context, candidate models.NewAuditEvent) (models.AuditEvent, error) {
	evt, err := p.Store.Create(ctx, candidate)
	if err == nil {
		p.hub.Publish(evt)
	}
	return evt, err
}

func (p *Publisher) CreateMany(ctx context.Context, candidates []models.NewAuditEvent) ([]models.AuditEvent, []error) {
	events, errs := p.Store.CreateMany(ctx, candidates)
	for i, evt := range events {
		if i < len(errs) && errs[i] != nil {
			continue
		}
		p.hub.Publish(evt)
	}
	return events, errs
}
