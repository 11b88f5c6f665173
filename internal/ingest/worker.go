// Package ingest consumes audit event candidates from a JetStream subject and
// persists them in batches through the event store.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"auditservice/internal/errmsg"
	"auditservice/internal/metrics"
	"auditservice/internal/models"
	"auditservice/internal/store"

	"github.com/nats-io/nats.go"
)

// Headers carrying the producer's network context.
const (
	HeaderIPAddress = "Audit-Ip-Address"
	HeaderUserAgent = "Audit-User-Agent"
)

// Message is the part of jetstream.Msg the worker settles.
type Message interface {
	Data() []byte
	Headers() nats.Header
	Ack() error
	Nak() error
	Term() error
}

type Config struct {
	Buffer       int
	BatchSize    int
	FlushEvery   time.Duration
	WriteTimeout time.Duration
}

var (
	defaultConfig = Config{
		Buffer:       1000,
		BatchSize:    50,
		FlushEvery:   2 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	fastConfig = Config{
		Buffer:       1000,
		BatchSize:    50,
		FlushEvery:   50 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
	}
)

func selectConfig(deployment string) Config {
	switch deployment {
	case "test":
		return fastConfig
	default:
		return defaultConfig
	}
}

type pending struct {
	msg       Message
	candidate models.NewAuditEvent
}

// Worker buffers decoded candidates and writes them with CreateMany. Every
// message is settled exactly once: Ack when stored, Term when it can never be
// stored, Nak when storage failed and a redelivery may succeed.
type Worker struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	buf     chan pending
	cfg     Config

	wg sync.WaitGroup

	// mu guards closed and the send on buf against Close.
	mu     sync.RWMutex
	closed bool
}

func NewWorker(s store.Store, deployment string, m *metrics.Metrics, logger *slog.Logger) *Worker {
	return NewWorkerWithConfig(s, selectConfig(deployment), m, logger)
}

func NewWorkerWithConfig(s store.Store, cfg Config, m *metrics.Metrics, logger *slog.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = defaultConfig.FlushEvery
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultConfig.WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Worker{
		store:   s,
		metrics: m,
		logger:  logger.With("component", "ingest"),
		buf:     make(chan pending, cfg.Buffer),
		cfg:     cfg,
	}

	w.wg.Add(1)
	go w.run()

	return w
}

// Decode reads a candidate from msg. Network context comes from headers
// only; the body cannot set it.
func Decode(msg Message) (models.NewAuditEvent, error) {
	var payload models.AuditEventPayload
	if err := json.Unmarshal(msg.Data(), &payload); err != nil {
		return models.NewAuditEvent{}, fmt.Errorf("decode audit event: %w", err)
	}

	candidate, err := payload.Candidate()
	if err != nil {
		return models.NewAuditEvent{}, err
	}

	if h := msg.Headers(); h != nil {
		candidate.IPAddress = strings.TrimSpace(h.Get(HeaderIPAddress))
		candidate.UserAgent = strings.TrimSpace(h.Get(HeaderUserAgent))
	}

	return candidate, nil
}

// Submit decodes msg and queues it for the next batch. When the buffer is
// full the candidate is written straight away. After Close messages are
// nak'd so another consumer can take them.
func (w *Worker) Submit(msg Message) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.settle(msg.Nak, "nak")
		return
	}

	candidate, err := Decode(msg)
	if err != nil {
		w.metrics.ValidationFailed(metrics.SourceIngest)
		w.logger.Warn("dropping undecodable audit event", "error", err)
		w.settle(msg.Term, "term")
		return
	}

	select {
	case w.buf <- pending{msg: msg, candidate: candidate}:
	default:
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
		defer cancel()

		evt, err := w.store.Create(ctx, candidate)
		w.finish(msg, evt, err)
	}
}

// Close flushes pending candidates and stops the batching loop. It waits
// for Submit calls in flight.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.buf)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()

	batch := make([]pending, 0, w.cfg.BatchSize)
	timer := time.NewTimer(w.cfg.FlushEvery)

	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			timer.Reset(w.cfg.FlushEvery)
			return
		}

		w.write(batch)

		batch = batch[:0]
		timer.Reset(w.cfg.FlushEvery)
	}

	for {
		select {
		case p, ok := <-w.buf:
			if !ok {
				flush()
				return
			}

			batch = append(batch, p)

			if len(batch) >= w.cfg.BatchSize {
				flush()
			}
		case <-timer.C:
			flush()
		}
	}
}

func (w *Worker) write(batch []pending) {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
	defer cancel()

	candidates := make([]models.NewAuditEvent, len(batch))
	for i, p := range batch {
		candidates[i] = p.candidate
	}

	events, errs := w.store.CreateMany(ctx, candidates)
	for i, p := range batch {
		var err error
		if i < len(errs) {
			err = errs[i]
		}
		var evt models.AuditEvent
		if i < len(events) {
			evt = events[i]
		}
		w.finish(p.msg, evt, err)
	}
}

func (w *Worker) finish(msg Message, evt models.AuditEvent, err error) {
	var ve *errmsg.ValidationError

	switch {
	case err == nil:
		w.metrics.EventCreated(string(evt.EntityType), string(evt.Status), metrics.SourceIngest)
		w.settle(msg.Ack, "ack")
	case errors.As(err, &ve):
		w.metrics.ValidationFailed(metrics.SourceIngest)
		w.logger.Warn("rejecting invalid audit event", "details", ve.Details)
		w.settle(msg.Term, "term")
	default:
		w.logger.Error("audit event write failed", "error", err)
		w.settle(msg.Nak, "nak")
	}
}

func (w *Worker) settle(fn func() error, op string) {
	if err := fn(); err != nil {
		w.logger.Warn("failed to settle message", "op", op, "error", err)
	}
}
