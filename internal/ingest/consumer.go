package ingest

import (
	"context"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName   = "AUDIT_EVENTS"
	ConsumerName = "audit-service"
)

// Start ensures the stream and durable consumer exist and begins feeding
// deliveries to w. Stop the returned context before closing w.
func Start(ctx context.Context, js jetstream.JetStream, subject string, w *Worker) (jetstream.ConsumeContext, error) {
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{subject},
	})
	if err != nil {
		return nil, err
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       ConsumerName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    10,
	})
	if err != nil {
		return nil, err
	}

	return consumer.Consume(func(msg jetstream.Msg) {
		w.Submit(msg)
	})
}
