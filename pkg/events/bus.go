// Package events carries organcare domain events over Watermill.
//
// The SQL transport (Postgres, watermill-sql) is durable and shared by the api
// and worker processes; the api publishes through the forwarder outbox. The
// in-process transport (gochannel) is used when EVENTS_DATABASE_URL is empty
// and lives only as long as the process.
//
// Handlers must be idempotent: a failing handler is retried with exponential
// backoff and then Nacked. Trace context travels in message metadata.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/telemetry"
)

const (
	shutdownTimeout = 30 * time.Second
	errBufferSize   = 100
)

// Handler processes one message. Returning an error triggers a retry.
type Handler func(context.Context, *message.Message) error

// EventBus publishes and subscribes Watermill messages on one transport.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	db         *sql.DB // nil on the in-process transport

	fwd          *forwarder.Forwarder
	useForwarder bool

	retry   retryPolicy
	handled metric.Int64Counter
	log     logger.Logger
	wg      sync.WaitGroup
}

func newBus(pub message.Publisher, sub message.Subscriber, db *sql.DB, log logger.Logger) *EventBus {
	handled, err := telemetry.NewCounter(telemetry.MetricEventsHandled, "Event deliveries by topic and outcome")
	if err != nil {
		log.Error("events: create counter", "error", err)
	}
	return &EventBus{
		publisher:  pub,
		subscriber: sub,
		db:         db,
		retry:      defaultRetry,
		handled:    handled,
		log:        log,
	}
}

// New picks the transport from cfg: SQL with the forwarder when
// cfg.EventsDatabaseURL is set, in-process otherwise.
func New(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	if cfg.EventsDatabaseURL == "" {
		return NewInProcessEventBus(log), nil
	}
	return NewEventBusWithForwarder(cfg, log)
}

// Durable reports whether published messages survive a process restart.
func (b *EventBus) Durable() bool {
	return b.db != nil
}

// DB returns the events database, or nil on the in-process transport.
func (b *EventBus) DB() *sql.DB {
	return b.db
}

// Publish sends msgs to topic with the trace context of ctx in their metadata.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
	if err := b.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for every message on topic until ctx is done or the
// bus is closed. Each delivery gets a consumer span continuing the
// publisher's trace. A message whose retries are exhausted is Nacked and its
// error is sent on the returned channel, which callers must drain. Close waits
// for in-flight handlers.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBufferSize)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)
		for msg := range ch {
			if err := b.handle(ctx, topic, msg, handler); err != nil {
				select {
				case errCh <- err:
				default:
					b.log.ErrorContext(ctx, "events: error channel full, dropping error", "topic", topic, "error", err)
				}
			}
		}
	}()
	return errCh, nil
}

func (b *EventBus) handle(ctx context.Context, topic string, msg *message.Message, handler Handler) error {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	msgCtx, span := otel.Tracer(telemetry.InstrumentationName).Start(
		otel.GetTextMapPropagator().Extract(ctx, carrier),
		"events.handle "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("messaging.message.id", msg.UUID)),
	)
	defer span.End()

	outcome := "acked"
	err := b.retry.run(msgCtx, msg, handler, b.log)
	if err != nil {
		outcome = "nacked"
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		msg.Nack()
	} else {
		msg.Ack()
	}
	if b.handled != nil {
		b.handled.Add(msgCtx, 1, metric.WithAttributes(
			attribute.String("topic", topic),
			attribute.String("outcome", outcome),
		))
	}
	return err
}

// Ping checks the events database. The in-process transport is always healthy.
func (b *EventBus) Ping(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and the forwarder, waits up to 30 s for
// in-flight handlers, then closes the publisher and the database.
func (b *EventBus) Close() error {
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		b.log.Error("events: timed out waiting for in-flight handlers")
	}

	if b.db == nil {
		// gochannel is publisher and subscriber both; it is closed already.
		return nil
	}
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return b.db.Close()
}
