package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"

	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
)

// forwarderTopic is the outbox topic drained by the forwarder daemon.
const forwarderTopic = "_organcare_outbox"

const forwarderConsumerGroup = "organcare-forwarder"

// NewEventBus opens the SQL transport without the outbox. The worker uses it
// to consume; it never publishes.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newSQLBus(cfg, log, false)
}

// NewEventBusWithForwarder opens the SQL transport with publishes routed
// through the outbox topic. Call StartForwarder to relay them.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newSQLBus(cfg, log, true)
}

func newSQLBus(cfg *config.Config, log logger.Logger, useForwarder bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.EventsDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	wlog := newLogAdapter(log)

	pub, err := newSQLPublisher(db, wlog)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	sub, err := newSQLSubscriber(db, cfg.ServiceName+"-consumer", wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	var publisher message.Publisher = pub
	if useForwarder {
		publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
	}
	bus := newBus(publisher, sub, db, log)
	bus.useForwarder = useForwarder
	return bus, nil
}

func newSQLPublisher(db *sql.DB, wlog watermill.LoggerAdapter) (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, wlog)
}

func newSQLSubscriber(db *sql.DB, group string, wlog watermill.LoggerAdapter) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
}

// StartForwarder relays outbox messages to their destination topics until ctx
// is done. It returns once the forwarder is running.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.useForwarder {
		return errors.New("events: forwarder not enabled on this bus")
	}
	if b.fwd != nil {
		return errors.New("events: forwarder already started")
	}
	wlog := newLogAdapter(b.log)

	outbox, err := newSQLSubscriber(b.db, forwarderConsumerGroup, wlog)
	if err != nil {
		return fmt.Errorf("events: new outbox subscriber: %w", err)
	}
	target, err := newSQLPublisher(b.db, wlog)
	if err != nil {
		_ = outbox.Close()
		return fmt.Errorf("events: new outbox target: %w", err)
	}
	fwd, err := forwarder.NewForwarder(outbox, target, wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = outbox.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	b.fwd = fwd

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.log.InfoContext(ctx, "events: forwarder started", "topic", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
		}
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
