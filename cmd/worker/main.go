package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/cache"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/events"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/telemetry"
	organSvcs "github.com/ghuser/organcare/services/organ/application/services"
	domainevents "github.com/ghuser/organcare/services/organ/domain/events"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// The in-process bus never reaches another process; the api subscribes itself.
	if cfg.EventsDatabaseURL == "" {
		log.Error("worker requires EVENTS_DATABASE_URL")
		os.Exit(1)
	}
	if cfg.StorageDriver == config.StorageMemory || cfg.StorageDriver == config.StorageBadger {
		log.Error("worker cannot share the storage of the api process", "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{
		Config: cfg,
		Logger: log,
	}

	if persistence.NeedsDatabase(cfg.StorageDriver) {
		db, err := persistence.OpenDatabase(ctx, cfg, log)
		if err != nil {
			log.Error("failed to open database", "driver", cfg.StorageDriver, "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer db.Close()
		appConfig.Db = db
		log.Info("database connected", "driver", cfg.StorageDriver)
	}

	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		log.Info("redis connected")
	}

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck
	appConfig.EventBus = eventBus

	svcs, err := organSvcs.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to initialize organ services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer svcs.Close()

	if err := registerSubscribers(ctx, appConfig, svcs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

type subscription struct {
	topic   string
	handler func(context.Context, *message.Message) error
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *organSvcs.Services) error {
	subs := []subscription{
		{domainevents.TopicRecordDeleted, handleRecordDeleted(a)},
	}
	if svcs.Sync.Enabled() {
		subs = append(subs, subscription{domainevents.TopicStateChanged, svcs.Sync.HandleStateChanged})
	} else {
		a.Logger.Info("cloud sync disabled, not subscribing", "topic", domainevents.TopicStateChanged)
	}

	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, s.topic, s.handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(err, map[string]string{"topic": topic})
			}
		}(s.topic)
		topics = append(topics, s.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleRecordDeleted writes an audit line for every committed tombstone.
// Handlers must be idempotent: EventBus retries up to 3x on failure.
func handleRecordDeleted(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt domainevents.RecordDeletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "record deleted",
			"tombstone_id", evt.TombstoneID,
			"record_type", evt.RecordType,
			"record_id", evt.RecordID,
			"reason", evt.Reason,
			"location", evt.LocationName,
			"adm", evt.Adm,
		)
		return nil
	}
}
