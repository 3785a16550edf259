package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/organcare/docs/swagger"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/auth"
	"github.com/ghuser/organcare/pkg/cache"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/events"
	"github.com/ghuser/organcare/pkg/httpx"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/telemetry"
	organApi "github.com/ghuser/organcare/services/organ/application/api"
	organSvcs "github.com/ghuser/organcare/services/organ/application/services"
	domainevents "github.com/ghuser/organcare/services/organ/domain/events"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence"
)

// @title			organcare API
// @version		1.0
// @description	Organ maintenance tracking: pending status, maintenance history and gated deletions.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
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
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer db.Close()
		appConfig.Db = db
		log.Info("database connected", "driver", cfg.StorageDriver)
	}

	var redisCheck httpx.HealthChecker
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		redisCheck = redisClient
		log.Info("redis connected")
	}

	appConfig.SessionStore = newSessionStore(cfg, appConfig.Redis, log)

	eventBus, err := events.New(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck
	appConfig.EventBus = eventBus

	if eventBus.Durable() {
		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	svcs, err := organSvcs.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to initialize organ services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer svcs.Close()
	log.Info("storage ready", "driver", cfg.StorageDriver, "cloud_sync", svcs.Sync.Enabled())

	// Without a durable bus there is no worker; cloud sync runs in this process.
	if !eventBus.Durable() && svcs.Sync.Enabled() {
		if err := subscribeSync(ctx, appConfig, svcs); err != nil {
			log.Error("failed to subscribe cloud sync", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			HandlerTimeout:     cfg.HandlerTimeout,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(
		httpx.Check{Name: "storage", Checker: svcs.Storage()},
		httpx.Check{Name: "redis", Checker: redisCheck},
		httpx.Check{Name: "event_bus", Checker: eventBus},
	))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r, cfg.HandlerTimeout)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, svcs *organSvcs.Services) {
	organApi.OrganRoutes(r, a, svcs)
}

// newSessionStore keeps sessions in Redis when it is configured and in the
// encrypted cookie otherwise.
func newSessionStore(cfg *config.Config, redisClient *cache.RedisClient, log logger.Logger) sessions.Store {
	opts := auth.SessionOptions{
		AuthKey:       []byte(cfg.SessionAuthKey),
		EncryptionKey: []byte(cfg.SessionEncryptionKey),
		Secure:        cfg.Environment == config.EnvProduction,
		MaxAge:        cfg.SessionMaxAge,
	}
	if redisClient != nil {
		log.Info("session store initialized", "backend", "redis", "max_age", opts.MaxAge)
		return auth.NewSessionStore(redisClient.Client(), opts)
	}
	log.Info("session store initialized", "backend", "cookie", "max_age", opts.MaxAge)
	return auth.NewCookieStore(opts)
}

func subscribeSync(ctx context.Context, a *app.Application, svcs *organSvcs.Services) error {
	errCh, err := a.EventBus.Subscribe(ctx, domainevents.TopicStateChanged, svcs.Sync.HandleStateChanged)
	if err != nil {
		return err
	}
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", domainevents.TopicStateChanged, "error", err)
			telemetry.CaptureError(err, map[string]string{"topic": domainevents.TopicStateChanged})
		}
	}()
	a.Logger.Info("cloud sync subscribed in-process", "topic", domainevents.TopicStateChanged)
	return nil
}
