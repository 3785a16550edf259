package services

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/telemetry"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
	"github.com/ghuser/organcare/services/organ/infrastructure/cloudsync"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence"
	"github.com/ghuser/organcare/services/organ/infrastructure/summary"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Store     *RecordStore
	Mutations *MutationService
	Gate      *GateService
	Status    *StatusService
	Summary   *SummaryService
	Sync      *SyncService

	storage persistence.Store
	cloud   cloudsync.Driver
	gauge   metric.Registration
}

// New wires all organ application services with infrastructure from the
// Application container and loads the stored state. Call Close when done.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	cfg := a.Config

	seed, err := seedLocations(cfg.LocationsFile)
	if err != nil {
		return nil, err
	}

	storage, err := persistence.Open(cfg, persistence.Deps{DB: a.Db, Redis: a.Redis}, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	cloud, err := cloudsync.New(ctx, cfg)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("open cloud sync: %w", err)
	}

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	store := NewRecordStore(storage, a.Logger)
	mutations := NewMutationService(store, publisher, a.Logger)
	s := &Services{
		Store:     store,
		Mutations: mutations,
		Gate:      NewGateService(StaticSecret(cfg.ActionSecret), mutations, cfg.GateErrorDuration, a.Logger),
		Status:    NewStatusService(store),
		Summary:   NewSummaryService(store, summary.New(cfg, a.Logger)),
		storage:   storage,
		cloud:     cloud,
	}
	var remote repositories.CloudSync
	if cloud != nil {
		remote = cloud
	}
	s.Sync = NewSyncService(storage, store, remote, a.Logger)

	if _, err := store.Load(ctx, seed); err != nil {
		s.Close()
		return nil, err
	}
	if pulled, err := s.Sync.PullIfEmpty(ctx); err != nil {
		a.Logger.Warn("cloud sync pull failed, continuing with local state", "error", err)
	} else if pulled {
		a.Logger.Info("local state restored from cloud")
	}

	s.gauge, err = telemetry.ObserveOrgans(func() (int64, int64) {
		c := s.Status.Counts()
		return int64(c.UpToDate), int64(c.Pending)
	})
	if err != nil {
		a.Logger.Warn("organ status gauge unavailable", "error", err)
	}
	return s, nil
}

// Storage returns the storage collaborator, for health checks.
func (s *Services) Storage() persistence.Store {
	return s.storage
}

// Close releases the storage and cloud clients.
func (s *Services) Close() {
	if s.gauge != nil {
		_ = s.gauge.Unregister()
	}
	if s.cloud != nil {
		_ = s.cloud.Close()
	}
	_ = s.storage.Close()
}

func seedLocations(path string) ([]models.Location, error) {
	if path == "" {
		return models.DefaultLocations(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed locations: %w", err)
	}
	defer f.Close() //nolint:errcheck
	locs, err := models.LoadLocations(f)
	if err != nil {
		return nil, fmt.Errorf("seed locations %s: %w", path, err)
	}
	return locs, nil
}
