package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/organcare/pkg/logger"
	domainevents "github.com/ghuser/organcare/services/organ/domain/events"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
)

// SyncService mirrors the stored state to the cloud. It always pushes what the
// storage collaborator holds, so it works the same in the api process and in
// the worker. A nil cloud disables every operation.
type SyncService struct {
	repo  repositories.StateRepository
	store *RecordStore
	cloud repositories.CloudSync
	log   logger.Logger
}

// NewSyncService returns a SyncService. cloud may be nil.
func NewSyncService(repo repositories.StateRepository, store *RecordStore, cloud repositories.CloudSync, log logger.Logger) *SyncService {
	return &SyncService{repo: repo, store: store, cloud: cloud, log: log}
}

// Enabled reports whether a cloud driver is configured.
func (s *SyncService) Enabled() bool {
	return s.cloud != nil
}

// Push uploads the stored state. Nothing is pushed before the first save.
func (s *SyncService) Push(ctx context.Context) error {
	if s.cloud == nil {
		return nil
	}
	state, found, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("sync push: load state: %w", err)
	}
	if !found {
		return nil
	}
	if err := s.cloud.Push(ctx, state); err != nil {
		return fmt.Errorf("sync push %s: %w", s.cloud.Name(), err)
	}
	s.log.InfoContext(ctx, "cloud sync pushed", "driver", s.cloud.Name(), "organs", len(state.Organs))
	return nil
}

// Pull replaces the local state with the cloud copy when one exists.
func (s *SyncService) Pull(ctx context.Context) (bool, error) {
	if s.cloud == nil {
		return false, nil
	}
	state, found, err := s.cloud.Pull(ctx)
	if err != nil {
		return false, fmt.Errorf("sync pull %s: %w", s.cloud.Name(), err)
	}
	if !found {
		return false, nil
	}
	state.Normalize()
	if err := s.store.Replace(ctx, state); err != nil {
		return false, fmt.Errorf("sync pull: %w", err)
	}
	s.log.InfoContext(ctx, "cloud sync pulled", "driver", s.cloud.Name(), "organs", len(state.Organs))
	return true, nil
}

// PullIfEmpty pulls only when the local store holds no records yet.
func (s *SyncService) PullIfEmpty(ctx context.Context) (bool, error) {
	if s.cloud == nil || !s.store.IsEmpty() {
		return false, nil
	}
	return s.Pull(ctx)
}

// HandleStateChanged pushes the stored state after a committed mutation.
// Failures are logged and acknowledged; sync never blocks the core.
func (s *SyncService) HandleStateChanged(ctx context.Context, msg *message.Message) error {
	var evt domainevents.StateChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.log.ErrorContext(ctx, "sync: decode state changed event", "error", err)
		return nil
	}
	if err := s.Push(ctx); err != nil {
		s.log.WarnContext(ctx, "sync: push failed",
			"operation", evt.Operation, "record_id", evt.RecordID, "error", err)
	}
	return nil
}
