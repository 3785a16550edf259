package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ghuser/organcare/pkg/logger"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
)

// RecordStore owns the single AppState of the process. Readers go through
// View or Snapshot; writers go through Update, which commits a transition as
// one atomic replacement.
type RecordStore struct {
	mu    sync.RWMutex
	state *models.AppState
	repo  repositories.StateRepository
	log   logger.Logger
}

// NewRecordStore returns an empty RecordStore. Call Load before serving.
func NewRecordStore(repo repositories.StateRepository, log logger.Logger) *RecordStore {
	return &RecordStore{
		state: models.NewAppState(nil),
		repo:  repo,
		log:   log,
	}
}

// Load reads the stored state. When nothing is stored yet a fresh state with
// the seed locations is created and saved. A stored state without locations
// gets the seed locations too. created reports whether the fresh state was
// used.
func (s *RecordStore) Load(ctx context.Context, seed []models.Location) (created bool, err error) {
	state, found, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load state: %w", err)
	}

	if !found {
		state = models.NewAppState(seed)
		if err := s.repo.Save(ctx, state); err != nil {
			return false, fmt.Errorf("%w: %w", organdomain.ErrPersistState, err)
		}
		s.log.InfoContext(ctx, "record store: created fresh state", "locations", len(seed))
	} else {
		state.Normalize()
		if len(state.Locations) == 0 {
			state.Locations = append(state.Locations, seed...)
		}
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.log.InfoContext(ctx, "record store: loaded",
		"organs", len(state.Organs),
		"maintenances", len(state.Maintenances),
		"deleted_items", len(state.DeletedItems),
	)
	return !found, nil
}

// View runs fn with the current state under the read lock. fn must not keep
// references to the state after it returns.
func (s *RecordStore) View(fn func(state *models.AppState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Snapshot returns a deep copy of the current state.
func (s *RecordStore) Snapshot() *models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update runs fn on a clone of the current state. When fn reports a change the
// clone is saved and then swapped in; a failed save leaves the current state
// untouched and returns ErrPersistState. When fn reports no change nothing is
// saved.
func (s *RecordStore) Update(ctx context.Context, fn func(state *models.AppState) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	changed, err := fn(next)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return false, fmt.Errorf("%w: %w", organdomain.ErrPersistState, err)
	}
	s.state = next
	return true, nil
}

// Replace saves state and makes it current. Used when a cloud copy is pulled.
func (s *RecordStore) Replace(ctx context.Context, state *models.AppState) error {
	next := state.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", organdomain.ErrPersistState, err)
	}
	s.state = next
	return nil
}

// IsEmpty reports whether no organ, maintenance or tombstone is stored.
func (s *RecordStore) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Organs) == 0 && len(s.state.Maintenances) == 0 && len(s.state.DeletedItems) == 0
}
