// Package memory keeps the state document in process memory. Records are lost
// on restart; used for tests and throwaway runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// StateRepository stores the encoded document so callers never share memory
// with what was saved.
type StateRepository struct {
	mu   sync.Mutex
	data []byte
}

// New returns an empty StateRepository.
func New() *StateRepository {
	return &StateRepository{}
}

// Load implements repositories.StateRepository.
func (r *StateRepository) Load(_ context.Context) (*models.AppState, bool, error) {
	r.mu.Lock()
	data := slices.Clone(r.data)
	r.mu.Unlock()

	if data == nil {
		return nil, false, nil
	}
	s, err := models.DecodeState(data)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Save implements repositories.StateRepository.
func (r *StateRepository) Save(_ context.Context, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (r *StateRepository) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (r *StateRepository) Close() error { return nil }
