// Package redisstore keeps the state document in a Redis hash.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ghuser/organcare/pkg/cache"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// KeyPrefix namespaces the document key.
const KeyPrefix = "organcare"

// StateRepository implements repositories.StateRepository on a DocumentStore.
type StateRepository struct {
	docs   *cache.DocumentStore
	client *cache.RedisClient
	now    func() time.Time
}

// New returns a StateRepository backed by client.
func New(client *cache.RedisClient) *StateRepository {
	return &StateRepository{
		docs:   cache.NewDocumentStore(client, KeyPrefix),
		client: client,
		now:    time.Now,
	}
}

// Load implements repositories.StateRepository.
func (r *StateRepository) Load(ctx context.Context) (*models.AppState, bool, error) {
	doc, found, err := r.docs.Get(ctx, models.StateKey)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	s, err := models.DecodeState(doc.Data)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Save implements repositories.StateRepository.
func (r *StateRepository) Save(ctx context.Context, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return r.docs.Set(ctx, models.StateKey, data, r.now())
}

// Ping checks the Redis connection.
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close is a no-op; the client belongs to the caller.
func (r *StateRepository) Close() error { return nil }
