package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Document is one JSON payload stored under a key, with the time it was last
// written.
type Document struct {
	Data      []byte
	UpdatedAt time.Time
}

// DocumentStore keeps whole JSON documents in Redis hashes. Documents never
// expire; Redis is the system of record when the redis storage driver is
// selected.
// Key format: "{prefix}:{key}"
type DocumentStore struct {
	client *RedisClient
	prefix string
}

// NewDocumentStore creates a DocumentStore backed by the given RedisClient.
func NewDocumentStore(r *RedisClient, prefix string) *DocumentStore {
	return &DocumentStore{client: r, prefix: prefix}
}

// Get returns the document stored under key. found is false when the key does
// not exist.
func (s *DocumentStore) Get(ctx context.Context, key string) (doc Document, found bool, err error) {
	vals, err := s.client.Client().HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Document{}, false, nil
		}
		return Document{}, false, fmt.Errorf("document get: %w", err)
	}
	if len(vals) == 0 {
		return Document{}, false, nil
	}

	doc.Data = []byte(vals["data"])
	if raw := vals["updated_at"]; raw != "" {
		doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Document{}, false, fmt.Errorf("document parse updated_at: %w", err)
		}
	}
	return doc, true, nil
}

// Set replaces the document under key. The payload and timestamp are written
// in one MULTI/EXEC so readers never see one without the other.
func (s *DocumentStore) Set(ctx context.Context, key string, data []byte, at time.Time) error {
	k := s.key(key)
	pipe := s.client.Client().TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k,
		"data", data,
		"updated_at", at.UTC().Format(time.RFC3339Nano),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("document set: %w", err)
	}
	return nil
}

// Delete removes the document under key.
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Client().Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("document delete: %w", err)
	}
	return nil
}

func (s *DocumentStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}
