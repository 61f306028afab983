package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

// RedisSnapshotStore keeps the document under a single Redis key without expiry.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotStore constructs a Redis-backed store.
func NewRedisSnapshotStore(client *redis.Client, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, key: key}
}

// Read fetches the raw document.
func (s *RedisSnapshotStore) Read(ctx context.Context) ([]byte, error) {
	if s.client == nil {
		return nil, appErrors.ErrSnapshotMissing
	}
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSnapshotMissing
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return raw, nil
}

// Write overwrites the key unconditionally.
func (s *RedisSnapshotStore) Write(ctx context.Context, payload []byte) error {
	if s.client == nil {
		return fmt.Errorf("redis set %s: client not configured", s.key)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (s *RedisSnapshotStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
