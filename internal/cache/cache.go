// Package cache provides a Redis-backed JSON snapshot store. The
// public analytics endpoints serve from it so unauthenticated traffic
// never fans out into aggregation pipelines, and the scheduler uses
// its locks to keep maintenance jobs single-flight across replicas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefixAnalytics namespaces cached analytics snapshots.
	KeyPrefixAnalytics = "streamlens:analytics:"
	// keyPrefixLock namespaces scheduler run locks.
	keyPrefixLock = "streamlens:lock:"
)

// Store is the cache surface the services depend on.
type Store interface {
	// GetJSON loads and unmarshals a snapshot. The boolean reports
	// whether the key existed.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)

	// SetJSON marshals and stores a snapshot with a TTL.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// AcquireLock takes a named run lock. The boolean reports whether
	// this caller won it.
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// ReleaseLock drops a named run lock.
	ReleaseLock(ctx context.Context, name string) error
}

// redisStore implements Store on a Redis client.
type redisStore struct {
	client *redis.Client
}

// NewStore creates a Redis-backed Store.
func NewStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// GetJSON loads and unmarshals a snapshot.
func (s *redisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals and stores a snapshot with a TTL.
func (s *redisStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

// Delete removes keys.
func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// AcquireLock takes a named run lock via SET NX.
func (s *redisStore) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, keyPrefixLock+name, time.Now().Format(time.RFC3339), ttl).Result()
}

// ReleaseLock drops a named run lock.
func (s *redisStore) ReleaseLock(ctx context.Context, name string) error {
	return s.client.Del(ctx, keyPrefixLock+name).Err()
}
