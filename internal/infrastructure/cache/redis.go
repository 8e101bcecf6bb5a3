// Package cache is the Redis-backed store for transient ticket records.
// A record is written once at order creation time with a TTL and read any
// number of times by the renderer; reads never mutate the entry.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"tickets/internal/domain/ticket"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore wraps an existing Redis client. ttl <= 0 disables expiry.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// SetRecord stores the full field map under key and arms the TTL.
func (s *Store) SetRecord(ctx context.Context, key string, rec ticket.Record) error {
	fields := rec.Fields()
	args := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		args[k] = v
	}
	if err := s.rdb.HSet(ctx, key, args).Err(); err != nil {
		return fmt.Errorf("%w: hset %s: %v", ticket.ErrCacheUnavailable, key, err)
	}
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("%w: expire %s: %v", ticket.ErrCacheUnavailable, key, err)
		}
	}
	return nil
}

// GetRecord reads the full field map for key. A missing key surfaces as
// ticket.ErrNotFound, transport failures as ticket.ErrCacheUnavailable.
func (s *Store) GetRecord(ctx context.Context, key string) (ticket.Record, error) {
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return ticket.Record{}, fmt.Errorf("%w: hgetall %s: %v", ticket.ErrCacheUnavailable, key, err)
	}
	// HGETALL returns an empty map for a key that does not exist.
	if len(fields) == 0 {
		return ticket.Record{}, fmt.Errorf("%w: %s", ticket.ErrNotFound, key)
	}
	return ticket.FromFields(fields), nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: exists %s: %v", ticket.ErrCacheUnavailable, key, err)
	}
	return n == 1, nil
}

func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("%w: expire %s: %v", ticket.ErrCacheUnavailable, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ticket.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Keys enumerates cache keys matching pattern. Intended for operational
// tooling, not the render path.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: keys %s: %v", ticket.ErrCacheUnavailable, pattern, err)
	}
	return keys, nil
}

// Ping probes liveness of the backing Redis.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
