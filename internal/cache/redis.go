package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itchuru/news-service/pkg/models"
)

// RedisStore keeps cache records as JSON values in Redis. The record's
// ExpiresAt is also set as the key expiry so stale entries disappear on
// their own, but validity is still decided by the caller's timestamp
// comparison.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.CacheRecord, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	var rec models.CacheRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("redis decode record %q: %w", key, err)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *models.CacheRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis encode record %q: %w", rec.Key, err)
	}

	expiry := time.Until(time.Unix(rec.ExpiresAt, 0))
	if expiry <= 0 {
		expiry = time.Second
	}
	if err := s.rdb.Set(ctx, rec.Key, b, expiry).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", rec.Key, err)
	}
	return nil
}
