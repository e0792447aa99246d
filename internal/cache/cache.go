// Package cache provides the TTL key/value store backing the news
// pipeline. Two backends exist: Redis and a Postgres key/value table.
// Callers treat every store error as a cache miss; a broken cache must
// never fail the request path.
package cache

import (
	"context"
	"errors"

	"github.com/itchuru/news-service/pkg/models"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("cache: record not found")

// Store is a key/value store for cached news batches. Records carry
// their own ExpiresAt timestamp; expiry is decided by the caller, the
// backend's own eviction is only a passive backstop.
type Store interface {
	Get(ctx context.Context, key string) (*models.CacheRecord, error)
	Put(ctx context.Context, rec *models.CacheRecord) error
}
