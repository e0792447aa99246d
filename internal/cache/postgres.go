package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/itchuru/news-service/pkg/models"
)

// validTableName guards the configured cache table name, since table
// names cannot be bound as query parameters.
var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PgStore is a Postgres-backed key/value cache table: one row per key
// with the serialized batch and an epoch-seconds ttl column.
type PgStore struct {
	db    *sqlx.DB
	table string
}

// NewPgStore wraps db with sqlx. The table must already exist; call
// RunMigrations at startup.
func NewPgStore(db *sql.DB, table string) (*PgStore, error) {
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid cache table name %q", table)
	}
	return &PgStore{db: sqlx.NewDb(db, "postgres"), table: table}, nil
}

// RunMigrations creates the cache table if it does not exist.
func RunMigrations(db *sql.DB, table string) error {
	if !validTableName.MatchString(table) {
		return fmt.Errorf("invalid cache table name %q", table)
	}
	initSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  data TEXT NOT NULL,
  ttl BIGINT NOT NULL
);
`, table)
	_, err := db.Exec(initSQL)
	return err
}

func (p *PgStore) Get(ctx context.Context, key string) (*models.CacheRecord, error) {
	query := fmt.Sprintf(`SELECT id, data, ttl FROM %s WHERE id = $1`, p.table)

	var rec models.CacheRecord
	err := p.db.GetContext(ctx, &rec, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache select %q: %w", key, err)
	}
	return &rec, nil
}

func (p *PgStore) Put(ctx context.Context, rec *models.CacheRecord) error {
	query := fmt.Sprintf(`
INSERT INTO %s (id, data, ttl)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET
 data=EXCLUDED.data,
 ttl=EXCLUDED.ttl;
`, p.table)

	if _, err := p.db.ExecContext(ctx, query, rec.Key, rec.Data, rec.ExpiresAt); err != nil {
		return fmt.Errorf("cache upsert %q: %w", rec.Key, err)
	}
	return nil
}
