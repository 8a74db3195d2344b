package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/storage"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// kvStore persists named string blobs in the blobs table.
type kvStore struct {
	db *sql.DB
}

// NewKV creates a storage.KV backed by the given database.
func NewKV(db *sql.DB) storage.KV {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv")

	query, args, err := sqlBuilder.Select("value").From("blobs").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("blob missing: key=%s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to read blob %s: %v", key, err)
		return "", false, err
	}
	log.Debug("blob read: key=%s, size=%d", key, len(value))
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv")

	// Whole-blob overwrite, no partial update semantics.
	query, args, err := sqlBuilder.Insert("blobs").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to write blob %s: %v", key, err)
		return err
	}
	log.Debug("blob written: key=%s, size=%d", key, len(value))
	return nil
}

func (s *kvStore) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv")

	query, args, err := sqlBuilder.Delete("blobs").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to remove blob %s: %v", key, err)
		return err
	}
	log.Debug("blob removed: key=%s", key)
	return nil
}
