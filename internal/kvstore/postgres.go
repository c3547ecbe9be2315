package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection as a Store. The kv_store table
// carries a version column; Update retries on version conflicts so two
// writers to the same key cannot lose each other's changes.
func NewPostgresStore(db *sql.DB) (Store, error) {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key     TEXT PRIMARY KEY,
			value   JSONB NOT NULL,
			version BIGINT NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(query); err != nil {
		return nil, err
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM kv_store WHERE key = $1`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, version = kv_store.version + 1
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}

func (s *postgresStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	query := `SELECT value FROM kv_store WHERE key LIKE $1 || '%' ORDER BY key`
	rows, err := s.db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

const updateRetries = 5

func (s *postgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for attempt := 0; attempt < updateRetries; attempt++ {
		var old []byte
		var version int64
		query := `SELECT value, version FROM kv_store WHERE key = $1`
		err := s.db.QueryRowContext(ctx, query, key).Scan(&old, &version)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		next, err := fn(old)
		if err != nil {
			return err
		}

		if old == nil {
			insert := `INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
			res, err := s.db.ExecContext(ctx, insert, key, next)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 1 {
				return nil
			}
			continue // someone created the key first, re-read
		}

		update := `UPDATE kv_store SET value = $1, version = version + 1 WHERE key = $2 AND version = $3`
		res, err := s.db.ExecContext(ctx, update, next, key, version)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return nil
		}
		// version moved under us, retry
	}
	return fmt.Errorf("update %s: too many version conflicts", key)
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}
