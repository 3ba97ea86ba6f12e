package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type KVRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db, now: time.Now}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Get returns the stored value, or nil when the key was never written.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(v), nil
}

func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	return r.put(ctx, r.db, key, value)
}

// PutMany writes all entries in a single transaction.
func (r *KVRepo) PutMany(ctx context.Context, entries []KVEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range entries {
			if err := r.put(ctx, tx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *KVRepo) put(ctx context.Context, ex execer, key string, value []byte) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), r.now().Unix())
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}
