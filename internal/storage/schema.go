package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// One row per persisted record (userStats, journal, activities, ...).
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		// Local purchase provider ledger. The engine never reads this table.
		`CREATE TABLE IF NOT EXISTS purchases (
			transaction_id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			purchased_at INTEGER NOT NULL,
			signature TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_product_id ON purchases(product_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
