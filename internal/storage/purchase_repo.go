package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

func (r *PurchaseRepo) Insert(ctx context.Context, p Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (transaction_id, product_id, purchased_at, signature)
		VALUES (?, ?, ?, ?)
	`, p.TransactionID, p.ProductID, p.PurchasedAt.UnixMilli(), p.Signature)
	if err != nil {
		return fmt.Errorf("purchase insert: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) ListAll(ctx context.Context) ([]Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, product_id, purchased_at, signature
		FROM purchases
		ORDER BY purchased_at ASC, transaction_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("purchase list: %w", err)
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var (
			p  Purchase
			ms int64
		)
		if err := rows.Scan(&p.TransactionID, &p.ProductID, &ms, &p.Signature); err != nil {
			return nil, fmt.Errorf("purchase scan: %w", err)
		}
		p.PurchasedAt = time.UnixMilli(ms).UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchase rows: %w", err)
	}
	return out, nil
}
