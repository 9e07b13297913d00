package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
)

type purchaseRepository struct {
	q querier
}

func NewPurchase(pool *pgxpool.Pool) port.PurchaseRepository {
	return &purchaseRepository{q: pool}
}

func NewPurchaseWithTx(tx pgx.Tx) port.PurchaseRepository {
	return &purchaseRepository{q: tx}
}

func (r *purchaseRepository) Append(ctx context.Context, accountID, productID int64) (int64, error) {
	if accountID <= 0 {
		return 0, fmt.Errorf("accountID is invalid")
	}

	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchases (account_id, product_id)
		VALUES ($1, $2)
		RETURNING id`,
		accountID, productID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("q.QueryRow: %w", mapReferenceError(err))
	}

	return id, nil
}

func (r *purchaseRepository) AppendUnits(ctx context.Context, accountID, productID int64, units int32) error {
	if accountID <= 0 {
		return fmt.Errorf("accountID is invalid")
	}
	if units <= 0 {
		return fmt.Errorf("units is invalid")
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (account_id, product_id)
		SELECT $1, $2 FROM generate_series(1, $3::int)`,
		accountID, productID, units)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", mapReferenceError(err))
	}

	return nil
}

func (r *purchaseRepository) HasPurchased(ctx context.Context, accountID, productID int64) (bool, error) {
	if accountID <= 0 {
		return false, fmt.Errorf("accountID is invalid")
	}

	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM purchases WHERE account_id = $1 AND product_id = $2
		)`,
		accountID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("q.QueryRow: %w", err)
	}

	return exists, nil
}

func (r *purchaseRepository) HistoryByAccount(ctx context.Context, accountID int64) ([]domain.Product, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("accountID is invalid")
	}

	// One row per purchased unit, matching the ledger.
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.price, p.color, p.size, p.image, COALESCE(p.design, '')
		FROM purchases k
		JOIN products p ON p.id = k.product_id
		WHERE k.account_id = $1
		ORDER BY k.id`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}
