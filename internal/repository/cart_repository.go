package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
)

type cartRepository struct {
	q querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{q: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: tx}
}

func (r *cartRepository) AddItem(ctx context.Context, accountID, productID int64) error {
	if accountID <= 0 {
		return fmt.Errorf("accountID is invalid")
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (account_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (account_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1`,
		accountID, productID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", mapReferenceError(err))
	}

	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, accountID, productID int64, quantity int32) error {
	if accountID <= 0 {
		return fmt.Errorf("accountID is invalid")
	}

	// Quantity zero or below means the line goes away, never a stored zero.
	if quantity <= 0 {
		_, err := r.q.Exec(ctx,
			`DELETE FROM cart_items WHERE account_id = $1 AND product_id = $2`,
			accountID, productID)
		if err != nil {
			return fmt.Errorf("q.Exec: %w", err)
		}
		return nil
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (account_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		accountID, productID, quantity)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", mapReferenceError(err))
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, accountID, productID int64) (bool, error) {
	if accountID <= 0 {
		return false, fmt.Errorf("accountID is invalid")
	}

	tag, err := r.q.Exec(ctx,
		`DELETE FROM cart_items WHERE account_id = $1 AND product_id = $2`,
		accountID, productID)
	if err != nil {
		return false, fmt.Errorf("q.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, accountID int64) (int64, error) {
	if accountID <= 0 {
		return 0, fmt.Errorf("accountID is invalid")
	}

	tag, err := r.q.Exec(ctx,
		`DELETE FROM cart_items WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("q.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *cartRepository) DeleteLines(ctx context.Context, accountID int64, productIDs []int64) (int64, error) {
	if accountID <= 0 {
		return 0, fmt.Errorf("accountID is invalid")
	}
	if len(productIDs) == 0 {
		return 0, nil
	}

	tag, err := r.q.Exec(ctx,
		`DELETE FROM cart_items WHERE account_id = $1 AND product_id = ANY($2)`,
		accountID, productIDs)
	if err != nil {
		return 0, fmt.Errorf("q.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *cartRepository) ListLines(ctx context.Context, accountID int64) ([]domain.CartLine, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("accountID is invalid")
	}

	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.price, p.color, p.size, p.image, COALESCE(p.design, ''),
		       c.quantity, c.created_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.account_id = $1
		ORDER BY c.created_at DESC, c.id DESC`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		p := &line.Product

		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Color, &p.Size, &p.Image, &p.Design,
			&line.Quantity, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) LinesForUpdate(ctx context.Context, accountID int64) ([]domain.LineQuantity, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("accountID is invalid")
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, quantity
		FROM cart_items
		WHERE account_id = $1
		ORDER BY product_id
		FOR UPDATE`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.LineQuantity
	for rows.Next() {
		var line domain.LineQuantity
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}
