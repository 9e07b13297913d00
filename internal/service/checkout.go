package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
	"github.com/nordicgeeks/storefront/internal/repository"
)

// Checkout converts carts into ledger entries. It is the only place that
// spans multiple writes, so it owns the transactions.
type Checkout struct {
	pool      *pgxpool.Pool
	accounts  port.AccountRepository
	products  port.ProductRepository
	purchases port.PurchaseRepository
}

func NewCheckout(pool *pgxpool.Pool, accounts port.AccountRepository, products port.ProductRepository, purchases port.PurchaseRepository) *Checkout {
	return &Checkout{
		pool:      pool,
		accounts:  accounts,
		products:  products,
		purchases: purchases,
	}
}

// CheckoutAll turns every cart line into purchase records and removes
// exactly those lines, all inside one transaction: either sum(quantity)
// records are committed and the read lines are gone, or nothing changed
// at all. The lines are read with row locks held so a concurrent
// checkout or mutation of an existing line serializes against this one.
// The delete is scoped to the ids that were read, so a line inserted
// concurrently for a product not yet in the cart survives for the next
// checkout instead of disappearing without a ledger entry.
func (s *Checkout) CheckoutAll(ctx context.Context, username string) (int32, error) {
	if username == "" {
		return 0, domain.Validationf("username is required")
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("accounts.GetByUsername: %w", err)
	}

	units, err := repository.WithTx(ctx, s.pool, func(tx pgx.Tx) (int32, error) {
		carts := repository.NewCartWithTx(tx)
		purchases := repository.NewPurchaseWithTx(tx)

		lines, err := carts.LinesForUpdate(ctx, account.ID)
		if err != nil {
			return 0, fmt.Errorf("carts.LinesForUpdate: %w", err)
		}
		if len(lines) == 0 {
			return 0, domain.ErrEmptyCart
		}

		var total int32
		ids := make([]int64, 0, len(lines))
		for _, line := range lines {
			if err := purchases.AppendUnits(ctx, account.ID, line.ProductID, line.Quantity); err != nil {
				return 0, fmt.Errorf("purchases.AppendUnits: %w", err)
			}
			total += line.Quantity
			ids = append(ids, line.ProductID)
		}

		if _, err := carts.DeleteLines(ctx, account.ID, ids); err != nil {
			return 0, fmt.Errorf("carts.DeleteLines: %w", err)
		}

		return total, nil
	})
	if err != nil {
		return 0, err
	}

	return units, nil
}

// PurchaseOne is the legacy direct-purchase path. Unlike the bulk
// checkout it refuses to sell the same product to the same account
// twice. It never touches the cart.
func (s *Checkout) PurchaseOne(ctx context.Context, username string, productID int64) (int64, error) {
	if username == "" {
		return 0, domain.Validationf("username is required")
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("accounts.GetByUsername: %w", err)
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return 0, fmt.Errorf("products.GetProduct: %w", err)
	}

	return repository.WithTx(ctx, s.pool, func(tx pgx.Tx) (int64, error) {
		purchases := repository.NewPurchaseWithTx(tx)

		purchased, err := purchases.HasPurchased(ctx, account.ID, productID)
		if err != nil {
			return 0, fmt.Errorf("purchases.HasPurchased: %w", err)
		}
		if purchased {
			return 0, domain.ErrAlreadyPurchased
		}

		id, err := purchases.Append(ctx, account.ID, productID)
		if err != nil {
			return 0, fmt.Errorf("purchases.Append: %w", err)
		}

		return id, nil
	})
}

// History returns the purchased products for an account, one per unit.
func (s *Checkout) History(ctx context.Context, username string) ([]domain.Product, error) {
	if username == "" {
		return nil, domain.Validationf("username is required")
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("accounts.GetByUsername: %w", err)
	}

	products, err := s.purchases.HistoryByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("purchases.HistoryByAccount: %w", err)
	}

	return products, nil
}
