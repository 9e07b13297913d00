package port

import (
	"context"

	"github.com/nordicgeeks/storefront/internal/domain"
)

type PurchaseRepository interface {
	// Append records a single purchased unit and returns the record id.
	Append(ctx context.Context, accountID, productID int64) (int64, error)

	// AppendUnits records one row per purchased unit.
	AppendUnits(ctx context.Context, accountID, productID int64, units int32) error

	HasPurchased(ctx context.Context, accountID, productID int64) (bool, error)

	// HistoryByAccount returns the purchased products, one per unit.
	HistoryByAccount(ctx context.Context, accountID int64) ([]domain.Product, error)
}
