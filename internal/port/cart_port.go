package port

import (
	"context"

	"github.com/nordicgeeks/storefront/internal/domain"
)

type CartRepository interface {
	// AddItem upserts a line with quantity 1, incrementing by 1 when the
	// line already exists. Repeated calls accumulate.
	AddItem(ctx context.Context, accountID, productID int64) error

	// SetQuantity upserts the line when quantity > 0 and deletes it
	// otherwise. A stored quantity is never below 1.
	SetQuantity(ctx context.Context, accountID, productID int64, quantity int32) error

	// DeleteItem reports whether a line was actually removed.
	DeleteItem(ctx context.Context, accountID, productID int64) (bool, error)

	// Clear removes every line for the account and returns how many.
	Clear(ctx context.Context, accountID int64) (int64, error)

	// DeleteLines removes the account's lines for the given product ids
	// only. Lines added after the ids were read are left alone.
	DeleteLines(ctx context.Context, accountID int64, productIDs []int64) (int64, error)

	// ListLines returns the account's lines joined with live product rows.
	ListLines(ctx context.Context, accountID int64) ([]domain.CartLine, error)

	// LinesForUpdate reads the account's lines with row locks held, so a
	// surrounding transaction sees a stable cart until it commits.
	LinesForUpdate(ctx context.Context, accountID int64) ([]domain.LineQuantity, error)
}
