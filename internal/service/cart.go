package service

import (
	"context"
	"fmt"

	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
	"golang.org/x/text/currency"
)

// Cart exposes the username-keyed cart operations. Identity is a bare
// username per request, the server keeps no session state.
type Cart struct {
	accounts port.AccountRepository
	products port.ProductRepository
	carts    port.CartRepository
	currency currency.Unit
}

func NewCart(accounts port.AccountRepository, products port.ProductRepository, carts port.CartRepository, cur currency.Unit) *Cart {
	return &Cart{
		accounts: accounts,
		products: products,
		carts:    carts,
		currency: cur,
	}
}

func (s *Cart) Add(ctx context.Context, username string, productID int64) error {
	account, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	// Validate the product before touching the cart so an unknown id is a
	// clean not-found, not a partial write.
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("products.GetProduct: %w", err)
	}

	if err := s.carts.AddItem(ctx, account.ID, productID); err != nil {
		return fmt.Errorf("carts.AddItem: %w", err)
	}

	return nil
}

func (s *Cart) SetQuantity(ctx context.Context, username string, productID int64, quantity int32) error {
	account, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	if quantity > 0 {
		if _, err := s.products.GetProduct(ctx, productID); err != nil {
			return fmt.Errorf("products.GetProduct: %w", err)
		}
	}

	if err := s.carts.SetQuantity(ctx, account.ID, productID, quantity); err != nil {
		return fmt.Errorf("carts.SetQuantity: %w", err)
	}

	return nil
}

// Remove is a no-op when the line does not exist.
func (s *Cart) Remove(ctx context.Context, username string, productID int64) error {
	account, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	if _, err := s.carts.DeleteItem(ctx, account.ID, productID); err != nil {
		return fmt.Errorf("carts.DeleteItem: %w", err)
	}

	return nil
}

func (s *Cart) Clear(ctx context.Context, username string) error {
	account, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	if _, err := s.carts.Clear(ctx, account.ID); err != nil {
		return fmt.Errorf("carts.Clear: %w", err)
	}

	return nil
}

func (s *Cart) View(ctx context.Context, username string) (domain.Cart, error) {
	account, err := s.resolve(ctx, username)
	if err != nil {
		return domain.Cart{}, err
	}

	lines, err := s.carts.ListLines(ctx, account.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.ListLines: %w", err)
	}

	return domain.NewCart(username, lines, s.currency), nil
}

func (s *Cart) resolve(ctx context.Context, username string) (domain.Account, error) {
	if username == "" {
		return domain.Account{}, domain.Validationf("username is required")
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, fmt.Errorf("accounts.GetByUsername: %w", err)
	}

	return account, nil
}
