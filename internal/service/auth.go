package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
	"golang.org/x/crypto/bcrypt"
)

// Auth handles registration and login. Only bcrypt digests are stored,
// the plaintext password never leaves this package.
type Auth struct {
	accounts port.AccountRepository
}

func NewAuth(accounts port.AccountRepository) *Auth {
	return &Auth{accounts: accounts}
}

func (s *Auth) Register(ctx context.Context, username, password, email string) (int64, error) {
	if username == "" || password == "" || email == "" {
		return 0, domain.Validationf("username, password and email are required")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	id, err := s.accounts.CreateAccount(ctx, username, string(digest), email)
	if err != nil {
		return 0, fmt.Errorf("accounts.CreateAccount: %w", err)
	}

	return id, nil
}

// Authenticate returns the same InvalidCredentials error for an unknown
// username and a wrong password, so callers cannot probe for accounts.
func (s *Auth) Authenticate(ctx context.Context, username, password string) (domain.Account, error) {
	if username == "" || password == "" {
		return domain.Account{}, domain.Validationf("username and password are required")
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, domain.ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("accounts.GetByUsername: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordDigest), []byte(password)); err != nil {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	return account, nil
}
