package port

import (
	"context"

	"github.com/nordicgeeks/storefront/internal/domain"
)

type AccountRepository interface {
	// CreateAccount stores a new account and returns its id. The digest is
	// already hashed, plaintext passwords never reach the repository.
	CreateAccount(ctx context.Context, username, passwordDigest, email string) (int64, error)

	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}
