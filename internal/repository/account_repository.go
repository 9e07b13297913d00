package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/port"
)

type accountRepository struct {
	q querier
}

func NewAccount(pool *pgxpool.Pool) port.AccountRepository {
	return &accountRepository{q: pool}
}

func NewAccountWithTx(tx pgx.Tx) port.AccountRepository {
	return &accountRepository{q: tx}
}

func (r *accountRepository) CreateAccount(ctx context.Context, username, passwordDigest, email string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("username is empty")
	}

	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO accounts (username, password_digest, email)
		VALUES ($1, $2, $3)
		RETURNING id`,
		username, passwordDigest, email).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return id, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	if username == "" {
		return domain.Account{}, fmt.Errorf("username is empty")
	}

	var account domain.Account
	err := r.q.QueryRow(ctx, `
		SELECT id, username, password_digest, email
		FROM accounts
		WHERE username = $1`,
		username).Scan(&account.ID, &account.Username, &account.PasswordDigest, &account.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("q.QueryRow: %w", err)
	}

	return account, nil
}
