// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"owatch-server/internal/model"
)

// Common errors for repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrStakeNotFound   = errors.New("stake not found")
	// ErrNegativeBalance is the storage-level backstop for the invariant
	// that balances never go negative. Services validate before writing,
	// so hitting this indicates a bug in the caller.
	ErrNegativeBalance = errors.New("balance would go negative")
)

// AccountRepository handles account persistence keyed by wallet address.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Get retrieves an account by wallet address.
// Returns ErrAccountNotFound if no record exists yet.
func (r *AccountRepository) Get(ctx context.Context, address string) (*model.Account, error) {
	const query = `
		SELECT address, points_balance, token_balance, created_at, updated_at
		FROM accounts
		WHERE address = $1
	`

	var acct model.Account
	err := r.pool.QueryRow(ctx, query, address).Scan(
		&acct.Address,
		&acct.PointsBalance,
		&acct.TokenBalance,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acct, nil
}

// GetOrCreate retrieves the account for a wallet address, creating a
// zero-balance record if none exists. Loading an account never fails on
// absence.
func (r *AccountRepository) GetOrCreate(ctx context.Context, address string) (*model.Account, error) {
	const query = `
		INSERT INTO accounts (address, points_balance, token_balance, created_at, updated_at)
		VALUES ($1, 0, 0, NOW(), NOW())
		ON CONFLICT (address) DO UPDATE SET updated_at = accounts.updated_at
		RETURNING address, points_balance, token_balance, created_at, updated_at
	`

	var acct model.Account
	err := r.pool.QueryRow(ctx, query, address).Scan(
		&acct.Address,
		&acct.PointsBalance,
		&acct.TokenBalance,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create account: %w", err)
	}

	return &acct, nil
}

// AdjustBalances applies deltas to the points and token balances. Deltas can
// be negative; the update is refused if either balance would go below zero.
// Returns the updated account.
func (r *AccountRepository) AdjustBalances(ctx context.Context, address string, pointsDelta int64, tokensDelta float64) (*model.Account, error) {
	const query = `
		UPDATE accounts
		SET points_balance = points_balance + $2,
		    token_balance = token_balance + $3,
		    updated_at = NOW()
		WHERE address = $1
		  AND points_balance + $2 >= 0
		  AND token_balance + $3 >= 0
		RETURNING address, points_balance, token_balance, created_at, updated_at
	`

	var acct model.Account
	err := r.pool.QueryRow(ctx, query, address, pointsDelta, tokensDelta).Scan(
		&acct.Address,
		&acct.PointsBalance,
		&acct.TokenBalance,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row updated: either the account is missing or the
			// guard refused a negative balance.
			if _, getErr := r.Get(ctx, address); getErr != nil {
				return nil, getErr
			}
			return nil, ErrNegativeBalance
		}
		return nil, fmt.Errorf("failed to adjust balances: %w", err)
	}

	return &acct, nil
}
