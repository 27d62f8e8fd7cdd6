package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"owatch-server/internal/model"
)

// StakeRepository handles stake position persistence.
type StakeRepository struct {
	pool *pgxpool.Pool
}

// NewStakeRepository creates a new StakeRepository instance.
func NewStakeRepository(pool *pgxpool.Pool) *StakeRepository {
	return &StakeRepository{pool: pool}
}

// ListStakes retrieves all stake positions for a wallet, in creation order.
func (r *StakeRepository) ListStakes(ctx context.Context, address string) ([]*model.StakePosition, error) {
	const query = `
		SELECT address, pool_id, principal, reward, staked_at, unlock_at
		FROM stakes
		WHERE address = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	defer rows.Close()

	var stakes []*model.StakePosition
	for rows.Next() {
		var s model.StakePosition
		err := rows.Scan(
			&s.Address,
			&s.PoolID,
			&s.Principal,
			&s.Reward,
			&s.StakedAt,
			&s.UnlockAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stakes: %w", err)
	}

	return stakes, nil
}

// AddStake persists a new stake position.
func (r *StakeRepository) AddStake(ctx context.Context, stake *model.StakePosition) error {
	const query = `
		INSERT INTO stakes (address, pool_id, principal, reward, staked_at, unlock_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		stake.Address,
		stake.PoolID,
		stake.Principal,
		stake.Reward,
		stake.StakedAt,
		stake.UnlockAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add stake: %w", err)
	}

	return nil
}

// RemoveStake deletes exactly one position matching (pool, staked-at), even when
// duplicate positions with identical principals exist. Returns the removed
// position, or ErrStakeNotFound when nothing matches.
func (r *StakeRepository) RemoveStake(ctx context.Context, address, poolID string, stakedAt time.Time) (*model.StakePosition, error) {
	const query = `
		DELETE FROM stakes
		WHERE id = (
			SELECT id FROM stakes
			WHERE address = $1 AND pool_id = $2 AND staked_at = $3
			ORDER BY id
			LIMIT 1
		)
		RETURNING address, pool_id, principal, reward, staked_at, unlock_at
	`

	var s model.StakePosition
	err := r.pool.QueryRow(ctx, query, address, poolID, stakedAt).Scan(
		&s.Address,
		&s.PoolID,
		&s.Principal,
		&s.Reward,
		&s.StakedAt,
		&s.UnlockAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStakeNotFound
		}
		return nil, fmt.Errorf("failed to remove stake: %w", err)
	}

	return &s, nil
}
