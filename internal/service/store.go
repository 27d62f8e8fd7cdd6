// Package service provides business logic implementations.
package service

import (
	"context"
	"time"

	"owatch-server/internal/model"
)

// The store interfaces below decouple the services from persistence, so the
// Postgres repositories and the in-memory store are interchangeable.

// AccountStore persists per-wallet balances.
type AccountStore interface {
	Get(ctx context.Context, address string) (*model.Account, error)
	GetOrCreate(ctx context.Context, address string) (*model.Account, error)
	AdjustBalances(ctx context.Context, address string, pointsDelta int64, tokensDelta float64) (*model.Account, error)
}

// StakeStore persists stake positions.
type StakeStore interface {
	ListStakes(ctx context.Context, address string) ([]*model.StakePosition, error)
	AddStake(ctx context.Context, stake *model.StakePosition) error
	RemoveStake(ctx context.Context, address, poolID string, stakedAt time.Time) (*model.StakePosition, error)
}

// ConversionStore persists the capped conversion history.
type ConversionStore interface {
	ListConversions(ctx context.Context, address string) ([]*model.ConversionRecord, error)
	AddConversion(ctx context.Context, rec *model.ConversionRecord, limit int) error
}

// VideoStore tracks claimed watch rewards.
type VideoStore interface {
	HasClaimed(ctx context.Context, address string, videoID int) (bool, error)
	MarkClaimed(ctx context.Context, address string, videoID int) error
}
