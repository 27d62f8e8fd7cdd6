package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"owatch-server/internal/catalog"
	"owatch-server/internal/model"
	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/reward"
)

// Conversion service errors. Point-shortfall rejections surface as
// reward.ErrInsufficientPoints.
var (
	ErrTierNotFound = errors.New("conversion tier not found")
)

// ConvertService exchanges accumulated points for OWT at fixed tiers.
type ConvertService struct {
	accounts     AccountStore
	conversions  ConversionStore
	addrLock     *lock.AddressLock
	historyLimit int
	commitDelay  time.Duration
}

// NewConvertService creates a new ConvertService instance.
func NewConvertService(
	accounts AccountStore,
	conversions ConversionStore,
	addrLock *lock.AddressLock,
	historyLimit int,
	commitDelay time.Duration,
) *ConvertService {
	return &ConvertService{
		accounts:     accounts,
		conversions:  conversions,
		addrLock:     addrLock,
		historyLimit: historyLimit,
		commitDelay:  commitDelay,
	}
}

// Convert spends one tier's worth of points and credits the quoted OWT,
// recording the exchange at the head of the wallet's capped history. A
// rejection leaves the account untouched and adds no history entry.
func (s *ConvertService) Convert(ctx context.Context, address, tierID string) (*model.ConversionRecord, error) {
	tier, ok := catalog.TierByID(tierID)
	if !ok {
		return nil, ErrTierNotFound
	}

	s.addrLock.Lock(address)
	defer s.addrLock.Unlock(address)

	acct, err := s.accounts.GetOrCreate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	quote, err := reward.ConvertPoints(tier, acct.PointsBalance)
	if err != nil {
		return nil, err
	}

	waitCommitDelay(s.commitDelay)

	if _, err := s.accounts.AdjustBalances(ctx, address, -tier.PointsRequired, quote.Tokens); err != nil {
		return nil, fmt.Errorf("failed to apply conversion: %w", err)
	}

	rec := &model.ConversionRecord{
		ID:             uuid.NewString(),
		Address:        address,
		PointsSpent:    tier.PointsRequired,
		TokensReceived: quote.Tokens,
		BonusPercent:   quote.BonusPercent,
		CreatedAt:      time.Now(),
	}

	if err := s.conversions.AddConversion(ctx, rec, s.historyLimit); err != nil {
		return nil, fmt.Errorf("failed to record conversion: %w", err)
	}

	return rec, nil
}
