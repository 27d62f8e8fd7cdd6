package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"owatch-server/internal/catalog"
	"owatch-server/internal/model"
	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/repository"
	"owatch-server/internal/reward"
)

// Staking service errors. Stake bound violations surface as
// reward.ErrBelowMinimum / reward.ErrAboveMaximum.
var (
	ErrPoolNotFound        = errors.New("staking pool not found")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrStillLocked         = errors.New("stake is still locked")
	ErrStakeNotFound       = errors.New("stake not found")
)

// StakingService locks OWT into fixed-rate pools and pays principal plus
// the frozen reward back on withdrawal.
type StakingService struct {
	accounts    AccountStore
	stakes      StakeStore
	addrLock    *lock.AddressLock
	commitDelay time.Duration

	// now is swapped in tests to control unlock timing.
	now func() time.Time
}

// NewStakingService creates a new StakingService instance.
func NewStakingService(
	accounts AccountStore,
	stakes StakeStore,
	addrLock *lock.AddressLock,
	commitDelay time.Duration,
) *StakingService {
	return &StakingService{
		accounts:    accounts,
		stakes:      stakes,
		addrLock:    addrLock,
		commitDelay: commitDelay,
		now:         time.Now,
	}
}

// Stake locks principal into a pool. The reward is computed once here, from
// the pool's APY and lock period, and never re-accrued afterwards.
func (s *StakingService) Stake(ctx context.Context, address, poolID string, principal float64) (*model.StakePosition, error) {
	pool, ok := catalog.PoolByID(poolID)
	if !ok {
		return nil, ErrPoolNotFound
	}

	s.addrLock.Lock(address)
	defer s.addrLock.Unlock(address)

	acct, err := s.accounts.GetOrCreate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	stakeReward, err := reward.StakeReward(principal, pool)
	if err != nil {
		return nil, err
	}

	if principal > acct.TokenBalance {
		return nil, ErrInsufficientBalance
	}

	waitCommitDelay(s.commitDelay)

	if _, err := s.accounts.AdjustBalances(ctx, address, 0, -principal); err != nil {
		return nil, fmt.Errorf("failed to debit stake principal: %w", err)
	}

	// timestamptz stores microseconds; truncate so the identity returned to
	// the client matches what a later list reads back from the store.
	now := s.now().Truncate(time.Microsecond)
	stake := &model.StakePosition{
		Address:   address,
		PoolID:    pool.ID,
		Principal: principal,
		Reward:    stakeReward,
		StakedAt:  now,
		UnlockAt:  now.Add(pool.LockPeriod()),
	}

	if err := s.stakes.AddStake(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to add stake: %w", err)
	}

	return stake, nil
}

// Unstake withdraws the position identified by (pool, staked-at), crediting
// principal plus the frozen reward. Exactly one position is removed even
// when duplicates exist. Rejected while the lock period is running.
func (s *StakingService) Unstake(ctx context.Context, address, poolID string, stakedAt time.Time) (*model.Account, error) {
	s.addrLock.Lock(address)
	defer s.addrLock.Unlock(address)

	stakes, err := s.stakes.ListStakes(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}

	var match *model.StakePosition
	for _, st := range stakes {
		if st.PoolID == poolID && st.StakedAt.Equal(stakedAt) {
			match = st
			break
		}
	}
	if match == nil {
		return nil, ErrStakeNotFound
	}

	if !match.Unlocked(s.now()) {
		return nil, ErrStillLocked
	}

	waitCommitDelay(s.commitDelay)

	removed, err := s.stakes.RemoveStake(ctx, address, poolID, stakedAt)
	if err != nil {
		if errors.Is(err, repository.ErrStakeNotFound) {
			return nil, ErrStakeNotFound
		}
		return nil, fmt.Errorf("failed to remove stake: %w", err)
	}

	acct, err := s.accounts.AdjustBalances(ctx, address, 0, removed.Principal+removed.Reward)
	if err != nil {
		return nil, fmt.Errorf("failed to credit unstake payout: %w", err)
	}

	return acct, nil
}

// Positions returns the wallet's open stakes in creation order, each with
// its live unlock countdown.
func (s *StakingService) Positions(ctx context.Context, address string) ([]*StakeView, error) {
	stakes, err := s.stakes.ListStakes(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	return stakeViews(stakes, s.now()), nil
}
