package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"owatch-server/internal/catalog"
	"owatch-server/internal/model"
	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/reward"
)

// Account service errors.
var (
	ErrVideoNotFound        = errors.New("video not found")
	ErrWatchIncomplete      = errors.New("video not watched far enough to claim")
	ErrRewardAlreadyClaimed = errors.New("video reward already claimed")
)

// Summary is the dashboard view of one wallet: balances, open positions
// with aggregate totals, and the capped conversion history.
type Summary struct {
	Account      *model.Account            `json:"account"`
	Stakes       []*StakeView              `json:"stakes"`
	TotalStaked  float64                   `json:"totalStaked"`
	TotalRewards float64                   `json:"totalRewards"`
	History      []*model.ConversionRecord `json:"conversionHistory"`
}

// StakeView is a stake position annotated with its unlock countdown as the
// dashboard displays it.
type StakeView struct {
	model.StakePosition
	TimeRemaining string `json:"timeRemaining"`
}

func stakeViews(stakes []*model.StakePosition, now time.Time) []*StakeView {
	views := make([]*StakeView, len(stakes))
	for i, st := range stakes {
		views[i] = &StakeView{
			StakePosition: *st,
			TimeRemaining: reward.TimeRemaining(st.UnlockAt, now),
		}
	}
	return views
}

// AccountService handles wallet account operations: loading state and
// crediting watch-to-earn point rewards.
type AccountService struct {
	accounts     AccountStore
	stakes       StakeStore
	conversions  ConversionStore
	videos       VideoStore
	addrLock     *lock.AddressLock
	watchPercent int
	commitDelay  time.Duration
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(
	accounts AccountStore,
	stakes StakeStore,
	conversions ConversionStore,
	videos VideoStore,
	addrLock *lock.AddressLock,
	watchPercent int,
	commitDelay time.Duration,
) *AccountService {
	return &AccountService{
		accounts:     accounts,
		stakes:       stakes,
		conversions:  conversions,
		videos:       videos,
		addrLock:     addrLock,
		watchPercent: watchPercent,
		commitDelay:  commitDelay,
	}
}

// LoadAccount returns the wallet's account record, creating a zero-valued
// one if the wallet has never been seen. Loading never fails on absence.
func (s *AccountService) LoadAccount(ctx context.Context, address string) (*model.Account, error) {
	acct, err := s.accounts.GetOrCreate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return acct, nil
}

// Summary assembles the full dashboard state for a wallet.
func (s *AccountService) Summary(ctx context.Context, address string) (*Summary, error) {
	acct, err := s.accounts.GetOrCreate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	stakes, err := s.stakes.ListStakes(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}

	history, err := s.conversions.ListConversions(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}

	summary := &Summary{
		Account: acct,
		Stakes:  stakeViews(stakes, time.Now()),
		History: history,
	}
	for _, st := range stakes {
		summary.TotalStaked += st.Principal
		summary.TotalRewards += st.Reward
	}

	return summary, nil
}

// ClaimWatchReward credits a video's point reward to the wallet. The claim
// is accepted once per video per wallet, and only after the watched time
// reaches the completion threshold.
func (s *AccountService) ClaimWatchReward(ctx context.Context, address string, videoID, watchedSeconds int) (*model.Account, error) {
	video, ok := catalog.VideoByID(videoID)
	if !ok {
		return nil, ErrVideoNotFound
	}

	s.addrLock.Lock(address)
	defer s.addrLock.Unlock(address)

	if _, err := s.accounts.GetOrCreate(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if watchedSeconds*100 < video.DurationSeconds*s.watchPercent {
		return nil, ErrWatchIncomplete
	}

	claimed, err := s.videos.HasClaimed(ctx, address, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check claimed video: %w", err)
	}
	if claimed {
		return nil, ErrRewardAlreadyClaimed
	}

	waitCommitDelay(s.commitDelay)

	acct, err := s.accounts.AdjustBalances(ctx, address, video.RewardPoints, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to credit watch reward: %w", err)
	}

	if err := s.videos.MarkClaimed(ctx, address, videoID); err != nil {
		return nil, fmt.Errorf("failed to mark video claimed: %w", err)
	}

	return acct, nil
}

// waitCommitDelay pauses before a mutation commits, simulating the pending
// transaction the dashboard shows. The delay has no external effects and is
// never rolled back, so it is a plain uncancellable sleep.
func waitCommitDelay(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
