package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/repository"
)

const testAddr = "0xAbC1230000000000000000000000000000000001"

func newAccountService(mem *repository.Memory) *AccountService {
	return NewAccountService(mem, mem, mem, mem, lock.NewAddressLock(), 80, 0)
}

func TestAccountService_LoadAccount_ZeroRecord(t *testing.T) {
	mem := repository.NewMemory()
	svc := newAccountService(mem)
	ctx := context.Background()

	acct, err := svc.LoadAccount(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, testAddr, acct.Address)
	assert.Equal(t, int64(0), acct.PointsBalance)
	assert.Equal(t, 0.0, acct.TokenBalance)

	// Loading again returns the same record, not a fresh one
	again, err := svc.LoadAccount(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, acct.CreatedAt, again.CreatedAt)
}

func TestAccountService_ClaimWatchReward(t *testing.T) {
	mem := repository.NewMemory()
	svc := newAccountService(mem)
	ctx := context.Background()

	// Video 1 runs 330s and pays 10 points; the threshold is 80%.
	acct, err := svc.ClaimWatchReward(ctx, testAddr, 1, 264)
	require.NoError(t, err)
	assert.Equal(t, int64(10), acct.PointsBalance)
}

func TestAccountService_ClaimWatchReward_Incomplete(t *testing.T) {
	mem := repository.NewMemory()
	svc := newAccountService(mem)
	ctx := context.Background()

	_, err := svc.ClaimWatchReward(ctx, testAddr, 1, 263)
	assert.ErrorIs(t, err, ErrWatchIncomplete)

	// Nothing was credited or marked claimed
	acct, err := svc.LoadAccount(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), acct.PointsBalance)

	_, err = svc.ClaimWatchReward(ctx, testAddr, 1, 330)
	assert.NoError(t, err)
}

func TestAccountService_ClaimWatchReward_OncePerWallet(t *testing.T) {
	mem := repository.NewMemory()
	svc := newAccountService(mem)
	ctx := context.Background()

	_, err := svc.ClaimWatchReward(ctx, testAddr, 2, 495)
	require.NoError(t, err)

	_, err = svc.ClaimWatchReward(ctx, testAddr, 2, 495)
	assert.ErrorIs(t, err, ErrRewardAlreadyClaimed)

	// Other wallets are unaffected
	other := "0xAbC1230000000000000000000000000000000002"
	acct, err := svc.ClaimWatchReward(ctx, other, 2, 495)
	require.NoError(t, err)
	assert.Equal(t, int64(15), acct.PointsBalance)
}

func TestAccountService_ClaimWatchReward_UnknownVideo(t *testing.T) {
	mem := repository.NewMemory()
	svc := newAccountService(mem)

	_, err := svc.ClaimWatchReward(context.Background(), testAddr, 999, 1000)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestAccountService_Summary(t *testing.T) {
	mem := repository.NewMemory()
	accountSvc := newAccountService(mem)
	addrLock := lock.NewAddressLock()
	stakingSvc := NewStakingService(mem, mem, addrLock, 0)
	convertSvc := NewConvertService(mem, mem, addrLock, 10, 0)
	ctx := context.Background()

	// Fund the wallet: 600 points and 200 OWT
	_, err := mem.GetOrCreate(ctx, testAddr)
	require.NoError(t, err)
	_, err = mem.AdjustBalances(ctx, testAddr, 600, 200)
	require.NoError(t, err)

	_, err = stakingSvc.Stake(ctx, testAddr, "pool-1", 50)
	require.NoError(t, err)
	_, err = stakingSvc.Stake(ctx, testAddr, "pool-4", 30)
	require.NoError(t, err)
	_, err = convertSvc.Convert(ctx, testAddr, "tier-500")
	require.NoError(t, err)

	summary, err := accountSvc.Summary(ctx, testAddr)
	require.NoError(t, err)

	assert.Equal(t, int64(100), summary.Account.PointsBalance)
	assert.InDelta(t, 125.25, summary.Account.TokenBalance, 1e-9) // 200 - 80 + 5.25
	assert.Len(t, summary.Stakes, 2)
	assert.InDelta(t, 80, summary.TotalStaked, 1e-9)
	wantRewards := 50*12*30/365.0/100 + 30*8/365.0/100
	assert.InDelta(t, wantRewards, summary.TotalRewards, 1e-9)
	require.Len(t, summary.History, 1)
	assert.Equal(t, int64(500), summary.History[0].PointsSpent)
}
