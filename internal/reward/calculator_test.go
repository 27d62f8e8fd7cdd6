package reward

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owatch-server/internal/catalog"
)

func TestConvertPoints_BaseTier(t *testing.T) {
	tier, ok := catalog.TierByID("tier-100")
	require.True(t, ok)

	quote, err := ConvertPoints(tier, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, quote.Tokens)
	assert.Equal(t, 0, quote.BonusPercent)
}

func TestConvertPoints_BonusTiers(t *testing.T) {
	tests := []struct {
		tierID string
		points int64
		tokens float64
		bonus  int
	}{
		{"tier-500", 500, 5.25, 5},
		{"tier-1000", 1000, 11, 10},
		{"tier-5000", 5000, 57.5, 15},
		{"tier-10000", 10000, 120, 20},
	}

	for _, tt := range tests {
		t.Run(tt.tierID, func(t *testing.T) {
			tier, ok := catalog.TierByID(tt.tierID)
			require.True(t, ok)

			quote, err := ConvertPoints(tier, tt.points)
			require.NoError(t, err)
			assert.InDelta(t, tt.tokens, quote.Tokens, 1e-9)
			assert.Equal(t, tt.bonus, quote.BonusPercent)
		})
	}
}

func TestConvertPoints_InsufficientPoints(t *testing.T) {
	tier, ok := catalog.TierByID("tier-500")
	require.True(t, ok)

	// 400 points against the 500-point tier is rejected
	_, err := ConvertPoints(tier, 400)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Exactly the required amount succeeds
	_, err = ConvertPoints(tier, 500)
	assert.NoError(t, err)
}

func TestStakeReward_FixedPool(t *testing.T) {
	pool := catalog.Pool{ID: "test", APY: 12, MinStake: 10, MaxStake: 10000, LockPeriodDays: 30}

	reward, err := StakeReward(100, pool)
	require.NoError(t, err)
	// 100 * 12 * 30 / 365 / 100
	assert.InDelta(t, 0.9863, reward, 0.0001)
}

func TestStakeReward_FlexiblePool(t *testing.T) {
	pool, ok := catalog.PoolByID("pool-4")
	require.True(t, ok)
	require.True(t, pool.Flexible())

	reward, err := StakeReward(365, pool)
	require.NoError(t, err)
	// One day's worth: 365 * 8 / 365 / 100
	assert.InDelta(t, 0.08, reward, 1e-9)
}

func TestStakeReward_Bounds(t *testing.T) {
	pool := catalog.Pool{ID: "test", APY: 12, MinStake: 10, MaxStake: 10000, LockPeriodDays: 30}

	_, err := StakeReward(5, pool)
	assert.ErrorIs(t, err, ErrBelowMinimum)

	_, err = StakeReward(10001, pool)
	assert.ErrorIs(t, err, ErrAboveMaximum)

	// Bounds are inclusive
	_, err = StakeReward(10, pool)
	assert.NoError(t, err)
	_, err = StakeReward(10000, pool)
	assert.NoError(t, err)
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		unlockAt time.Time
		want     string
	}{
		{"unlocked exactly now", now, "Unlocked"},
		{"unlocked in the past", now.Add(-time.Hour), "Unlocked"},
		{"days and hours", now.Add(3*24*time.Hour + 5*time.Hour + 30*time.Minute), "3d 5h"},
		{"hours and minutes", now.Add(5*time.Hour + 42*time.Minute), "5h 42m"},
		{"minutes only", now.Add(12 * time.Minute), "12m"},
		{"under a minute", now.Add(30 * time.Second), "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeRemaining(tt.unlockAt, now))
		})
	}
}
