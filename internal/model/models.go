// Package model defines the data models for the OWatch earn/convert/stake backend.
package model

import "time"

// Account holds the per-wallet balances. The wallet address is the sole
// partition key; every other record hangs off it.
type Account struct {
	Address       string    `db:"address" json:"address"`
	PointsBalance int64     `db:"points_balance" json:"pointsBalance"`
	TokenBalance  float64   `db:"token_balance" json:"tokenBalance"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// StakePosition is one deposit into a staking pool. The reward is computed
// once when the position is created and paid out in full on withdrawal.
// A position has no explicit id: the (PoolID, StakedAt) pair identifies it.
type StakePosition struct {
	Address   string    `db:"address" json:"-"`
	PoolID    string    `db:"pool_id" json:"poolId"`
	Principal float64   `db:"principal" json:"principal"`
	Reward    float64   `db:"reward" json:"reward"`
	StakedAt  time.Time `db:"staked_at" json:"stakedAt"`
	UnlockAt  time.Time `db:"unlock_at" json:"unlockAt"`
}

// Unlocked reports whether the position can be withdrawn at the given time.
func (s *StakePosition) Unlocked(now time.Time) bool {
	return !now.Before(s.UnlockAt)
}

// ConversionRecord is one points-to-OWT exchange. Records are immutable and
// kept newest-first, capped per account (oldest evicted on overflow).
type ConversionRecord struct {
	ID             string    `db:"id" json:"id"`
	Address        string    `db:"address" json:"-"`
	PointsSpent    int64     `db:"points_spent" json:"pointsSpent"`
	TokensReceived float64   `db:"tokens_received" json:"tokensReceived"`
	BonusPercent   int       `db:"bonus_percent" json:"bonusPercent"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
