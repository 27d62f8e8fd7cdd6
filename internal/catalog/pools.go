// Package catalog provides the static pool, tier, and video catalogs.
// The catalogs are fixed configuration, never mutated at runtime.
package catalog

import "time"

// RiskLevel classifies a staking pool for display purposes.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Pool is a pre-configured staking offer: a reward rate and lock duration
// against deposited OWT.
type Pool struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	APY            float64   `json:"apy"`
	MinStake       float64   `json:"minStake"`
	MaxStake       float64   `json:"maxStake"`
	LockPeriodDays int       `json:"lockPeriodDays"`
	Description    string    `json:"description"`
	Risk           RiskLevel `json:"riskLevel"`
}

// stakingPools lists all pools in display order.
var stakingPools = []Pool{
	{
		ID:             "pool-1",
		Name:           "Secure Staking",
		APY:            12,
		MinStake:       10,
		MaxStake:       10000,
		LockPeriodDays: 30,
		Description:    "Lock your tokens for 30 days and earn stable rewards",
		Risk:           RiskLow,
	},
	{
		ID:             "pool-2",
		Name:           "Premium Staking",
		APY:            18,
		MinStake:       50,
		MaxStake:       50000,
		LockPeriodDays: 90,
		Description:    "Higher rewards with 90-day lock period",
		Risk:           RiskLow,
	},
	{
		ID:             "pool-3",
		Name:           "Elite Staking",
		APY:            25,
		MinStake:       100,
		MaxStake:       100000,
		LockPeriodDays: 180,
		Description:    "Premium rewards for long-term stakers",
		Risk:           RiskMedium,
	},
	{
		ID:             "pool-4",
		Name:           "Flexible Staking",
		APY:            8,
		MinStake:       1,
		MaxStake:       5000,
		LockPeriodDays: 0,
		Description:    "Withdraw anytime with flexible rewards",
		Risk:           RiskLow,
	},
}

// Pools returns all staking pools in display order.
func Pools() []Pool {
	out := make([]Pool, len(stakingPools))
	copy(out, stakingPools)
	return out
}

// PoolByID returns the pool with the given id.
func PoolByID(id string) (Pool, bool) {
	for _, p := range stakingPools {
		if p.ID == id {
			return p, true
		}
	}
	return Pool{}, false
}

// Flexible reports whether the pool has no lock period.
func (p Pool) Flexible() bool {
	return p.LockPeriodDays == 0
}

// LockPeriod returns the lock duration of the pool.
func (p Pool) LockPeriod() time.Duration {
	return time.Duration(p.LockPeriodDays) * 24 * time.Hour
}
