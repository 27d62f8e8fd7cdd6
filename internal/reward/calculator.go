// Package reward implements the points-conversion and staking-reward math.
// All functions are pure; callers persist the results.
package reward

import (
	"errors"
	"fmt"
	"time"

	"owatch-server/internal/catalog"
)

// Validation errors for conversion and staking inputs.
var (
	ErrInsufficientPoints = errors.New("insufficient points for tier")
	ErrBelowMinimum       = errors.New("amount below pool minimum stake")
	ErrAboveMaximum       = errors.New("amount above pool maximum stake")
)

// ConversionQuote is the outcome of converting one tier's worth of points.
type ConversionQuote struct {
	Tokens       float64
	BonusPercent int
}

// ConvertPoints quotes a points-to-OWT conversion for the given tier.
// The bonus percentage is applied on top of the tier's base OWT amount:
// tokens = owtAmount * (1 + bonus/100).
func ConvertPoints(tier catalog.Tier, pointsAvailable int64) (ConversionQuote, error) {
	if pointsAvailable < tier.PointsRequired {
		return ConversionQuote{}, ErrInsufficientPoints
	}

	tokens := tier.OWTAmount
	if tier.BonusPercent > 0 {
		tokens += tier.OWTAmount * float64(tier.BonusPercent) / 100
	}

	return ConversionQuote{Tokens: tokens, BonusPercent: tier.BonusPercent}, nil
}

// StakeReward computes the simple (non-compounding) interest for a stake,
// frozen at creation time:
//   - fixed-term pools: principal * apy * lockDays / 365 / 100
//   - flexible pools (lock 0): principal * apy / 365 / 100, one day's worth
//
// The principal must fall within the pool's stake bounds.
func StakeReward(principal float64, pool catalog.Pool) (float64, error) {
	if principal < pool.MinStake {
		return 0, ErrBelowMinimum
	}
	if principal > pool.MaxStake {
		return 0, ErrAboveMaximum
	}

	if pool.Flexible() {
		return principal * pool.APY / 365 / 100, nil
	}
	return principal * pool.APY * float64(pool.LockPeriodDays) / 365 / 100, nil
}

// TimeRemaining formats the time left until unlockAt at day/hour/minute
// granularity, showing the largest non-zero unit pair. Returns "Unlocked"
// once now has reached unlockAt.
func TimeRemaining(unlockAt, now time.Time) string {
	diff := unlockAt.Sub(now)
	if diff <= 0 {
		return "Unlocked"
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff%(24*time.Hour)) / int(time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
