package repository

import (
	"context"
	"sync"
	"time"

	"owatch-server/internal/model"
)

// Memory is an in-memory implementation of the account, stake, conversion,
// and video stores. It backs tests and storage-free development; the
// Postgres repositories are the production path.
type Memory struct {
	mu          sync.Mutex
	accounts    map[string]*model.Account
	stakes      map[string][]*model.StakePosition
	conversions map[string][]*model.ConversionRecord
	claimed     map[string]map[int]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts:    make(map[string]*model.Account),
		stakes:      make(map[string][]*model.StakePosition),
		conversions: make(map[string][]*model.ConversionRecord),
		claimed:     make(map[string]map[int]bool),
	}
}

// Get retrieves an account by wallet address.
func (m *Memory) Get(_ context.Context, address string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[address]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *acct
	return &cp, nil
}

// GetOrCreate retrieves the account for a wallet address, creating a
// zero-balance record if none exists.
func (m *Memory) GetOrCreate(_ context.Context, address string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[address]
	if !ok {
		now := time.Now()
		acct = &model.Account{Address: address, CreatedAt: now, UpdatedAt: now}
		m.accounts[address] = acct
	}
	cp := *acct
	return &cp, nil
}

// AdjustBalances applies deltas to the points and token balances, refusing
// any update that would drive a balance below zero.
func (m *Memory) AdjustBalances(_ context.Context, address string, pointsDelta int64, tokensDelta float64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[address]
	if !ok {
		return nil, ErrAccountNotFound
	}

	newPoints := acct.PointsBalance + pointsDelta
	newTokens := acct.TokenBalance + tokensDelta
	if newPoints < 0 || newTokens < 0 {
		return nil, ErrNegativeBalance
	}

	acct.PointsBalance = newPoints
	acct.TokenBalance = newTokens
	acct.UpdatedAt = time.Now()

	cp := *acct
	return &cp, nil
}

// ListStakes retrieves all stake positions for a wallet, in creation order.
func (m *Memory) ListStakes(_ context.Context, address string) ([]*model.StakePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stakes := m.stakes[address]
	out := make([]*model.StakePosition, len(stakes))
	for i, s := range stakes {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}

// AddStake persists a new stake position.
func (m *Memory) AddStake(_ context.Context, stake *model.StakePosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *stake
	m.stakes[stake.Address] = append(m.stakes[stake.Address], &cp)
	return nil
}

// RemoveStake deletes exactly one position matching (pool, staked-at).
func (m *Memory) RemoveStake(_ context.Context, address, poolID string, stakedAt time.Time) (*model.StakePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stakes := m.stakes[address]
	for i, s := range stakes {
		if s.PoolID == poolID && s.StakedAt.Equal(stakedAt) {
			removed := *s
			m.stakes[address] = append(stakes[:i], stakes[i+1:]...)
			return &removed, nil
		}
	}
	return nil, ErrStakeNotFound
}

// ListConversions retrieves the conversion history for a wallet, newest first.
func (m *Memory) ListConversions(_ context.Context, address string) ([]*model.ConversionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.conversions[address]
	out := make([]*model.ConversionRecord, len(records))
	for i, rec := range records {
		cp := *rec
		out[i] = &cp
	}
	return out, nil
}

// AddConversion prepends a conversion record and truncates the history to
// limit entries, evicting the oldest.
func (m *Memory) AddConversion(_ context.Context, rec *model.ConversionRecord, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *rec
	records := append([]*model.ConversionRecord{&cp}, m.conversions[rec.Address]...)
	if len(records) > limit {
		records = records[:limit]
	}
	m.conversions[rec.Address] = records
	return nil
}

// HasClaimed reports whether the wallet already claimed the video's reward.
func (m *Memory) HasClaimed(_ context.Context, address string, videoID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.claimed[address][videoID], nil
}

// MarkClaimed records that the wallet claimed the video's reward.
func (m *Memory) MarkClaimed(_ context.Context, address string, videoID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.claimed[address] == nil {
		m.claimed[address] = make(map[int]bool)
	}
	m.claimed[address][videoID] = true
	return nil
}
