// Package lock provides per-wallet locking so that balance mutations for one
// address never interleave. Operations on different addresses proceed in
// parallel.
package lock

import "sync"

// addressMutex wraps a mutex with reference counting for pooling.
type addressMutex struct {
	mu       sync.Mutex
	refCount int
}

// AddressLock serializes operations per wallet address.
type AddressLock struct {
	locks sync.Map // map[string]*addressMutex
	pool  sync.Pool
}

// NewAddressLock creates a new AddressLock instance.
func NewAddressLock() *AddressLock {
	return &AddressLock{
		pool: sync.Pool{
			New: func() any {
				return &addressMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given address.
func (al *AddressLock) getLock(address string) *addressMutex {
	if v, ok := al.locks.Load(address); ok {
		return v.(*addressMutex)
	}

	newLock := al.pool.Get().(*addressMutex)
	newLock.refCount = 0

	actual, loaded := al.locks.LoadOrStore(address, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool
		al.pool.Put(newLock)
	}
	return actual.(*addressMutex)
}

// Lock acquires the lock for an address. Call before any balance-modifying
// operation on that address.
func (al *AddressLock) Lock(address string) {
	lock := al.getLock(address)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for an address.
func (al *AddressLock) Unlock(address string) {
	if v, ok := al.locks.Load(address); ok {
		lock := v.(*addressMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired.
func (al *AddressLock) TryLock(address string) bool {
	lock := al.getLock(address)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// WithLock executes fn while holding the address lock.
func (al *AddressLock) WithLock(address string, fn func() error) error {
	al.Lock(address)
	defer al.Unlock(address)
	return fn()
}

// IsLocked checks if an address currently has an active lock.
// This is a point-in-time check and may change immediately after.
func (al *AddressLock) IsLocked(address string) bool {
	if v, ok := al.locks.Load(address); ok {
		lock := v.(*addressMutex)
		if lock.mu.TryLock() {
			lock.mu.Unlock()
			return false
		}
		return true
	}
	return false
}
