// Package mempool maintains the pool of transactions accepted but not yet
// committed into a mined block. Order of submission is preserved since the
// next mined block commits the pool as-is.
package mempool

import (
	"sync"

	"github.com/powlabs/ledger/foundation/ledger/database"
)

// Mempool represents an ordered cache of pending transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the back of the pool. There is no duplicate
// detection and no balance check at this layer.
func (mp *Mempool) Append(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
}

// Copy returns a copy of the pool in submission order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)
	return cpy
}

// Reset replaces the entire pool with the specified transactions. It is
// used after a successful mining round to reseed the pool with the reward
// transaction.
func (mp *Mempool) Reset(txs ...database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make([]database.Tx, len(txs))
	copy(mp.pool, txs)
}
