// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/genesis"
	"github.com/powlabs/ledger/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the chain.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the ledger: the committed chain of blocks and the pool of
// pending transactions. All mutating operations take the state mutex, so
// there is exactly one writer at a time and a mining round excludes other
// writers until it completes.
type State struct {
	mu        sync.Mutex
	genesis   genesis.Genesis
	blocks    []database.Block
	mempool   *mempool.Mempool
	evHandler EventHandler
}

// New constructs the chain, synchronously mining the genesis block. The call
// blocks until the genesis proof of work is solved or the context is
// cancelled.
func New(ctx context.Context, cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// A difficulty past 8 hex characters would never terminate in any
	// reasonable time.
	if cfg.Genesis.Difficulty < 0 || cfg.Genesis.Difficulty > 8 {
		return nil, fmt.Errorf("difficulty %d is outside the supported range 0-8", cfg.Genesis.Difficulty)
	}

	ev("state: New: mining genesis block")

	gb := database.NewGenesisBlock()
	if err := gb.Mine(ctx, cfg.Genesis.Difficulty, ev); err != nil {
		return nil, fmt.Errorf("mining genesis block: %w", err)
	}

	s := State{
		genesis:   cfg.Genesis,
		blocks:    []database.Block{gb},
		mempool:   mempool.New(),
		evHandler: ev,
	}

	return &s, nil
}

// SubmitTransaction appends a transaction to the pending pool. Acceptance is
// unconditional: there is no balance, signature or duplicate check at this
// layer. The state mutex serializes submission against a running mining
// round, otherwise the round's pool reset would drop the transaction.
func (s *State) SubmitTransaction(tx database.Tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SubmitTransaction: tx[%s]", tx)

	s.mempool.Append(tx)
}
