package state

import (
	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/genesis"
)

// Genesis returns a copy of the chain settings.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// Height returns the number of committed blocks.
func (s *State) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.blocks)
}

// LatestBlock returns a copy of the most recently committed block.
func (s *State) LatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.blocks[len(s.blocks)-1]
}

// Blocks returns a copy of the committed chain, genesis first. This is the
// wire form a transport collaborator hands to other nodes.
func (s *State) Blocks() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyBlocks(s.blocks)
}

// Mempool returns a copy of the pending pool in submission order.
func (s *State) Mempool() []database.Tx {
	return s.mempool.Copy()
}

// Balance folds every transaction in every committed block and then the
// pending pool, debiting the sender and crediting the recipient. There is no
// floor at zero, balances may go negative.
func (s *State) Balance(account string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var balance float64
	for _, block := range s.blocks {
		balance += balanceDelta(account, block.Transactions)
	}

	return balance + balanceDelta(account, s.mempool.Copy())
}

// Accounts returns every account referenced by a committed or pending
// transaction, including the system account once a reward has been issued.
func (s *State) Accounts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var accounts []string

	record := func(txs []database.Tx) {
		for _, tx := range txs {
			for _, account := range []string{tx.Sender, tx.Recipient} {
				if _, exists := seen[account]; !exists {
					seen[account] = struct{}{}
					accounts = append(accounts, account)
				}
			}
		}
	}

	for _, block := range s.blocks {
		record(block.Transactions)
	}
	record(s.mempool.Copy())

	return accounts
}

// =============================================================================

func balanceDelta(account string, txs []database.Tx) float64 {
	var delta float64
	for _, tx := range txs {
		if tx.Sender == account {
			delta -= tx.Amount
		}
		if tx.Recipient == account {
			delta += tx.Amount
		}
	}
	return delta
}

// copyBlocks deep copies a block sequence so callers can never reach into
// the committed chain.
func copyBlocks(blocks []database.Block) []database.Block {
	cpy := make([]database.Block, len(blocks))
	for i, block := range blocks {
		trans := make([]database.Tx, len(block.Transactions))
		copy(trans, block.Transactions)
		block.Transactions = trans
		cpy[i] = block
	}
	return cpy
}
