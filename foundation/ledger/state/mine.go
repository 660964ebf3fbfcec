package state

import (
	"context"
	"errors"

	"github.com/powlabs/ledger/foundation/ledger/database"
)

// ErrNoTransactions is returned when a mining round is requested and the
// pending pool is empty. It is a signal to the caller, not a fault.
var ErrNoTransactions = errors.New("no transactions in mempool")

// MinePending commits the full pending pool into the next block. The call
// blocks until the proof of work is solved or the context is cancelled. On
// success the mined block is appended to the chain and the pending pool is
// reseeded with a single reward transaction crediting the miner. The reward
// is not settled until a later round commits it.
func (s *State) MinePending(ctx context.Context, minerAccount string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	s.evHandler("state: MinePending: MINING: txs[%d]", s.mempool.Count())

	block := database.NewBlock(s.blocks[len(s.blocks)-1], s.mempool.Copy())
	if err := block.Mine(ctx, s.genesis.Difficulty, s.evHandler); err != nil {
		return database.Block{}, err
	}

	s.blocks = append(s.blocks, block)
	s.mempool.Reset(database.NewRewardTx(minerAccount, s.genesis.MiningReward))

	s.evHandler("state: MinePending: MINING: blk[%d] appended: reward[%v] pending for miner[%s]", block.Index, s.genesis.MiningReward, minerAccount)

	return block, nil
}
