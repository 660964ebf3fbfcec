package database

import (
	"errors"
	"fmt"
)

// ErrEmptyChain is returned when a candidate block sequence has no genesis
// block to anchor it.
var ErrEmptyChain = errors.New("chain has no blocks")

// ValidateBlocks checks an arbitrary ordered block sequence against the
// chain rules for the specified difficulty. For every block: the stored hash
// must equal the recomputed hash of the block's own fields and must solve
// the difficulty target. For every block after genesis: the index must be
// contiguous and the previous-hash link must match the parent's stored hash.
// The genesis block is exempt only from the link rules; it is mined like any
// other block so its hash rules still apply.
//
// The first violated rule is reported with the offending block index.
// The sequence itself is never modified.
func ValidateBlocks(blocks []Block, difficulty int) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	for i, block := range blocks {
		if hash := block.ComputeHash(); block.Hash != hash {
			return fmt.Errorf("block %d: stored hash does not match recomputed hash, got %s, exp %s", i, block.Hash, hash)
		}

		if !isHashSolved(difficulty, block.Hash) {
			return fmt.Errorf("block %d: hash %s does not solve difficulty %d", i, block.Hash, difficulty)
		}

		if i == 0 {
			if block.Index != 0 {
				return fmt.Errorf("block 0: genesis block has index %d, exp 0", block.Index)
			}
			if block.PrevHash != GenesisParentHash {
				return fmt.Errorf("block 0: genesis previous hash is %q, exp %q", block.PrevHash, GenesisParentHash)
			}
			continue
		}

		if block.Index != blocks[i-1].Index+1 {
			return fmt.Errorf("block %d: index %d is not contiguous with parent index %d", i, block.Index, blocks[i-1].Index)
		}

		if block.PrevHash != blocks[i-1].Hash {
			return fmt.Errorf("block %d: previous hash does not match parent, got %s, exp %s", i, block.PrevHash, blocks[i-1].Hash)
		}
	}

	return nil
}
