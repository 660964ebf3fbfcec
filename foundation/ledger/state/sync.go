package state

import (
	"errors"
	"fmt"

	"github.com/powlabs/ledger/foundation/ledger/database"
)

// ErrCandidateNotLonger is returned when a candidate chain is valid but not
// strictly longer than the local chain. Ties keep the local chain.
var ErrCandidateNotLonger = errors.New("candidate chain is not longer than the local chain")

// Validate checks the committed chain against the chain rules. A freshly
// mined chain always passes; any post-commit tampering with a block's fields
// is reported.
func (s *State) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return database.ValidateBlocks(s.blocks, s.genesis.Difficulty)
}

// SyncFrom resolves a fork against an externally supplied candidate chain.
// The candidate is validated in full against this chain's difficulty before
// anything else; it is then accepted only if strictly longer than the local
// chain. On acceptance the committed blocks are replaced wholesale and the
// pending pool is left untouched. The local chain is never modified on any
// rejection path.
func (s *State) SyncFrom(candidate []database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SyncFrom: candidate[%d blocks] local[%d blocks]", len(candidate), len(s.blocks))

	// Work on a private copy so the caller can't mutate what we commit.
	candidate = copyBlocks(candidate)

	if err := database.ValidateBlocks(candidate, s.genesis.Difficulty); err != nil {
		s.evHandler("state: SyncFrom: REJECTED: %s", err)
		return fmt.Errorf("validating candidate chain: %w", err)
	}

	if len(candidate) <= len(s.blocks) {
		s.evHandler("state: SyncFrom: REJECTED: candidate not longer")
		return ErrCandidateNotLonger
	}

	s.blocks = candidate
	s.evHandler("state: SyncFrom: ACCEPTED: local chain replaced, height[%d]", len(s.blocks))

	return nil
}
