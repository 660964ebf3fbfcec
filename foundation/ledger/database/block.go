// Package database handles the lower level data types for maintaining the
// ledger: transactions, blocks, the canonical block encoding used for
// hashing, proof of work and chain validation.
package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// GenesisParentHash is the previous-hash value carried by the genesis block,
// which has no parent.
const GenesisParentHash = "0"

// progressInterval is the number of hash attempts between mining progress
// events.
const progressInterval = 10_000

// =============================================================================

// Block represents a group of transactions batched together with the
// metadata that chains it to its parent. Once a block is mined and appended
// to a chain it is never mutated again.
type Block struct {
	Index        uint64 `json:"index"`         // Position of the block in the chain, 0 for genesis.
	Transactions []Tx   `json:"transactions"`  // Transactions committed by this block, in submission order.
	PrevHash     string `json:"previous_hash"` // Hash of the previous block in the chain.
	Timestamp    int64  `json:"timestamp"`     // Unix time the block was constructed.
	Nonce        uint64 `json:"nonce"`         // Value identified to solve the hash solution.
	Hash         string `json:"hash"`          // Hash of the block, set once mining succeeds.
}

// NewBlock constructs the next block to be mined on top of the specified
// parent block. The nonce starts at zero and the hash is left unset until
// the proof of work is performed.
func NewBlock(prevBlock Block, trans []Tx) Block {
	return Block{
		Index:        prevBlock.Index + 1,
		Transactions: trans,
		PrevHash:     prevBlock.Hash,
		Timestamp:    time.Now().UTC().Unix(),
	}
}

// NewGenesisBlock constructs the predecessor-less block at index 0. It still
// needs to be mined before a chain can be built on it.
func NewGenesisBlock() Block {
	return Block{
		Index:        0,
		Transactions: []Tx{},
		PrevHash:     GenesisParentHash,
		Timestamp:    time.Now().UTC().Unix(),
	}
}

// =============================================================================

// blockData is the canonical form of a block for hashing. The stored hash is
// excluded from its own input. JSON keys must appear in lexicographic order
// for the digest to be reproducible, which the field declaration order here
// pins down since encoding/json preserves it.
type blockData struct {
	Index        uint64 `json:"index"`
	Nonce        uint64 `json:"nonce"`
	PrevHash     string `json:"previous_hash"`
	Timestamp    int64  `json:"timestamp"`
	Transactions []Tx   `json:"transactions"`
}

// ComputeHash returns the SHA-256 digest of the block's canonical encoding
// as 64 lower-case hex characters. The result is a pure function of the
// index, nonce, previous hash, timestamp and transaction fields.
func (b Block) ComputeHash() string {

	// An empty transaction set must encode as [] and not null.
	trans := b.Transactions
	if trans == nil {
		trans = []Tx{}
	}

	data, err := json.Marshal(blockData{
		Index:        b.Index,
		Nonce:        b.Nonce,
		PrevHash:     b.PrevHash,
		Timestamp:    b.Timestamp,
		Transactions: trans,
	})
	if err != nil {

		// The canonical form contains no values encoding/json can reject.
		panic(err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// =============================================================================

// Mine performs the proof of work to find a nonce whose hash solves the
// difficulty target. Pointer semantics are being used since a nonce is being
// discovered. The call blocks until a solution is found or the context is
// cancelled, and emits a progress event every 10,000 attempts.
func (b *Block) Mine(ctx context.Context, difficulty int, ev func(v string, args ...any)) error {
	ev("database: Mine: MINING: started: blk[%d] difficulty[%d]", b.Index, difficulty)
	defer ev("database: Mine: MINING: completed: blk[%d]", b.Index)

	var attempts uint64
	for {
		attempts++
		if attempts%progressInterval == 0 {
			ev("database: Mine: MINING: blk[%d] attempts[%d]", b.Index, attempts)
		}

		// Did the caller give up on the search.
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED: blk[%d]", b.Index)
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.ComputeHash()
		if !isHashSolved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash
		ev("database: Mine: MINING: SOLVED: blk[%d] nonce[%d] hash[%s]", b.Index, b.Nonce, hash)

		return nil
	}
}

// isHashSolved checks the hash complies with the POW rules. We need to match
// a difficulty number of leading 0's.
func isHashSolved(difficulty int, hash string) bool {
	const match = "00000000"

	if len(hash) != 64 || difficulty < 0 || difficulty > len(match) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
