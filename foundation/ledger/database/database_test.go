package database_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/powlabs/ledger/foundation/ledger/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func noopEv(v string, args ...any) {}

func Test_Hashing(t *testing.T) {
	type table struct {
		name  string
		block database.Block
		hash  string
	}

	// These hashes pin down the canonical encoding byte for byte. If either
	// test fails, every stored chain hash is broken.
	tt := []table{
		{
			name: "single transaction",
			block: database.Block{
				Index:     1,
				Nonce:     42,
				PrevHash:  "0",
				Timestamp: 1700000000,
				Transactions: []database.Tx{
					{Amount: 50, Recipient: "bob", Sender: "alice", Timestamp: 1700000000},
				},
			},
			hash: "c10a4fd20d7e6ae42850e797f3305a8578ebef92981161061dcb48a059b8371a",
		},
		{
			name: "no transactions",
			block: database.Block{
				Index:     0,
				Nonce:     7,
				PrevHash:  "0",
				Timestamp: 1699999999,
			},
			hash: "9fca64c32e75aade4f998123b9801ab38000c32e6716d35bf234e743f7f258a8",
		},
	}

	t.Log("Given the need to validate the canonical block hash.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen hashing the %s block.", testID, tst.name)
			{
				hash := tst.block.ComputeHash()
				if hash != tst.hash {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, hash)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hash)
					t.Fatalf("\t%s\tTest %d:\tShould get back the known hash.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the known hash.", success, testID)

				if again := tst.block.ComputeHash(); again != hash {
					t.Fatalf("\t%s\tTest %d:\tShould get the same hash on every call.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get the same hash on every call.", success, testID)
			}
		}
	}
}

func Test_HashExcludesStoredHash(t *testing.T) {
	t.Log("Given the need to validate the stored hash is not part of its own input.")
	{
		block := database.Block{
			Index:     3,
			Nonce:     11,
			PrevHash:  "aa",
			Timestamp: 1700000000,
		}

		before := block.ComputeHash()
		block.Hash = before
		if after := block.ComputeHash(); after != before {
			t.Fatalf("\t%s\tShould compute the same hash once the hash field is set.", failed)
		}
		t.Logf("\t%s\tShould compute the same hash once the hash field is set.", success)
	}
}

func Test_Mining(t *testing.T) {
	const difficulty = 2

	t.Log("Given the need to validate the proof of work search.")
	{
		t.Logf("\tTest 0:\tWhen mining a block at difficulty %d.", difficulty)
		{
			genesis := database.NewGenesisBlock()
			if err := genesis.Mine(context.Background(), difficulty, noopEv); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine the genesis block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine the genesis block.", success)

			if !strings.HasPrefix(genesis.Hash, strings.Repeat("0", difficulty)) {
				t.Fatalf("\t%s\tTest 0:\tShould have %d leading zeros: %s", failed, difficulty, genesis.Hash)
			}
			t.Logf("\t%s\tTest 0:\tShould have %d leading zeros.", success, difficulty)

			if genesis.Hash != genesis.ComputeHash() {
				t.Fatalf("\t%s\tTest 0:\tShould store a hash that recomputes exactly.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould store a hash that recomputes exactly.", success)

			if len(genesis.Hash) != 64 {
				t.Fatalf("\t%s\tTest 0:\tShould produce a 64 character digest: %d", failed, len(genesis.Hash))
			}
			t.Logf("\t%s\tTest 0:\tShould produce a 64 character digest.", success)
		}
	}
}

func Test_MiningCancel(t *testing.T) {
	t.Log("Given the need to validate mining honors cancellation.")
	{
		// A difficulty of 8 will not be solved within the timeout.
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		block := database.NewGenesisBlock()
		err := block.Mine(ctx, 8, noopEv)
		if err == nil {
			t.Fatalf("\t%s\tShould get a cancellation error.", failed)
		}
		t.Logf("\t%s\tShould get a cancellation error.", success)

		if block.Hash != "" {
			t.Fatalf("\t%s\tShould not set the hash on cancellation.", failed)
		}
		t.Logf("\t%s\tShould not set the hash on cancellation.", success)
	}
}

func Test_ValidateBlocks(t *testing.T) {
	const difficulty = 1
	ctx := context.Background()

	// Mine a small chain to validate against.
	genesis := database.NewGenesisBlock()
	if err := genesis.Mine(ctx, difficulty, noopEv); err != nil {
		t.Fatalf("\t%s\tShould be able to mine the genesis block: %v", failed, err)
	}

	tx, err := database.NewTx("alice", "bob", 50)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	block := database.NewBlock(genesis, []database.Tx{tx})
	if err := block.Mine(ctx, difficulty, noopEv); err != nil {
		t.Fatalf("\t%s\tShould be able to mine block 1: %v", failed, err)
	}

	chain := []database.Block{genesis, block}

	t.Log("Given the need to validate the chain rules.")
	{
		t.Log("\tTest 0:\tWhen checking a freshly mined chain.")
		{
			if err := database.ValidateBlocks(chain, difficulty); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould pass validation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould pass validation.", success)
		}

		t.Log("\tTest 1:\tWhen a committed transaction is tampered with.")
		{
			tampered := []database.Block{genesis, block}
			tampered[1].Transactions = []database.Tx{{Amount: 5000, Recipient: "mallory", Sender: "alice", Timestamp: tx.Timestamp}}

			if err := database.ValidateBlocks(tampered, difficulty); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould fail validation.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould fail validation.", success)
		}

		t.Log("\tTest 2:\tWhen the link to the parent is broken.")
		{
			broken := block
			broken.PrevHash = strings.Repeat("0", 64)
			broken.Hash = broken.ComputeHash()

			// The relinked block may not solve the difficulty anymore, so
			// check for either rule to trip.
			if err := database.ValidateBlocks([]database.Block{genesis, broken}, difficulty); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould fail validation.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould fail validation.", success)
		}

		t.Log("\tTest 3:\tWhen the indices are not contiguous.")
		{
			skipped := block
			skipped.Index = 5
			skipped.Hash = skipped.ComputeHash()

			if err := database.ValidateBlocks([]database.Block{genesis, skipped}, difficulty); err == nil {
				t.Fatalf("\t%s\tTest 3:\tShould fail validation.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould fail validation.", success)
		}

		t.Log("\tTest 4:\tWhen the chain is empty.")
		{
			if err := database.ValidateBlocks(nil, difficulty); err == nil {
				t.Fatalf("\t%s\tTest 4:\tShould fail validation.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould fail validation.", success)
		}
	}
}
