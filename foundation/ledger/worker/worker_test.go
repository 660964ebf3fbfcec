package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/genesis"
	"github.com/powlabs/ledger/foundation/ledger/state"
	"github.com/powlabs/ledger/foundation/ledger/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SignalMining(t *testing.T) {
	t.Log("Given the need to validate the mining worker.")
	{
		// Difficulty 0 solves on the first attempt so the round is immediate.
		chain, err := state.New(context.Background(), state.Config{
			Genesis: genesis.Genesis{Difficulty: 0, MiningReward: 10},
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create a chain: %v", failed, err)
		}

		w := worker.Run(chain, "miner1", func(v string, args ...any) {})
		defer w.Shutdown()

		tx, err := database.NewTx("alice", "bob", 50)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		chain.SubmitTransaction(tx)

		w.SignalStartMining()

		// Wait for the round to commit the block.
		deadline := time.Now().Add(5 * time.Second)
		for chain.Height() < 2 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould mine a block after the signal.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould mine a block after the signal.", success)

		if err := chain.Validate(); err != nil {
			t.Fatalf("\t%s\tShould pass chain validation: %v", failed, err)
		}
		t.Logf("\t%s\tShould pass chain validation.", success)
	}
}
