package mempool_test

import (
	"testing"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_CRUD(t *testing.T) {
	txs := []database.Tx{
		{Amount: 50, Recipient: "bob", Sender: "alice", Timestamp: 1},
		{Amount: 25, Recipient: "charlie", Sender: "bob", Timestamp: 2},
		{Amount: 10, Recipient: "alice", Sender: "charlie", Timestamp: 3},
	}

	t.Log("Given the need to validate mempool api.")
	{
		t.Log("\tTest 0:\tWhen appending a set of transactions.")
		{
			mp := mempool.New()

			for _, tx := range txs {
				mp.Append(tx)
			}

			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould have %d transactions in the pool: %d", failed, len(txs), mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould have %d transactions in the pool.", success, len(txs))

			cpy := mp.Copy()
			for i, tx := range cpy {
				if tx != txs[i] {
					t.Logf("\t%s\tTest 0:\tgot: %v", failed, tx)
					t.Logf("\t%s\tTest 0:\texp: %v", failed, txs[i])
					t.Fatalf("\t%s\tTest 0:\tShould preserve submission order.", failed)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould preserve submission order.", success)

			// Mutating the copy must not touch the pool.
			cpy[0].Amount = 9999
			if mp.Copy()[0].Amount != 50 {
				t.Fatalf("\t%s\tTest 0:\tShould return an independent copy.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould return an independent copy.", success)
		}

		t.Log("\tTest 1:\tWhen resetting the pool after a mining round.")
		{
			mp := mempool.New()
			for _, tx := range txs {
				mp.Append(tx)
			}

			reward := database.NewRewardTx("miner1", 10)
			mp.Reset(reward)

			if mp.Count() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould hold exactly the reward transaction: %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 1:\tShould hold exactly the reward transaction.", success)

			got := mp.Copy()[0]
			if got.Sender != database.SystemAccount || got.Recipient != "miner1" || got.Amount != 10 {
				t.Fatalf("\t%s\tTest 1:\tShould credit the miner from the system account: %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould credit the miner from the system account.", success)
		}
	}
}
