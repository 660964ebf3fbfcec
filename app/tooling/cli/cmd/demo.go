package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/genesis"
	"github.com/powlabs/ledger/foundation/ledger/state"
	"github.com/spf13/cobra"
)

var (
	difficulty int
	verbose    bool
)

// demoCmd runs the whole workflow in process: build a chain, submit sample
// transfers, mine them, inspect balances, and sync a second node from the
// exported chain.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an in-process mining demo, no node required.",
	Run:   demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVarP(&difficulty, "difficulty", "d", 4, "Required leading zero characters, 0-8.")
	demoCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print mining events.")
}

func demoRun(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	ev := func(v string, args ...any) {
		if verbose {
			fmt.Printf(v+"\n", args...)
		}
	}

	gen := genesis.Genesis{
		Difficulty:   difficulty,
		MiningReward: genesis.Default().MiningReward,
	}

	fmt.Printf("creating chain, difficulty %d (mining genesis block)...\n", difficulty)
	chain, err := state.New(ctx, state.Config{Genesis: gen, EvHandler: ev})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nstep 1: submit transactions")
	submit(chain, "Alice", "Bob", 50)
	submit(chain, "Bob", "Charlie", 25)
	submit(chain, "Charlie", "Alice", 10)

	fmt.Println("\nstep 2: mine the pending pool")
	mineFor(ctx, chain, "Miner1")

	fmt.Println("\nstep 3: submit more transactions")
	submit(chain, "Alice", "Charlie", 15)
	submit(chain, "Bob", "Alice", 30)

	fmt.Println("\nstep 4: mine again")
	mineFor(ctx, chain, "Miner2")

	fmt.Println()
	printChain(chain.Blocks())

	fmt.Println("\naccount balances")
	for _, account := range []string{"Alice", "Bob", "Charlie", "Miner1", "Miner2"} {
		fmt.Printf("%-15s balance: %v\n", account, chain.Balance(account))
	}

	fmt.Println("\nchain validation")
	if err := chain.Validate(); err != nil {
		fmt.Printf("chain invalid: %s\n", err)
	} else {
		fmt.Println("chain valid")
	}

	fmt.Println("\nstep 5: sync a second node")
	node2, err := state.New(ctx, state.Config{Genesis: gen, EvHandler: ev})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("node2 height before sync: %d\n", node2.Height())

	if err := node2.SyncFrom(chain.Blocks()); err != nil {
		fmt.Printf("sync rejected: %s\n", err)
	}
	fmt.Printf("node2 height after sync: %d\n", node2.Height())
}

func submit(chain *state.State, from string, to string, amount float64) {
	tx, err := database.NewTx(from, to, amount)
	if err != nil {
		log.Fatal(err)
	}
	chain.SubmitTransaction(tx)
	fmt.Printf("submitted: %s\n", tx)
}

func mineFor(ctx context.Context, chain *state.State, miner string) {
	block, err := chain.MinePending(ctx, miner)
	if err != nil {
		if errors.Is(err, state.ErrNoTransactions) {
			fmt.Println("nothing to mine")
			return
		}
		log.Fatal(err)
	}
	fmt.Printf("mined block #%d with %d txs, nonce %d\n", block.Index, len(block.Transactions), block.Nonce)
	fmt.Printf("  hash: %s\n", block.Hash)
}
