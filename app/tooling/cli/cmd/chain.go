package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the committed chain.",
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/blocks/list", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var blocks []database.Block
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		log.Fatal(err)
	}

	printChain(blocks)
}

func printChain(blocks []database.Block) {
	fmt.Printf("chain height: %d\n", len(blocks))

	for _, block := range blocks {
		fmt.Printf("\nblock #%d\n", block.Index)
		fmt.Printf("  time:          %s\n", time.Unix(block.Timestamp, 0).UTC().Format(time.RFC3339))
		fmt.Printf("  previous hash: %s\n", block.PrevHash)
		fmt.Printf("  hash:          %s\n", block.Hash)
		fmt.Printf("  nonce:         %d\n", block.Nonce)
		fmt.Printf("  transactions:  %d\n", len(block.Transactions))

		for _, tx := range block.Transactions {
			fmt.Printf("    - %s -> %s: %v\n", tx.Sender, tx.Recipient, tx.Amount)
		}
	}
}
