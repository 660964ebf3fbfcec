package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var (
	source string
	target string
)

// syncResult is the outcome reported by the target node.
type syncResult struct {
	Accepted bool   `json:"accepted"`
	Height   int    `json:"height"`
	Reason   string `json:"reason,omitempty"`
}

// syncCmd pulls the committed chain from one node and offers it to another.
// Both urls address the private API.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the chain from a source node and offer it to the target node.",
	Run:   syncRun,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVarP(&source, "source", "s", "", "Private url of the node to pull the chain from.")
	syncCmd.Flags().StringVarP(&target, "target", "t", "http://localhost:9080", "Private url of the node to sync.")
	syncCmd.MarkFlagRequired("source")
}

func syncRun(cmd *cobra.Command, args []string) {
	result, err := syncChain(source, target)
	if err != nil {
		log.Fatal(err)
	}

	if result.Accepted {
		fmt.Printf("chain accepted, target height now %d\n", result.Height)
		return
	}
	fmt.Printf("chain rejected, target height still %d: %s\n", result.Height, result.Reason)
}

// syncChain fetches the source node's chain and posts it to the target
// node's sync endpoint.
func syncChain(sourceURL string, targetURL string) (syncResult, error) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/node/chain/list", sourceURL))
	if err != nil {
		return syncResult{}, fmt.Errorf("pulling chain from source: %w", err)
	}
	defer resp.Body.Close()

	var blocks []database.Block
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		return syncResult{}, fmt.Errorf("decoding source chain: %w", err)
	}

	data, err := json.Marshal(blocks)
	if err != nil {
		return syncResult{}, err
	}

	resp2, err := http.Post(fmt.Sprintf("%s/v1/node/chain/sync", targetURL), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return syncResult{}, fmt.Errorf("offering chain to target: %w", err)
	}
	defer resp2.Body.Close()

	var result syncResult
	if err := json.NewDecoder(resp2.Body).Decode(&result); err != nil {
		return syncResult{}, fmt.Errorf("decoding target response: %w", err)
	}

	return result, nil
}
