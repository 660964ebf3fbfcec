package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var account string

type balance struct {
	Account string  `json:"account"`
	Balance float64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print account balances.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&account, "account", "a", "", "Limit to a single account.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	endpoint := fmt.Sprintf("%s/v1/balances/list", url)
	if account != "" {
		endpoint = fmt.Sprintf("%s/%s", endpoint, account)
	}

	resp, err := http.Get(endpoint)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var bals balances
	if err := json.NewDecoder(resp.Body).Decode(&bals); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("latest block: %s\n", bals.LatestBlock)
	fmt.Printf("uncommitted txs: %d\n", bals.Uncommitted)
	for _, bal := range bals.Balances {
		fmt.Printf("%-15s balance: %v\n", bal.Account, bal.Balance)
	}
}
