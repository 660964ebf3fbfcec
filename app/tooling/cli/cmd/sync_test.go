package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/powlabs/ledger/foundation/ledger/database"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SyncChain(t *testing.T) {
	t.Log("Given the need to move a chain between two nodes.")
	{
		t.Logf("\tTest 0:\tWhen pulling from a source node and offering to a target node.")
		{
			genesis := database.NewGenesisBlock()
			genesis.Hash = genesis.ComputeHash()
			chain := []database.Block{genesis}

			src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/node/chain/list" {
					t.Errorf("\t%s\tTest 0:\tShould call the chain list endpoint: got %q.", failed, r.URL.Path)
				}
				json.NewEncoder(w).Encode(chain)
			}))
			defer src.Close()

			var posted []database.Block
			tgt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/node/chain/sync" {
					t.Errorf("\t%s\tTest 0:\tShould call the chain sync endpoint: got %q.", failed, r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
					t.Errorf("\t%s\tTest 0:\tShould receive a decodable chain: %v.", failed, err)
				}
				json.NewEncoder(w).Encode(syncResult{Accepted: true, Height: len(posted)})
			}))
			defer tgt.Close()

			result, err := syncChain(src.URL, tgt.URL)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to run the sync: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to run the sync.", success)

			if !result.Accepted {
				t.Errorf("\t%s\tTest 0:\tShould report the chain as accepted.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the chain as accepted.", success)
			}

			if result.Height != 1 {
				t.Errorf("\t%s\tTest 0:\tShould report the target height: got %d, exp 1.", failed, result.Height)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the target height.", success)
			}

			if len(posted) != 1 || posted[0].Hash != genesis.Hash {
				t.Errorf("\t%s\tTest 0:\tShould offer the source chain unchanged.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould offer the source chain unchanged.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the target rejects the chain.")
		{
			src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode([]database.Block{database.NewGenesisBlock()})
			}))
			defer src.Close()

			tgt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(syncResult{Accepted: false, Height: 3, Reason: "candidate chain is not longer"})
			}))
			defer tgt.Close()

			result, err := syncChain(src.URL, tgt.URL)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to run the sync: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to run the sync.", success)

			if result.Accepted {
				t.Errorf("\t%s\tTest 1:\tShould report the chain as rejected.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould report the chain as rejected.", success)
			}

			if result.Reason == "" {
				t.Errorf("\t%s\tTest 1:\tShould carry the rejection reason.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould carry the rejection reason.", success)
			}
		}
	}
}
