// Package genesis maintains access to the chain settings fixed at chain
// creation.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Genesis represents the settings a chain is created with. They are fixed
// for the lifetime of the chain.
type Genesis struct {
	Difficulty   int     `json:"difficulty"`    // How many leading zero characters a block hash needs.
	MiningReward float64 `json:"mining_reward"` // Reward credited for mining a block.
}

// Default returns the chain settings used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Difficulty:   4,
		MiningReward: 10,
	}
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if genesis.Difficulty < 0 || genesis.Difficulty > 8 {
		return Genesis{}, fmt.Errorf("difficulty %d is outside the supported range 0-8", genesis.Difficulty)
	}

	return genesis, nil
}
