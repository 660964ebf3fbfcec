package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/powlabs/ledger/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Load(t *testing.T) {
	t.Log("Given the need to validate loading chain settings.")
	{
		t.Log("\tTest 0:\tWhen loading a well formed genesis file.")
		{
			path := filepath.Join(t.TempDir(), "genesis.json")
			doc := `{"difficulty": 2, "mining_reward": 25.5}`
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the file: %v", failed, err)
			}

			gen, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the file.", success)

			if gen.Difficulty != 2 || gen.MiningReward != 25.5 {
				t.Fatalf("\t%s\tTest 0:\tShould get back the settings: %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the settings.", success)
		}

		t.Log("\tTest 1:\tWhen the difficulty is out of range.")
		{
			path := filepath.Join(t.TempDir(), "genesis.json")
			doc := `{"difficulty": 40, "mining_reward": 10}`
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the settings.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the settings.", success)
		}

		t.Log("\tTest 2:\tWhen the file does not exist.")
		{
			if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould get an error.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould get an error.", success)
		}
	}
}
