package database

import (
	"fmt"
	"time"
)

// SystemAccount is the reserved sender identity used for mining rewards.
const SystemAccount = "system"

// =============================================================================

// Tx is the transactional data recorded in the ledger. A Tx is a value
// record; it is never mutated after construction.
type Tx struct {
	Amount    float64 `json:"amount"`    // Monetary value moved by this transaction.
	Recipient string  `json:"recipient"` // Account receiving the benefit of the transaction.
	Sender    string  `json:"sender"`    // Account the value is moved from.
	Timestamp int64   `json:"timestamp"` // Unix time the transaction was constructed.
}

// NewTx constructs a new transaction, stamping it with the current time.
func NewTx(sender string, recipient string, amount float64) (Tx, error) {
	if sender == "" {
		return Tx{}, fmt.Errorf("sender account is not properly formatted")
	}
	if recipient == "" {
		return Tx{}, fmt.Errorf("recipient account is not properly formatted")
	}

	tx := Tx{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
		Timestamp: time.Now().UTC().Unix(),
	}

	return tx, nil
}

// NewRewardTx constructs the transaction that credits a miner with the
// block reward. The reward is paid from the reserved system account.
func NewRewardTx(minerAccount string, reward float64) Tx {
	return Tx{
		Amount:    reward,
		Recipient: minerAccount,
		Sender:    SystemAccount,
		Timestamp: time.Now().UTC().Unix(),
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s -> %s: %v", tx.Sender, tx.Recipient, tx.Amount)
}
