package public

// newTx is the transactional data submitted by a client.
type newTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
}

// balance is the account balance served to a client.
type balance struct {
	Account string  `json:"account"`
	Balance float64 `json:"balance"`
}

// balances is the set of account balances served to a client.
type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}
