package types

import "math/big"

// Account tracks the external settlement value held by an address. Revenue
// deposits, reserve claims, and reward payouts all move value between
// accounts; the reward unit itself lives in the token ledger, not here.
type Account struct {
	Nonce   uint64   `json:"nonce"`
	Balance *big.Int `json:"balance"`
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Balance != nil {
		clone.Balance = new(big.Int).Set(a.Balance)
	}
	return &clone
}
