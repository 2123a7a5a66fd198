package events

import (
	"math/big"

	"artchain/core/types"
)

const (
	TypeTokenInitialized   = "token.initialized"
	TypeTokenMinterAdded   = "token.minter.added"
	TypeTokenMinterRemoved = "token.minter.removed"
	TypeTokenMinted        = "token.minted"
	TypeTokenBurned        = "token.burned"
	TypeTokenTransferred   = "token.transferred"
	TypeTokenApproved      = "token.approved"
	TypeTokenOwnerChanged  = "token.owner.changed"
)

type TokenInitialized struct {
	Token    [20]byte
	Owner    [20]byte
	Name     string
	Symbol   string
	Decimals uint8
}

func (TokenInitialized) EventType() string { return TypeTokenInitialized }

func (e TokenInitialized) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenInitialized,
		Attributes: map[string]string{
			"token":    addrHex(e.Token),
			"owner":    addrHex(e.Owner),
			"name":     e.Name,
			"symbol":   e.Symbol,
			"decimals": uintToString(uint64(e.Decimals)),
		},
	}
}

type TokenMinterAdded struct {
	Token  [20]byte
	Minter [20]byte
}

func (TokenMinterAdded) EventType() string { return TypeTokenMinterAdded }

func (e TokenMinterAdded) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenMinterAdded,
		Attributes: map[string]string{
			"token":  addrHex(e.Token),
			"minter": addrHex(e.Minter),
		},
	}
}

type TokenMinterRemoved struct {
	Token  [20]byte
	Minter [20]byte
}

func (TokenMinterRemoved) EventType() string { return TypeTokenMinterRemoved }

func (e TokenMinterRemoved) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenMinterRemoved,
		Attributes: map[string]string{
			"token":  addrHex(e.Token),
			"minter": addrHex(e.Minter),
		},
	}
}

type TokenMinted struct {
	Token  [20]byte
	To     [20]byte
	Amount *big.Int
	Supply *big.Int
}

func (TokenMinted) EventType() string { return TypeTokenMinted }

func (e TokenMinted) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenMinted,
		Attributes: map[string]string{
			"token":  addrHex(e.Token),
			"to":     addrHex(e.To),
			"amount": formatAmount(e.Amount),
			"supply": formatAmount(e.Supply),
		},
	}
}

type TokenBurned struct {
	Token  [20]byte
	From   [20]byte
	Amount *big.Int
	Supply *big.Int
}

func (TokenBurned) EventType() string { return TypeTokenBurned }

func (e TokenBurned) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenBurned,
		Attributes: map[string]string{
			"token":  addrHex(e.Token),
			"from":   addrHex(e.From),
			"amount": formatAmount(e.Amount),
			"supply": formatAmount(e.Supply),
		},
	}
}

type TokenTransferred struct {
	Token  [20]byte
	From   [20]byte
	To     [20]byte
	Amount *big.Int
}

func (TokenTransferred) EventType() string { return TypeTokenTransferred }

func (e TokenTransferred) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenTransferred,
		Attributes: map[string]string{
			"token":  addrHex(e.Token),
			"from":   addrHex(e.From),
			"to":     addrHex(e.To),
			"amount": formatAmount(e.Amount),
		},
	}
}

type TokenApproved struct {
	Token   [20]byte
	Owner   [20]byte
	Spender [20]byte
	Amount  *big.Int
}

func (TokenApproved) EventType() string { return TypeTokenApproved }

func (e TokenApproved) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenApproved,
		Attributes: map[string]string{
			"token":   addrHex(e.Token),
			"owner":   addrHex(e.Owner),
			"spender": addrHex(e.Spender),
			"amount":  formatAmount(e.Amount),
		},
	}
}

type TokenOwnerChanged struct {
	Token    [20]byte
	Previous [20]byte
	Owner    [20]byte
}

func (TokenOwnerChanged) EventType() string { return TypeTokenOwnerChanged }

func (e TokenOwnerChanged) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenOwnerChanged,
		Attributes: map[string]string{
			"token":    addrHex(e.Token),
			"previous": addrHex(e.Previous),
			"owner":    addrHex(e.Owner),
		},
	}
}
