package events

import (
	"math/big"

	"artchain/core/types"
)

const (
	TypeReserveInitialized       = "reserve.initialized"
	TypeReserveRevenueReceived   = "reserve.revenue.received"
	TypeReserveShareClaimed      = "reserve.share.claimed"
	TypeReserveWithdrawn         = "reserve.reward.withdrawn"
	TypeReserveRatioUpdated      = "reserve.ratio.updated"
	TypeReserveGovernanceUpdated = "reserve.governance.updated"
	TypeReserveOwnerChanged      = "reserve.owner.changed"
)

type ReserveInitialized struct {
	Reserve [20]byte
	Owner   [20]byte
	Ledger  [20]byte
}

func (ReserveInitialized) EventType() string { return TypeReserveInitialized }

func (e ReserveInitialized) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveInitialized,
		Attributes: map[string]string{
			"reserve": addrHex(e.Reserve),
			"owner":   addrHex(e.Owner),
			"ledger":  addrHex(e.Ledger),
		},
	}
}

type ReserveRevenueReceived struct {
	Reserve      [20]byte
	From         [20]byte
	Amount       *big.Int
	TotalReserve *big.Int
}

func (ReserveRevenueReceived) EventType() string { return TypeReserveRevenueReceived }

func (e ReserveRevenueReceived) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveRevenueReceived,
		Attributes: map[string]string{
			"reserve":      addrHex(e.Reserve),
			"from":         addrHex(e.From),
			"amount":       formatAmount(e.Amount),
			"totalReserve": formatAmount(e.TotalReserve),
		},
	}
}

type ReserveShareClaimed struct {
	Reserve          [20]byte
	Holder           [20]byte
	Amount           *big.Int
	TotalReserve     *big.Int
	TotalDistributed *big.Int
}

func (ReserveShareClaimed) EventType() string { return TypeReserveShareClaimed }

func (e ReserveShareClaimed) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveShareClaimed,
		Attributes: map[string]string{
			"reserve":          addrHex(e.Reserve),
			"holder":           addrHex(e.Holder),
			"amount":           formatAmount(e.Amount),
			"totalReserve":     formatAmount(e.TotalReserve),
			"totalDistributed": formatAmount(e.TotalDistributed),
		},
	}
}

type ReserveRewardWithdrawn struct {
	Reserve      [20]byte
	Recipient    [20]byte
	Amount       *big.Int
	TotalReserve *big.Int
}

func (ReserveRewardWithdrawn) EventType() string { return TypeReserveWithdrawn }

func (e ReserveRewardWithdrawn) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveWithdrawn,
		Attributes: map[string]string{
			"reserve":      addrHex(e.Reserve),
			"recipient":    addrHex(e.Recipient),
			"amount":       formatAmount(e.Amount),
			"totalReserve": formatAmount(e.TotalReserve),
		},
	}
}

type ReserveRatioUpdated struct {
	Reserve [20]byte
	Bps     uint32
}

func (ReserveRatioUpdated) EventType() string { return TypeReserveRatioUpdated }

func (e ReserveRatioUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveRatioUpdated,
		Attributes: map[string]string{
			"reserve": addrHex(e.Reserve),
			"bps":     uintToString(uint64(e.Bps)),
		},
	}
}

type ReserveGovernanceUpdated struct {
	Reserve    [20]byte
	Governance [20]byte
}

func (ReserveGovernanceUpdated) EventType() string { return TypeReserveGovernanceUpdated }

func (e ReserveGovernanceUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveGovernanceUpdated,
		Attributes: map[string]string{
			"reserve":    addrHex(e.Reserve),
			"governance": addrHex(e.Governance),
		},
	}
}

type ReserveOwnerChanged struct {
	Reserve  [20]byte
	Previous [20]byte
	Owner    [20]byte
}

func (ReserveOwnerChanged) EventType() string { return TypeReserveOwnerChanged }

func (e ReserveOwnerChanged) Event() *types.Event {
	return &types.Event{
		Type: TypeReserveOwnerChanged,
		Attributes: map[string]string{
			"reserve":  addrHex(e.Reserve),
			"previous": addrHex(e.Previous),
			"owner":    addrHex(e.Owner),
		},
	}
}
