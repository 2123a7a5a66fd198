package events

import (
	"math/big"

	"artchain/core/types"
)

const (
	TypeRewardsInitialized      = "rewards.initialized"
	TypeRewardsOperatorAdded    = "rewards.operator.added"
	TypeRewardsOperatorRemoved  = "rewards.operator.removed"
	TypeRewardsArtistRegistered = "rewards.artist.registered"
	TypeRewardsArtistRewarded   = "rewards.artist.rewarded"
	TypeRewardsSubscriberAdded  = "rewards.subscriber.added"
	TypeRewardsSubscriberGone   = "rewards.subscriber.removed"
	TypeRewardsOwnerChanged     = "rewards.owner.changed"
)

type RewardsInitialized struct {
	Engine  [20]byte
	Owner   [20]byte
	Ledger  [20]byte
	Reserve [20]byte
}

func (RewardsInitialized) EventType() string { return TypeRewardsInitialized }

func (e RewardsInitialized) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsInitialized,
		Attributes: map[string]string{
			"engine":  addrHex(e.Engine),
			"owner":   addrHex(e.Owner),
			"ledger":  addrHex(e.Ledger),
			"reserve": addrHex(e.Reserve),
		},
	}
}

type RewardsOperatorAdded struct {
	Engine   [20]byte
	Operator [20]byte
}

func (RewardsOperatorAdded) EventType() string { return TypeRewardsOperatorAdded }

func (e RewardsOperatorAdded) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsOperatorAdded,
		Attributes: map[string]string{
			"engine":   addrHex(e.Engine),
			"operator": addrHex(e.Operator),
		},
	}
}

type RewardsOperatorRemoved struct {
	Engine   [20]byte
	Operator [20]byte
}

func (RewardsOperatorRemoved) EventType() string { return TypeRewardsOperatorRemoved }

func (e RewardsOperatorRemoved) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsOperatorRemoved,
		Attributes: map[string]string{
			"engine":   addrHex(e.Engine),
			"operator": addrHex(e.Operator),
		},
	}
}

type RewardsArtistRegistered struct {
	Engine       [20]byte
	Artist       [20]byte
	RegisteredAt int64
}

func (RewardsArtistRegistered) EventType() string { return TypeRewardsArtistRegistered }

func (e RewardsArtistRegistered) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsArtistRegistered,
		Attributes: map[string]string{
			"engine":       addrHex(e.Engine),
			"artist":       addrHex(e.Artist),
			"registeredAt": intToString(e.RegisteredAt),
		},
	}
}

type RewardsArtistRewarded struct {
	Engine      [20]byte
	Artist      [20]byte
	Points      *big.Int
	Value       *big.Int
	TotalEarned *big.Int
}

func (RewardsArtistRewarded) EventType() string { return TypeRewardsArtistRewarded }

func (e RewardsArtistRewarded) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsArtistRewarded,
		Attributes: map[string]string{
			"engine":      addrHex(e.Engine),
			"artist":      addrHex(e.Artist),
			"points":      formatAmount(e.Points),
			"value":       formatAmount(e.Value),
			"totalEarned": formatAmount(e.TotalEarned),
		},
	}
}

type RewardsSubscriberAdded struct {
	Engine     [20]byte
	Subscriber [20]byte
	Count      uint64
}

func (RewardsSubscriberAdded) EventType() string { return TypeRewardsSubscriberAdded }

func (e RewardsSubscriberAdded) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsSubscriberAdded,
		Attributes: map[string]string{
			"engine":     addrHex(e.Engine),
			"subscriber": addrHex(e.Subscriber),
			"count":      uintToString(e.Count),
		},
	}
}

type RewardsSubscriberRemoved struct {
	Engine     [20]byte
	Subscriber [20]byte
	Count      uint64
}

func (RewardsSubscriberRemoved) EventType() string { return TypeRewardsSubscriberGone }

func (e RewardsSubscriberRemoved) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsSubscriberGone,
		Attributes: map[string]string{
			"engine":     addrHex(e.Engine),
			"subscriber": addrHex(e.Subscriber),
			"count":      uintToString(e.Count),
		},
	}
}

type RewardsOwnerChanged struct {
	Engine   [20]byte
	Previous [20]byte
	Owner    [20]byte
}

func (RewardsOwnerChanged) EventType() string { return TypeRewardsOwnerChanged }

func (e RewardsOwnerChanged) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardsOwnerChanged,
		Attributes: map[string]string{
			"engine":   addrHex(e.Engine),
			"previous": addrHex(e.Previous),
			"owner":    addrHex(e.Owner),
		},
	}
}
