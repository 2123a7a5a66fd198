package events

import "artchain/core/types"

const (
	TypeEcosystemDeployed = "ecosystem.deployed"
	TypeComponentUpgraded = "ecosystem.component.upgraded"
)

type EcosystemDeployed struct {
	Deployer [20]byte
	Token    [20]byte
	Reserve  [20]byte
	Rewards  [20]byte
}

func (EcosystemDeployed) EventType() string { return TypeEcosystemDeployed }

func (e EcosystemDeployed) Event() *types.Event {
	return &types.Event{
		Type: TypeEcosystemDeployed,
		Attributes: map[string]string{
			"deployer": addrHex(e.Deployer),
			"token":    addrHex(e.Token),
			"reserve":  addrHex(e.Reserve),
			"rewards":  addrHex(e.Rewards),
		},
	}
}

type ComponentUpgraded struct {
	Component [20]byte
	Kind      string
	Version   uint64
}

func (ComponentUpgraded) EventType() string { return TypeComponentUpgraded }

func (e ComponentUpgraded) Event() *types.Event {
	return &types.Event{
		Type: TypeComponentUpgraded,
		Attributes: map[string]string{
			"component": addrHex(e.Component),
			"kind":      e.Kind,
			"version":   uintToString(e.Version),
		},
	}
}
