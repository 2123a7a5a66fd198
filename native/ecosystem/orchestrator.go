package ecosystem

import (
	"encoding/binary"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"artchain/core"
	"artchain/core/events"
	"artchain/core/state"
	nativecommon "artchain/native/common"
	"artchain/native/reserve"
	"artchain/native/rewards"
	"artchain/native/token"
)

const (
	moduleName = "ecosystem"

	// Unit metadata written during bootstrap.
	UnitName     = "Artist Reward Points"
	UnitSymbol   = "ARP"
	UnitDecimals = uint8(18)

	// DefaultRatioBps is the distribution ratio set at bootstrap. The owner
	// can retune it afterwards through the reserve accountant.
	DefaultRatioBps = uint32(5000)
)

// Orchestrator bootstraps and upgrades the three-component ecosystem. Every
// mutating entry point runs inside a processor call, so a failure anywhere in
// the sequence leaves no partial deployment behind.
type Orchestrator struct {
	processor *core.Processor
	pauses    nativecommon.PauseView
	nowFn     func() int64
}

// NewOrchestrator creates an orchestrator executing against the processor.
func NewOrchestrator(processor *core.Processor) *Orchestrator {
	return &Orchestrator{
		processor: processor,
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetPauses wires the module pause view checked by every mutating call.
func (o *Orchestrator) SetPauses(p nativecommon.PauseView) { o.pauses = p }

// SetNowFunc overrides the time source used for deterministic testing. The
// override is propagated to every engine the orchestrator builds.
func (o *Orchestrator) SetNowFunc(now func() int64) {
	if now == nil {
		o.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	o.nowFn = now
}

func (o *Orchestrator) now() uint64 {
	ts := o.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

// DeriveComponentAddress computes the deterministic component address for the
// deployer's n-th deployment action.
func DeriveComponentAddress(deployer [20]byte, nonce uint64) [20]byte {
	buf := make([]byte, len(deployer)+8)
	copy(buf, deployer[:])
	binary.BigEndian.PutUint64(buf[len(deployer):], nonce)
	hash := ethcrypto.Keccak256(buf)
	var addr [20]byte
	copy(addr[:], hash[12:])
	return addr
}

var deploymentKey = []byte("ecosystem/deployment")

func loadDeployment(m *state.Manager) (*Deployment, bool, error) {
	record := new(Deployment)
	found, err := m.KVGet(deploymentKey, record)
	if err != nil || !found {
		return nil, false, err
	}
	return record, true, nil
}

func (o *Orchestrator) tokenEngine(m *state.Manager, addr [20]byte) *token.Engine {
	engine := token.NewEngine()
	engine.SetAddress(addr)
	engine.SetState(m.TokenState(addr))
	engine.SetEmitter(o.processor.Events())
	engine.SetPauses(o.pauses)
	return engine
}

func (o *Orchestrator) reserveEngine(m *state.Manager, addr [20]byte, ledger reserve.BalanceSource) *reserve.Engine {
	engine := reserve.NewEngine()
	engine.SetAddress(addr)
	engine.SetState(m.ReserveState(addr))
	engine.SetLedger(ledger)
	engine.SetEmitter(o.processor.Events())
	engine.SetPauses(o.pauses)
	engine.SetNowFunc(o.nowFn)
	return engine
}

func (o *Orchestrator) rewardsEngine(m *state.Manager, addr [20]byte, minter rewards.UnitMinter, source rewards.RewardSource) *rewards.Engine {
	engine := rewards.NewEngine()
	engine.SetAddress(addr)
	engine.SetState(m.RewardsState(addr))
	engine.SetLedger(minter)
	engine.SetReserve(source)
	engine.SetEmitter(o.processor.Events())
	engine.SetPauses(o.pauses)
	engine.SetNowFunc(o.nowFn)
	return engine
}

// Deployment returns the recorded bootstrap result, if any.
func (o *Orchestrator) Deployment() (*Deployment, bool, error) {
	if o == nil || o.processor == nil {
		return nil, false, ErrNilProcessor
	}
	return loadDeployment(o.processor.Manager())
}

// Engines builds the fully wired component engines for a deployment. The
// reward engine mints through the unit ledger and withdraws through the
// reserve accountant under its own component address.
func (o *Orchestrator) Engines(d *Deployment) (*token.Engine, *reserve.Engine, *rewards.Engine) {
	m := o.processor.Manager()
	ledger := o.tokenEngine(m, d.Token)
	accountant := o.reserveEngine(m, d.Reserve, ledger)
	engine := o.rewardsEngine(m, d.Rewards, ledger, accountant)
	return ledger, accountant, engine
}

// Deploy bootstraps the ecosystem in one atomic call: it derives the three
// component addresses from the deployer's nonce, initializes the unit ledger,
// the reserve accountant, and the reward engine in that order, grants the
// reward engine its mint and withdrawal authority, and records the component
// registry entries. Any failure rolls the whole sequence back.
func (o *Orchestrator) Deploy(deployer [20]byte) (*Deployment, error) {
	if o == nil || o.processor == nil {
		return nil, ErrNilProcessor
	}
	if err := nativecommon.Guard(o.pauses, moduleName); err != nil {
		return nil, err
	}
	if isZeroAddress(deployer) {
		return nil, ErrZeroAddress
	}
	var deployment *Deployment
	err := o.processor.Execute(func(m *state.Manager) error {
		if _, found, err := loadDeployment(m); err != nil {
			return err
		} else if found {
			return ErrAlreadyDeployed
		}
		account, err := m.GetAccount(deployer)
		if err != nil {
			return err
		}
		tokenAddr := DeriveComponentAddress(deployer, account.Nonce)
		reserveAddr := DeriveComponentAddress(deployer, account.Nonce+1)
		rewardsAddr := DeriveComponentAddress(deployer, account.Nonce+2)
		account.Nonce += 3
		if err := m.PutAccount(deployer, account); err != nil {
			return err
		}

		ledger := o.tokenEngine(m, tokenAddr)
		accountant := o.reserveEngine(m, reserveAddr, ledger)
		engine := o.rewardsEngine(m, rewardsAddr, ledger, accountant)

		if err := ledger.Initialize(deployer, UnitName, UnitSymbol, UnitDecimals); err != nil {
			return err
		}
		if err := accountant.Initialize(deployer, tokenAddr); err != nil {
			return err
		}
		if err := engine.Initialize(deployer, tokenAddr, reserveAddr); err != nil {
			return err
		}
		if err := ledger.AddMinter(deployer, rewardsAddr); err != nil {
			return err
		}
		if err := accountant.SetGovernanceCaller(deployer, rewardsAddr); err != nil {
			return err
		}
		if err := accountant.SetDistributionRatio(deployer, DefaultRatioBps); err != nil {
			return err
		}

		now := o.now()
		records := []struct {
			addr [20]byte
			kind string
		}{
			{tokenAddr, state.ComponentKindToken},
			{reserveAddr, state.ComponentKindReserve},
			{rewardsAddr, state.ComponentKindRewards},
		}
		for _, r := range records {
			record := &state.ComponentRecord{Kind: r.kind, Version: 1, CreatedAt: now}
			if err := m.SetComponent(r.addr, record); err != nil {
				return err
			}
		}
		deployment = &Deployment{
			Deployer:   deployer,
			Token:      tokenAddr,
			Reserve:    reserveAddr,
			Rewards:    rewardsAddr,
			DeployedAt: now,
		}
		if err := m.KVPut(deploymentKey, deployment); err != nil {
			return err
		}
		o.processor.Events().Emit(events.EcosystemDeployed{
			Deployer: deployer,
			Token:    tokenAddr,
			Reserve:  reserveAddr,
			Rewards:  rewardsAddr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deployment, nil
}

func componentOwner(m *state.Manager, addr [20]byte, kind string) ([20]byte, error) {
	switch kind {
	case state.ComponentKindToken:
		meta, found, err := m.TokenState(addr).Metadata()
		if err != nil || !found {
			return [20]byte{}, firstErr(err, ErrUnknownComponent)
		}
		return meta.Owner, nil
	case state.ComponentKindReserve:
		cfg, found, err := m.ReserveState(addr).Config()
		if err != nil || !found {
			return [20]byte{}, firstErr(err, ErrUnknownComponent)
		}
		return cfg.Owner, nil
	case state.ComponentKindRewards:
		cfg, found, err := m.RewardsState(addr).Config()
		if err != nil || !found {
			return [20]byte{}, firstErr(err, ErrUnknownComponent)
		}
		return cfg.Owner, nil
	default:
		return [20]byte{}, ErrUnknownComponent
	}
}

func firstErr(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}

// UpgradeToken records a logic swap for a unit ledger component.
func (o *Orchestrator) UpgradeToken(caller, component [20]byte) (uint64, error) {
	return o.upgrade(caller, component, state.ComponentKindToken)
}

// UpgradeReserve records a logic swap for a reserve accountant component.
func (o *Orchestrator) UpgradeReserve(caller, component [20]byte) (uint64, error) {
	return o.upgrade(caller, component, state.ComponentKindReserve)
}

// UpgradeRewards records a logic swap for a reward engine component.
func (o *Orchestrator) UpgradeRewards(caller, component [20]byte) (uint64, error) {
	return o.upgrade(caller, component, state.ComponentKindRewards)
}

// UpgradeComponent records an authorized logic swap for the component: the
// registry version is bumped while the component's own records, including its
// initialized flag, stay untouched. Only the component owner may call it. The
// new version number is returned.
func (o *Orchestrator) UpgradeComponent(caller, component [20]byte) (uint64, error) {
	return o.upgrade(caller, component, "")
}

func (o *Orchestrator) upgrade(caller, component [20]byte, kind string) (uint64, error) {
	if o == nil || o.processor == nil {
		return 0, ErrNilProcessor
	}
	if err := nativecommon.Guard(o.pauses, moduleName); err != nil {
		return 0, err
	}
	var version uint64
	err := o.processor.Execute(func(m *state.Manager) error {
		record, found, err := m.Component(component)
		if err != nil {
			return err
		}
		if !found {
			return ErrUnknownComponent
		}
		if kind != "" && record.Kind != kind {
			return ErrUnknownComponent
		}
		owner, err := componentOwner(m, component, record.Kind)
		if err != nil {
			return err
		}
		if caller != owner {
			return ErrNotOwner
		}
		record.Version++
		if err := m.SetComponent(component, record); err != nil {
			return err
		}
		version = record.Version
		o.processor.Events().Emit(events.ComponentUpgraded{
			Component: component,
			Kind:      record.Kind,
			Version:   record.Version,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}
