package reserve

import (
	"fmt"
	"math/big"
	"time"

	"artchain/core/events"
	"artchain/core/types"
	nativecommon "artchain/native/common"
)

const (
	moduleName = "reserve"

	// ClaimCooldownSeconds is the per-holder window between successful
	// reserve claims.
	ClaimCooldownSeconds = 30 * 24 * 60 * 60

	// RatioDenominator is the basis-point denominator for the distribution
	// ratio.
	RatioDenominator = 10_000
)

type accountantState interface {
	Config() (*Config, bool, error)
	SetConfig(cfg *Config) error
	LastClaim(addr [20]byte) (uint64, error)
	SetLastClaim(addr [20]byte, ts uint64) error
	GetAccount(addr [20]byte) (*types.Account, error)
	PutAccount(addr [20]byte, account *types.Account) error
}

// BalanceSource is the read-only view of the unit ledger the accountant needs
// to size proportional claims.
type BalanceSource interface {
	BalanceOf(addr [20]byte) (*big.Int, error)
	TotalSupply() (*big.Int, error)
}

// TransferFunc delivers external value to a recipient. Implementations may
// fail, in which case the surrounding call is aborted with no state change.
type TransferFunc func(to [20]byte, amount *big.Int) error

// Engine implements the reserve accountant: it pools external revenue and
// pays out pro-rata holder claims and governance-authorized reward
// withdrawals. Reserve figures change only through those two paths plus
// revenue arrival, which keeps the pool conserved across any call sequence.
type Engine struct {
	addr     [20]byte
	state    accountantState
	ledger   BalanceSource
	emitter  events.Emitter
	pauses   nativecommon.PauseView
	nowFn    func() int64
	transfer TransferFunc
}

// NewEngine constructs a reserve accountant engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetAddress binds the engine to its component address. The component account
// at this address custodies the pooled value.
func (e *Engine) SetAddress(addr [20]byte) { e.addr = addr }

// Address returns the component address the engine is bound to.
func (e *Engine) Address() [20]byte { return e.addr }

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state accountantState) { e.state = state }

// SetLedger wires the unit ledger view used for claim sizing.
func (e *Engine) SetLedger(ledger BalanceSource) { e.ledger = ledger }

// SetEmitter configures the event emitter used by the engine.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetPauses wires the module pause view checked by every mutating call.
func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetTransferFunc overrides the external value delivery primitive. A nil value
// restores the default, which moves value between ledger-tracked accounts.
func (e *Engine) SetTransferFunc(fn TransferFunc) { e.transfer = fn }

func (e *Engine) now() uint64 {
	ts := e.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

func (e *Engine) config() (*Config, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	cfg, found, err := e.state.Config()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotInitialized
	}
	return cfg, nil
}

func (e *Engine) requireOwner(caller [20]byte) (*Config, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Owner {
		return nil, ErrNotOwner
	}
	return cfg, nil
}

// Initialize writes the accountant owner and unit ledger reference. It is
// single-shot for the lifetime of the component, including across logic
// upgrades.
func (e *Engine) Initialize(owner, ledger [20]byte) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if isZeroAddress(owner) || isZeroAddress(ledger) {
		return ErrZeroAddress
	}
	if _, found, err := e.state.Config(); err != nil {
		return err
	} else if found {
		return ErrAlreadyInitialized
	}
	cfg := (&Config{Owner: owner, Ledger: ledger}).Normalize()
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveInitialized{Reserve: e.addr, Owner: owner, Ledger: ledger})
	return nil
}

// Owner returns the current accountant owner.
func (e *Engine) Owner() ([20]byte, error) {
	cfg, err := e.config()
	if err != nil {
		return [20]byte{}, err
	}
	return cfg.Owner, nil
}

// TransferOwnership hands the accountant to a new owner. Only the current
// owner may call it.
func (e *Engine) TransferOwnership(caller, newOwner [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if isZeroAddress(newOwner) {
		return ErrZeroAddress
	}
	previous := cfg.Owner
	cfg.Owner = newOwner
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveOwnerChanged{Reserve: e.addr, Previous: previous, Owner: newOwner})
	return nil
}

// SetGovernanceCaller replaces the single address allowed to withdraw reserve
// value for reward payouts. Owner only.
func (e *Engine) SetGovernanceCaller(caller, governance [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if isZeroAddress(governance) {
		return ErrZeroAddress
	}
	cfg.Governance = governance
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveGovernanceUpdated{Reserve: e.addr, Governance: governance})
	return nil
}

// SetDistributionRatio updates the basis-point share of the reserve eligible
// for claiming per cycle. Owner only.
func (e *Engine) SetDistributionRatio(caller [20]byte, bps uint32) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if bps > RatioDenominator {
		return ErrInvalidRatio
	}
	cfg.RatioBps = bps
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveRatioUpdated{Reserve: e.addr, Bps: bps})
	return nil
}

// ReceiveRevenue books inbound external value into the reserve. Anyone may
// deposit; bare value transfers are routed through the same path so the
// bookkeeping never diverges.
func (e *Engine) ReceiveRevenue(from [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.config()
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	payer, err := e.state.GetAccount(from)
	if err != nil {
		return err
	}
	if payer.Balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	payer.Balance = new(big.Int).Sub(payer.Balance, amount)
	if err := e.state.PutAccount(from, payer); err != nil {
		return err
	}
	pool, err := e.state.GetAccount(e.addr)
	if err != nil {
		return err
	}
	pool.Balance = new(big.Int).Add(pool.Balance, amount)
	if err := e.state.PutAccount(e.addr, pool); err != nil {
		return err
	}
	cfg.TotalReserve = new(big.Int).Add(cfg.TotalReserve, amount)
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveRevenueReceived{
		Reserve:      e.addr,
		From:         from,
		Amount:       new(big.Int).Set(amount),
		TotalReserve: cfg.TotalReserve,
	})
	return nil
}

// pay delivers external value out of the pool. The durable reserve figures
// are already updated when this runs; an error here aborts the surrounding
// call, which rolls everything back.
func (e *Engine) pay(to [20]byte, amount *big.Int) error {
	if e.transfer != nil {
		if err := e.transfer(to, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		return nil
	}
	pool, err := e.state.GetAccount(e.addr)
	if err != nil {
		return err
	}
	if pool.Balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: pool underfunded", ErrTransferFailed)
	}
	pool.Balance = new(big.Int).Sub(pool.Balance, amount)
	if err := e.state.PutAccount(e.addr, pool); err != nil {
		return err
	}
	recipient, err := e.state.GetAccount(to)
	if err != nil {
		return err
	}
	recipient.Balance = new(big.Int).Add(recipient.Balance, amount)
	return e.state.PutAccount(to, recipient)
}

// ClaimReserveShare pays the caller their pro-rata slice of the claimable
// reserve. The caller must hold units and respect the 30-day cooldown
// measured from their own previous claim.
func (e *Engine) ClaimReserveShare(caller [20]byte) (*big.Int, error) {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return nil, err
	}
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, ErrNoLedger
	}
	balance, err := e.ledger.BalanceOf(caller)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.Sign() <= 0 {
		return nil, ErrNoUnitBalance
	}
	now := e.now()
	last, err := e.state.LastClaim(caller)
	if err != nil {
		return nil, err
	}
	if last > 0 && now < last+ClaimCooldownSeconds {
		return nil, ErrClaimCooldown
	}
	supply, err := e.ledger.TotalSupply()
	if err != nil {
		return nil, err
	}
	if supply == nil || supply.Sign() <= 0 {
		return nil, ErrNoUnitBalance
	}
	eligible := new(big.Int).Mul(cfg.TotalReserve, big.NewInt(int64(cfg.RatioBps)))
	eligible = eligible.Quo(eligible, big.NewInt(RatioDenominator))
	share := new(big.Int).Mul(eligible, balance)
	share = share.Quo(share, supply)
	if share.Sign() <= 0 {
		return nil, ErrNothingToClaim
	}
	if err := e.state.SetLastClaim(caller, now); err != nil {
		return nil, err
	}
	cfg.TotalReserve = new(big.Int).Sub(cfg.TotalReserve, share)
	cfg.TotalDistributed = new(big.Int).Add(cfg.TotalDistributed, share)
	if err := e.state.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err := e.pay(caller, share); err != nil {
		return nil, err
	}
	e.emitter.Emit(events.ReserveShareClaimed{
		Reserve:          e.addr,
		Holder:           caller,
		Amount:           share,
		TotalReserve:     cfg.TotalReserve,
		TotalDistributed: cfg.TotalDistributed,
	})
	return new(big.Int).Set(share), nil
}

// WithdrawForArtistReward pays reserve value to a reward recipient. Only the
// registered governance caller may invoke it, and the amount is bounded by
// the undistributed reserve.
func (e *Engine) WithdrawForArtistReward(caller [20]byte, amount *big.Int, recipient [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.config()
	if err != nil {
		return err
	}
	if isZeroAddress(cfg.Governance) || caller != cfg.Governance {
		return ErrNotGovernance
	}
	if isZeroAddress(recipient) {
		return ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.Cmp(cfg.TotalReserve) > 0 {
		return ErrInsufficientReserve
	}
	cfg.TotalReserve = new(big.Int).Sub(cfg.TotalReserve, amount)
	cfg.TotalDistributed = new(big.Int).Add(cfg.TotalDistributed, amount)
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	if err := e.pay(recipient, amount); err != nil {
		return err
	}
	e.emitter.Emit(events.ReserveRewardWithdrawn{
		Reserve:      e.addr,
		Recipient:    recipient,
		Amount:       new(big.Int).Set(amount),
		TotalReserve: cfg.TotalReserve,
	})
	return nil
}

// Snapshot returns a copy of the reserve figures without mutating state.
func (e *Engine) Snapshot() (*Config, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	return cfg.Clone(), nil
}
