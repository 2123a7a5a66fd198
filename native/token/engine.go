package token

import (
	"math/big"

	"artchain/core/events"
	nativecommon "artchain/native/common"
)

const moduleName = "token"

type ledgerState interface {
	Metadata() (*Metadata, bool, error)
	SetMetadata(meta *Metadata) error
	Supply() (*big.Int, error)
	SetSupply(amount *big.Int) error
	Balance(addr [20]byte) (*big.Int, error)
	SetBalance(addr [20]byte, amount *big.Int) error
	Allowance(owner, spender [20]byte) (*big.Int, error)
	SetAllowance(owner, spender [20]byte, amount *big.Int) error
	IsMinter(addr [20]byte) (bool, error)
	SetMinter(addr [20]byte, member bool) error
}

// Engine implements the reward unit ledger: total supply, per-holder balances
// and allowances, and the minter set gating issuance. Every mutation preserves
// the conservation invariant that the sum of balances equals the recorded
// supply.
type Engine struct {
	addr    [20]byte
	state   ledgerState
	emitter events.Emitter
	pauses  nativecommon.PauseView
}

// NewEngine constructs a unit ledger engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetAddress binds the engine to its component address.
func (e *Engine) SetAddress(addr [20]byte) { e.addr = addr }

// Address returns the component address the engine is bound to.
func (e *Engine) Address() [20]byte { return e.addr }

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state ledgerState) { e.state = state }

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

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

func positive(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}

func (e *Engine) metadata() (*Metadata, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	meta, found, err := e.state.Metadata()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotInitialized
	}
	return meta, nil
}

func (e *Engine) requireOwner(caller [20]byte) (*Metadata, error) {
	meta, err := e.metadata()
	if err != nil {
		return nil, err
	}
	if caller != meta.Owner {
		return nil, ErrNotOwner
	}
	return meta, nil
}

// Initialize writes the unit metadata and owner. It is single-shot for the
// lifetime of the component, including across logic upgrades.
func (e *Engine) Initialize(owner [20]byte, name, symbol string, decimals uint8) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if isZeroAddress(owner) {
		return ErrZeroAddress
	}
	if _, found, err := e.state.Metadata(); err != nil {
		return err
	} else if found {
		return ErrAlreadyInitialized
	}
	meta := &Metadata{Name: name, Symbol: symbol, Decimals: decimals, Owner: owner}
	if err := e.state.SetMetadata(meta); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenInitialized{
		Token:    e.addr,
		Owner:    owner,
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	})
	return nil
}

// Owner returns the current ledger owner.
func (e *Engine) Owner() ([20]byte, error) {
	meta, err := e.metadata()
	if err != nil {
		return [20]byte{}, err
	}
	return meta.Owner, nil
}

// TransferOwnership hands the ledger to a new owner. Only the current owner
// may call it.
func (e *Engine) TransferOwnership(caller, newOwner [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	meta, err := e.requireOwner(caller)
	if err != nil {
		return err
	}
	if isZeroAddress(newOwner) {
		return ErrZeroAddress
	}
	previous := meta.Owner
	meta.Owner = newOwner
	if err := e.state.SetMetadata(meta); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenOwnerChanged{Token: e.addr, Previous: previous, Owner: newOwner})
	return nil
}

// AddMinter grants mint authority to the address. Owner only; granting an
// existing minter again is a harmless no-op on state.
func (e *Engine) AddMinter(caller, minter [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if isZeroAddress(minter) {
		return ErrZeroAddress
	}
	if err := e.state.SetMinter(minter, true); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenMinterAdded{Token: e.addr, Minter: minter})
	return nil
}

// RemoveMinter revokes mint authority from the address. Owner only.
func (e *Engine) RemoveMinter(caller, minter [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if err := e.state.SetMinter(minter, false); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenMinterRemoved{Token: e.addr, Minter: minter})
	return nil
}

// IsMinter reports whether the address currently holds mint authority.
func (e *Engine) IsMinter(addr [20]byte) (bool, error) {
	if e == nil || e.state == nil {
		return false, ErrNilState
	}
	return e.state.IsMinter(addr)
}

// Mint issues new units to the recipient. Callable only by an authorized
// minter; issuance policy (how much, how often) belongs to the reward engine.
func (e *Engine) Mint(caller, to [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.metadata(); err != nil {
		return err
	}
	if member, err := e.state.IsMinter(caller); err != nil {
		return err
	} else if !member {
		return ErrNotMinter
	}
	if isZeroAddress(to) {
		return ErrZeroAddress
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}
	balance, err := e.state.Balance(to)
	if err != nil {
		return err
	}
	if err := e.state.SetBalance(to, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	supply, err := e.state.Supply()
	if err != nil {
		return err
	}
	supply = new(big.Int).Add(supply, amount)
	if err := e.state.SetSupply(supply); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenMinted{Token: e.addr, To: to, Amount: new(big.Int).Set(amount), Supply: supply})
	return nil
}

// Burn destroys units from the caller's own balance.
func (e *Engine) Burn(caller [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.metadata(); err != nil {
		return err
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}
	balance, err := e.state.Balance(caller)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := e.state.SetBalance(caller, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	supply, err := e.state.Supply()
	if err != nil {
		return err
	}
	supply = new(big.Int).Sub(supply, amount)
	if err := e.state.SetSupply(supply); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenBurned{Token: e.addr, From: caller, Amount: new(big.Int).Set(amount), Supply: supply})
	return nil
}

func (e *Engine) move(from, to [20]byte, amount *big.Int) error {
	fromBalance, err := e.state.Balance(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := e.state.SetBalance(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := e.state.Balance(to)
	if err != nil {
		return err
	}
	return e.state.SetBalance(to, new(big.Int).Add(toBalance, amount))
}

// Transfer moves units from the caller to the recipient.
func (e *Engine) Transfer(caller, to [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.metadata(); err != nil {
		return err
	}
	if isZeroAddress(to) {
		return ErrZeroAddress
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}
	if err := e.move(caller, to, amount); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenTransferred{Token: e.addr, From: caller, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Approve sets the spender's allowance over the caller's units.
func (e *Engine) Approve(caller, spender [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.metadata(); err != nil {
		return err
	}
	if isZeroAddress(spender) {
		return ErrZeroAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := e.state.SetAllowance(caller, spender, amount); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenApproved{Token: e.addr, Owner: caller, Spender: spender, Amount: new(big.Int).Set(amount)})
	return nil
}

// TransferFrom moves units from a holder to the recipient consuming the
// caller's allowance.
func (e *Engine) TransferFrom(caller, from, to [20]byte, amount *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.metadata(); err != nil {
		return err
	}
	if isZeroAddress(to) {
		return ErrZeroAddress
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}
	allowance, err := e.state.Allowance(from, caller)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := e.move(from, to, amount); err != nil {
		return err
	}
	if err := e.state.SetAllowance(from, caller, new(big.Int).Sub(allowance, amount)); err != nil {
		return err
	}
	e.emitter.Emit(events.TokenTransferred{Token: e.addr, From: from, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// BalanceOf returns the holder's unit balance.
func (e *Engine) BalanceOf(addr [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	return e.state.Balance(addr)
}

// TotalSupply returns the recorded total supply.
func (e *Engine) TotalSupply() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	return e.state.Supply()
}

// Allowance returns the spender's remaining allowance over the owner's units.
func (e *Engine) Allowance(owner, spender [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	return e.state.Allowance(owner, spender)
}
