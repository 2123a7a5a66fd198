package rewards

import (
	"math/big"
	"time"

	"artchain/core/events"
	nativecommon "artchain/native/common"
)

const (
	moduleName = "rewards"

	// RewardCooldownSeconds is the per-artist window between reward
	// issuances, independent of the holder claim cooldown.
	RewardCooldownSeconds = 24 * 60 * 60

	// MaxContributionScore bounds the advisory reward computation input.
	MaxContributionScore = 100

	// subscriberFactorStep is the subscriber count granting one additional
	// reward multiple.
	subscriberFactorStep = 100
)

// rewardBase is 100 whole units in smallest denomination (18 decimals).
var rewardBase = new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

type engineState interface {
	Config() (*Config, bool, error)
	SetConfig(cfg *Config) error
	Artist(addr [20]byte) (*Artist, bool, error)
	SetArtist(addr [20]byte, artist *Artist) error
	IsOperator(addr [20]byte) (bool, error)
	SetOperator(addr [20]byte, member bool) error
	IsSubscriber(addr [20]byte) (bool, error)
	SetSubscriber(addr [20]byte, member bool) error
}

// UnitMinter is the issuing surface of the unit ledger. The engine passes its
// own component address as the caller, so issuance only succeeds while the
// engine holds the minter grant.
type UnitMinter interface {
	Mint(caller, to [20]byte, amount *big.Int) error
}

// RewardSource is the withdrawal surface of the reserve accountant. The
// engine passes its own component address as the caller, so withdrawals only
// succeed while the engine is the registered governance caller.
type RewardSource interface {
	WithdrawForArtistReward(caller [20]byte, amount *big.Int, recipient [20]byte) error
}

// Engine implements the contributor registry, subscriber accounting, and
// growth-indexed reward issuance sitting on top of the unit ledger and the
// reserve accountant.
type Engine struct {
	addr    [20]byte
	state   engineState
	minter  UnitMinter
	reserve RewardSource
	emitter events.Emitter
	pauses  nativecommon.PauseView
	nowFn   func() int64
}

// NewEngine constructs a reward engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetAddress binds the engine to its component address.
func (e *Engine) SetAddress(addr [20]byte) { e.addr = addr }

// Address returns the component address the engine is bound to.
func (e *Engine) Address() [20]byte { return e.addr }

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetLedger wires the unit ledger mint surface.
func (e *Engine) SetLedger(minter UnitMinter) { e.minter = minter }

// SetReserve wires the reserve accountant withdrawal surface.
func (e *Engine) SetReserve(reserve RewardSource) { e.reserve = reserve }

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

// requireOperator admits the owner and any member of the operator set.
func (e *Engine) requireOperator(caller [20]byte) (*Config, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	if caller == cfg.Owner {
		return cfg, nil
	}
	member, err := e.state.IsOperator(caller)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotOperator
	}
	return cfg, nil
}

// Initialize writes the engine owner and its component references. It is
// single-shot for the lifetime of the component, including across logic
// upgrades.
func (e *Engine) Initialize(owner, ledger, reserve [20]byte) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if isZeroAddress(owner) || isZeroAddress(ledger) || isZeroAddress(reserve) {
		return ErrZeroAddress
	}
	if _, found, err := e.state.Config(); err != nil {
		return err
	} else if found {
		return ErrAlreadyInitialized
	}
	cfg := &Config{Owner: owner, Ledger: ledger, Reserve: reserve}
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsInitialized{Engine: e.addr, Owner: owner, Ledger: ledger, Reserve: reserve})
	return nil
}

// Owner returns the current engine owner.
func (e *Engine) Owner() ([20]byte, error) {
	cfg, err := e.config()
	if err != nil {
		return [20]byte{}, err
	}
	return cfg.Owner, nil
}

// TransferOwnership hands the engine to a new owner. Only the current owner
// may call it.
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
	e.emitter.Emit(events.RewardsOwnerChanged{Engine: e.addr, Previous: previous, Owner: newOwner})
	return nil
}

// AddOperator grants day-to-day administrative authority. Owner only.
func (e *Engine) AddOperator(caller, operator [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if isZeroAddress(operator) {
		return ErrZeroAddress
	}
	if err := e.state.SetOperator(operator, true); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsOperatorAdded{Engine: e.addr, Operator: operator})
	return nil
}

// RemoveOperator revokes day-to-day administrative authority. Owner only.
func (e *Engine) RemoveOperator(caller, operator [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOwner(caller); err != nil {
		return err
	}
	if err := e.state.SetOperator(operator, false); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsOperatorRemoved{Engine: e.addr, Operator: operator})
	return nil
}

// IsOperator reports whether the address may perform operator-gated calls.
// The owner is implicitly an operator.
func (e *Engine) IsOperator(addr [20]byte) (bool, error) {
	cfg, err := e.config()
	if err != nil {
		return false, err
	}
	if addr == cfg.Owner {
		return true, nil
	}
	return e.state.IsOperator(addr)
}

// RegisterArtist creates the contributor record. Operator only; registering
// the same artist twice fails.
func (e *Engine) RegisterArtist(caller, artist [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOperator(caller); err != nil {
		return err
	}
	if isZeroAddress(artist) {
		return ErrZeroAddress
	}
	if _, found, err := e.state.Artist(artist); err != nil {
		return err
	} else if found {
		return ErrArtistExists
	}
	now := e.now()
	record := (&Artist{Registered: true, RegisteredAt: now}).Normalize()
	if err := e.state.SetArtist(artist, record); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsArtistRegistered{Engine: e.addr, Artist: artist, RegisteredAt: int64(now)})
	return nil
}

// Artist returns the contributor record for the address.
func (e *Engine) Artist(addr [20]byte) (*Artist, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	record, found, err := e.state.Artist(addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrArtistNotFound
	}
	return record.Clone(), nil
}

// AddSubscriber counts the address as a subscriber. Operator only; adding an
// existing subscriber is a no-op and leaves the count untouched.
func (e *Engine) AddSubscriber(caller, subscriber [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.requireOperator(caller)
	if err != nil {
		return err
	}
	if isZeroAddress(subscriber) {
		return ErrZeroAddress
	}
	member, err := e.state.IsSubscriber(subscriber)
	if err != nil {
		return err
	}
	if member {
		return nil
	}
	if err := e.state.SetSubscriber(subscriber, true); err != nil {
		return err
	}
	cfg.SubscriberCount++
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsSubscriberAdded{Engine: e.addr, Subscriber: subscriber, Count: cfg.SubscriberCount})
	return nil
}

// RemoveSubscriber stops counting the address as a subscriber. Operator only;
// removing a non-subscriber is a no-op.
func (e *Engine) RemoveSubscriber(caller, subscriber [20]byte) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	cfg, err := e.requireOperator(caller)
	if err != nil {
		return err
	}
	member, err := e.state.IsSubscriber(subscriber)
	if err != nil {
		return err
	}
	if !member {
		return nil
	}
	if err := e.state.SetSubscriber(subscriber, false); err != nil {
		return err
	}
	cfg.SubscriberCount--
	if err := e.state.SetConfig(cfg); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsSubscriberRemoved{Engine: e.addr, Subscriber: subscriber, Count: cfg.SubscriberCount})
	return nil
}

// SubscriberCount returns the derived subscriber total.
func (e *Engine) SubscriberCount() (uint64, error) {
	cfg, err := e.config()
	if err != nil {
		return 0, err
	}
	return cfg.SubscriberCount, nil
}

// CalculateReward sizes a reward from the subscriber count and a contribution
// score in [0,100]. The result is advisory: RewardArtist accepts whatever
// amounts the operator supplies.
func (e *Engine) CalculateReward(score uint32) (*big.Int, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	if score > MaxContributionScore {
		return nil, ErrInvalidScore
	}
	factor := cfg.SubscriberCount/subscriberFactorStep + 1
	reward := new(big.Int).Mul(rewardBase, new(big.Int).SetUint64(factor))
	reward = reward.Mul(reward, new(big.Int).SetUint64(uint64(score)))
	return reward.Quo(reward, big.NewInt(MaxContributionScore)), nil
}

// RewardArtist mints points to the artist and optionally withdraws reserve
// value to them. Operator only, and rate-limited per artist by the reward
// cooldown. The contributor record is updated only after both sub-effects
// succeed; any failure aborts the whole call.
func (e *Engine) RewardArtist(caller, artist [20]byte, points, value *big.Int) error {
	if err := nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	if _, err := e.requireOperator(caller); err != nil {
		return err
	}
	record, found, err := e.state.Artist(artist)
	if err != nil {
		return err
	}
	if !found || !record.Registered {
		return ErrArtistNotFound
	}
	if points == nil || points.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if value != nil && value.Sign() < 0 {
		return ErrInvalidAmount
	}
	now := e.now()
	if record.LastReward > 0 && now < record.LastReward+RewardCooldownSeconds {
		return ErrRewardCooldown
	}
	if e.minter == nil {
		return ErrNoLedger
	}
	if err := e.minter.Mint(e.addr, artist, points); err != nil {
		return err
	}
	if value != nil && value.Sign() > 0 {
		if e.reserve == nil {
			return ErrNoReserve
		}
		if err := e.reserve.WithdrawForArtistReward(e.addr, value, artist); err != nil {
			return err
		}
	}
	record.TotalEarned = new(big.Int).Add(record.TotalEarned, points)
	record.LastReward = now
	if err := e.state.SetArtist(artist, record); err != nil {
		return err
	}
	e.emitter.Emit(events.RewardsArtistRewarded{
		Engine:      e.addr,
		Artist:      artist,
		Points:      new(big.Int).Set(points),
		Value:       valueOrZero(value),
		TotalEarned: record.TotalEarned,
	})
	return nil
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
